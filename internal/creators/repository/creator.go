package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	creatorserrors "slotbook/internal/creators/errors"
	"slotbook/pkg/config"
	mongotx "slotbook/pkg/db/mongo"
	"slotbook/pkg/model"
)

const (
	CollectionName = "creators"
)

type mongoCreatorRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

type CreatorRepository interface {
	Create(ctx context.Context, creator *model.Creator) error
	FindByID(ctx context.Context, id string) (*model.Creator, error)
	FindBySlug(ctx context.Context, slug string) (*model.Creator, error)
	UpdateProfile(ctx context.Context, id string, updates *model.CreatorUpdate) error
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoCreatorRepository(cfg *config.Config) CreatorRepository {
	db := cfg.Client.Mongo.Client.Database(cfg.MongoDatabaseName)
	return &mongoCreatorRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo.Client),
	}
}

// withTimeout wraps the context with a timeout if not already in a transaction.
// SessionContext cannot be wrapped without breaking transaction semantics, so
// it is returned unchanged with a no-op cancel.
func (r *mongoCreatorRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoCreatorRepository) Create(ctx context.Context, creator *model.Creator) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	creator.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	if _, err := r.collection.InsertOne(ctx, creator); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return creatorserrors.ErrSlugTaken
		}
		return fmt.Errorf("failed to create creator: %w", err)
	}
	return nil
}

func (r *mongoCreatorRepository) FindByID(ctx context.Context, id string) (*model.Creator, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var creator model.Creator
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&creator)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, creatorserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find creator: %w", err)
	}

	return &creator, nil
}

func (r *mongoCreatorRepository) FindBySlug(ctx context.Context, slug string) (*model.Creator, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var creator model.Creator
	err := r.collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&creator)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, creatorserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find creator by slug: %w", err)
	}

	return &creator, nil
}

func (r *mongoCreatorRepository) UpdateProfile(ctx context.Context, id string, updates *model.CreatorUpdate) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"newsletter_name": updates.NewsletterName,
			"slug":            updates.Slug,
			"timezone":        updates.Timezone,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return creatorserrors.ErrSlugTaken
		}
		return fmt.Errorf("failed to update creator profile: %w", err)
	}
	if result.MatchedCount == 0 {
		return creatorserrors.ErrNotFound
	}

	return nil
}

// SlugExists reports whether another creator already owns the slug.
// excludeID skips the caller's own row so re-saving an unchanged slug
// is not a conflict.
func (r *mongoCreatorRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"slug": slug}
	if excludeID != "" {
		filter["_id"] = bson.M{"$ne": excludeID}
	}

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return count > 0, nil
}

func (r *mongoCreatorRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
