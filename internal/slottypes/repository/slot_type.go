package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	slottypeserrors "slotbook/internal/slottypes/errors"
	"slotbook/pkg/config"
	"slotbook/pkg/model"
)

const CollectionName = "slot_types"

type mongoSlotTypeRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

type SlotTypeRepository interface {
	Create(ctx context.Context, slotType *model.SlotType) error
	FindByID(ctx context.Context, id string) (*model.SlotType, error)
	FindByCreator(ctx context.Context, creatorID string) ([]*model.SlotType, error)
	Update(ctx context.Context, id, creatorID string, updates *model.SlotTypeUpdate) error
	Delete(ctx context.Context, id, creatorID string) error
}

func NewMongoSlotTypeRepository(cfg *config.Config) SlotTypeRepository {
	db := cfg.Client.Mongo.Client.Database(cfg.MongoDatabaseName)
	return &mongoSlotTypeRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoSlotTypeRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
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

func (r *mongoSlotTypeRepository) Create(ctx context.Context, slotType *model.SlotType) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	// IDs are generated here and stored as hex strings so they decode
	// straight into the string fields on the models.
	slotType.ID = primitive.NewObjectID().Hex()
	slotType.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	if _, err := r.collection.InsertOne(ctx, slotType); err != nil {
		return fmt.Errorf("failed to create slot type: %w", err)
	}
	return nil
}

func (r *mongoSlotTypeRepository) FindByID(ctx context.Context, id string) (*model.SlotType, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, fmt.Errorf("%w: %s", slottypeserrors.ErrInvalidID, id)
	}

	var slotType model.SlotType
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&slotType)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, slottypeserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find slot type: %w", err)
	}

	return &slotType, nil
}

func (r *mongoSlotTypeRepository) FindByCreator(ctx context.Context, creatorID string) ([]*model.SlotType, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"creator_id": creatorID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find slot types: %w", err)
	}
	defer cursor.Close(ctx)

	var slotTypes []*model.SlotType
	if err = cursor.All(ctx, &slotTypes); err != nil {
		return nil, fmt.Errorf("failed to decode slot types: %w", err)
	}

	return slotTypes, nil
}

func (r *mongoSlotTypeRepository) Update(ctx context.Context, id, creatorID string, updates *model.SlotTypeUpdate) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return fmt.Errorf("%w: %s", slottypeserrors.ErrInvalidID, id)
	}

	// creator_id in the filter scopes the write to the owner.
	filter := bson.M{"_id": id, "creator_id": creatorID}
	update := bson.M{
		"$set": bson.M{
			"name":  updates.Name,
			"price": updates.Price,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update slot type: %w", err)
	}
	if result.MatchedCount == 0 {
		return slottypeserrors.ErrNotFound
	}

	return nil
}

func (r *mongoSlotTypeRepository) Delete(ctx context.Context, id, creatorID string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return fmt.Errorf("%w: %s", slottypeserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "creator_id": creatorID})
	if err != nil {
		return fmt.Errorf("failed to delete slot type: %w", err)
	}
	if result.DeletedCount == 0 {
		return slottypeserrors.ErrNotFound
	}

	return nil
}
