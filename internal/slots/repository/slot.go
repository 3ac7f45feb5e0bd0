package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	slotserrors "slotbook/internal/slots/errors"
	"slotbook/pkg/config"
	mongotx "slotbook/pkg/db/mongo"
	"slotbook/pkg/model"
)

const (
	CollectionName          = "slots"
	slotTypesCollectionName = "slot_types"
)

type mongoSlotRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

type SlotRepository interface {
	Create(ctx context.Context, slot *model.Slot) error
	FindByID(ctx context.Context, id string) (*model.Slot, error)
	FindViewsByCreatorAndRange(ctx context.Context, creatorID, start, end string) ([]*model.SlotView, error)
	FindAvailable(ctx context.Context, creatorID, date, slotTypeID string) (*model.Slot, error)
	FindPublicAvailable(ctx context.Context, creatorID string) ([]*model.SlotView, error)
	UpdateStatusFrom(ctx context.Context, id, creatorID, from, to string) error
	Delete(ctx context.Context, id, creatorID, requiredStatus string) error
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoSlotRepository(cfg *config.Config) SlotRepository {
	db := cfg.Client.Mongo.Client.Database(cfg.MongoDatabaseName)
	return &mongoSlotRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo.Client),
	}
}

func (r *mongoSlotRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
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

func (r *mongoSlotRepository) Create(ctx context.Context, slot *model.Slot) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	slot.ID = primitive.NewObjectID().Hex()
	slot.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	if _, err := r.collection.InsertOne(ctx, slot); err != nil {
		return fmt.Errorf("failed to create slot: %w", err)
	}
	return nil
}

func (r *mongoSlotRepository) FindByID(ctx context.Context, id string) (*model.Slot, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, fmt.Errorf("%w: %s", slotserrors.ErrInvalidID, id)
	}

	var slot model.Slot
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&slot)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, slotserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find slot: %w", err)
	}

	return &slot, nil
}

// viewPipeline joins each slot with its slot type's name and price. Ids
// are stored as hex strings, so the lookup is a plain field match. The
// slot type may have been deleted; the slot row still lists, with an
// empty name and zero price.
func viewPipeline(match bson.M) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$lookup", Value: bson.M{
			"from":         slotTypesCollectionName,
			"localField":   "slot_type_id",
			"foreignField": "_id",
			"as":           "slot_type",
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$slot_type",
			"preserveNullAndEmptyArrays": true,
		}}},
		{{Key: "$addFields", Value: bson.M{
			"slot_type_name":  bson.M{"$ifNull": bson.A{"$slot_type.name", ""}},
			"slot_type_price": bson.M{"$ifNull": bson.A{"$slot_type.price", 0}},
		}}},
		{{Key: "$project", Value: bson.M{"slot_type": 0}}},
		{{Key: "$sort", Value: bson.D{{Key: "date", Value: 1}, {Key: "slot_type_name", Value: 1}}}},
	}
}

func (r *mongoSlotRepository) FindViewsByCreatorAndRange(ctx context.Context, creatorID, start, end string) ([]*model.SlotView, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	match := bson.M{
		"creator_id": creatorID,
		"date":       bson.M{"$gte": start, "$lte": end},
	}

	cursor, err := r.collection.Aggregate(ctx, viewPipeline(match))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate slots: %w", err)
	}
	defer cursor.Close(ctx)

	var views []*model.SlotView
	if err = cursor.All(ctx, &views); err != nil {
		return nil, fmt.Errorf("failed to decode slot views: %w", err)
	}

	return views, nil
}

func (r *mongoSlotRepository) FindAvailable(ctx context.Context, creatorID, date, slotTypeID string) (*model.Slot, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"creator_id":   creatorID,
		"date":         date,
		"slot_type_id": slotTypeID,
		"status":       model.SlotStatusAvailable,
	}

	var slot model.Slot
	err := r.collection.FindOne(ctx, filter).Decode(&slot)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, slotserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find available slot: %w", err)
	}

	return &slot, nil
}

// FindPublicAvailable lists every still-available slot for the booking
// page, regardless of date.
func (r *mongoSlotRepository) FindPublicAvailable(ctx context.Context, creatorID string) ([]*model.SlotView, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	match := bson.M{
		"creator_id": creatorID,
		"status":     model.SlotStatusAvailable,
	}

	cursor, err := r.collection.Aggregate(ctx, viewPipeline(match))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate available slots: %w", err)
	}
	defer cursor.Close(ctx)

	var views []*model.SlotView
	if err = cursor.All(ctx, &views); err != nil {
		return nil, fmt.Errorf("failed to decode slot views: %w", err)
	}

	return views, nil
}

// UpdateStatusFrom flips the status only when the slot still carries the
// expected current status, so concurrent writers cannot skip or rewind
// lifecycle steps. An empty creatorID skips owner scoping; the payment
// confirmation path runs without a session identity.
func (r *mongoSlotRepository) UpdateStatusFrom(ctx context.Context, id, creatorID, from, to string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return fmt.Errorf("%w: %s", slotserrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": id, "status": from}
	if creatorID != "" {
		filter["creator_id"] = creatorID
	}

	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"status": to}})
	if err != nil {
		return fmt.Errorf("failed to update slot status: %w", err)
	}
	if result.MatchedCount == 0 {
		return slotserrors.ErrStatusMismatch
	}

	return nil
}

func (r *mongoSlotRepository) Delete(ctx context.Context, id, creatorID, requiredStatus string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return fmt.Errorf("%w: %s", slotserrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": id, "creator_id": creatorID, "status": requiredStatus}
	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete slot: %w", err)
	}
	if result.DeletedCount == 0 {
		return slotserrors.ErrStatusMismatch
	}

	return nil
}

func (r *mongoSlotRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
