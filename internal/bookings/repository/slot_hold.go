package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "slotbook/internal/bookings/errors"
	"slotbook/pkg/config"
	"slotbook/pkg/model"
)

const HoldCollectionName = "slot_holds"

// SlotHoldRepository manages the short-lived per-slot reservation holds
// placed while a checkout is in flight. The hold document's _id is the
// slot id, so the insert doubles as an exclusive lock; a TTL index on
// expires_at reclaims abandoned checkouts.
type SlotHoldRepository interface {
	Acquire(ctx context.Context, slotID string, ttl time.Duration) error
	SetSession(ctx context.Context, slotID, sessionID string) error
	Release(ctx context.Context, slotID string) error
}

type mongoSlotHoldRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoSlotHoldRepository(cfg *config.Config) SlotHoldRepository {
	db := cfg.Client.Mongo.Client.Database(cfg.MongoDatabaseName)
	return &mongoSlotHoldRepository{
		cfg:        cfg,
		collection: db.Collection(HoldCollectionName),
	}
}

func (r *mongoSlotHoldRepository) Acquire(ctx context.Context, slotID string, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC()
	hold := &model.SlotHold{
		ID:        slotID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	if _, err := r.collection.InsertOne(ctx, hold); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return bookingserrors.ErrSlotHeld
		}
		return fmt.Errorf("failed to acquire slot hold: %w", err)
	}
	return nil
}

// SetSession attaches the checkout session id to an existing hold so an
// abandoned hold can be traced back to its session. Best-effort.
func (r *mongoSlotHoldRepository) SetSession(ctx context.Context, slotID, sessionID string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": slotID},
		bson.M{"$set": bson.M{"session_id": sessionID}},
	)
	if err != nil {
		return fmt.Errorf("failed to attach session to slot hold: %w", err)
	}
	return nil
}

func (r *mongoSlotHoldRepository) Release(ctx context.Context, slotID string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": slotID}); err != nil {
		return fmt.Errorf("failed to release slot hold: %w", err)
	}
	return nil
}
