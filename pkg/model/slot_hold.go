package model

import "time"

// SlotHold is a short-lived exclusive hold placed on a slot while a
// sponsor's checkout is in flight. The _id is the slot id, so at most
// one hold can exist per slot; a TTL index on expires_at reclaims holds
// whose checkout was abandoned.
type SlotHold struct {
	ID        string    `bson:"_id"`
	SessionID string    `bson:"session_id,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
	ExpiresAt time.Time `bson:"expires_at"`
}
