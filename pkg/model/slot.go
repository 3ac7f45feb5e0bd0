package model

import "time"

const (
	SlotStatusAvailable = "available"
	SlotStatusBooked    = "booked"
	SlotStatusFulfilled = "fulfilled"
)

const DateLayout = "2006-01-02"

// Slot is a dated inventory unit of a given slot type. Status only
// moves forward: available -> booked -> fulfilled.
type Slot struct {
	ID         string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	CreatorID  string    `json:"creator_id" bson:"creator_id" validate:"required,uuid4"`
	SlotTypeID string    `json:"slot_type_id" bson:"slot_type_id" validate:"required,mongodb"`
	Date       string    `json:"date" bson:"date" validate:"required,datetime=2006-01-02"`
	Status     string    `json:"status" bson:"status" validate:"required,oneof=available booked fulfilled"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type SlotUpdate struct {
	Status string `json:"status" validate:"required,oneof=available booked fulfilled"`
}

// SlotView joins a slot with display fields from its slot type for the
// calendar and public booking listings.
type SlotView struct {
	Slot          `bson:",inline"`
	SlotTypeName  string  `json:"slot_type_name" bson:"slot_type_name"`
	SlotTypePrice float64 `json:"slot_type_price" bson:"slot_type_price"`
}

// StatusRank orders slot statuses along the lifecycle. Unknown statuses
// rank below available.
func StatusRank(status string) int {
	switch status {
	case SlotStatusAvailable:
		return 1
	case SlotStatusBooked:
		return 2
	case SlotStatusFulfilled:
		return 3
	default:
		return 0
	}
}
