package model

import "time"

// SlotType is a priced category of sponsorship offering defined by a
// creator. Price is in USD.
type SlotType struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	CreatorID string    `json:"creator_id" bson:"creator_id" validate:"required,uuid4"`
	Name      string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Price     float64   `json:"price" bson:"price" validate:"required,gt=0"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type SlotTypeUpdate struct {
	Name  string  `json:"name" validate:"required,min=2,max=100"`
	Price float64 `json:"price" validate:"required,gt=0"`
}
