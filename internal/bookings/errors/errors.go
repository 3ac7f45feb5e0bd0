package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	ErrSlotTaken = errors.New("slot already has a booking")

	ErrSlotHeld = errors.New("slot is held by another checkout in flight")
)
