package errors

import "errors"

var (
	ErrNotFound = errors.New("slot type not found")

	ErrInvalidID = errors.New("invalid slot type ID format")

	ErrInUse = errors.New("slot type is referenced by existing slots")
)
