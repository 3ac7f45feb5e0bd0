package errors

import "errors"

var (
	ErrNotFound = errors.New("creator not found")

	ErrSlugTaken = errors.New("slug already in use by another creator")
)
