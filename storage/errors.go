package storage

import "errors"

// Common storage errors.
var (
	// ErrNotFound is returned when no content is stored for an identifier.
	ErrNotFound = errors.New("content not found")

	// ErrInvalidID is returned for identifiers that cannot be used as keys.
	ErrInvalidID = errors.New("invalid content identifier")
)
