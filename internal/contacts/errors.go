package contacts

import "errors"

var (
	// ErrNotFound is returned when no record matches the given identity
	ErrNotFound = errors.New("contact record not found")

	// ErrIncomplete is returned when a record is saved with missing fields
	ErrIncomplete = errors.New("contact record has missing fields")
)
