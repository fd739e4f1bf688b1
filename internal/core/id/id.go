// Package id provides UUIDv7 generation for all platform entities.
// UUIDv7 embeds a timestamp, so primary keys sort by creation time.
package id

import (
	"github.com/google/uuid"
)

// ID is a type alias for UUID, used across all entities.
type ID = uuid.UUID

// New generates a new UUIDv7 (time-ordered per RFC 9562).
// Time ordering gives good B-tree locality in PostgreSQL and removes
// the need for a separate created_at index when sorting by creation.
func New() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails if the randomness source does; fall back to V4
		return uuid.New()
	}
	return id
}

// Parse converts a string to ID with validation.
func Parse(s string) (ID, error) {
	return uuid.Parse(s)
}

// MustParse converts a string to ID, panicking on error.
// Use only for constants and tests.
func MustParse(s string) ID {
	return uuid.MustParse(s)
}

// Nil returns the zero-value UUID.
func Nil() ID {
	return uuid.Nil
}

// IsNil checks if an ID is the zero value.
func IsNil(id ID) bool {
	return id == uuid.Nil
}
