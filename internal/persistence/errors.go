package persistence

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("persistence: not found")
	// ErrDuplicate is returned when a uniqueness constraint is violated.
	ErrDuplicate = errors.New("persistence: duplicate record")
	// ErrSlotTaken is returned when another writer already claimed one of
	// the requested room slots.
	ErrSlotTaken = errors.New("persistence: slot already claimed")
)
