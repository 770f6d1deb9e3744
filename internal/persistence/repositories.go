package persistence

import "context"

// RecordStore is the prefix-keyed document store behind every repository.
// Keys are opaque strings; values are JSON documents. Implementations
// return ErrNotFound for missing keys and ErrSlotTaken when a claimed
// write loses to an earlier claim.
type RecordStore interface {
	// Put creates or replaces the record under key.
	Put(ctx context.Context, key string, value []byte) error
	// Get returns the record value under key.
	Get(ctx context.Context, key string) ([]byte, error)
	// Delete removes the record under key.
	Delete(ctx context.Context, key string) error
	// ListByPrefix returns every record whose key starts with prefix,
	// ordered by key.
	ListByPrefix(ctx context.Context, prefix string) ([]Record, error)

	// PutClaimed writes the record and its slot claims atomically. When
	// any claim is already held the write fails with ErrSlotTaken and
	// nothing is stored.
	PutClaimed(ctx context.Context, key string, value []byte, claims []SlotClaim) error
	// DeleteClaimed removes the record under key together with every
	// claim it holds.
	DeleteClaimed(ctx context.Context, key string) error
}
