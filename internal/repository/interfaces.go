package repository

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no value exists for a key.
var ErrNotFound = errors.New("key not found")

// KVStore is the key-value persistence capability the grade store writes
// through. SetMulti applies all entries in a single transaction; the store
// relies on that for pairing a user record with the most-recent-user key.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetMulti(ctx context.Context, entries map[string][]byte) error
}
