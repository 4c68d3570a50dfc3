package store

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("key not found")

// Store is the key-value port checkout sessions and auth state are persisted through.
// Values are opaque bytes, callers serialize them. Writes are last-write-wins.
type Store interface {
	// Get returns ErrNotFound when the key is absent
	Get(ctx context.Context, key string) ([]byte, error)

	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
