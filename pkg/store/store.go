// Package store provides the preference-store boundary used to persist
// session state (the preset registry and current layout) between runs.
//
// The store is a key-value blob interface with implementations for
// different deployments:
//   - file: JSON files under the user config directory, for CLI usage
//   - redis: Redis-backed storage for shared deployments
//   - mongo: MongoDB-backed storage, one document per key
//   - null: discards everything, for tests and --no-persist
//
// A missing key is never an error: Get returns (nil, false, nil) and
// callers initialize fresh state.
package store

import (
	"context"
	"errors"
)

// ErrClosed is returned by operations on a store that has been closed.
var ErrClosed = errors.New("store closed")

// Store is a key-value blob store for session persistence.
type Store interface {
	// Get retrieves the blob stored under key.
	// Returns (nil, false, nil) if the key does not exist.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key, replacing any previous value.
	Set(ctx context.Context, key string, data []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}
