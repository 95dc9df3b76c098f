// Package cache provides content-addressed caching for compiled layout
// plans.
//
// Compilation is deterministic: identical image bytes plus identical
// config always produce the identical plan. That makes plans safe to
// cache under a key derived from both hashes, so repeated compiles of an
// unchanged layout skip the pixel walk entirely.
package cache

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for caching operations.
var (
	// ErrCacheMiss is returned when an item is not found in cache.
	ErrCacheMiss = errors.New("cache miss")
)

// TTLPlan is how long compiled plans stay cached. Plans are cheap to
// regenerate, so a bounded TTL keeps stale entries from accumulating.
const TTLPlan = 7 * 24 * time.Hour

// Cache is the interface for cache backends.
type Cache interface {
	// Get retrieves a value. Returns (nil, false, nil) on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A TTL of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value.
	Delete(ctx context.Context, key string) error

	// Close releases resources.
	Close() error
}
