package repository

import (
	"context"
	"time"
)

// CacheRepository defines byte-oriented cache access. The cache is
// optional: a nil repository disables caching entirely.
type CacheRepository interface {
	// Get returns the value stored under key, or nil on a miss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key with a TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes the key.
	Delete(ctx context.Context, key string) error

	// Exists reports whether the key is present.
	Exists(ctx context.Context, key string) (bool, error)
}
