// Package cache provides a generic read-through wrapper for repository
// lookups. The cache is a pure optimization: lookups never fail because of
// it, absent results are never cached, and coherence relies on TTL expiry
// plus explicit invalidation by writers.
package cache

import (
	"context"
	"time"
)

// Store is the key-value backend with TTL expiry. infra.RedisClient
// satisfies it.
type Store interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// LoadFunc is a read operation against the authoritative store. A nil result
// with a nil error means "absent".
type LoadFunc[A any, V any] func(ctx context.Context, arg A) (*V, error)

// ReadThrough wraps load with cache-aside semantics: a hit is decoded and
// returned without touching the authoritative store; on a miss the loaded
// value is stored under key(arg) with the given TTL. Cache backend errors
// degrade to a plain load. Two concurrent misses may both populate the key;
// the values are equal, so last write wins harmlessly.
func ReadThrough[A any, V any](store Store, ttl time.Duration, key func(A) string, load LoadFunc[A, V]) LoadFunc[A, V] {
	return func(ctx context.Context, arg A) (*V, error) {
		k := key(arg)

		var cached V
		if err := store.Get(ctx, k, &cached); err == nil {
			return &cached, nil
		}

		value, err := load(ctx, arg)
		if err != nil || value == nil {
			return value, err
		}

		// Best effort; a failed population is just a future miss.
		_ = store.Set(ctx, k, value, ttl)

		return value, nil
	}
}
