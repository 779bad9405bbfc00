package out

import (
	"context"
	"time"
)

// Cache is the key-value cache used for listing pages. Injected explicitly
// into services; TTLs come from configuration.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error

	// GetJSON unmarshals the cached value into dest; the bool reports a hit.
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// DeleteByPrefix removes every key under the prefix (listing
	// invalidation is invalidate-all-on-write).
	DeleteByPrefix(ctx context.Context, prefix string) error
}
