package common

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/singleflight"

	"rental_server/core/port/out"
	"rental_server/pkg/logger"
)

// ListCache is the cache-aside helper for paginated listings. Keys are the
// listing prefix plus the JSON-serialized page options, so every distinct
// combination of keyword, sort, page and take gets its own entry.
type ListCache struct {
	cache out.Cache
	ttl   time.Duration
	group singleflight.Group
}

func NewListCache(cache out.Cache, ttl time.Duration) *ListCache {
	return &ListCache{
		cache: cache,
		ttl:   ttl,
	}
}

// Key builds the cache key for a listing prefix and its options.
func (c *ListCache) Key(prefix string, opts interface{}) string {
	raw, err := json.Marshal(opts)
	if err != nil {
		return prefix + ":invalid"
	}
	return prefix + ":" + string(raw)
}

// GetOrLoad returns the cached page for the key, or runs load and caches
// its result. Concurrent misses on the same key are collapsed into a
// single load via singleflight.
func (c *ListCache) GetOrLoad(ctx context.Context, key string, dest interface{}, load func(ctx context.Context) (interface{}, error)) error {
	hit, err := c.cache.GetJSON(ctx, key, dest)
	if err != nil {
		logger.Warn("[ListCache.GetOrLoad] cache read failed for %s: %v", key, err)
	}
	if hit {
		return nil
	}

	// The flight result must be the page itself, never nil: every caller
	// sharing the flight unmarshals it into its own destination.
	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		// A concurrent flight may have filled the key while we waited.
		if raw, err := c.cache.Get(ctx, key); err == nil && raw != "" {
			return json.RawMessage(raw), nil
		}

		loaded, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if err := c.cache.SetJSON(ctx, key, loaded, c.ttl); err != nil {
			logger.Warn("[ListCache.GetOrLoad] cache write failed for %s: %v", key, err)
		}
		return loaded, nil
	})
	if err != nil {
		return err
	}

	// Round-trip through JSON so the shared flight result lands in every
	// caller's destination.
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

// Invalidate drops every cached page under the listing prefix. Called on
// any write to the listed entity before readers can observe stale pages.
func (c *ListCache) Invalidate(ctx context.Context, prefix string) error {
	return c.cache.DeleteByPrefix(ctx, prefix+":")
}
