package cache

import (
	"context"
	"time"
)

// ttlCache overrides the TTL on every Set, so a configured expiry wins
// over the caller's per-key default.
type ttlCache struct {
	inner Cache
	ttl   time.Duration
}

// WithTTL wraps a cache so that all entries expire after ttl. A zero or
// negative ttl returns the cache unchanged.
func WithTTL(c Cache, ttl time.Duration) Cache {
	if ttl <= 0 {
		return c
	}
	return &ttlCache{inner: c, ttl: ttl}
}

func (c *ttlCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return c.inner.Get(ctx, key)
}

func (c *ttlCache) Set(ctx context.Context, key string, data []byte, _ time.Duration) error {
	return c.inner.Set(ctx, key, data, c.ttl)
}

func (c *ttlCache) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, key)
}

func (c *ttlCache) Close() error {
	return c.inner.Close()
}

var _ Cache = (*ttlCache)(nil)
