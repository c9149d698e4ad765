package cache

import (
	"context"
	"log/slog"
	"time"
)

// TieredCache implements a two-tier caching strategy:
//   - L1: in-memory cache (fast, small, always on)
//   - L2: Redis cache (shared across instances, optional)
//
// L2 is enabled only when a Redis address is configured; otherwise all
// operations run against L1 alone. L2 values are stored as JSON and
// decoded through the configured decoder on the way back up.
type TieredCache struct {
	l1     *Cache
	l2     RedisCacheInterface
	decode func([]byte) (any, error)
}

// NewTieredCache creates a tiered cache. redisConfig may be nil to
// disable the L2 tier. A Redis connection failure degrades to L1-only
// instead of failing startup.
func NewTieredCache(config Config, redisConfig *RedisCacheConfig) *TieredCache {
	tc := &TieredCache{
		l1: New(config),
	}
	if redisConfig != nil {
		l2, err := NewRedisCache(redisConfig)
		if err != nil {
			slog.Warn("redis cache unavailable, running with memory cache only",
				slog.String("addr", redisConfig.Addr),
				slog.String("error", err.Error()))
		} else {
			tc.l2 = l2
		}
	}
	return tc
}

// SetDecoder installs the function used to decode L2 JSON payloads back
// into domain values. Without a decoder, L2 hits are treated as misses.
func (tc *TieredCache) SetDecoder(decode func([]byte) (any, error)) {
	tc.decode = decode
}

// Get looks up key in L1, then L2. An L2 hit is promoted into L1.
func (tc *TieredCache) Get(ctx context.Context, key string) (any, bool) {
	if v, ok := tc.l1.Get(ctx, key); ok {
		return v, true
	}

	if tc.l2 == nil || tc.decode == nil {
		return nil, false
	}
	data, ok := tc.l2.GetBytes(ctx, key)
	if !ok {
		return nil, false
	}
	v, err := tc.decode(data)
	if err != nil {
		slog.Warn("failed to decode cached value", slog.String("key", key), slog.String("error", err.Error()))
		tc.l2.Delete(ctx, key)
		return nil, false
	}

	tc.l1.Set(ctx, key, v)
	return v, true
}

// Set writes through to both tiers.
func (tc *TieredCache) Set(ctx context.Context, key string, value any) {
	tc.l1.Set(ctx, key, value)
	if tc.l2 != nil {
		tc.l2.Set(ctx, key, value)
	}
}

// SetWithTTL writes through to both tiers with an explicit TTL.
func (tc *TieredCache) SetWithTTL(ctx context.Context, key string, value any, ttl time.Duration) {
	tc.l1.SetWithTTL(ctx, key, value, ttl)
	if tc.l2 != nil {
		tc.l2.SetWithTTL(ctx, key, value, ttl)
	}
}

// Delete removes key from both tiers.
func (tc *TieredCache) Delete(ctx context.Context, key string) {
	tc.l1.Delete(ctx, key)
	if tc.l2 != nil {
		tc.l2.Delete(ctx, key)
	}
}

// Close releases both tiers.
func (tc *TieredCache) Close() {
	tc.l1.Close()
	if tc.l2 != nil {
		if err := tc.l2.Close(); err != nil {
			slog.Warn("failed to close redis cache", slog.String("error", err.Error()))
		}
	}
}
