package cache

import (
	"context"
	"sync"
	"time"

	"github.com/donaldgifford/crop-advisor/internal/metrics"
	domain "github.com/donaldgifford/crop-advisor/pkg/types"
)

// MemoryCache is an in-process map of results. Expired entries are ignored
// on read and stay in memory until Sweep or Evict removes them.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]domain.CacheEntry
	ttl     time.Duration
	nowFunc func() time.Time
}

// MemoryOption configures the MemoryCache.
type MemoryOption func(*MemoryCache)

// WithTTL overrides the default time-to-live. Non-positive values are ignored.
func WithTTL(ttl time.Duration) MemoryOption {
	return func(c *MemoryCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithNowFunc overrides the clock for testing.
func WithNowFunc(f func() time.Time) MemoryOption {
	return func(c *MemoryCache) {
		c.nowFunc = f
	}
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache(opts ...MemoryOption) *MemoryCache {
	c := &MemoryCache{
		entries: make(map[string]domain.CacheEntry),
		ttl:     DefaultTTL,
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns a copy of the stored result when present and younger than the
// TTL.
func (c *MemoryCache) Get(
	_ context.Context,
	fingerprint string,
) (*domain.RecommendationResult, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[fingerprint]
	c.mu.RUnlock()

	if !ok || entry.Expired(c.nowFunc(), c.ttl) {
		return nil, false, nil
	}
	return entry.Result.Clone(), true, nil
}

// Put stores a copy of result under fingerprint, replacing any previous
// entry.
func (c *MemoryCache) Put(
	_ context.Context,
	fingerprint string,
	result *domain.RecommendationResult,
) error {
	entry := domain.CacheEntry{Result: *result.Clone(), CreatedAt: c.nowFunc()}

	c.mu.Lock()
	c.entries[fingerprint] = entry
	n := len(c.entries)
	c.mu.Unlock()

	metrics.CacheEntries.Set(float64(n))
	return nil
}

// Evict removes a single entry.
func (c *MemoryCache) Evict(_ context.Context, fingerprint string) error {
	c.mu.Lock()
	_, ok := c.entries[fingerprint]
	delete(c.entries, fingerprint)
	n := len(c.entries)
	c.mu.Unlock()

	if ok {
		metrics.CacheEvictionsTotal.Inc()
	}
	metrics.CacheEntries.Set(float64(n))
	return nil
}

// Sweep removes every expired entry and returns how many were removed.
func (c *MemoryCache) Sweep(_ context.Context) (int, error) {
	now := c.nowFunc()

	c.mu.Lock()
	removed := 0
	for fp, entry := range c.entries {
		if entry.Expired(now, c.ttl) {
			delete(c.entries, fp)
			removed++
		}
	}
	n := len(c.entries)
	c.mu.Unlock()

	metrics.CacheEvictionsTotal.Add(float64(removed))
	metrics.CacheEntries.Set(float64(n))
	return removed, nil
}

// Len returns the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Ping always succeeds.
func (*MemoryCache) Ping(context.Context) error {
	return nil
}
