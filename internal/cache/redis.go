package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/donaldgifford/crop-advisor/internal/metrics"
	domain "github.com/donaldgifford/crop-advisor/pkg/types"
)

// DefaultKeyPrefix namespaces result keys in Redis.
const DefaultKeyPrefix = "crop-advisor:rec:"

// RedisCache stores results in Redis so several server instances share one
// cache. Redis expires keys itself; Get also checks the stored creation time.
type RedisCache struct {
	client  redis.UniversalClient
	ttl     time.Duration
	prefix  string
	nowFunc func() time.Time
}

// RedisOption configures the RedisCache.
type RedisOption func(*RedisCache)

// WithRedisTTL overrides the default time-to-live. Non-positive values are ignored.
func WithRedisTTL(ttl time.Duration) RedisOption {
	return func(c *RedisCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithKeyPrefix overrides the key namespace.
func WithKeyPrefix(prefix string) RedisOption {
	return func(c *RedisCache) {
		c.prefix = prefix
	}
}

// WithRedisNowFunc overrides the clock for testing.
func WithRedisNowFunc(f func() time.Time) RedisOption {
	return func(c *RedisCache) {
		c.nowFunc = f
	}
}

// NewRedisCache wraps an existing Redis client.
func NewRedisCache(client redis.UniversalClient, opts ...RedisOption) *RedisCache {
	c := &RedisCache{
		client:  client,
		ttl:     DefaultTTL,
		prefix:  DefaultKeyPrefix,
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *RedisCache) key(fingerprint string) string {
	return c.prefix + fingerprint
}

// Get returns the stored result when present and younger than the TTL.
func (c *RedisCache) Get(
	ctx context.Context,
	fingerprint string,
) (*domain.RecommendationResult, bool, error) {
	data, err := c.client.Get(ctx, c.key(fingerprint)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cache entry: %w", err)
	}

	var entry domain.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false, fmt.Errorf("decoding cache entry: %w", err)
	}
	if entry.Expired(c.nowFunc(), c.ttl) {
		return nil, false, nil
	}
	return &entry.Result, true, nil
}

// Put stores result with the cache TTL.
func (c *RedisCache) Put(
	ctx context.Context,
	fingerprint string,
	result *domain.RecommendationResult,
) error {
	data, err := json.Marshal(domain.CacheEntry{Result: *result, CreatedAt: c.nowFunc()})
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}
	if err := c.client.Set(ctx, c.key(fingerprint), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

// Evict removes a single entry.
func (c *RedisCache) Evict(ctx context.Context, fingerprint string) error {
	n, err := c.client.Del(ctx, c.key(fingerprint)).Result()
	if err != nil {
		return fmt.Errorf("deleting cache entry: %w", err)
	}
	metrics.CacheEvictionsTotal.Add(float64(n))
	return nil
}

// Ping checks the Redis connection.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
