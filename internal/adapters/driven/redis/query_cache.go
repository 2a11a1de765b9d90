// Package redis provides the Redis-backed query cache, used when a Redis
// address is configured; deployments without Redis fall back to the
// filesystem cache.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ragfront/ragfront-core/internal/core/domain"
	"github.com/ragfront/ragfront-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.QueryCache = (*QueryCache)(nil)

const queryCachePrefix = "query_cache:"

// DefaultTTL bounds how long cached query results stay valid.
const DefaultTTL = 24 * time.Hour

// QueryCache stores query results keyed by fingerprint with TTL expiry.
type QueryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewQueryCache creates a Redis-backed QueryCache. A non-positive ttl falls
// back to the default.
func NewQueryCache(client *redis.Client, ttl time.Duration) *QueryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &QueryCache{client: client, ttl: ttl}
}

func (c *QueryCache) Get(ctx context.Context, fingerprint string) (json.RawMessage, error) {
	data, err := c.client.Get(ctx, queryCachePrefix+fingerprint).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("reading cache entry: %w", err)
	}
	return data, nil
}

func (c *QueryCache) Set(ctx context.Context, fingerprint string, data json.RawMessage) error {
	if err := c.client.Set(ctx, queryCachePrefix+fingerprint, []byte(data), c.ttl).Err(); err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}
