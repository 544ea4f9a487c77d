package tenantstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yardbook/yardbook/pkg/tenant"
)

// cacheKeyPrefix namespaces resolution cache entries in a shared Redis.
const cacheKeyPrefix = "tenant:resolve:"

// RedisCache is a tenant.Cache backed by Redis, for deployments with
// more than one process: webhook-driven status changes invalidate the
// cache once and every instance observes it.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a Redis-backed resolution cache.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Get retrieves a cached tenant. Redis errors degrade to a cache miss:
// resolution falls through to the directory rather than failing.
func (c *RedisCache) Get(ctx context.Context, key string) (*tenant.Tenant, bool) {
	data, err := c.client.Get(ctx, cacheKeyPrefix+key).Bytes()
	if err != nil {
		return nil, false
	}

	var t tenant.Tenant
	if err := json.Unmarshal(data, &t); err != nil {
		// Stale or corrupt entry, drop it.
		c.client.Del(ctx, cacheKeyPrefix+key)
		return nil, false
	}
	return &t, true
}

// Set stores a tenant with the given TTL. Failures are ignored: the
// cache is an optimization, not a source of truth.
func (c *RedisCache) Set(ctx context.Context, key string, t *tenant.Tenant, ttl time.Duration) {
	data, err := json.Marshal(t)
	if err != nil {
		return
	}
	c.client.Set(ctx, cacheKeyPrefix+key, data, ttl)
}

// Delete removes a cached tenant.
func (c *RedisCache) Delete(ctx context.Context, key string) {
	c.client.Del(ctx, cacheKeyPrefix+key)
}

// Close is a no-op; the Redis client is owned by the caller.
func (c *RedisCache) Close() error {
	return nil
}

// Invalidate drops every cache key a tenant can resolve under. Call it
// after any write that changes routing or subscription status.
func (c *RedisCache) Invalidate(ctx context.Context, t *tenant.Tenant) {
	c.Delete(ctx, t.Subdomain)
	if t.Domain != "" {
		c.Delete(ctx, t.Domain)
	}
	for _, d := range t.CustomDomains {
		c.Delete(ctx, d)
	}
}
