// Package cache provides a small JSON cache on top of Redis.
//
// A nil *Cache is valid and behaves as a pass-through (every Get misses,
// every Set succeeds silently), so code paths never need to branch on
// whether Redis is configured.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ashrith-07/campus-bites-sub000/config"
	"github.com/ashrith-07/campus-bites-sub000/pkg/metrics"
)

// Cache wraps a Redis client for JSON value caching.
type Cache struct {
	rdb *redis.Client
}

// Connect builds a Cache from config. Returns nil when REDIS_ADDR is
// unset, which disables caching without error.
func Connect() *Cache {
	addr := config.RedisAddr()
	if addr == "" {
		return nil
	}
	return New(redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: config.RedisPassword(),
	}))
}

// New wraps an existing Redis client.
func New(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb}
}

// Client exposes the underlying Redis client (shared with the realtime
// relay). Nil when caching is disabled.
func (c *Cache) Client() *redis.Client {
	if c == nil {
		return nil
	}
	return c.rdb
}

// Get unmarshals the cached JSON value at key into dest. Returns false
// on miss, decode failure, or disabled cache.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || c.rdb == nil {
		return false
	}

	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		metrics.CacheMisses.Inc()
		return false
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		metrics.CacheMisses.Inc()
		return false
	}

	metrics.CacheHits.Inc()
	return true
}

// Set stores value as JSON at key with the given TTL.
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c == nil || c.rdb == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.rdb.Set(ctx, key, data, ttl).Err()
}

// Forget removes key. Used to invalidate the menu cache on mutation.
func (c *Cache) Forget(ctx context.Context, key string) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, key).Err()
}
