// Package cache provides an optional Redis client.
//
// Redis is not required for correctness: grouped views are always computed
// from the live junction state. The client exists for the health probe and
// for short-TTL caching of rendered snippet HTML.
package cache

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const defaultTTL = 5 * time.Minute

// Cache wraps a Redis connection.
type Cache struct {
	client *redis.Client
	prefix string
}

// New connects to Redis using a URL such as redis://localhost:6379/0.
func New(redisURL string) (*Cache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse redis url")
	}
	return &Cache{
		client: redis.NewClient(opt),
		prefix: "linkstash:",
	}, nil
}

// Ping checks whether Redis is reachable.
func (c *Cache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return errors.Wrap(err, "failed to ping redis")
	}
	return nil
}

// Get returns the cached value for key, or false when absent.
// A transport failure counts as a miss; the caller recomputes.
func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
	val, err := c.client.Get(ctx, c.prefix+key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// Set stores value under key with the default TTL. Best effort.
func (c *Cache) Set(ctx context.Context, key, value string) {
	c.client.Set(ctx, c.prefix+key, value, defaultTTL)
}

// Delete removes key. Best effort.
func (c *Cache) Delete(ctx context.Context, key string) {
	c.client.Del(ctx, c.prefix+key)
}

// Close releases the connection pool.
func (c *Cache) Close() error {
	return c.client.Close()
}
