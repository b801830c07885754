package jwks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by a Cache when no document is stored for a key
var ErrCacheMiss = errors.New("jwks cache miss")

// Cache stores raw JWKS documents shared between API processes.
type Cache interface {
	Get(ctx context.Context, url string) ([]byte, error)
	Set(ctx context.Context, url string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, url string) error
}

const redisKeyPrefix = "jwks:"

// RedisCache implements Cache on Redis
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a Redis-backed JWKS cache
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Get returns the cached document for url
func (c *RedisCache) Get(ctx context.Context, url string) ([]byte, error) {
	data, err := c.client.Get(ctx, redisKeyPrefix+url).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return data, nil
}

// Set stores the document for url with the given TTL
func (c *RedisCache) Set(ctx context.Context, url string, data []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, redisKeyPrefix+url, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete removes the document for url
func (c *RedisCache) Delete(ctx context.Context, url string) error {
	if err := c.client.Del(ctx, redisKeyPrefix+url).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
