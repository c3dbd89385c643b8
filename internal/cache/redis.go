package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by GetJSON when the key does not exist.
var ErrCacheMiss = errors.New("cache miss")

type Cache struct {
	client *redis.Client
}

func New(redisAddr string, db int) *Cache {
	client := redis.NewClient(&redis.Options{
		Addr: redisAddr,
		DB:   db,
	})

	return NewWithClient(client)
}

func NewWithClient(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Set stores a key-value pair with an expiration time
func (c *Cache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return c.client.Set(ctx, key, value, expiration).Err()
}

// Get retrieves a value by key
func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	return val, err
}

// SetJSON stores v encoded as JSON.
func (c *Cache) SetJSON(ctx context.Context, key string, v any, expiration time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, b, expiration).Err()
}

// GetJSON decodes the value stored under key into dst.
func (c *Cache) GetJSON(ctx context.Context, key string, dst any) error {
	b, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}

// Delete removes a key from the cache
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// Exists checks if a key exists in cache
func (c *Cache) Exists(ctx context.Context, key string) (bool, error) {
	count, err := c.client.Exists(ctx, key).Result()
	return count > 0, err
}

func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (c *Cache) Close() error {
	return c.client.Close()
}
