package mocks

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/cradoe/treelance/internal/cache"
)

// MemoryCache is an in-process stand-in for the Redis cache.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte

	// Err, when set, is returned by every call.
	Err error
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string][]byte)}
}

func (c *MemoryCache) GetJSON(_ context.Context, key string, dst any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Err != nil {
		return c.Err
	}

	b, ok := c.entries[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(b, dst)
}

func (c *MemoryCache) SetJSON(_ context.Context, key string, v any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Err != nil {
		return c.Err
	}

	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.entries[key] = b
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Err != nil {
		return c.Err
	}

	delete(c.entries, key)
	return nil
}

func (c *MemoryCache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.entries[key]
	return ok
}
