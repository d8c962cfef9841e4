package redis

import (
	"context"
	"errors"
	"time"
)

// Cache adapts the package level client to a small get/set/delete interface
// so callers can depend on it without touching globals.
type Cache struct {
	Prefix string
}

// NewCache creates a cache whose keys are namespaced by prefix
func NewCache(prefix string) *Cache {
	return &Cache{Prefix: prefix}
}

func (c *Cache) key(k string) string {
	if c.Prefix == "" {
		return k
	}
	return c.Prefix + ":" + k
}

// Get returns the cached value and whether it was present
func (c *Cache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := Get(ctx, c.key(key))
	if errors.Is(err, Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Set stores value under key for ttl
func (c *Cache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return Set(ctx, c.key(key), value, ttl)
}

// Delete removes key
func (c *Cache) Delete(ctx context.Context, key string) error {
	return Del(ctx, c.key(key))
}
