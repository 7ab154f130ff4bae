package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// JSON stores values of type T as JSON under "<prefix>:<key>".
type JSON[T any] struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewJSON creates a JSON cache. A zero ttl keeps entries until deleted.
func NewJSON[T any](client *redis.Client, prefix string, ttl time.Duration) *JSON[T] {
	return &JSON[T]{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// Key returns the redis key of an entry.
func (c *JSON[T]) Key(key string) string {
	return c.prefix + ":" + key
}

// Get returns the cached value or ErrMiss.
func (c *JSON[T]) Get(ctx context.Context, key string) (T, error) {
	var v T

	data, err := c.client.Get(ctx, c.Key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return v, ErrMiss
		}
		return v, fmt.Errorf("get %s: %w", c.Key(key), err)
	}

	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("decode %s: %w", c.Key(key), err)
	}

	return v, nil
}

// Set stores the value with the cache TTL.
func (c *JSON[T]) Set(ctx context.Context, key string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.Key(key), err)
	}

	if err := c.client.Set(ctx, c.Key(key), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set %s: %w", c.Key(key), err)
	}

	return nil
}

// Delete drops the entry.
func (c *JSON[T]) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.Key(key)).Err(); err != nil {
		return fmt.Errorf("delete %s: %w", c.Key(key), err)
	}
	return nil
}
