// Package cache is a small JSON cache on top of Redis. A disabled cache is a
// valid value: writes are dropped and every read misses.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const defaultOperationTimeout = 5 * time.Second

// ErrMiss is returned by Get when the key is absent or the cache is disabled.
var ErrMiss = errors.New("cache: miss")

type Cache struct {
	client  *redis.Client
	enabled bool
	prefix  string
}

// Disabled returns a cache that stores nothing.
func Disabled() *Cache {
	return &Cache{}
}

// New connects to Redis at addr. An empty addr returns a disabled cache.
func New(addr, password, prefix string) (*Cache, error) {
	if addr == "" {
		return Disabled(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Cache{client: client, enabled: true, prefix: prefix}, nil
}

// Enabled reports whether values are actually stored.
func (c *Cache) Enabled() bool {
	return c != nil && c.enabled
}

func (c *Cache) key(k string) string {
	return c.prefix + k
}

func (c *Cache) operationContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, defaultOperationTimeout)
}

// Set stores value as JSON.
func (c *Cache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if !c.Enabled() {
		return nil
	}
	ctx, cancel := c.operationContext(ctx)
	defer cancel()

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", key, err)
	}
	return c.client.Set(ctx, c.key(key), data, expiration).Err()
}

// Get decodes the value at key into dest.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) error {
	if !c.Enabled() {
		return ErrMiss
	}
	ctx, cancel := c.operationContext(ctx)
	defer cancel()

	val, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	} else if err != nil {
		return err
	}
	return json.Unmarshal(val, dest)
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	if !c.Enabled() {
		return nil
	}
	ctx, cancel := c.operationContext(ctx)
	defer cancel()

	return c.client.Del(ctx, c.key(key)).Err()
}

// TryLock sets key only if it is absent. It reports whether this caller got it.
// A disabled cache always grants the lock.
func (c *Cache) TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if !c.Enabled() {
		return true, nil
	}
	ctx, cancel := c.operationContext(ctx)
	defer cancel()

	return c.client.SetNX(ctx, c.key(key), time.Now().Unix(), ttl).Result()
}

// Increment bumps a counter and returns its new value.
func (c *Cache) Increment(ctx context.Context, key string) (int64, error) {
	if !c.Enabled() {
		return 0, nil
	}
	ctx, cancel := c.operationContext(ctx)
	defer cancel()

	return c.client.Incr(ctx, c.key(key)).Result()
}

func (c *Cache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}
