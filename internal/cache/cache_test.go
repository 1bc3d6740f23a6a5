package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDisabledCache(t *testing.T) {
	c, err := New("", "", "test:")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if c.Enabled() {
		t.Fatalf("cache without address should be disabled")
	}
	ctx := context.Background()
	if err := c.Set(ctx, "k", map[string]int{"a": 1}, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	var out map[string]int
	if err := c.Get(ctx, "k", &out); !errors.Is(err, ErrMiss) {
		t.Fatalf("Get() error = %v, want ErrMiss", err)
	}
	ok, err := c.TryLock(ctx, "lock", time.Second)
	if err != nil || !ok {
		t.Fatalf("TryLock() = %v, %v", ok, err)
	}
	if n, err := c.Increment(ctx, "n"); err != nil || n != 0 {
		t.Fatalf("Increment() = %d, %v", n, err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}

func TestNilCacheIsDisabled(t *testing.T) {
	var c *Cache
	if c.Enabled() {
		t.Fatalf("nil cache reported enabled")
	}
	if err := c.Get(context.Background(), "k", new(string)); !errors.Is(err, ErrMiss) {
		t.Fatalf("Get() on nil cache = %v", err)
	}
}

func TestNewUnreachable(t *testing.T) {
	if testing.Short() {
		t.Skip("dials the network")
	}
	if _, err := New("127.0.0.1:1", "", ""); err == nil {
		t.Fatalf("expected connection error")
	}
}
