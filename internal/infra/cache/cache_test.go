package cache_test

import (
	"testing"
	"time"

	"github.com/yudhapratama/sakubudget-go/internal/infra/cache"
)

func TestCache_SetAndGet(t *testing.T) {
	c := cache.New[string](5 * time.Minute)

	c.Set("dashboard:user-1:2025-06", "snapshot")
	val, ok := c.Get("dashboard:user-1:2025-06")
	if !ok {
		t.Fatal("expected key to exist")
	}
	if val != "snapshot" {
		t.Errorf("expected 'snapshot', got %q", val)
	}
}

func TestCache_Miss(t *testing.T) {
	c := cache.New[string](5 * time.Minute)

	if _, ok := c.Get("dashboard:unknown:"); ok {
		t.Fatal("expected miss for unknown key")
	}
}

func TestCache_EntriesExpire(t *testing.T) {
	c := cache.New[int](50 * time.Millisecond)

	c.Set("k", 1)
	time.Sleep(100 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Fatal("expected entry to expire")
	}
}

func TestCache_Delete(t *testing.T) {
	c := cache.New[string](5 * time.Minute)

	c.Set("k", "v")
	c.Delete("k")

	if _, ok := c.Get("k"); ok {
		t.Fatal("expected key to be gone")
	}
	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d entries", c.Len())
	}
}

func TestCache_ZeroTTLDisablesCaching(t *testing.T) {
	c := cache.New[string](0)

	c.Set("k", "v")
	if _, ok := c.Get("k"); ok {
		t.Fatal("expected zero-TTL cache to never hit")
	}
}
