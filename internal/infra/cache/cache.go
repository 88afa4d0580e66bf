// Package cache holds the short-lived in-memory cache placed in front
// of backend dashboard reads. Entries share one TTL; a background
// sweep drops anything stale so abandoned user keys do not pile up.
package cache

import (
	"sync"
	"time"
)

type record[T any] struct {
	value    T
	deadline time.Time
}

// InMemory is a thread-safe TTL cache.
type InMemory[T any] struct {
	mu      sync.RWMutex
	records map[string]record[T]
	ttl     time.Duration
}

// New creates a cache whose entries expire after ttl. A non-positive
// ttl disables caching entirely, so every Get is a miss.
func New[T any](ttl time.Duration) *InMemory[T] {
	c := &InMemory[T]{
		records: make(map[string]record[T]),
		ttl:     ttl,
	}
	if ttl > 0 {
		go c.sweep()
	}
	return c
}

// Get returns the cached value, or false when missing or expired.
func (c *InMemory[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rec, ok := c.records[key]
	if !ok || !time.Now().Before(rec.deadline) {
		var zero T
		return zero, false
	}
	return rec.value, true
}

// Set stores value under key with the configured TTL.
func (c *InMemory[T]) Set(key string, value T) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.records[key] = record[T]{value: value, deadline: time.Now().Add(c.ttl)}
}

// Delete drops one key.
func (c *InMemory[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.records, key)
}

// Len reports how many entries are held, expired ones included until
// the next sweep.
func (c *InMemory[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.records)
}

func (c *InMemory[T]) sweep() {
	ticker := time.NewTicker(c.ttl)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		c.mu.Lock()
		for k, rec := range c.records {
			if !now.Before(rec.deadline) {
				delete(c.records, k)
			}
		}
		c.mu.Unlock()
	}
}
