package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// Cache is a concurrent-safe in-memory store whose entries expire after a
// fixed TTL. Eviction is lazy: an expired entry is removed on the next Get of
// its key, there is no background sweep.
type Cache[V any] struct {
	ttl time.Duration

	mu      sync.RWMutex
	entries map[string]entry[V]
}

func New[V any](ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		ttl:     ttl,
		entries: make(map[string]entry[V]),
	}
}

// Get returns the value for key and true if a fresh entry exists. An entry
// older than the TTL is treated as a miss and deleted.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	var zero V
	if !ok {
		return zero, false
	}

	if time.Since(e.storedAt) > c.ttl {
		c.mu.Lock()
		// Re-check under the write lock; a fresh Set may have raced in.
		if cur, ok := c.entries[key]; ok && cur.storedAt.Equal(e.storedAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return zero, false
	}

	return e.value, true
}

// Set stores value under key, overwriting any existing entry and resetting
// its insertion timestamp.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[V]{value: value, storedAt: time.Now()}
}

// Len reports the number of entries currently held, expired or not.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
