package lookup

import (
	"sync"
	"time"
)

type entry[T any] struct {
	value  T
	expiry time.Time
}

// Cache is a process-local TTL cache. Values are cloned on the way in and out
// so callers never share backing arrays with it.
type Cache[T any] struct {
	mu      sync.RWMutex
	entries map[string]entry[T]
	clone   func(T) T
	now     func() time.Time
}

// NewCache builds an empty cache. clone may be nil for value types.
func NewCache[T any](clone func(T) T) *Cache[T] {
	return &Cache[T]{
		entries: make(map[string]entry[T]),
		clone:   clone,
		now:     time.Now,
	}
}

// Get returns a live entry; expired entries are evicted.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	var zero T
	if !ok {
		return zero, false
	}
	if c.now().After(e.expiry) {
		c.mu.Lock()
		if cur, still := c.entries[key]; still && cur.expiry.Equal(e.expiry) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return zero, false
	}
	return c.cloneValue(e.value), true
}

// Set stores value for ttl. A non-positive ttl is a no-op.
func (c *Cache[T]) Set(key string, value T, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[key] = entry[T]{value: c.cloneValue(value), expiry: c.now().Add(ttl)}
	c.mu.Unlock()
}

// Len reports the number of stored entries, expired or not.
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache[T]) cloneValue(value T) T {
	if c.clone == nil {
		return value
	}
	return c.clone(value)
}
