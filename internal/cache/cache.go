// Package cache holds the in-process caches behind the dashboard listings
// and the registry that invalidates them by route path.
package cache

import (
	"context"
	"sync"
	"time"
)

type entry[V any] struct {
	value   V
	fetched time.Time
}

// Cache is a keyed read-through cache with a TTL. Invalidate drops every
// entry so the next Get reloads from the source.
type Cache[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]entry[V]
	ttl     time.Duration
	load    func(ctx context.Context, key K) (V, error)
	now     func() time.Time
}

func New[K comparable, V any](ttl time.Duration, load func(ctx context.Context, key K) (V, error)) *Cache[K, V] {
	return &Cache[K, V]{
		entries: make(map[K]entry[V]),
		ttl:     ttl,
		load:    load,
		now:     time.Now,
	}
}

func (c *Cache[K, V]) fresh(e entry[V]) bool {
	return c.now().Sub(e.fetched) < c.ttl
}

// Get returns the cached value for key, loading it when missing or stale.
// Load errors are returned and nothing is cached.
func (c *Cache[K, V]) Get(ctx context.Context, key K) (V, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && c.fresh(e) {
		return e.value, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok && c.fresh(e) {
		return e.value, nil
	}
	v, err := c.load(ctx, key)
	if err != nil {
		var zero V
		return zero, err
	}
	c.sweep()
	c.entries[key] = entry[V]{value: v, fetched: c.now()}
	return v, nil
}

// sweep drops expired entries. Callers hold the write lock.
func (c *Cache[K, V]) sweep() {
	for k, e := range c.entries {
		if !c.fresh(e) {
			delete(c.entries, k)
		}
	}
}

func (c *Cache[K, V]) Invalidate() {
	c.mu.Lock()
	clear(c.entries)
	c.mu.Unlock()
}

func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
