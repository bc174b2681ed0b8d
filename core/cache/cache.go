package cache

import (
	"container/list"
	"sync"
	"time"
)

// CloneFunc copies a value on its way in and out of the cache so callers
// can never mutate cache-internal state through a returned reference.
// A nil CloneFunc stores and returns values as-is; only use that for
// immutable value types.
type CloneFunc[V any] func(V) V

type entry[V any] struct {
	key        string
	insertedAt time.Time
	value      V
}

// Cache is a size-bounded, TTL-bounded string-keyed cache with LRU
// eviction. A non-positive TTL disables the cache entirely: Get always
// misses and Set is a no-op, which lets deployments opt out of caching
// through configuration alone.
//
// Expiry is lazy: expired entries are purged at the top of every Get and
// Set, under the same lock as the access itself. There is no background
// timer.
type Cache[V any] struct {
	mu         sync.Mutex
	ttl        time.Duration
	maxEntries int
	clone      CloneFunc[V]
	entries    map[string]*list.Element
	order      *list.List // front = most recently used

	now func() time.Time // overridable for tests
}

// New creates a cache holding at most maxEntries values for at most ttl.
// maxEntries <= 0 means unbounded size; ttl <= 0 disables the cache.
func New[V any](ttl time.Duration, maxEntries int, clone CloneFunc[V]) *Cache[V] {
	return &Cache[V]{
		ttl:        ttl,
		maxEntries: maxEntries,
		clone:      clone,
		entries:    make(map[string]*list.Element),
		order:      list.New(),
		now:        time.Now,
	}
}

// Get returns the cached value for key and refreshes its recency.
// The second return is false on a miss, on expiry, or when the cache is
// disabled.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	if c.ttl <= 0 {
		return zero, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.purgeLocked()

	el, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	c.order.MoveToFront(el)

	val := el.Value.(*entry[V]).value
	if c.clone != nil {
		val = c.clone(val)
	}
	return val, true
}

// Set stores value under key, refreshing recency and timestamp if the
// key already exists, then evicts least-recently-used entries while the
// size bound is exceeded.
func (c *Cache[V]) Set(key string, value V) {
	if c.ttl <= 0 {
		return
	}
	if c.clone != nil {
		value = c.clone(value)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.purgeLocked()

	if el, ok := c.entries[key]; ok {
		ent := el.Value.(*entry[V])
		ent.value = value
		ent.insertedAt = c.now()
		c.order.MoveToFront(el)
		return
	}

	el := c.order.PushFront(&entry[V]{key: key, insertedAt: c.now(), value: value})
	c.entries[key] = el

	for c.maxEntries > 0 && len(c.entries) > c.maxEntries {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		c.removeLocked(oldest)
	}
}

// Invalidate drops the entry for key, if present.
func (c *Cache[V]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[key]; ok {
		c.removeLocked(el)
	}
}

// Clear drops all entries.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*list.Element)
	c.order.Init()
}

// Len returns the number of stored entries, including not-yet-purged
// expired ones.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// purgeLocked removes every entry older than the TTL. Caller holds mu.
func (c *Cache[V]) purgeLocked() {
	now := c.now()
	for el := c.order.Back(); el != nil; {
		prev := el.Prev()
		if now.Sub(el.Value.(*entry[V]).insertedAt) > c.ttl {
			c.removeLocked(el)
		}
		el = prev
	}
}

func (c *Cache[V]) removeLocked(el *list.Element) {
	c.order.Remove(el)
	delete(c.entries, el.Value.(*entry[V]).key)
}
