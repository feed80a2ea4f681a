// Package cache provides a bounded least-recently-used map.
package cache

import "sync"

// LRU maps keys to values and drops the least recently used entry once it
// holds more than its limit.
//
// LRU is safe for concurrent use. It must not be copied after creation.
type LRU[K comparable, V any] struct {
	mu      sync.Mutex
	limit   int
	entries map[K]*node[K, V]

	// newest and oldest are the ends of the recency list.
	newest *node[K, V]
	oldest *node[K, V]

	hits, misses uint64
}

type node[K comparable, V any] struct {
	key   K
	value V
	newer *node[K, V]
	older *node[K, V]
}

// Stats reports cache usage.
type Stats struct {
	Len    int
	Limit  int
	Hits   uint64
	Misses uint64
}

// New creates an LRU holding at most limit entries. A limit below 1 is
// treated as 1.
func New[K comparable, V any](limit int) *LRU[K, V] {
	return &LRU[K, V]{
		limit:   max(limit, 1),
		entries: make(map[K]*node[K, V]),
	}
}

// Get returns the value for key and marks it as recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.touch(n)
	return n.value, true
}

// Put stores value under key, evicting the oldest entry when the cache is
// full.
func (c *LRU[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.entries[key]; ok {
		n.value = value
		c.touch(n)
		return
	}
	n := &node[K, V]{key: key, value: value}
	c.entries[key] = n
	c.pushNewest(n)
	if len(c.entries) > c.limit {
		old := c.oldest
		c.unlink(old)
		delete(c.entries, old.key)
	}
}

// GetOrCreate returns the cached value for key or stores and returns the
// result of create. create runs outside the lock, so concurrent misses for
// the same key may each call it.
func (c *LRU[K, V]) GetOrCreate(key K, create func() V) V {
	if v, ok := c.Get(key); ok {
		return v
	}
	v := create()
	c.Put(key, v)
	return v
}

// Len returns the number of entries.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear drops every entry. Counters are kept.
func (c *LRU[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
	c.newest, c.oldest = nil, nil
}

// Stats returns a snapshot of the counters.
func (c *LRU[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Len: len(c.entries), Limit: c.limit, Hits: c.hits, Misses: c.misses}
}

// touch moves n to the newest end. Caller holds c.mu.
func (c *LRU[K, V]) touch(n *node[K, V]) {
	if n == c.newest {
		return
	}
	c.unlink(n)
	c.pushNewest(n)
}

func (c *LRU[K, V]) pushNewest(n *node[K, V]) {
	n.older = c.newest
	n.newer = nil
	if c.newest != nil {
		c.newest.newer = n
	}
	c.newest = n
	if c.oldest == nil {
		c.oldest = n
	}
}

func (c *LRU[K, V]) unlink(n *node[K, V]) {
	if n.newer != nil {
		n.newer.older = n.older
	} else {
		c.newest = n.older
	}
	if n.older != nil {
		n.older.newer = n.newer
	} else {
		c.oldest = n.newer
	}
	n.newer, n.older = nil, nil
}
