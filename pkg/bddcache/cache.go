// Package bddcache provides the apply (computed-table) cache for the BDD
// engine.
//
// The apply cache memoizes intermediate results of the recursive apply
// algorithms; without it, apply is worst-case exponential in the size of
// the operand DAGs. With it, each distinct (operator, operands) pair is
// computed at most once per cache generation.
//
// The cache is a hint, never a source of truth: an entry may be evicted,
// or may go stale on its own (see Cache.Get), at any time without
// affecting the correctness of any live edge. This package backs the
// cache with a ristretto admission/eviction cache keyed by a caller-
// supplied hash, verifying full key equality on every hit to guard
// against hash collisions.
//
// Usage:
//
//	c, err := bddcache.New[cacheKey, weak.Pointer[Node]](1<<20, hashKey)
//	if v, ok := c.Get(key); ok {
//		if n := v.Value(); n != nil {
//			return n // still alive
//		}
//		// entry present but its node has since been collected: miss
//	}
//	c.Set(key, weak.Make(node), 1)
package bddcache

import (
	"sync/atomic"

	"github.com/dgraph-io/ristretto/v2"
)

// entry pairs the full key with its value so a hash collision in the
// backing store can be detected and treated as a miss.
type entry[K comparable, V any] struct {
	key K
	val V
}

// Cache is a generic, bounded, collision-checked memoization cache.
//
// K is the logical key (for the apply engine: operator tag + operand edge
// identities + optional numeric salt). V is the memoized value; the bdd
// package instantiates V as a weak pointer to a node so that an entry
// never keeps a dead node alive (see package doc).
type Cache[K comparable, V any] struct {
	rc   *ristretto.Cache[uint64, *entry[K, V]]
	hash func(K) uint64

	hits   atomic.Uint64
	misses atomic.Uint64
}

// New creates a cache with the given maximum total cost (ristretto's
// MaxCost; callers typically cost each entry at 1 and pass the desired
// entry-count capacity) and a hash function used to bucket keys.
//
// The hash function need not be collision-free: New always stores the
// full key alongside the value and verifies equality on Get, so a
// collision degrades to a cache miss rather than a wrong answer.
func New[K comparable, V any](maxCost int64, hash func(K) uint64) (*Cache[K, V], error) {
	if maxCost <= 0 {
		maxCost = 1 << 16
	}
	rc, err := ristretto.NewCache(&ristretto.Config[uint64, *entry[K, V]]{
		NumCounters: maxCost * 10,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Cache[K, V]{rc: rc, hash: hash}, nil
}

// Get looks up key. The second return is false both on an outright miss
// and when the stored hash bucket belongs to a different key (collision).
func (c *Cache[K, V]) Get(key K) (V, bool) {
	var zero V
	h := c.hash(key)
	e, ok := c.rc.Get(h)
	if !ok || e.key != key {
		c.misses.Add(1)
		return zero, false
	}
	c.hits.Add(1)
	return e.val, true
}

// Set installs (or overwrites) the entry for key. cost is the entry's
// weight against the cache's capacity; the apply engine uses a uniform
// cost of 1 per entry. ristretto buffers new entries and admits them
// asynchronously (it may also decline them), so a Get issued right after
// Set can miss.
func (c *Cache[K, V]) Set(key K, val V, cost int64) {
	c.rc.Set(c.hash(key), &entry[K, V]{key: key, val: val}, cost)
}

// Del evicts the entry for key, if present. Used when a caller knows a
// cached result can no longer be valid (e.g. the manager is being reset).
func (c *Cache[K, V]) Del(key K) {
	c.rc.Del(c.hash(key))
}

// Clear drops every entry. Per the apply-cache contract this can never
// change the function represented by any live edge — only performance.
func (c *Cache[K, V]) Clear() {
	c.rc.Clear()
}

// Close releases the cache's background goroutines. Call when the owning
// manager is discarded.
func (c *Cache[K, V]) Close() {
	c.rc.Close()
}

// Stats reports hit/miss counters since creation (or the last call to
// ResetStats).
type Stats struct {
	Hits   uint64
	Misses uint64
}

// Stats returns a snapshot of the cache's hit/miss counters.
func (c *Cache[K, V]) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load()}
}

// ResetStats zeroes the hit/miss counters.
func (c *Cache[K, V]) ResetStats() {
	c.hits.Store(0)
	c.misses.Store(0)
}
