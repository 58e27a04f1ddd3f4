package bdd

import (
	"encoding/binary"
	"weak"

	"github.com/cespare/xxhash/v2"

	"github.com/orneryd/bdd/pkg/bddcache"
)

// cacheKey is the composite key spec.md §4.3 describes: an operator tag,
// a fixed-length tuple of operand node identities (unused slots are nil),
// and an optional numeric salt used by Substitute to distinguish
// environments that happen to target the same edge.
type cacheKey struct {
	op      Op
	ops     [3]*node
	salt    uint64
	hasSalt bool
}

func key1(op Op, a Edge) cacheKey             { return cacheKey{op: op, ops: [3]*node{a.n, nil, nil}} }
func key2(op Op, a, b Edge) cacheKey          { return cacheKey{op: op, ops: [3]*node{a.n, b.n, nil}} }
func key3(op Op, a, b, c Edge) cacheKey       { return cacheKey{op: op, ops: [3]*node{a.n, b.n, c.n}} }
func keySalt(op Op, a Edge, salt uint64) cacheKey {
	return cacheKey{op: op, ops: [3]*node{a.n, nil, nil}, salt: salt, hasSalt: true}
}

func hashCacheKey(k cacheKey) uint64 {
	var buf [1 + 3*8 + 8 + 1]byte
	buf[0] = byte(k.op)
	off := 1
	for _, n := range k.ops {
		var id uint64
		if n != nil {
			id = n.id
		}
		binary.LittleEndian.PutUint64(buf[off:], id)
		off += 8
	}
	binary.LittleEndian.PutUint64(buf[off:], k.salt)
	off += 8
	if k.hasSalt {
		buf[off] = 1
	}
	return xxhash.Sum64(buf[:])
}

// applyCache is the manager's computed table: a generic, collision-
// checked cache (pkg/bddcache, backed by ristretto) whose values are
// weak.Pointer[node] rather than strong *node references, so that an
// entry never keeps a node's memory alive on its own (spec.md §4.3, §9).
//
// A weak pointer being non-nil only means Go's GC has not yet reclaimed
// the node; it does not mean the node is still *live* in BDD terms. A
// node whose refcount has reached zero has already been unlinked from
// the unique table and had its children released — reviving it via a
// stale-but-not-yet-collected weak pointer would resurrect a node whose
// subtree may already be gone. So a hit additionally requires refs > 0;
// see Get below.
type applyCache struct {
	c *bddcache.Cache[cacheKey, weak.Pointer[node]]
}

func newApplyCache(capacity int64) (*applyCache, error) {
	c, err := bddcache.New[cacheKey, weak.Pointer[node]](capacity, hashCacheKey)
	if err != nil {
		return nil, err
	}
	return &applyCache{c: c}, nil
}

// Get returns a borrowed edge to the cached result for key, if present
// and still live. The caller must clone it before returning it onward
// (apply's cache-hit paths do this via Manager.cloneLocked).
func (a *applyCache) Get(key cacheKey) (Edge, bool) {
	wp, ok := a.c.Get(key)
	if !ok {
		return Edge{}, false
	}
	n := wp.Value()
	if n == nil || n.refs == 0 {
		return Edge{}, false
	}
	return Edge{n}, true
}

// Add installs (or overwrites) the entry for key with a weak reference
// to result's node. result remains owned by the caller; Add does not
// take a reference. The backing cache applies the write asynchronously
// and may decline it, so a Get right after Add can still miss.
func (a *applyCache) Add(key cacheKey, result Edge) {
	if result.n == nil {
		return
	}
	a.c.Set(key, weak.Make(result.n), 1)
}

func (a *applyCache) Clear() { a.c.Clear() }
func (a *applyCache) Close() { a.c.Close() }

func (a *applyCache) Stats() bddcache.Stats { return a.c.Stats() }
