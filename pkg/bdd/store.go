package bdd

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// nodeStore is the unique table: the sole source of identity for inner
// nodes. It is a simple separate-chaining hash table keyed by the
// (level, then, else) triple, hashed with xxhash over the two children's
// node IDs rather than their pointer addresses — this keeps the store
// free of unsafe.Pointer arithmetic and doubles as the identity xxhash
// already sees reused for the apply cache's key hashing in applycache.go.
type nodeStore struct {
	buckets  map[uint64][]*node
	count    int
	maxNodes int
}

func newNodeStore(initialCapacity, maxNodes int) *nodeStore {
	if initialCapacity <= 0 {
		initialCapacity = 1024
	}
	return &nodeStore{
		buckets:  make(map[uint64][]*node, initialCapacity),
		maxNodes: maxNodes,
	}
}

func hashTriple(level Level, thenID, elsID uint64) uint64 {
	var buf [20]byte
	binary.LittleEndian.PutUint32(buf[0:4], uint32(level))
	binary.LittleEndian.PutUint64(buf[4:12], thenID)
	binary.LittleEndian.PutUint64(buf[12:20], elsID)
	return xxhash.Sum64(buf[:])
}

// lookup returns the existing node for (level, t, e), if any.
func (s *nodeStore) lookup(level Level, t, e Edge) (*node, bool) {
	h := hashTriple(level, t.id(), e.id())
	for _, n := range s.buckets[h] {
		if n.level == level && n.then.n == t.n && n.els.n == e.n {
			return n, true
		}
	}
	return nil, false
}

// atCapacity reports whether inserting one more node would exceed the
// store's configured bound. maxNodes == 0 means unbounded.
func (s *nodeStore) atCapacity() bool {
	return s.maxNodes > 0 && s.count >= s.maxNodes
}

// insert adds a freshly constructed node to the table. The caller must
// already have checked atCapacity and must not insert a node whose
// (level, then, else) triple is already present.
func (s *nodeStore) insert(n *node) {
	h := hashTriple(n.level, n.then.n.id, n.els.n.id)
	s.buckets[h] = append(s.buckets[h], n)
	s.count++
}

// remove deletes n from the table. Called exactly once, when n's
// refcount drops to zero.
func (s *nodeStore) remove(n *node) {
	h := hashTriple(n.level, n.then.n.id, n.els.n.id)
	chain := s.buckets[h]
	for i, x := range chain {
		if x == n {
			last := len(chain) - 1
			chain[i] = chain[last]
			s.buckets[h] = chain[:last]
			s.count--
			return
		}
	}
}

// Len returns the number of live inner nodes in the table.
func (s *nodeStore) Len() int { return s.count }
