// Package bdd implements the reduced-ordered-BDD core: hash-consed node
// storage with strong canonicalization, the apply (computed) cache, and
// the recursive apply family of Boolean operations (negation,
// conjunction, disjunction, xor, implication, if-then-else, restriction,
// quantification, substitution, evaluation, satisfaction counting, and
// cube picking).
//
// A Manager owns the two terminal singletons, the node store, and the
// apply cache; every edge a caller holds is a strong reference scoped to
// the Manager that produced it. Edges from different managers must never
// be mixed.
//
// Example Usage:
//
//	m := bdd.NewManager(bddconfig.DefaultConfig())
//	x0, _ := m.NewVar()
//	x1, _ := m.NewVar()
//	f, err := m.And(x0, x1)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer m.Release(f)
//
//	fmt.Println(m.Eval(f, map[bdd.Level]bool{0: true, 1: true})) // true
package bdd

import (
	"sync"

	"github.com/orneryd/bdd/pkg/bddconfig"
	"github.com/orneryd/bdd/pkg/bddpool"
)

// levelEntry tracks per-level bookkeeping: the canonical variable edge
// (kept alive for the manager's lifetime so substitution can always
// re-introduce an untouched variable) and an optional display name used
// only for pretty-printing (see varname.go); neither participates in any
// algorithm or cache key.
type levelEntry struct {
	v    Edge
	name string
}

// Stats is a snapshot of manager-wide counters, grounded on the
// hit/miss atomics the teacher's query cache exposes.
type Stats struct {
	NodeCount     int
	PeakNodeCount int
	CacheHits     uint64
	CacheMisses   uint64
}

// Manager owns the terminal singletons, the node store, the apply cache,
// and the variable order. The specified algorithms execute single-
// threaded and cooperatively (spec.md §5); Manager serializes concurrent
// callers behind mu rather than leaving that to the caller, the same
// coarse-grained approach the teacher's storage engines take for their
// shared maps.
type Manager struct {
	mu sync.Mutex

	tNode *node
	fNode *node

	store  *nodeStore
	cache  *applyCache
	levels []levelEntry

	nextID     uint64
	nextSubstID uint64

	peakNodeCount int

	// substPool recycles the dense replacement-table slices built by
	// NewSubstitution: they live for the Substitution's lifetime and are
	// handed back on Release, rather than being transient per-call
	// scratch, but the allocation pattern (build, use across many
	// Substitute calls, discard) is the same one bddpool targets.
	substPool *bddpool.Pool[[]Edge]

	cfg *bddconfig.Config
}

// NewManager creates an empty manager: no levels, just the two terminal
// singletons. cfg may be nil, in which case bddconfig.DefaultConfig() is
// used.
func NewManager(cfg *bddconfig.Config) *Manager {
	if cfg == nil {
		cfg = bddconfig.DefaultConfig()
	}
	bddpool.Configure(bddpool.Config{Enabled: cfg.Pool.Enabled, MaxCap: cfg.Pool.MaxCap})
	m := &Manager{
		store: newNodeStore(cfg.Store.InitialCapacity, cfg.Store.MaxNodes),
		substPool: bddpool.NewPool(
			func() []Edge { return make([]Edge, 0, 16) },
			func(s []Edge) []Edge { return s[:0] },
			func(s []Edge) int { return cap(s) },
		),
		cfg: cfg,
	}
	m.fNode = &node{id: 0, level: levelTerm, term: true, val: false, refs: 1}
	m.tNode = &node{id: 1, level: levelTerm, term: true, val: true, refs: 1}
	m.nextID = 2
	if cfg.Cache.Enabled {
		c, err := newApplyCache(cfg.Cache.Capacity)
		if err == nil {
			m.cache = c
		}
		// A cache that fails to construct simply runs the engine
		// uncached — correctness is unaffected, only speed.
	}
	return m
}

// Close releases the manager's apply cache resources. Edges issued by
// this manager must not be used afterward.
func (m *Manager) Close() {
	if m.cache != nil {
		m.cache.Close()
	}
}

// TEdge returns the ⊤ terminal (owned).
func (m *Manager) TEdge() Edge {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cloneLocked(Edge{m.tNode})
}

// FEdge returns the ⊥ terminal (owned).
func (m *Manager) FEdge() Edge {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cloneLocked(Edge{m.fNode})
}

// NumLevels returns the number of variables created so far via NewVar.
func (m *Manager) NumLevels() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.levels)
}

// Stats returns a point-in-time snapshot of manager counters.
func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := Stats{NodeCount: m.store.Len(), PeakNodeCount: m.peakNodeCount}
	if m.cache != nil {
		cs := m.cache.Stats()
		s.CacheHits, s.CacheMisses = cs.Hits, cs.Misses
	}
	return s
}

// Clone turns a borrowed edge into a second, independently owned
// reference by bumping its refcount (the collaborator interface's
// clone_edge, spec.md §6). Terminals are not refcounted, so cloning one
// is free.
func (m *Manager) Clone(e Edge) Edge {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cloneLocked(e)
}

func (m *Manager) cloneLocked(e Edge) Edge {
	if e.n != nil && !e.n.term {
		e.n.refs++
	}
	return e
}

// Release drops one strong reference to e. Once an inner node's refcount
// reaches zero it is unlinked from the node store and its own children
// are released in turn — nodes only ever die this way; there is no
// separate collector.
func (m *Manager) Release(e Edge) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.releaseLocked(e)
}

func (m *Manager) releaseLocked(e Edge) {
	n := e.n
	if n == nil || n.term {
		return
	}
	if n.refs == 0 {
		panic("bdd: release of a node with zero refcount")
	}
	n.refs--
	if n.refs == 0 {
		m.store.remove(n)
		m.releaseLocked(n.then)
		m.releaseLocked(n.els)
	}
}

// reduce is the single canonicalization primitive (spec.md §4.1). It
// consumes t and e's references in every case, including the
// ErrOutOfMemory path, and returns a fresh owned edge.
func (m *Manager) reduce(level Level, t, e Edge, _ Op) (Edge, error) {
	if t.n == e.n {
		// Redundant node rule: consume one reference, return the other.
		m.releaseLocked(e)
		return t, nil
	}
	if t.n.level <= level || e.n.level <= level {
		panic("bdd: reduce: child level must exceed the new node's level")
	}
	if existing, ok := m.store.lookup(level, t, e); ok {
		existing.refs++
		m.releaseLocked(t)
		m.releaseLocked(e)
		return Edge{existing}, nil
	}
	if m.store.atCapacity() {
		m.releaseLocked(t)
		m.releaseLocked(e)
		return Edge{}, ErrOutOfMemory
	}
	n := &node{id: m.nextID, level: level, then: t, els: e, refs: 1}
	m.nextID++
	m.store.insert(n)
	if m.store.Len() > m.peakNodeCount {
		m.peakNodeCount = m.store.Len()
	}
	return Edge{n}, nil
}

// NewVar appends a new level at the bottom of the current order and
// returns an edge to ite(v, ⊤, ⊥). The order in which NewVar is called
// defines the variable order; reordering is out of scope (spec.md §4.5).
func (m *Manager) NewVar() (Edge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	level := Level(len(m.levels))
	t := m.cloneLocked(Edge{m.tNode})
	f := m.cloneLocked(Edge{m.fNode})
	edge, err := m.reduce(level, t, f, opNewVar)
	if err != nil {
		return Edge{}, err
	}
	m.levels = append(m.levels, levelEntry{v: m.cloneLocked(edge)})
	return edge, nil
}

// varEdge returns a borrowed edge to the canonical variable at level,
// used by substitute's replacement table to re-introduce variables that
// are not themselves being substituted (spec.md §4.4.6).
func (m *Manager) varEdge(level Level) Edge {
	return m.levels[level].v
}
