package bdd

import "math/big"

// SatCountCache memoizes per-node satisfaction counts across one or more
// SatCount calls against the same variable count (spec.md §4.4.7). It
// must be discarded (or reset via Reset) whenever the variable count
// changes, since every memoized value is scaled by 2^V.
type SatCountCache struct {
	varCount int
	counts   map[uint64]*big.Int
}

// NewSatCountCache creates a cache scoped to varCount variables.
func NewSatCountCache(varCount int) *SatCountCache {
	return &SatCountCache{varCount: varCount, counts: make(map[uint64]*big.Int)}
}

// Reset clears the cache and rescopes it to varCount variables.
func (c *SatCountCache) Reset(varCount int) {
	c.varCount = varCount
	c.counts = make(map[uint64]*big.Int)
}

// SatCount returns the number of total assignments over cache's variable
// count that satisfy f (spec.md §4.4.7). f is borrowed.
func (m *Manager) SatCount(f Edge, cache *SatCountCache) *big.Int {
	m.mu.Lock()
	defer m.mu.Unlock()

	terminalVal := new(big.Int).Lsh(big.NewInt(1), uint(cache.varCount))
	return m.satCount(f, terminalVal, cache)
}

func (m *Manager) satCount(f Edge, terminalVal *big.Int, cache *SatCountCache) *big.Int {
	if f.n.term {
		if f.n.val {
			return new(big.Int).Set(terminalVal)
		}
		return new(big.Int)
	}

	id := f.n.id
	if v, ok := cache.counts[id]; ok {
		return new(big.Int).Set(v)
	}

	n := m.satCount(f.Else(), terminalVal, cache)
	n.Add(n, m.satCount(f.Then(), terminalVal, cache))
	n.Rsh(n, 1)

	cache.counts[id] = new(big.Int).Set(n)
	return n
}
