// Package bddpool provides object pooling for the BDD apply engine.
//
// Object pooling reuses allocated slice-shaped values instead of creating
// new ones, reducing GC pressure. In the bdd package its one user is
// Substitution, whose dense replacement table is taken from a pool by
// NewSubstitution and handed back by Release.
//
// Usage:
//
//	p := bddpool.NewPool(func() []Edge { return make([]Edge, 0, 4) },
//	                     func(s []Edge) []Edge { return s[:0] },
//	                     func(s []Edge) int { return cap(s) })
//	ops := p.Get()
//	defer p.Put(ops)
package bddpool

import "sync"

// Config configures pooling behavior.
//
// Fields:
//   - Enabled: Controls whether pooling is active (disable for debugging)
//   - MaxCap: Values whose capacity exceeds this are dropped instead of
//     pooled, so one unusually large call can't inflate the pool forever.
type Config struct {
	Enabled bool
	MaxCap  int
}

var globalConfig = Config{
	Enabled: true,
	MaxCap:  256,
}

// Configure sets the global pooling configuration. Call once during
// program initialization, before the manager starts running apply
// operations. Calling it again only replaces the global settings; values
// already held by existing pools stay pooled.
func Configure(cfg Config) {
	if cfg.MaxCap <= 0 {
		cfg.MaxCap = 256
	}
	globalConfig = cfg
}

// IsEnabled reports whether pooling is currently active.
func IsEnabled() bool {
	return globalConfig.Enabled
}

// Pool is a typed wrapper around sync.Pool for slice-shaped scratch values.
//
// Get returns a zero-length value with spare capacity; Put clears it and
// returns it to the pool unless its capacity exceeds Config.MaxCap.
type Pool[T any] struct {
	newFn  func() T
	zeroFn func(T) T
	capFn  func(T) int
	pool   sync.Pool
}

// NewPool creates a pool of T values. newFn allocates a fresh value,
// zeroFn truncates a reused value back to empty (clearing any element
// references so they can be garbage collected), and capFn reports a
// value's capacity so oversized values can be dropped rather than pooled.
func NewPool[T any](newFn func() T, zeroFn func(T) T, capFn func(T) int) *Pool[T] {
	p := &Pool[T]{newFn: newFn, zeroFn: zeroFn, capFn: capFn}
	p.pool.New = func() any { return newFn() }
	return p
}

// Get returns a pooled value, or a freshly allocated one if pooling is
// disabled.
func (p *Pool[T]) Get() T {
	if !globalConfig.Enabled {
		return p.newFn()
	}
	return p.zeroFn(p.pool.Get().(T))
}

// Put returns v to the pool for reuse.
func (p *Pool[T]) Put(v T) {
	if !globalConfig.Enabled || p.capFn(v) > globalConfig.MaxCap {
		return
	}
	p.pool.Put(p.zeroFn(v))
}
