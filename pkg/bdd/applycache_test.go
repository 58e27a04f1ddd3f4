package bdd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashCacheKeyDeterministic(t *testing.T) {
	a := &node{id: 1}
	b := &node{id: 2}
	k := key2(opAnd, Edge{a}, Edge{b})
	assert.Equal(t, hashCacheKey(k), hashCacheKey(k))
}

func TestHashCacheKeyDistinguishesSalt(t *testing.T) {
	a := &node{id: 1}
	k1 := keySalt(opSubstitute, Edge{a}, 1)
	k2 := keySalt(opSubstitute, Edge{a}, 2)
	assert.NotEqual(t, hashCacheKey(k1), hashCacheKey(k2))
	assert.NotEqual(t, k1, k2)
}

func TestApplyCacheMissAfterNodeLosesAllReferences(t *testing.T) {
	m := newTestManager(t)
	x0, err := m.NewVar()
	require.NoError(t, err)
	x1, err := m.NewVar()
	require.NoError(t, err)

	f, err := m.And(x0, x1)
	require.NoError(t, err)

	key := key2(opAnd, x0, x1)
	if m.cache == nil {
		t.Skip("apply cache disabled")
	}
	// The backing cache admits writes asynchronously; wait for the entry.
	require.Eventually(t, func() bool {
		_, ok := m.cache.Get(key)
		return ok
	}, time.Second, time.Millisecond)

	m.Release(f)
	m.Release(x0)
	m.Release(x1)

	// f's node is now unreachable and its refcount is zero; even if the
	// weak pointer has not yet been collected, Get must treat this as a
	// miss rather than resurrect a logically dead node.
	_, ok := m.cache.Get(key)
	assert.False(t, ok)
}
