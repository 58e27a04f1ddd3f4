package bdd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These correspond to the quantified invariants: strong canonicalization,
// ordered-levels, no-redundant-nodes, the Boolean identities, De Morgan,
// the ite/and-or decomposition, substitution identity, sat_count
// identities, cache insensitivity, and the single-variable
// quantifier/restrict relationship.

func TestInvariantCloneIsSameIdentity(t *testing.T) {
	m := newTestManager(t)
	x0, _ := m.NewVar()
	defer m.Release(x0)
	x1, _ := m.NewVar()
	defer m.Release(x1)

	f, err := m.And(x0, x1)
	require.NoError(t, err)
	defer m.Release(f)

	clone := m.Clone(f)
	defer m.Release(clone)
	assert.True(t, f.Same(clone))
}

func TestInvariantChildLevelsExceedParent(t *testing.T) {
	m := newTestManager(t)
	xs := vars5(t, m)
	defer releaseAll(m, xs[:]...)

	f, err := m.Xor(xs[0], xs[4])
	require.NoError(t, err)
	defer m.Release(f)

	require.False(t, f.IsTerminal())
	assert.True(t, f.Then().IsTerminal() || f.Then().Level() > f.Level())
	assert.True(t, f.Else().IsTerminal() || f.Else().Level() > f.Level())
}

func TestInvariantNoRedundantNodes(t *testing.T) {
	m := newTestManager(t)
	x0, _ := m.NewVar()
	defer m.Release(x0)
	x1, _ := m.NewVar()
	defer m.Release(x1)

	f, err := m.Xor(x0, x1)
	require.NoError(t, err)
	defer m.Release(f)

	require.False(t, f.IsTerminal())
	assert.False(t, f.Then().Same(f.Else()))
}

func TestInvariantBooleanIdentities(t *testing.T) {
	m := newTestManager(t)
	x0, _ := m.NewVar()
	defer m.Release(x0)

	notNot, err := m.Not(mustNot(t, m, x0))
	require.NoError(t, err)
	defer m.Release(notNot)
	assert.True(t, notNot.Same(x0))

	andFF, err := m.And(x0, x0)
	require.NoError(t, err)
	defer m.Release(andFF)
	assert.True(t, andFF.Same(x0))

	orFF, err := m.Or(x0, x0)
	require.NoError(t, err)
	defer m.Release(orFF)
	assert.True(t, orFF.Same(x0))

	xorFF, err := m.Xor(x0, x0)
	require.NoError(t, err)
	defer m.Release(xorFF)
	ff := m.FEdge()
	defer m.Release(ff)
	assert.True(t, xorFF.Same(ff))
}

func mustNot(t *testing.T, m *Manager, e Edge) Edge {
	t.Helper()
	r, err := m.Not(e)
	require.NoError(t, err)
	return r
}

func TestInvariantDeMorgan(t *testing.T) {
	m := newTestManager(t)
	x0, _ := m.NewVar()
	defer m.Release(x0)
	x1, _ := m.NewVar()
	defer m.Release(x1)

	and, err := m.And(x0, x1)
	require.NoError(t, err)
	defer m.Release(and)

	notX0 := mustNot(t, m, x0)
	defer m.Release(notX0)
	notX1 := mustNot(t, m, x1)
	defer m.Release(notX1)
	orNeg, err := m.Or(notX0, notX1)
	require.NoError(t, err)
	deMorgan := mustNot(t, m, orNeg)
	m.Release(orNeg)
	defer m.Release(deMorgan)

	assert.True(t, and.Same(deMorgan))
}

func TestInvariantEquivIsNotXor(t *testing.T) {
	m := newTestManager(t)
	x0, _ := m.NewVar()
	defer m.Release(x0)
	x1, _ := m.NewVar()
	defer m.Release(x1)

	equiv, err := m.Equiv(x0, x1)
	require.NoError(t, err)
	defer m.Release(equiv)

	xor, err := m.Xor(x0, x1)
	require.NoError(t, err)
	notXor := mustNot(t, m, xor)
	m.Release(xor)
	defer m.Release(notXor)

	assert.True(t, equiv.Same(notXor))
}

func TestInvariantIteDecomposesToAndOr(t *testing.T) {
	m := newTestManager(t)
	xs := vars5(t, m)
	defer releaseAll(m, xs[:]...)

	ite, err := m.Ite(xs[0], xs[1], xs[2])
	require.NoError(t, err)
	defer m.Release(ite)

	andFG, err := m.And(xs[0], xs[1])
	require.NoError(t, err)
	notF := mustNot(t, m, xs[0])
	andNotFH, err := m.And(notF, xs[2])
	m.Release(notF)
	require.NoError(t, err)

	decomposed, err := m.Or(andFG, andNotFH)
	m.Release(andFG)
	m.Release(andNotFH)
	require.NoError(t, err)
	defer m.Release(decomposed)

	assert.True(t, ite.Same(decomposed))
}

func TestInvariantSubstitutionIdentityWhenDisjoint(t *testing.T) {
	m := newTestManager(t)
	x0, _ := m.NewVar()
	defer m.Release(x0)
	x1, _ := m.NewVar()
	defer m.Release(x1)
	x2, _ := m.NewVar()
	defer m.Release(x2)

	f, err := m.And(x0, x1)
	require.NoError(t, err)
	defer m.Release(f)

	sigma := m.NewSubstitution(map[Level]Edge{2: x0})
	defer sigma.Release(m)

	result, err := m.Substitute(f, sigma)
	require.NoError(t, err)
	defer m.Release(result)

	assert.True(t, f.Same(result))
}

func TestInvariantSatCountOfTerminals(t *testing.T) {
	m := newTestManager(t)
	tt := m.TEdge()
	defer m.Release(tt)
	ff := m.FEdge()
	defer m.Release(ff)

	cache := NewSatCountCache(4)
	assert.Equal(t, int64(16), m.SatCount(tt, cache).Int64())
	cache.Reset(4)
	assert.Equal(t, int64(0), m.SatCount(ff, cache).Int64())
}

func TestInvariantSatCountOfNegation(t *testing.T) {
	m := newTestManager(t)
	xs := vars5(t, m)
	defer releaseAll(m, xs[:]...)

	f, err := m.And(xs[0], xs[1])
	require.NoError(t, err)
	defer m.Release(f)
	notF := mustNot(t, m, f)
	defer m.Release(notF)

	cache := NewSatCountCache(5)
	fCount := m.SatCount(f, cache).Int64()
	cache.Reset(5)
	notFCount := m.SatCount(notF, cache).Int64()

	assert.Equal(t, int64(32), fCount+notFCount)
}

func TestInvariantCacheInsensitivity(t *testing.T) {
	m := newTestManager(t)
	x0, _ := m.NewVar()
	defer m.Release(x0)
	x1, _ := m.NewVar()
	defer m.Release(x1)

	a, err := m.And(x0, x1)
	require.NoError(t, err)
	defer m.Release(a)

	if m.cache != nil {
		m.cache.Clear()
	}

	b, err := m.And(x0, x1)
	require.NoError(t, err)
	defer m.Release(b)

	assert.True(t, a.Same(b))
}

func TestInvariantForallAsConjunctionOfCofactors(t *testing.T) {
	m := newTestManager(t)
	x0, _ := m.NewVar()
	defer m.Release(x0)
	x1, _ := m.NewVar()
	defer m.Release(x1)

	f, err := m.Or(x0, x1)
	require.NoError(t, err)
	defer m.Release(f)

	forallResult, err := m.Forall(f, x0)
	require.NoError(t, err)
	defer m.Release(forallResult)

	tt := m.TEdge()
	defer m.Release(tt)
	ff := m.FEdge()
	defer m.Release(ff)

	posCofactor, err := m.Restrict(f, x0)
	require.NoError(t, err)
	notX0 := mustNot(t, m, x0)
	negCofactor, err := m.Restrict(f, notX0)
	m.Release(notX0)
	require.NoError(t, err)

	expected, err := m.And(posCofactor, negCofactor)
	m.Release(posCofactor)
	m.Release(negCofactor)
	require.NoError(t, err)
	defer m.Release(expected)

	assert.True(t, forallResult.Same(expected))
}
