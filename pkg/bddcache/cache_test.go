package bddcache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simpleHash(k int) uint64 { return uint64(k) }

func TestSetAndGet(t *testing.T) {
	c, err := New[int, string](1024, simpleHash)
	require.NoError(t, err)
	defer c.Close()

	c.Set(1, "one", 1)
	c.rc.Wait()

	v, ok := c.Get(1)
	require.True(t, ok)
	assert.Equal(t, "one", v)
}

func TestGetMissing(t *testing.T) {
	c, err := New[int, string](1024, simpleHash)
	require.NoError(t, err)
	defer c.Close()

	_, ok := c.Get(42)
	assert.False(t, ok)
}

func TestHashCollisionDegradesToMiss(t *testing.T) {
	// Two distinct keys hashing to the same bucket must never return the
	// wrong value: the stored key is checked on every Get.
	collidingHash := func(int) uint64 { return 7 }
	c, err := New[int, string](1024, collidingHash)
	require.NoError(t, err)
	defer c.Close()

	c.Set(1, "one", 1)
	c.rc.Wait()
	c.Set(2, "two", 1)
	c.rc.Wait()

	v, ok := c.Get(2)
	require.True(t, ok)
	assert.Equal(t, "two", v)

	// Key 1 shares the bucket now holding key 2's entry: a miss, not "two".
	_, ok = c.Get(1)
	assert.False(t, ok)
}

func TestClearRemovesEntries(t *testing.T) {
	c, err := New[int, string](1024, simpleHash)
	require.NoError(t, err)
	defer c.Close()

	c.Set(1, "one", 1)
	c.rc.Wait()
	c.Clear()
	c.rc.Wait()

	_, ok := c.Get(1)
	assert.False(t, ok)
}

func TestStatsTracksHitsAndMisses(t *testing.T) {
	c, err := New[int, string](1024, simpleHash)
	require.NoError(t, err)
	defer c.Close()

	c.Set(1, "one", 1)
	c.rc.Wait()

	_, _ = c.Get(1)
	_, _ = c.Get(2)

	stats := c.Stats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)

	c.ResetStats()
	stats = c.Stats()
	assert.Equal(t, uint64(0), stats.Hits)
	assert.Equal(t, uint64(0), stats.Misses)
}

func TestNewDefaultsNonPositiveCost(t *testing.T) {
	c, err := New[int, string](0, simpleHash)
	require.NoError(t, err)
	defer c.Close()
	// Falls back to a sane default rather than failing outright.
	assert.NotNil(t, c)
}
