package bddconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("BDD_STORE_INITIAL_CAPACITY", "2048")
	t.Setenv("BDD_CACHE_ENABLED", "false")
	t.Setenv("BDD_CACHE_CAPACITY", "100")

	cfg := LoadFromEnv()
	assert.Equal(t, 2048, cfg.Store.InitialCapacity)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, int64(100), cfg.Cache.Capacity)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bdd.yaml")
	content := `
store:
  initial_capacity: 4096
  max_nodes: 1000000
cache:
  enabled: true
  capacity: 500000
pool:
  enabled: false
  max_cap: 64
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 4096, cfg.Store.InitialCapacity)
	assert.Equal(t, 1000000, cfg.Store.MaxNodes)
	assert.Equal(t, int64(500000), cfg.Cache.Capacity)
	assert.False(t, cfg.Pool.Enabled)
	assert.Equal(t, 64, cfg.Pool.MaxCap)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path/bdd.yaml")
	assert.Error(t, err)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Store.InitialCapacity = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Store.MaxNodes = -1
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Cache.Enabled = true
	cfg.Cache.Capacity = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Pool.Enabled = true
	cfg.Pool.MaxCap = 0
	assert.Error(t, cfg.Validate())
}
