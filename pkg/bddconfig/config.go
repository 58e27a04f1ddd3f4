// Package bddconfig handles configuration for a BDD manager.
//
// Configuration is loaded from environment variables (BDD_*, recommended
// for container deployments) or from a YAML file, following the same
// two-source pattern the rest of the dependency graph uses for its own
// configuration surfaces.
//
// Example Usage:
//
//	cfg := bddconfig.LoadFromEnv()
//	if err := cfg.Validate(); err != nil {
//		log.Fatalf("invalid bdd config: %v", err)
//	}
//
// Environment Variables:
//
//	BDD_STORE_INITIAL_CAPACITY  - initial bucket count for the node store (default: 1024)
//	BDD_STORE_MAX_NODES         - node store capacity before Reduce returns OutOfMemory, 0 = unbounded (default: 0)
//	BDD_CACHE_CAPACITY          - maximum apply-cache entries (default: 1<<20)
//	BDD_CACHE_ENABLED           - enable/disable the apply cache (default: true)
//	BDD_POOL_ENABLED            - enable/disable scratch-slice pooling (default: true)
//	BDD_POOL_MAX_CAP            - largest slice capacity worth pooling (default: 256)
package bddconfig

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// StoreConfig controls the node store (the unique table that backs
// hash-consing and reduce).
type StoreConfig struct {
	// InitialCapacity is the starting bucket count; the store grows past
	// this as needed (it is a sizing hint, not a hard limit).
	InitialCapacity int `yaml:"initial_capacity"`

	// MaxNodes bounds the number of live inner nodes the store will hold.
	// Reduce returns ErrOutOfMemory once this is reached. 0 means
	// unbounded (grow until the process runs out of memory).
	MaxNodes int `yaml:"max_nodes"`
}

// CacheConfig controls the apply (computed-table) cache.
type CacheConfig struct {
	// Enabled toggles the apply cache. Disabling it is useful for
	// debugging — apply still produces correct results, just slower.
	Enabled bool `yaml:"enabled"`

	// Capacity is the maximum number of memoized entries kept.
	Capacity int64 `yaml:"capacity"`
}

// PoolConfig controls scratch-value pooling in the apply engine.
type PoolConfig struct {
	Enabled bool `yaml:"enabled"`
	MaxCap  int  `yaml:"max_cap"`
}

// Config holds all BDD manager configuration.
type Config struct {
	Store StoreConfig `yaml:"store"`
	Cache CacheConfig `yaml:"cache"`
	Pool  PoolConfig  `yaml:"pool"`
}

// DefaultConfig returns hand-tuned defaults suitable for interactive use
// and small-to-medium formulas.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{InitialCapacity: 1024, MaxNodes: 0},
		Cache: CacheConfig{Enabled: true, Capacity: 1 << 20},
		Pool:  PoolConfig{Enabled: true, MaxCap: 256},
	}
}

// LoadFromEnv builds a Config from environment variables, falling back to
// DefaultConfig's values for anything unset.
func LoadFromEnv() *Config {
	cfg := DefaultConfig()

	cfg.Store.InitialCapacity = getEnvInt("BDD_STORE_INITIAL_CAPACITY", cfg.Store.InitialCapacity)
	cfg.Store.MaxNodes = getEnvInt("BDD_STORE_MAX_NODES", cfg.Store.MaxNodes)

	cfg.Cache.Enabled = getEnvBool("BDD_CACHE_ENABLED", cfg.Cache.Enabled)
	cfg.Cache.Capacity = int64(getEnvInt("BDD_CACHE_CAPACITY", int(cfg.Cache.Capacity)))

	cfg.Pool.Enabled = getEnvBool("BDD_POOL_ENABLED", cfg.Pool.Enabled)
	cfg.Pool.MaxCap = getEnvInt("BDD_POOL_MAX_CAP", cfg.Pool.MaxCap)

	return cfg
}

// LoadFromFile reads a YAML config file, layering it over DefaultConfig.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bddconfig: read %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("bddconfig: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for logical errors.
//
// Call Validate() after LoadFromEnv()/LoadFromFile() and before
// constructing a manager from the config.
func (c *Config) Validate() error {
	if c.Store.InitialCapacity <= 0 {
		return fmt.Errorf("bddconfig: store initial capacity must be positive, got %d", c.Store.InitialCapacity)
	}
	if c.Store.MaxNodes < 0 {
		return fmt.Errorf("bddconfig: store max nodes must be >= 0, got %d", c.Store.MaxNodes)
	}
	if c.Cache.Enabled && c.Cache.Capacity <= 0 {
		return fmt.Errorf("bddconfig: cache capacity must be positive when enabled, got %d", c.Cache.Capacity)
	}
	if c.Pool.Enabled && c.Pool.MaxCap <= 0 {
		return fmt.Errorf("bddconfig: pool max capacity must be positive when enabled, got %d", c.Pool.MaxCap)
	}
	return nil
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		val = strings.ToLower(val)
		return val == "true" || val == "1" || val == "yes" || val == "on"
	}
	return defaultVal
}
