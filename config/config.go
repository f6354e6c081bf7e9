// Package config loads the flat key-value configuration the orchestrator
// consumes from its environment. Configuration is read-only: launchkit
// never persists it.
package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v11"
)

// Config is the flat configuration map for the orchestrator.
type Config struct {
	// DefaultMemoryMB is the heap ceiling used when a launch request
	// does not set one.
	DefaultMemoryMB int `env:"LAUNCHKIT_MEMORY_MB" envDefault:"2048"`

	// RuntimePath pins a custom runtime binary, bypassing the discovery
	// ranking. The binary is still probed and validated.
	RuntimePath string `env:"LAUNCHKIT_RUNTIME"`

	// GameDir overrides the game installation root. Defaults to a
	// launchkit directory under the user data dir.
	GameDir string `env:"LAUNCHKIT_GAME_DIR"`

	// ExtraJVMArgs are appended to every launch's JVM argument list.
	ExtraJVMArgs []string `env:"LAUNCHKIT_JVM_ARGS" envSeparator:" "`

	// ExtraGameArgs are appended to every launch's game argument list.
	ExtraGameArgs []string `env:"LAUNCHKIT_GAME_ARGS" envSeparator:" "`

	// OutputBufferCap bounds the session output ring buffer, in records.
	OutputBufferCap int `env:"LAUNCHKIT_OUTPUT_BUFFER" envDefault:"1000"`

	// ProbeTimeout is the per-candidate discovery probe timeout.
	ProbeTimeout time.Duration `env:"LAUNCHKIT_PROBE_TIMEOUT" envDefault:"5s"`

	// ProbeParallelism bounds concurrent discovery probes.
	ProbeParallelism int `env:"LAUNCHKIT_PROBE_PARALLELISM" envDefault:"4"`

	// MinHeapDivisor divides the max heap to produce the min heap.
	MinHeapDivisor int `env:"LAUNCHKIT_MIN_HEAP_DIVISOR" envDefault:"2"`
}

// Load parses configuration from LAUNCHKIT_* environment variables,
// applying defaults for unset keys.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	if cfg.GameDir == "" {
		cfg.GameDir = filepath.Join(xdg.DataHome, "launchkit")
	}
	return cfg, nil
}

// Default returns the configuration with every key at its default,
// ignoring the environment.
func Default() Config {
	return Config{
		DefaultMemoryMB:  2048,
		GameDir:          filepath.Join(xdg.DataHome, "launchkit"),
		OutputBufferCap:  1000,
		ProbeTimeout:     5 * time.Second,
		ProbeParallelism: 4,
		MinHeapDivisor:   2,
	}
}
