package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchforge/launchkit/config"
)

// clearEnv unsets every configuration key for the test's duration.
// t.Setenv registers the restore; Unsetenv makes the key truly absent.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LAUNCHKIT_MEMORY_MB",
		"LAUNCHKIT_RUNTIME",
		"LAUNCHKIT_GAME_DIR",
		"LAUNCHKIT_JVM_ARGS",
		"LAUNCHKIT_GAME_ARGS",
		"LAUNCHKIT_OUTPUT_BUFFER",
		"LAUNCHKIT_PROBE_TIMEOUT",
		"LAUNCHKIT_PROBE_PARALLELISM",
		"LAUNCHKIT_MIN_HEAP_DIVISOR",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 2048, cfg.DefaultMemoryMB)
	assert.Empty(t, cfg.RuntimePath)
	assert.NotEmpty(t, cfg.GameDir)
	assert.Equal(t, 1000, cfg.OutputBufferCap)
	assert.Equal(t, 5*time.Second, cfg.ProbeTimeout)
	assert.Equal(t, 4, cfg.ProbeParallelism)
	assert.Equal(t, 2, cfg.MinHeapDivisor)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("LAUNCHKIT_MEMORY_MB", "4096")
	t.Setenv("LAUNCHKIT_RUNTIME", "/opt/java/bin/java")
	t.Setenv("LAUNCHKIT_GAME_DIR", "/srv/game")
	t.Setenv("LAUNCHKIT_JVM_ARGS", "-XX:+UseG1GC -Dfoo=bar")
	t.Setenv("LAUNCHKIT_GAME_ARGS", "--fullscreen")
	t.Setenv("LAUNCHKIT_OUTPUT_BUFFER", "50")
	t.Setenv("LAUNCHKIT_PROBE_TIMEOUT", "250ms")
	t.Setenv("LAUNCHKIT_PROBE_PARALLELISM", "8")
	t.Setenv("LAUNCHKIT_MIN_HEAP_DIVISOR", "4")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 4096, cfg.DefaultMemoryMB)
	assert.Equal(t, "/opt/java/bin/java", cfg.RuntimePath)
	assert.Equal(t, "/srv/game", cfg.GameDir)
	assert.Equal(t, []string{"-XX:+UseG1GC", "-Dfoo=bar"}, cfg.ExtraJVMArgs)
	assert.Equal(t, []string{"--fullscreen"}, cfg.ExtraGameArgs)
	assert.Equal(t, 50, cfg.OutputBufferCap)
	assert.Equal(t, 250*time.Millisecond, cfg.ProbeTimeout)
	assert.Equal(t, 8, cfg.ProbeParallelism)
	assert.Equal(t, 4, cfg.MinHeapDivisor)
}

func TestLoad_MalformedValue(t *testing.T) {
	clearEnv(t)
	t.Setenv("LAUNCHKIT_MEMORY_MB", "lots")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, 2048, cfg.DefaultMemoryMB)
	assert.Equal(t, 2, cfg.MinHeapDivisor)
	assert.NotEmpty(t, cfg.GameDir)
}
