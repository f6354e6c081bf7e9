package launchkit_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchforge/launchkit"
)

func TestExitCode(t *testing.T) {
	err := &launchkit.ExitError{Code: 1}
	code, ok := launchkit.ExitCode(err)
	require.True(t, ok)
	assert.Equal(t, 1, code)

	wrapped := fmt.Errorf("session ended: %w", &launchkit.ExitError{Code: 137})
	code, ok = launchkit.ExitCode(wrapped)
	require.True(t, ok)
	assert.Equal(t, 137, code)

	_, ok = launchkit.ExitCode(errors.New("plain"))
	assert.False(t, ok)
	_, ok = launchkit.ExitCode(nil)
	assert.False(t, ok)
}

func TestPreconditionError_Message(t *testing.T) {
	err := &launchkit.PreconditionError{
		Reason: launchkit.ReasonMissingVersionFiles,
		Detail: "manifest /tmp/versions/1.20.4/1.20.4.json",
	}
	assert.Contains(t, err.Error(), "missing_version_files")
	assert.Contains(t, err.Error(), "1.20.4.json")
}

func TestPreconditionError_Unwrap(t *testing.T) {
	inner := errors.New("stat failed")
	err := &launchkit.PreconditionError{Reason: launchkit.ReasonNoRuntime, Err: inner}
	assert.ErrorIs(t, err, inner)

	var pre *launchkit.PreconditionError
	require.ErrorAs(t, fmt.Errorf("launch: %w", err), &pre)
	assert.Equal(t, launchkit.ReasonNoRuntime, pre.Reason)
}

func TestSpawnError_Unwrap(t *testing.T) {
	inner := errors.New("no such file")
	err := &launchkit.SpawnError{Path: "/bin/java", Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "/bin/java")
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", launchkit.StateIdle.String())
	assert.Equal(t, "running", launchkit.StateRunning.String())
	assert.Equal(t, "terminated", launchkit.StateTerminated.String())
	assert.Equal(t, "unknown", launchkit.State(99).String())
}

func TestStateTerminal(t *testing.T) {
	assert.False(t, launchkit.StateIdle.Terminal())
	assert.False(t, launchkit.StateStarting.Terminal())
	assert.False(t, launchkit.StateRunning.Terminal())
	assert.True(t, launchkit.StateExited.Terminal())
	assert.True(t, launchkit.StateFailed.Terminal())
	assert.True(t, launchkit.StateTerminated.Terminal())
}
