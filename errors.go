package launchkit

import (
	"errors"
	"strconv"
)

// Sentinel errors for orchestrator operations.
var (
	// ErrAlreadyRunning indicates a launch was rejected because a session
	// is already in the Running state. The existing session is untouched.
	ErrAlreadyRunning = errors.New("launchkit: session already running")

	// ErrNotRunning indicates a stop or kill was requested while no
	// process handle exists.
	ErrNotRunning = errors.New("launchkit: no running session")

	// ErrTerminated indicates the session was ended by an explicit
	// stop or kill rather than by the process exiting on its own.
	ErrTerminated = errors.New("launchkit: session terminated")
)

// PreconditionReason identifies why a launch was rejected before any
// process was spawned.
type PreconditionReason string

const (
	// ReasonNoRuntime means no usable runtime candidate was available.
	ReasonNoRuntime PreconditionReason = "no_runtime"

	// ReasonIncompatibleRuntime means the selected runtime failed
	// compatibility validation against the version descriptor.
	ReasonIncompatibleRuntime PreconditionReason = "incompatible_runtime"

	// ReasonMissingVersionFiles means the version directory, manifest,
	// or client archive is absent on disk.
	ReasonMissingVersionFiles PreconditionReason = "missing_version_files"

	// ReasonIncompleteAccount means the account record lacks fields
	// required for its type.
	ReasonIncompleteAccount PreconditionReason = "incomplete_account"
)

// PreconditionError reports a launch rejected synchronously before any
// process exists. Precondition failures are never retried automatically.
type PreconditionError struct {
	Reason PreconditionReason
	Detail string
	Err    error
}

func (e *PreconditionError) Error() string {
	msg := "launchkit: precondition failed (" + string(e.Reason) + ")"
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *PreconditionError) Unwrap() error { return e.Err }

// SpawnError reports that the OS failed to create the process. The
// session transitions to Failed — distinct from a successful spawn
// followed by a nonzero exit, which is Exited.
type SpawnError struct {
	Path string
	Err  error
}

func (e *SpawnError) Error() string {
	return "launchkit: spawn " + e.Path + ": " + e.Err.Error()
}

func (e *SpawnError) Unwrap() error { return e.Err }

// ExitError represents a supervised process that exited with a non-zero
// status. Wraps the underlying error to preserve the error chain —
// consumers can errors.As to *exec.ExitError for OS-level detail.
//
// Code semantics: positive = exit status, negative (-1) = signal-killed.
//
// The supervisor produces ExitError only for natural exits. Explicit
// Stop/Kill produce ErrTerminated instead.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "launchkit: exit status " + strconv.Itoa(e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode extracts the exit code from an error chain containing *ExitError.
// Returns (0, false) if the error does not contain an ExitError.
func ExitCode(err error) (int, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, true
	}
	return 0, false
}
