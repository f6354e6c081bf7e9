package launchkit

// State is the lifecycle state of a launch session.
//
// Transitions: Idle → Starting → Running → {Exited | Failed | Terminated}.
// A new launch may only transition out of Idle or a terminal state.
type State int

const (
	// StateIdle means no session exists yet.
	StateIdle State = iota

	// StateStarting means a launch is in progress but the process has
	// not been confirmed running.
	StateStarting

	// StateRunning means exactly one OS process is being supervised.
	StateRunning

	// StateExited means the process ran and exited on its own, with any
	// exit code. Terminal.
	StateExited

	// StateFailed means the OS failed to create the process — it never
	// started. Terminal.
	StateFailed

	// StateTerminated means the process was ended by an explicit stop
	// or kill. Terminal.
	StateTerminated
)

var stateNames = map[State]string{
	StateIdle:       "idle",
	StateStarting:   "starting",
	StateRunning:    "running",
	StateExited:     "exited",
	StateFailed:     "failed",
	StateTerminated: "terminated",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Terminal reports whether the state admits a new launch.
func (s State) Terminal() bool {
	switch s {
	case StateExited, StateFailed, StateTerminated:
		return true
	default:
		return false
	}
}
