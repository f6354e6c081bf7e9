package launchkit

// Lifecycle and diagnostic events. Each event kind has its own type and
// its own callback slot in Handlers — there is no generic event bus, so
// a handler signature mismatch is a compile error rather than a silently
// dropped event.

// Launched is emitted once per successful spawn.
type Launched struct {
	PID int
}

// Exited is emitted when the process exits on its own, with any code.
type Exited struct {
	PID  int
	Code int
}

// Failed is emitted when the OS could not create the process.
type Failed struct {
	Err error
}

// Stopped is emitted when a graceful stop is confirmed.
type Stopped struct {
	PID int
}

// Killed is emitted when a forced kill is confirmed.
type Killed struct {
	PID int
}

// Diagnostic is an advisory event emitted by the output classifier.
// It never mutates or suppresses the record it was derived from.
type Diagnostic struct {
	// Cause is the matched signature-rule cause, e.g. "memory".
	Cause  string
	Record OutputRecord
}

// Handlers carries per-event callbacks. Any slot may be nil. Callbacks
// are invoked synchronously from supervisor goroutines and must not block.
type Handlers struct {
	OnLaunched   func(Launched)
	OnOutput     func(OutputRecord)
	OnDiagnostic func(Diagnostic)
	OnExited     func(Exited)
	OnFailed     func(Failed)
	OnStopped    func(Stopped)
	OnKilled     func(Killed)
}

// Nil-safe emit helpers.

func (h Handlers) EmitLaunched(e Launched) {
	if h.OnLaunched != nil {
		h.OnLaunched(e)
	}
}

func (h Handlers) EmitOutput(rec OutputRecord) {
	if h.OnOutput != nil {
		h.OnOutput(rec)
	}
}

func (h Handlers) EmitDiagnostic(e Diagnostic) {
	if h.OnDiagnostic != nil {
		h.OnDiagnostic(e)
	}
}

func (h Handlers) EmitExited(e Exited) {
	if h.OnExited != nil {
		h.OnExited(e)
	}
}

func (h Handlers) EmitFailed(e Failed) {
	if h.OnFailed != nil {
		h.OnFailed(e)
	}
}

func (h Handlers) EmitStopped(e Stopped) {
	if h.OnStopped != nil {
		h.OnStopped(e)
	}
}

func (h Handlers) EmitKilled(e Killed) {
	if h.OnKilled != nil {
		h.OnKilled(e)
	}
}
