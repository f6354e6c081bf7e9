//go:build !windows

// Package supervisor spawns and supervises exactly one external game
// process per session.
//
// The session lifecycle is a state machine:
//
//	Idle → Starting → Running → {Exited | Failed | Terminated}
//
// A new launch may only transition out of Idle or a terminal state; a
// second launch while a session is Running fails with
// [launchkit.ErrAlreadyRunning] and leaves the existing session
// untouched. All state lives in the owned session behind one mutex —
// there are no ambient globals.
//
// Stdout and stderr are captured by two independent readers into a
// shared, timestamp-ordered, bounded ring buffer and a live feed
// channel. The supervised process has no implicit timeout: it runs until
// it exits or is explicitly stopped or killed.
//
// Signal-based lifecycle management (SIGTERM/SIGKILL) is Unix-only.
package supervisor

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/launchforge/launchkit"
	"github.com/launchforge/launchkit/internal/ring"
)

// Plan is a fully resolved process invocation: every precondition has
// been checked and every placeholder substituted before a Plan exists.
type Plan struct {
	// Binary is the runtime executable path.
	Binary string

	// Args is the complete argument vector (JVM flags, entry point,
	// game flags).
	Args []string

	// Dir is the working directory — the game directory.
	Dir string

	// Env is extra environment merged over the parent environment.
	Env map[string]string
}

// Status is a point-in-time view of the session.
type Status struct {
	State     launchkit.State
	PID       int
	Buffered  int
	StartTime time.Time
}

// Supervisor owns at most one launch session at a time.
type Supervisor struct {
	opts Options
	log  *zap.Logger

	mu        sync.Mutex
	state     launchkit.State
	cmd       *exec.Cmd
	pid       int
	startTime time.Time
	buf       *ring.Ring
	feed      chan launchkit.OutputRecord
	done      chan struct{}
	termErr   error
	stopReq   bool
	killReq   bool
}

// New creates an idle supervisor.
func New(opts ...Option) *Supervisor {
	o := resolveOptions(opts...)
	return &Supervisor{
		opts:  o,
		log:   o.Logger,
		state: launchkit.StateIdle,
	}
}

// signalProcess sends sig to a process, returning nil if the process
// has already exited (os.ErrProcessDone).
func signalProcess(proc *os.Process, sig os.Signal) error {
	err := proc.Signal(sig)
	if errors.Is(err, os.ErrProcessDone) {
		return nil
	}
	return err
}

// Launch spawns the planned process and begins supervising it. Exactly
// one OS process is created on success. The single-writer guard runs
// first: if a session is Starting or Running the call fails with
// ErrAlreadyRunning and the existing session is untouched.
//
// A spawn-time OS error transitions the session to Failed and returns a
// *launchkit.SpawnError — distinct from a successful spawn followed by a
// nonzero exit, which is Exited.
//
// The context is reserved for spawn-time cancellation; the supervised
// process itself runs until it exits or Stop/Kill is called.
func (s *Supervisor) Launch(_ context.Context, plan Plan) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == launchkit.StateStarting || s.state == launchkit.StateRunning {
		return 0, launchkit.ErrAlreadyRunning
	}
	if err := launchkit.ValidateEnv(plan.Env); err != nil {
		return 0, err
	}

	s.state = launchkit.StateStarting

	cmd := exec.Command(plan.Binary, plan.Args...)
	cmd.Dir = plan.Dir
	cmd.Env = launchkit.MergeEnv(os.Environ(), plan.Env)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return 0, s.failSpawn(plan.Binary, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return 0, s.failSpawn(plan.Binary, err)
	}
	if err := cmd.Start(); err != nil {
		return 0, s.failSpawn(plan.Binary, err)
	}

	// Fresh session state; the previous terminal session is discarded.
	s.cmd = cmd
	s.pid = cmd.Process.Pid
	s.startTime = time.Now()
	s.buf = ring.New(s.opts.BufferCap)
	s.feed = make(chan launchkit.OutputRecord, s.opts.BufferCap)
	s.done = make(chan struct{})
	s.termErr = nil
	s.stopReq = false
	s.killReq = false
	s.state = launchkit.StateRunning

	var readers sync.WaitGroup
	readers.Add(2)
	go s.readPipe(stdout, launchkit.ChannelStdout, s.buf, s.feed, &readers)
	go s.readPipe(stderr, launchkit.ChannelStderr, s.buf, s.feed, &readers)
	go s.supervise(cmd, s.pid, s.feed, s.done, &readers)

	s.log.Info("process launched",
		zap.Int("pid", s.pid),
		zap.String("binary", plan.Binary),
		zap.String("dir", plan.Dir))
	s.opts.Handlers.EmitLaunched(launchkit.Launched{PID: s.pid})
	return s.pid, nil
}

// failSpawn records a spawn-time OS failure. Caller holds s.mu.
func (s *Supervisor) failSpawn(binary string, err error) error {
	spawnErr := &launchkit.SpawnError{Path: binary, Err: err}
	s.state = launchkit.StateFailed
	s.termErr = spawnErr
	s.cmd = nil
	s.pid = 0
	s.buf = nil
	s.feed = nil
	s.done = nil
	s.log.Error("spawn failed", zap.String("binary", binary), zap.Error(err))
	s.opts.Handlers.EmitFailed(launchkit.Failed{Err: spawnErr})
	return spawnErr
}

// readPipe captures one output channel line-by-line into the shared ring
// buffer and the live feed. The feed send never blocks: when the feed is
// full the record is still retained in the ring.
func (s *Supervisor) readPipe(rc io.ReadCloser, ch launchkit.Channel, buf *ring.Ring, feed chan<- launchkit.OutputRecord, readers *sync.WaitGroup) {
	defer readers.Done()

	scanner := bufio.NewScanner(rc)
	initCap := 4096
	if s.opts.ScannerBuffer < initCap {
		initCap = s.opts.ScannerBuffer
	}
	scanner.Buffer(make([]byte, 0, initCap), s.opts.ScannerBuffer)

	for scanner.Scan() {
		rec := launchkit.OutputRecord{
			Channel:   ch,
			Text:      scanner.Text(),
			Timestamp: time.Now(),
		}
		buf.Append(rec)
		s.opts.Handlers.EmitOutput(rec)
		select {
		case feed <- rec:
		default:
			// Feed consumer fell behind; the ring still holds the record.
		}
	}
	if err := scanner.Err(); err != nil {
		s.log.Warn("output reader stopped", zap.String("channel", string(ch)), zap.Error(err))
	}
}

// supervise waits for both readers to drain the pipes, reaps the
// process, and performs the single terminal state transition.
func (s *Supervisor) supervise(cmd *exec.Cmd, pid int, feed chan launchkit.OutputRecord, done chan struct{}, readers *sync.WaitGroup) {
	readers.Wait()
	waitErr := cmd.Wait()

	code := 0
	var exitErr *exec.ExitError
	switch {
	case waitErr == nil:
	case errors.As(waitErr, &exitErr):
		code = exitErr.ExitCode()
	default:
		code = -1
	}

	s.mu.Lock()
	killed, stopped := s.killReq, s.stopReq
	switch {
	case killed, stopped:
		s.state = launchkit.StateTerminated
		s.termErr = launchkit.ErrTerminated
	default:
		s.state = launchkit.StateExited
		if code != 0 {
			s.termErr = &launchkit.ExitError{Code: code, Err: waitErr}
		}
	}
	s.mu.Unlock()

	// Emit the terminal event before unblocking Wait, so callers observe
	// a consistent session history once Wait returns.
	switch {
	case killed:
		s.log.Info("process killed", zap.Int("pid", pid))
		s.opts.Handlers.EmitKilled(launchkit.Killed{PID: pid})
	case stopped:
		s.log.Info("process stopped", zap.Int("pid", pid))
		s.opts.Handlers.EmitStopped(launchkit.Stopped{PID: pid})
	default:
		s.log.Info("process exited", zap.Int("pid", pid), zap.Int("code", code))
		s.opts.Handlers.EmitExited(launchkit.Exited{PID: pid, Code: code})
	}

	close(feed)
	close(done)
}

// Stop requests graceful termination via SIGTERM. Returns false with no
// events when no session is Running. There is no automatic escalation to
// SIGKILL — callers that need a hard deadline follow up with Kill.
func (s *Supervisor) Stop() (bool, error) {
	return s.signal(syscall.SIGTERM, false)
}

// Kill forcefully terminates the process, bypassing graceful shutdown.
// Returns false with no events when no session is Running.
func (s *Supervisor) Kill() (bool, error) {
	return s.signal(syscall.SIGKILL, true)
}

func (s *Supervisor) signal(sig syscall.Signal, force bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != launchkit.StateRunning || s.cmd == nil || s.cmd.Process == nil {
		return false, nil
	}
	if force {
		s.killReq = true
	} else {
		s.stopReq = true
	}
	if err := signalProcess(s.cmd.Process, sig); err != nil {
		return true, err
	}
	return true, nil
}

// Status returns the current state, PID (zero if no process was ever
// created), and buffered-output count.
func (s *Supervisor) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := Status{State: s.state, PID: s.pid, StartTime: s.startTime}
	if s.buf != nil {
		st.Buffered = s.buf.Len()
	}
	return st
}

// Output returns the live feed for the current session. The channel is
// closed when the session reaches a terminal state. Before any launch it
// returns a closed channel.
func (s *Supervisor) Output() <-chan launchkit.OutputRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.feed == nil {
		closed := make(chan launchkit.OutputRecord)
		close(closed)
		return closed
	}
	return s.feed
}

// Buffered returns the retained output of the current session, oldest
// first.
func (s *Supervisor) Buffered() []launchkit.OutputRecord {
	s.mu.Lock()
	buf := s.buf
	s.mu.Unlock()
	if buf == nil {
		return nil
	}
	return buf.Snapshot()
}

// Wait blocks until the current session reaches a terminal state and
// returns its terminal error: nil for a clean exit, *launchkit.ExitError
// for a nonzero exit, launchkit.ErrTerminated after Stop/Kill. Returns
// launchkit.ErrNotRunning when no process was ever launched.
func (s *Supervisor) Wait() error {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.state == launchkit.StateFailed {
			return s.termErr
		}
		return launchkit.ErrNotRunning
	}
	<-done
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.termErr
}
