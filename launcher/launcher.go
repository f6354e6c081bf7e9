//go:build !windows

// Package launcher is the orchestrator façade: it ties runtime
// discovery, compatibility validation, argument assembly, process
// supervision, and output classification into the launch control flow.
//
// Discovery runs independently and populates a cache; [Launcher.Launch]
// drives validator → builder → supervisor in sequence, and the
// classifier observes the output feed for the supervised process's
// whole lifetime.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/launchforge/launchkit"
	"github.com/launchforge/launchkit/args"
	"github.com/launchforge/launchkit/config"
	"github.com/launchforge/launchkit/diagnose"
	"github.com/launchforge/launchkit/jre"
	"github.com/launchforge/launchkit/supervisor"
)

// Launcher owns one orchestrator instance: a discovery cache, a
// supervisor (at most one Running session), and a classifier.
type Launcher struct {
	cfg      config.Config
	log      *zap.Logger
	dirs     launchkit.GameDirs
	handlers launchkit.Handlers
	policy   args.HeapPolicy

	sup *supervisor.Supervisor
	cls *diagnose.Classifier

	mu       sync.Mutex
	runtimes []jre.Candidate
}

// Option configures a Launcher at construction time.
type Option func(*Launcher)

// WithConfig supplies the flat configuration map. Defaults to
// config.Default().
func WithConfig(cfg config.Config) Option {
	return func(l *Launcher) { l.cfg = cfg }
}

// WithLogger sets the logger for the launcher and its components.
// Defaults to zap.NewNop().
func WithLogger(log *zap.Logger) Option {
	return func(l *Launcher) {
		if log != nil {
			l.log = log
		}
	}
}

// WithHandlers sets the typed lifecycle/diagnostic callbacks.
func WithHandlers(h launchkit.Handlers) Option {
	return func(l *Launcher) { l.handlers = h }
}

// New creates a Launcher for the given game directory layout.
func New(dirs launchkit.GameDirs, opts ...Option) *Launcher {
	l := &Launcher{
		cfg:  config.Default(),
		log:  zap.NewNop(),
		dirs: dirs,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	l.policy = args.HeapPolicy{MinDivisor: l.cfg.MinHeapDivisor}
	l.cls = diagnose.New(diagnose.WithLogger(l.log))

	// The supervisor sees the caller's handlers with the output slot
	// wrapped so every record also passes through the classifier. The
	// classifier is advisory: the record reaches the caller unchanged
	// whether or not a rule matches.
	supHandlers := l.handlers
	callerOutput := l.handlers.OnOutput
	supHandlers.OnOutput = func(rec launchkit.OutputRecord) {
		if callerOutput != nil {
			callerOutput(rec)
		}
		if cause, ok := l.cls.Classify(rec); ok {
			l.handlers.EmitDiagnostic(launchkit.Diagnostic{Cause: string(cause), Record: rec})
		}
	}
	l.sup = supervisor.New(
		supervisor.WithBufferCap(l.cfg.OutputBufferCap),
		supervisor.WithHandlers(supHandlers),
		supervisor.WithLogger(l.log),
	)
	return l
}

// DiscoverRuntimes scans for runtime installations and replaces the
// cache. Returns the ranked candidates. Safe to call at any time;
// discovery is independent of the launch flow.
func (l *Launcher) DiscoverRuntimes(ctx context.Context, opts ...jre.DiscoverOption) []jre.Candidate {
	scanOpts := append([]jre.DiscoverOption{
		jre.WithProbeTimeout(l.cfg.ProbeTimeout),
		jre.WithParallelism(l.cfg.ProbeParallelism),
		jre.WithLogger(l.log),
	}, opts...)
	found := jre.Discover(ctx, scanOpts...)

	l.mu.Lock()
	l.runtimes = found
	l.mu.Unlock()

	l.log.Info("runtime scan complete", zap.Int("found", len(found)))
	return append([]jre.Candidate(nil), found...)
}

// Runtimes returns the cached candidates from the last scan.
func (l *Launcher) Runtimes() []jre.Candidate {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]jre.Candidate(nil), l.runtimes...)
}

// Launch validates preconditions, assembles the invocation, and spawns
// the game process. All precondition failures are *launchkit.
// PreconditionError, surfaced synchronously before any process exists.
// A second launch while a session is Running fails with
// launchkit.ErrAlreadyRunning and leaves the existing session untouched.
func (l *Launcher) Launch(ctx context.Context, req launchkit.LaunchRequest) (int, error) {
	if st := l.sup.Status().State; st == launchkit.StateRunning || st == launchkit.StateStarting {
		return 0, launchkit.ErrAlreadyRunning
	}

	// Requests are immutable once submitted.
	req = req.Clone()
	if req.MemoryMB <= 0 {
		req.MemoryMB = l.cfg.DefaultMemoryMB
	}
	req.ExtraJVMArgs = append(req.ExtraJVMArgs, l.cfg.ExtraJVMArgs...)
	req.ExtraGameArgs = append(req.ExtraGameArgs, l.cfg.ExtraGameArgs...)

	if err := req.Account.Complete(); err != nil {
		return 0, &launchkit.PreconditionError{
			Reason: launchkit.ReasonIncompleteAccount,
			Detail: err.Error(),
			Err:    err,
		}
	}

	manifest, err := launchkit.LoadManifest(l.dirs, req.VersionID)
	if err != nil {
		return 0, err
	}
	if _, err := os.Stat(l.dirs.ClientJar(manifest.ID)); err != nil {
		return 0, &launchkit.PreconditionError{
			Reason: launchkit.ReasonMissingVersionFiles,
			Detail: fmt.Sprintf("client archive %s", l.dirs.ClientJar(manifest.ID)),
			Err:    err,
		}
	}

	candidate, err := l.pickRuntime(ctx, manifest)
	if err != nil {
		return 0, err
	}
	validated, err := jre.Validate(candidate, jre.Descriptor{
		VersionID: manifest.ID,
		MinJava:   manifest.JavaVersion,
	})
	if err != nil {
		var incompat *jre.IncompatibilityError
		if errors.As(err, &incompat) {
			return 0, &launchkit.PreconditionError{
				Reason: launchkit.ReasonIncompatibleRuntime,
				Detail: incompat.Error(),
				Err:    err,
			}
		}
		return 0, err
	}

	if _, err := args.EnsureNatives(l.dirs, manifest.ID); err != nil {
		return 0, err
	}
	inv, err := args.Build(req, validated, manifest, l.dirs, l.policy)
	if err != nil {
		return 0, err
	}

	l.log.Info("launching",
		zap.String("version", manifest.ID),
		zap.String("username", req.Account.Username),
		zap.Int("memory_mb", req.MemoryMB),
		zap.String("runtime", validated.Runtime.Path))

	return l.sup.Launch(ctx, supervisor.Plan{
		Binary: validated.Runtime.Path,
		Args:   inv.Argv(),
		Dir:    l.dirs.Root,
		Env:    req.Env,
	})
}

// pickRuntime selects the runtime for a launch: a configured custom path
// is probed directly; otherwise the best cached candidate that satisfies
// the version requirement wins. The cache is ranked descending by
// version, so the first satisfying candidate is the best one.
func (l *Launcher) pickRuntime(ctx context.Context, m launchkit.VersionManifest) (jre.Candidate, error) {
	if l.cfg.RuntimePath != "" {
		c, err := jre.Probe(ctx, l.cfg.RuntimePath, l.cfg.ProbeTimeout)
		if err != nil {
			return jre.Candidate{}, &launchkit.PreconditionError{
				Reason: launchkit.ReasonNoRuntime,
				Detail: fmt.Sprintf("configured runtime %s", l.cfg.RuntimePath),
				Err:    err,
			}
		}
		return c, nil
	}

	need := jre.MinLaunchVersion
	if m.JavaVersion > need {
		need = m.JavaVersion
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, c := range l.runtimes {
		if c.Valid && c.Version >= need {
			return c, nil
		}
	}
	return jre.Candidate{}, &launchkit.PreconditionError{
		Reason: launchkit.ReasonNoRuntime,
		Detail: fmt.Sprintf("no cached runtime with version >= %d (%d known)", need, len(l.runtimes)),
	}
}

// Stop requests graceful termination of the running session. Returns
// false when no session is Running.
func (l *Launcher) Stop() (bool, error) { return l.sup.Stop() }

// Kill forcefully terminates the running session. Returns false when no
// session is Running.
func (l *Launcher) Kill() (bool, error) { return l.sup.Kill() }

// Status returns the supervisor's current status.
func (l *Launcher) Status() supervisor.Status { return l.sup.Status() }

// Output returns the live output feed of the current session.
func (l *Launcher) Output() <-chan launchkit.OutputRecord { return l.sup.Output() }

// Buffered returns the retained output of the current session.
func (l *Launcher) Buffered() []launchkit.OutputRecord { return l.sup.Buffered() }

// Wait blocks until the current session reaches a terminal state.
func (l *Launcher) Wait() error { return l.sup.Wait() }
