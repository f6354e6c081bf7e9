//go:build !windows

package launcher_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchforge/launchkit"
	"github.com/launchforge/launchkit/config"
	"github.com/launchforge/launchkit/jre"
	"github.com/launchforge/launchkit/launcher"
	"github.com/launchforge/launchkit/launchtest"
)

const (
	banner8 = `openjdk version "1.8.0_301"
OpenJDK 64-Bit Server VM (build 25.301-b09, mixed mode)`

	banner17 = `openjdk version "17.0.2" 2022-01-18
OpenJDK 64-Bit Server VM (build 17.0.2+8-86, mixed mode, sharing)`
)

type diagLog struct {
	mu    sync.Mutex
	diags []launchkit.Diagnostic
}

func (d *diagLog) record(diag launchkit.Diagnostic) {
	d.mu.Lock()
	d.diags = append(d.diags, diag)
	d.mu.Unlock()
}

func (d *diagLog) all() []launchkit.Diagnostic {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]launchkit.Diagnostic(nil), d.diags...)
}

func gameManifest(javaVersion int) launchkit.VersionManifest {
	return launchkit.VersionManifest{
		ID:            "1.20.4",
		AssetsIndexID: "12",
		MainClass:     "net.minecraft.client.main.Main",
		JavaVersion:   javaVersion,
		Libraries: []launchkit.Library{
			{ArtifactPath: "org/lwjgl/lwjgl/3.3.2/lwjgl-3.3.2.jar"},
		},
	}
}

func offlineRequest() launchkit.LaunchRequest {
	return launchkit.LaunchRequest{
		Account:   launchkit.Account{Username: "Steve", Type: launchkit.AccountOffline},
		VersionID: "1.20.4",
		MemoryMB:  512,
	}
}

// newLauncher installs a fake runtime and a version, pins the runtime via
// configuration, and returns the ready launcher.
func newLauncher(t *testing.T, fr launchtest.FakeRuntime, opts ...launcher.Option) (*launcher.Launcher, launchkit.GameDirs) {
	t.Helper()
	bin := launchtest.Install(t, t.TempDir(), fr)
	dirs := launchtest.InstallVersion(t, t.TempDir(), gameManifest(17))

	cfg := config.Default()
	cfg.RuntimePath = bin
	opts = append([]launcher.Option{launcher.WithConfig(cfg)}, opts...)
	return launcher.New(dirs, opts...), dirs
}

func TestLaunch_EndToEnd(t *testing.T) {
	l, _ := newLauncher(t, launchtest.FakeRuntime{
		Banner: banner17,
		Stdout: []string{"Setting user: Steve", "Game started"},
	})

	pid, err := l.Launch(context.Background(), offlineRequest())
	require.NoError(t, err)
	assert.Greater(t, pid, 0)

	require.NoError(t, l.Wait())
	assert.Equal(t, launchkit.StateExited, l.Status().State)

	recs := l.Buffered()
	require.Len(t, recs, 2)
	assert.Equal(t, "Setting user: Steve", recs[0].Text)
	assert.Equal(t, "Game started", recs[1].Text)
}

func TestLaunch_CrashWithDiagnostic(t *testing.T) {
	var diags diagLog
	var exits []launchkit.Exited
	l, _ := newLauncher(t, launchtest.FakeRuntime{
		Banner:   banner17,
		Stderr:   []string{"Exception in thread \"main\" java.lang.OutOfMemoryError: Java heap space"},
		ExitCode: 1,
	}, launcher.WithHandlers(launchkit.Handlers{
		OnDiagnostic: diags.record,
		OnExited:     func(ev launchkit.Exited) { exits = append(exits, ev) },
	}))

	_, err := l.Launch(context.Background(), offlineRequest())
	require.NoError(t, err)

	err = l.Wait()
	code, ok := launchkit.ExitCode(err)
	require.True(t, ok, "want *ExitError, got %v", err)
	assert.Equal(t, 1, code)

	got := diags.all()
	require.Len(t, got, 1)
	assert.Equal(t, "memory", got[0].Cause)
	assert.Equal(t, launchkit.ChannelStderr, got[0].Record.Channel)

	require.Len(t, exits, 1)
	assert.Equal(t, 1, exits[0].Code)
}

func TestLaunch_NoRuntime(t *testing.T) {
	dirs := launchtest.InstallVersion(t, t.TempDir(), gameManifest(17))
	l := launcher.New(dirs) // no runtime configured, empty cache

	_, err := l.Launch(context.Background(), offlineRequest())
	var pre *launchkit.PreconditionError
	require.ErrorAs(t, err, &pre)
	assert.Equal(t, launchkit.ReasonNoRuntime, pre.Reason)
}

func TestLaunch_MissingManifest(t *testing.T) {
	l, _ := newLauncher(t, launchtest.FakeRuntime{Banner: banner17})

	req := offlineRequest()
	req.VersionID = "9.99.9"
	_, err := l.Launch(context.Background(), req)
	var pre *launchkit.PreconditionError
	require.ErrorAs(t, err, &pre)
	assert.Equal(t, launchkit.ReasonMissingVersionFiles, pre.Reason)
}

func TestLaunch_MissingClientArchive(t *testing.T) {
	l, dirs := newLauncher(t, launchtest.FakeRuntime{Banner: banner17})
	require.NoError(t, os.Remove(dirs.ClientJar("1.20.4")))

	_, err := l.Launch(context.Background(), offlineRequest())
	var pre *launchkit.PreconditionError
	require.ErrorAs(t, err, &pre)
	assert.Equal(t, launchkit.ReasonMissingVersionFiles, pre.Reason)
}

func TestLaunch_IncompleteAccount(t *testing.T) {
	l, _ := newLauncher(t, launchtest.FakeRuntime{Banner: banner17})

	req := offlineRequest()
	req.Account = launchkit.Account{Username: "Notch", Type: launchkit.AccountMicrosoft}
	_, err := l.Launch(context.Background(), req)
	var pre *launchkit.PreconditionError
	require.ErrorAs(t, err, &pre)
	assert.Equal(t, launchkit.ReasonIncompleteAccount, pre.Reason)
}

func TestLaunch_IncompatibleRuntime(t *testing.T) {
	// Version manifest requires 17; the pinned runtime reports 8.
	l, _ := newLauncher(t, launchtest.FakeRuntime{Banner: banner8})

	_, err := l.Launch(context.Background(), offlineRequest())
	var pre *launchkit.PreconditionError
	require.ErrorAs(t, err, &pre)
	assert.Equal(t, launchkit.ReasonIncompatibleRuntime, pre.Reason)

	var incompat *jre.IncompatibilityError
	assert.ErrorAs(t, err, &incompat)
}

func TestLaunch_AlreadyRunning(t *testing.T) {
	l, _ := newLauncher(t, launchtest.FakeRuntime{
		Banner:       banner17,
		SleepSeconds: 30,
	})

	pid, err := l.Launch(context.Background(), offlineRequest())
	require.NoError(t, err)

	_, err = l.Launch(context.Background(), offlineRequest())
	assert.ErrorIs(t, err, launchkit.ErrAlreadyRunning)

	st := l.Status()
	assert.Equal(t, launchkit.StateRunning, st.State)
	assert.Equal(t, pid, st.PID)

	ok, err := l.Kill()
	require.NoError(t, err)
	require.True(t, ok)
	assert.ErrorIs(t, l.Wait(), launchkit.ErrTerminated)
}

func TestLaunch_StopTerminates(t *testing.T) {
	l, _ := newLauncher(t, launchtest.FakeRuntime{
		Banner:       banner17,
		SleepSeconds: 30,
	})

	_, err := l.Launch(context.Background(), offlineRequest())
	require.NoError(t, err)

	ok, err := l.Stop()
	require.NoError(t, err)
	require.True(t, ok)

	assert.ErrorIs(t, l.Wait(), launchkit.ErrTerminated)
	assert.Equal(t, launchkit.StateTerminated, l.Status().State)
}

func TestDiscoverRuntimes_FeedsLaunch(t *testing.T) {
	// No pinned runtime: the launch must pick from the discovery cache.
	root := t.TempDir()
	launchtest.Install(t, filepath.Join(root, "jdk-17"), launchtest.FakeRuntime{
		Banner: banner17,
		Stdout: []string{"up"},
	})
	dirs := launchtest.InstallVersion(t, t.TempDir(), gameManifest(17))
	l := launcher.New(dirs)

	found := l.DiscoverRuntimes(context.Background(),
		jre.WithoutPlatformLocations(),
		jre.WithoutPathLookup(),
		jre.WithInstallRoots(root),
	)
	require.Len(t, found, 1)
	assert.Equal(t, found, l.Runtimes())

	_, err := l.Launch(context.Background(), offlineRequest())
	require.NoError(t, err)
	require.NoError(t, l.Wait())

	recs := l.Buffered()
	require.Len(t, recs, 1)
	assert.Equal(t, "up", recs[0].Text)
}

func TestRun_DrainsFeed(t *testing.T) {
	l, _ := newLauncher(t, launchtest.FakeRuntime{
		Banner: banner17,
		Stdout: []string{"one", "two"},
	})

	var lines []string
	err := launcher.Run(context.Background(), l, offlineRequest(), func(rec launchkit.OutputRecord) error {
		lines = append(lines, rec.Text)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, lines)
}

func TestRun_PropagatesLaunchError(t *testing.T) {
	dirs := launchtest.InstallVersion(t, t.TempDir(), gameManifest(17))
	l := launcher.New(dirs)

	err := launcher.Run(context.Background(), l, offlineRequest(), nil)
	var pre *launchkit.PreconditionError
	assert.ErrorAs(t, err, &pre)
}

func TestRun_ContextCancelKills(t *testing.T) {
	l, _ := newLauncher(t, launchtest.FakeRuntime{
		Banner:       banner17,
		SleepSeconds: 30,
	})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- launcher.Run(ctx, l, offlineRequest(), nil) }()

	require.Eventually(t, func() bool {
		return l.Status().State == launchkit.StateRunning
	}, 5*time.Second, 10*time.Millisecond)
	cancel()

	assert.ErrorIs(t, <-errCh, context.Canceled)
	assert.Equal(t, launchkit.StateTerminated, l.Status().State)
}

func TestRun_HandlerErrorKills(t *testing.T) {
	l, _ := newLauncher(t, launchtest.FakeRuntime{
		Banner:       banner17,
		Stdout:       []string{"boot"},
		SleepSeconds: 30,
	})

	wantErr := assert.AnError
	err := launcher.Run(context.Background(), l, offlineRequest(), func(launchkit.OutputRecord) error {
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, launchkit.StateTerminated, l.Status().State)
}
