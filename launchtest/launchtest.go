// Package launchtest provides shared fixtures for testing launch
// components against real subprocesses: fake runtime binaries that
// answer version probes and emulate game behavior, and on-disk game
// installations with manifests and client archives.
package launchtest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/launchforge/launchkit"
)

// FakeRuntime describes the behavior of a fake runtime binary.
type FakeRuntime struct {
	// Banner is printed to stderr when the binary is invoked with
	// -version, mirroring real JVM behavior. An empty banner makes the
	// probe unparseable.
	Banner string

	// Stdout and Stderr lines are printed, in order per channel, when
	// the binary is launched as a game process.
	Stdout []string
	Stderr []string

	// ExitCode is the launch exit status.
	ExitCode int

	// SleepSeconds delays exit after printing, so stop/kill paths can
	// observe a Running session.
	SleepSeconds int

	// HangOnProbe makes the -version invocation sleep far past any
	// probe timeout.
	HangOnProbe bool
}

// Install writes a fake runtime under dir with the conventional
// <dir>/bin/java layout and returns the binary path.
func Install(t *testing.T, dir string, fr FakeRuntime) string {
	t.Helper()

	binDir := filepath.Join(dir, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("launchtest: mkdir %s: %v", binDir, err)
	}
	path := filepath.Join(binDir, "java")

	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	b.WriteString("if [ \"$1\" = \"-version\" ]; then\n")
	if fr.HangOnProbe {
		b.WriteString("  exec sleep 600\n")
	}
	for _, line := range strings.Split(fr.Banner, "\n") {
		if line == "" {
			continue
		}
		fmt.Fprintf(&b, "  printf '%%s\\n' %s >&2\n", shellQuote(line))
	}
	b.WriteString("  exit 0\n")
	b.WriteString("fi\n")
	for _, line := range fr.Stdout {
		fmt.Fprintf(&b, "printf '%%s\\n' %s\n", shellQuote(line))
	}
	for _, line := range fr.Stderr {
		fmt.Fprintf(&b, "printf '%%s\\n' %s >&2\n", shellQuote(line))
	}
	if fr.SleepSeconds > 0 {
		// exec so signals land on the sleeping process itself, not a
		// shell parent holding the pipes open.
		if fr.ExitCode == 0 {
			fmt.Fprintf(&b, "exec sleep %d\n", fr.SleepSeconds)
		} else {
			fmt.Fprintf(&b, "sleep %d\n", fr.SleepSeconds)
		}
	}
	fmt.Fprintf(&b, "exit %d\n", fr.ExitCode)

	if err := os.WriteFile(path, []byte(b.String()), 0o755); err != nil {
		t.Fatalf("launchtest: write %s: %v", path, err)
	}
	return path
}

// shellQuote single-quotes s for /bin/sh, escaping embedded quotes.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// InstallVersion writes a version manifest and an empty client archive
// under root in the standard game-directory layout, plus empty library
// artifacts for every manifest entry.
func InstallVersion(t *testing.T, root string, m launchkit.VersionManifest) launchkit.GameDirs {
	t.Helper()

	dirs := launchkit.GameDirs{Root: root}
	if err := os.MkdirAll(dirs.VersionDir(m.ID), 0o755); err != nil {
		t.Fatalf("launchtest: mkdir version dir: %v", err)
	}
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("launchtest: marshal manifest: %v", err)
	}
	if err := os.WriteFile(dirs.ManifestPath(m.ID), data, 0o644); err != nil {
		t.Fatalf("launchtest: write manifest: %v", err)
	}
	if err := os.WriteFile(dirs.ClientJar(m.ID), nil, 0o644); err != nil {
		t.Fatalf("launchtest: write client jar: %v", err)
	}
	for _, lib := range m.Libraries {
		p := filepath.Join(dirs.Libraries(), filepath.FromSlash(lib.ArtifactPath))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("launchtest: mkdir library dir: %v", err)
		}
		if err := os.WriteFile(p, nil, 0o644); err != nil {
			t.Fatalf("launchtest: write library: %v", err)
		}
	}
	return dirs
}
