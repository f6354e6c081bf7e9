// Package launchkit provides the core orchestration for launching and
// supervising managed-runtime game processes.
//
// launchkit discovers compatible Java runtimes, validates launch
// preconditions, assembles process invocation arguments, spawns and
// supervises the resulting external process, and classifies its output
// into structured lifecycle and diagnostic events.
//
// # Core Types
//
//   - [LaunchRequest] — immutable description of a launch (account, version, memory, extra args)
//   - [Account] — player identity consumed from the account store
//   - [VersionManifest] — version descriptor consumed from the version store
//   - [OutputRecord] — one captured line of process output
//   - [State] — launch session lifecycle state
//   - [Handlers] — typed callbacks for lifecycle and diagnostic events
//
// # Vocabulary
//
// The root package defines the shared vocabulary for all subpackages:
// data types, lifecycle states, typed events, and error kinds. The
// components live in subpackages:
//
//   - jre — runtime discovery and compatibility validation
//   - args — invocation argument assembly
//   - supervisor — process spawning and supervision
//   - diagnose — output classification
//   - launcher — orchestrator façade tying the above together
//
// # Quick Start
//
//	l := launcher.New(launchkit.GameDirs{Root: "/home/user/.launchkit"})
//	l.DiscoverRuntimes(ctx)
//	pid, err := l.Launch(ctx, launchkit.LaunchRequest{
//	    Account:   launchkit.Account{Username: "Steve", Type: launchkit.AccountOffline},
//	    VersionID: "1.20.4",
//	    MemoryMB:  2048,
//	})
//	if err != nil { log.Fatal(err) }
//	for rec := range l.Output() {
//	    fmt.Println(rec.Text)
//	}
package launchkit
