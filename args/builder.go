// Package args assembles ordered process-invocation arguments for a
// launch. Argument templates are token lists resolved positionally — no
// intermediate template strings — so every placeholder keeps its exact
// position in the final argument vector.
//
// Build is pure and deterministic: identical inputs always yield
// identical ordered argument lists. The single filesystem side effect
// (creating the natives directory) lives in [EnsureNatives].
package args

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/launchforge/launchkit"
	"github.com/launchforge/launchkit/jre"
)

// DefaultMinHeapDivisor is the default ratio between max and min heap.
// The divisor is an explicit policy knob rather than a hard-coded value;
// see DESIGN.md for the rationale.
const DefaultMinHeapDivisor = 2

// offlineAccessToken fills the access-token slot for offline accounts.
const offlineAccessToken = "0"

// offlineMarkerFlag is appended to the game-argument list for offline
// accounts.
const offlineMarkerFlag = "--demo"

// HeapPolicy controls how the minimum heap is derived from the requested
// maximum.
type HeapPolicy struct {
	// MinDivisor divides the requested memory to produce the minimum
	// heap. Values < 1 fall back to DefaultMinHeapDivisor.
	MinDivisor int
}

func (p HeapPolicy) divisor() int {
	if p.MinDivisor >= 1 {
		return p.MinDivisor
	}
	return DefaultMinHeapDivisor
}

// Invocation holds the two ordered argument lists of a launch:
// process-level JVM flags, and the entry point followed by game flags.
type Invocation struct {
	JVMArgs  []string
	GameArgs []string
}

// Argv returns the full argument vector passed to the runtime binary.
func (inv Invocation) Argv() []string {
	argv := make([]string, 0, len(inv.JVMArgs)+len(inv.GameArgs))
	argv = append(argv, inv.JVMArgs...)
	argv = append(argv, inv.GameArgs...)
	return argv
}

// tokenKind enumerates the placeholder vocabulary. Literal tokens pass
// through unchanged; every other kind resolves to zero or more arguments
// at its template position.
type tokenKind int

const (
	tokenLiteral tokenKind = iota
	tokenHeapMin
	tokenHeapMax
	tokenNatives
	tokenCompatFlags
	tokenExtraJVM
	tokenClasspath
	tokenMainClass
	tokenUsername
	tokenUUID
	tokenAccessToken
	tokenVersionID
	tokenGameDir
	tokenAssetsDir
	tokenAssetsIndex
	tokenExtraGame
	tokenOfflineMarker
)

type token struct {
	kind tokenKind
	lit  string
}

func lit(s string) token { return token{kind: tokenLiteral, lit: s} }

var jvmTemplate = []token{
	{kind: tokenHeapMin},
	{kind: tokenHeapMax},
	{kind: tokenNatives},
	{kind: tokenCompatFlags},
	{kind: tokenExtraJVM},
	lit("-cp"),
	{kind: tokenClasspath},
}

var gameTemplate = []token{
	{kind: tokenMainClass},
	lit("--username"), {kind: tokenUsername},
	lit("--version"), {kind: tokenVersionID},
	lit("--gameDir"), {kind: tokenGameDir},
	lit("--assetsDir"), {kind: tokenAssetsDir},
	lit("--assetIndex"), {kind: tokenAssetsIndex},
	lit("--uuid"), {kind: tokenUUID},
	lit("--accessToken"), {kind: tokenAccessToken},
	{kind: tokenExtraGame},
	{kind: tokenOfflineMarker},
}

// buildContext carries the resolved values each placeholder draws from.
type buildContext struct {
	req      launchkit.LaunchRequest
	runtime  jre.Validated
	manifest launchkit.VersionManifest
	dirs     launchkit.GameDirs
	policy   HeapPolicy

	uuid        string
	accessToken string
	offline     bool
}

// Build assembles the two ordered argument lists for a launch. Pure:
// identical (request, runtime, manifest) inputs yield identical output.
// Errors are reserved for malformed inputs — account completeness and
// runtime compatibility are checked upstream.
func Build(req launchkit.LaunchRequest, rt jre.Validated, m launchkit.VersionManifest, dirs launchkit.GameDirs, policy HeapPolicy) (Invocation, error) {
	if req.MemoryMB <= 0 {
		return Invocation{}, fmt.Errorf("args: memory must be positive, got %d MB", req.MemoryMB)
	}
	if m.MainClass == "" {
		return Invocation{}, fmt.Errorf("args: manifest %q has no main class", m.ID)
	}
	if req.Account.Username == "" {
		return Invocation{}, fmt.Errorf("args: account has no username")
	}

	bc := buildContext{
		req:      req,
		runtime:  rt,
		manifest: m,
		dirs:     dirs,
		policy:   policy,
	}
	if req.Account.Type == launchkit.AccountOffline {
		bc.offline = true
		bc.uuid = launchkit.OfflineUUID(req.Account.Username).String()
		bc.accessToken = offlineAccessToken
	} else {
		if req.Account.UUID == "" || req.Account.AccessToken == "" {
			return Invocation{}, fmt.Errorf("args: %s account %q lacks uuid or access token",
				req.Account.Type, req.Account.Username)
		}
		bc.uuid = req.Account.UUID
		bc.accessToken = req.Account.AccessToken
	}

	return Invocation{
		JVMArgs:  resolveTemplate(jvmTemplate, bc),
		GameArgs: resolveTemplate(gameTemplate, bc),
	}, nil
}

func resolveTemplate(template []token, bc buildContext) []string {
	var out []string
	for _, t := range template {
		out = append(out, resolve(t, bc)...)
	}
	return out
}

func resolve(t token, bc buildContext) []string {
	switch t.kind {
	case tokenLiteral:
		return []string{t.lit}
	case tokenHeapMin:
		min := bc.req.MemoryMB / bc.policy.divisor()
		if min < 1 {
			min = 1
		}
		return []string{"-Xms" + strconv.Itoa(min) + "M"}
	case tokenHeapMax:
		return []string{"-Xmx" + strconv.Itoa(bc.req.MemoryMB) + "M"}
	case tokenNatives:
		return []string{"-Djava.library.path=" + bc.dirs.NativesDir(bc.manifest.ID)}
	case tokenCompatFlags:
		return bc.runtime.ExtraFlags
	case tokenExtraJVM:
		return bc.req.ExtraJVMArgs
	case tokenClasspath:
		return []string{classpath(bc.manifest, bc.dirs)}
	case tokenMainClass:
		return []string{bc.manifest.MainClass}
	case tokenUsername:
		return []string{bc.req.Account.Username}
	case tokenUUID:
		return []string{bc.uuid}
	case tokenAccessToken:
		return []string{bc.accessToken}
	case tokenVersionID:
		return []string{bc.manifest.ID}
	case tokenGameDir:
		return []string{bc.dirs.Root}
	case tokenAssetsDir:
		return []string{bc.dirs.Assets()}
	case tokenAssetsIndex:
		return []string{bc.manifest.AssetsIndexID}
	case tokenExtraGame:
		return bc.req.ExtraGameArgs
	case tokenOfflineMarker:
		if bc.offline {
			return []string{offlineMarkerFlag}
		}
		return nil
	default:
		return nil
	}
}

// classpath joins library artifact paths in manifest order with the
// platform path separator, followed by the main client archive.
func classpath(m launchkit.VersionManifest, dirs launchkit.GameDirs) string {
	entries := make([]string, 0, len(m.Libraries)+1)
	for _, l := range m.Libraries {
		entries = append(entries, filepath.Join(dirs.Libraries(), filepath.FromSlash(l.ArtifactPath)))
	}
	entries = append(entries, dirs.ClientJar(m.ID))
	return strings.Join(entries, string(os.PathListSeparator))
}

// EnsureNatives creates the per-version natives directory if absent and
// returns its path.
func EnsureNatives(dirs launchkit.GameDirs, versionID string) (string, error) {
	path := dirs.NativesDir(versionID)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", fmt.Errorf("args: create natives dir: %w", err)
	}
	return path, nil
}
