package jre

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Default discovery configuration values.
const (
	defaultProbeTimeout = 5 * time.Second
	defaultParallelism  = 4
)

type discoverConfig struct {
	timeout     time.Duration
	parallelism int
	log         *zap.Logger
	roots       []string
	binaries    []string
	pathLookup  bool
	platform    bool
}

// DiscoverOption configures a discovery scan.
type DiscoverOption func(*discoverConfig)

// WithProbeTimeout sets the per-probe timeout. A hung candidate is cut
// off independently and never stalls the scan. Values <= 0 are ignored.
func WithProbeTimeout(d time.Duration) DiscoverOption {
	return func(c *discoverConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithParallelism bounds the number of concurrent probes.
// Values <= 0 are ignored.
func WithParallelism(n int) DiscoverOption {
	return func(c *discoverConfig) {
		if n > 0 {
			c.parallelism = n
		}
	}
}

// WithLogger sets the scan logger. Defaults to zap.NewNop().
func WithLogger(log *zap.Logger) DiscoverOption {
	return func(c *discoverConfig) {
		if log != nil {
			c.log = log
		}
	}
}

// WithInstallRoots adds install roots whose immediate subdirectories are
// enumerated as runtime installations, in addition to the platform list.
func WithInstallRoots(roots ...string) DiscoverOption {
	return func(c *discoverConfig) {
		c.roots = append(c.roots, roots...)
	}
}

// WithBinaries adds explicit candidate binaries to the scan.
func WithBinaries(paths ...string) DiscoverOption {
	return func(c *discoverConfig) {
		c.binaries = append(c.binaries, paths...)
	}
}

// WithoutPathLookup disables the system-PATH lookup of the java binary.
func WithoutPathLookup() DiscoverOption {
	return func(c *discoverConfig) {
		c.pathLookup = false
	}
}

// WithoutPlatformLocations restricts the scan to explicitly configured
// roots and binaries. Used by tests to keep scans hermetic.
func WithoutPlatformLocations() DiscoverOption {
	return func(c *discoverConfig) {
		c.platform = false
	}
}

// Discover locates runtime installations and fingerprints each candidate
// binary by probing it with the version-query flag. Probes run
// concurrently with bounded parallelism and independent per-probe
// timeouts. Failed or unparseable probes are excluded silently.
//
// Results are deduplicated by (version, path) and ranked descending by
// version. An empty result is valid — callers must handle "no runtime"
// at launch time.
func Discover(ctx context.Context, opts ...DiscoverOption) []Candidate {
	cfg := discoverConfig{
		timeout:     defaultProbeTimeout,
		parallelism: defaultParallelism,
		log:         zap.NewNop(),
		pathLookup:  true,
		platform:    true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	paths := collectCandidatePaths(cfg)
	cfg.log.Debug("runtime scan starting",
		zap.Int("candidates", len(paths)),
		zap.Duration("probe_timeout", cfg.timeout))

	var (
		mu         sync.Mutex
		candidates []Candidate
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.parallelism)
	for _, path := range paths {
		path := path
		g.Go(func() error {
			c, err := Probe(gctx, path, cfg.timeout)
			if err != nil {
				// Per-candidate probe failures never abort the scan.
				cfg.log.Debug("probe excluded", zap.String("path", path), zap.Error(err))
				return nil
			}
			mu.Lock()
			candidates = append(candidates, c)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // probe goroutines always return nil

	return rank(candidates)
}

// Probe fingerprints the runtime binary at path by invoking it with the
// version-query flag under the given timeout. The JVM prints its banner
// on stderr, so stdout and stderr are read combined.
func Probe(ctx context.Context, path string, timeout time.Duration) (Candidate, error) {
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, runErr := exec.CommandContext(ctx, path, "-version").CombinedOutput()
	c, ok := parseBanner(string(out))
	if !ok {
		if runErr != nil {
			return Candidate{}, fmt.Errorf("jre: probe %s: %w", path, runErr)
		}
		return Candidate{}, fmt.Errorf("jre: probe %s: unparseable banner", path)
	}
	c.Path = path
	return c, nil
}

// collectCandidatePaths assembles the deduplicated list of binaries to
// probe: static platform locations, enumerated install roots (each
// immediate subdirectory stands in for one wildcard match), explicitly
// configured binaries, and the system-PATH lookup.
func collectCandidatePaths(cfg discoverConfig) []string {
	seen := make(map[string]struct{})
	var paths []string
	add := func(p string) {
		if p == "" {
			return
		}
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		if _, dup := seen[p]; dup {
			return
		}
		if info, err := os.Stat(p); err != nil || info.IsDir() {
			return
		}
		seen[p] = struct{}{}
		paths = append(paths, p)
	}

	roots := cfg.roots
	binaries := cfg.binaries
	if cfg.platform {
		roots = append(roots, platformInstallRoots()...)
		binaries = append(binaries, platformBinaries()...)
	}

	for _, bin := range binaries {
		add(bin)
	}
	for _, root := range roots {
		entries, err := os.ReadDir(root)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			add(installBinary(filepath.Join(root, entry.Name())))
		}
	}
	if cfg.pathLookup {
		if p, err := exec.LookPath(javaBinaryName); err == nil {
			add(p)
		}
	}
	return paths
}

// rank deduplicates by (version, path) and orders candidates by
// descending version, then ascending path for determinism.
func rank(candidates []Candidate) []Candidate {
	type key struct {
		version int
		path    string
	}
	seen := make(map[key]struct{}, len(candidates))
	out := candidates[:0]
	for _, c := range candidates {
		k := key{c.Version, c.Path}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Version != out[j].Version {
			return out[i].Version > out[j].Version
		}
		return out[i].Path < out[j].Path
	})
	return out
}
