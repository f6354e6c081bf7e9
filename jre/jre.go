// Package jre discovers and validates managed-runtime installations.
//
// Discovery scans a fixed, platform-specific set of candidate locations
// plus the system PATH, probes each candidate binary with its version
// flag under a bounded-parallelism worker pool, and fingerprints the
// banner text into [Candidate] values. A failed or unparseable probe is
// excluded silently and never aborts the scan.
//
// Validation ([Validate]) is a pure check of one candidate against a
// version descriptor; expected incompatibilities are reported as a typed
// *IncompatibilityError, never a panic.
package jre

import "fmt"

// Kind distinguishes full development kits from bare runtime environments.
type Kind string

const (
	KindJDK Kind = "jdk"
	KindJRE Kind = "jre"
)

// Known vendor names, in fingerprint priority order.
const (
	VendorOpenJDK   = "OpenJDK"
	VendorOracle    = "Oracle"
	VendorAdoptium  = "Adoptium"
	VendorMicrosoft = "Microsoft"
	VendorZulu      = "Zulu"
	VendorCorretto  = "Corretto"
	VendorUnknown   = "Unknown"
)

// MinLaunchVersion is the floor below which no runtime is usable for
// launch regardless of the version descriptor.
const MinLaunchVersion = 8

// Candidate is a discovered runtime executable, fingerprinted from its
// version banner. Candidates are only emitted when a version number could
// be parsed from the banner.
type Candidate struct {
	// Path is the absolute path of the runtime binary.
	Path string `json:"path"`

	// Version is the major version, e.g. 8 for "1.8.0_301", 17 for "17.0.2".
	Version int `json:"version"`

	// Vendor is the first matching known vendor keyword, or VendorUnknown.
	Vendor string `json:"vendor"`

	// Bitness is 32 or 64. Defaults to 64 when the banner doesn't say.
	Bitness int `json:"bitness"`

	// Kind is KindJDK or KindJRE. "jdk" in the banner wins over "jre";
	// default is KindJRE.
	Kind Kind `json:"kind"`

	// Valid reports whether the candidate meets MinLaunchVersion.
	Valid bool `json:"valid"`
}

func (c Candidate) String() string {
	return fmt.Sprintf("%s %d (%d-bit %s) at %s", c.Vendor, c.Version, c.Bitness, c.Kind, c.Path)
}
