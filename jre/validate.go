package jre

import "fmt"

// Descriptor is the slice of a version manifest the validator consumes.
type Descriptor struct {
	// VersionID names the game version being validated against.
	VersionID string

	// MinJava is the minimum runtime major version the game version
	// requires. Zero means no requirement beyond MinLaunchVersion.
	MinJava int
}

// Validated pairs an accepted runtime with the compatibility flags that
// must be merged into the JVM argument list.
type Validated struct {
	Runtime    Candidate
	ExtraFlags []string
}

// IncompatibilityError is the typed, expected failure for a runtime that
// cannot launch a given version. Distinguishable from malformed-input
// errors via errors.As.
type IncompatibilityError struct {
	Candidate Candidate
	Required  int
}

func (e *IncompatibilityError) Error() string {
	return fmt.Sprintf("jre: runtime %s %d at %s is incompatible: version %d or newer required",
		e.Candidate.Vendor, e.Candidate.Version, e.Candidate.Path, e.Required)
}

// moduleSystemFlags are required for runtimes with module-system
// semantics (version 9 and newer) so the game's reflective access keeps
// working. The set is fixed; the builder merges it into the JVM args.
var moduleSystemFlags = []string{
	"--add-exports=java.base/sun.security.util=ALL-UNNAMED",
	"--add-opens=java.base/java.lang=ALL-UNNAMED",
	"--add-opens=java.base/java.util=ALL-UNNAMED",
}

// moduleSystemMinVersion is the first runtime major with module-system
// semantics.
const moduleSystemMinVersion = 9

// Validate checks a runtime candidate against a version descriptor.
// It is a pure function. Expected incompatibilities are returned as a
// *IncompatibilityError; only malformed inputs produce other errors.
func Validate(c Candidate, d Descriptor) (Validated, error) {
	if c.Path == "" {
		return Validated{}, fmt.Errorf("jre: validate: candidate has no path")
	}
	if c.Version < 1 {
		return Validated{}, fmt.Errorf("jre: validate: candidate %s has no parsed version", c.Path)
	}
	if d.MinJava < 0 {
		return Validated{}, fmt.Errorf("jre: validate: negative minimum version %d", d.MinJava)
	}

	required := MinLaunchVersion
	if d.MinJava > required {
		required = d.MinJava
	}
	if c.Version < required {
		return Validated{}, &IncompatibilityError{Candidate: c, Required: required}
	}

	v := Validated{Runtime: c}
	if c.Version >= moduleSystemMinVersion {
		v.ExtraFlags = append([]string(nil), moduleSystemFlags...)
	}
	return v, nil
}
