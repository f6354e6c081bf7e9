package launchkit

import (
	"fmt"
	"sort"
	"strings"
)

// ValidateEnv rejects environment maps whose keys could corrupt the
// KEY=VALUE encoding passed to exec.Cmd.
func ValidateEnv(env map[string]string) error {
	for k, v := range env {
		if k == "" {
			return fmt.Errorf("env: empty key")
		}
		if strings.ContainsAny(k, "=\x00") {
			return fmt.Errorf("env: key %q contains '=' or null byte", k)
		}
		if strings.Contains(v, "\x00") {
			return fmt.Errorf("env: value for %q contains null byte", k)
		}
	}
	return nil
}

// MergeEnv appends extra entries to base in sorted key order, returning
// the combined KEY=VALUE slice for exec.Cmd.Env. Returns nil when extra
// is empty so the subprocess inherits the parent environment directly.
// Duplicated keys are appended, not replaced — exec.Cmd uses the last
// entry, so extra wins.
func MergeEnv(base []string, extra map[string]string) []string {
	if len(extra) == 0 {
		return nil
	}
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	merged := make([]string, 0, len(base)+len(extra))
	merged = append(merged, base...)
	for _, k := range keys {
		merged = append(merged, k+"="+extra[k])
	}
	return merged
}
