package launchkit

// LaunchRequest describes one launch. Requests are treated as immutable
// once submitted — the orchestrator deep-copies the request on entry so
// later caller mutations cannot affect an in-flight launch.
type LaunchRequest struct {
	// Account is the player identity to launch as.
	Account Account `json:"account"`

	// VersionID selects the installed game version to launch.
	VersionID string `json:"version_id"`

	// MemoryMB is the maximum heap size in megabytes.
	MemoryMB int `json:"memory_mb"`

	// ExtraJVMArgs are appended to the computed process-level flags.
	ExtraJVMArgs []string `json:"extra_jvm_args,omitempty"`

	// ExtraGameArgs are appended to the computed game flags.
	ExtraGameArgs []string `json:"extra_game_args,omitempty"`

	// Env is extra environment for the spawned process, merged over the
	// parent environment.
	Env map[string]string `json:"env,omitempty"`
}

// Clone returns a deep copy of the request, cloning the argument slices
// and env map.
func (r LaunchRequest) Clone() LaunchRequest {
	out := r
	if r.ExtraJVMArgs != nil {
		out.ExtraJVMArgs = append([]string(nil), r.ExtraJVMArgs...)
	}
	if r.ExtraGameArgs != nil {
		out.ExtraGameArgs = append([]string(nil), r.ExtraGameArgs...)
	}
	if r.Env != nil {
		out.Env = make(map[string]string, len(r.Env))
		for k, v := range r.Env {
			out.Env[k] = v
		}
	}
	return out
}
