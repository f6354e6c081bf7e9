package launchkit

import "time"

// Channel identifies which stream a process output line arrived on.
type Channel string

const (
	ChannelStdout Channel = "stdout"
	ChannelStderr Channel = "stderr"
)

// OutputRecord is one captured line of process output.
//
// Ordering is per-channel monotonic: records from the same channel appear
// in the order the process wrote them. Cross-channel interleaving is
// best-effort via Timestamp, not a strict guarantee.
type OutputRecord struct {
	Channel   Channel   `json:"channel"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}
