// Package ring provides the bounded output buffer shared by the
// supervisor's stdout and stderr readers.
package ring

import (
	"sync"

	"github.com/launchforge/launchkit"
)

// DefaultCapacity bounds the buffer when no capacity is configured.
const DefaultCapacity = 1000

// Ring is a fixed-capacity ring buffer of output records. Appends past
// capacity evict the oldest record. Safe for concurrent use by the two
// channel readers and status queries.
type Ring struct {
	mu    sync.Mutex
	recs  []launchkit.OutputRecord
	start int
	count int
}

// New returns a ring with the given capacity. Capacities < 1 fall back
// to DefaultCapacity.
func New(capacity int) *Ring {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Ring{recs: make([]launchkit.OutputRecord, capacity)}
}

// Append adds a record, evicting the oldest when full.
func (r *Ring) Append(rec launchkit.OutputRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.count < len(r.recs) {
		r.recs[(r.start+r.count)%len(r.recs)] = rec
		r.count++
		return
	}
	r.recs[r.start] = rec
	r.start = (r.start + 1) % len(r.recs)
}

// Len returns the number of buffered records.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Snapshot returns the buffered records, oldest first.
func (r *Ring) Snapshot() []launchkit.OutputRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]launchkit.OutputRecord, r.count)
	for i := 0; i < r.count; i++ {
		out[i] = r.recs[(r.start+i)%len(r.recs)]
	}
	return out
}
