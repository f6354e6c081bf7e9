// Package feed provides composable channel middleware for filtering
// process output feeds. Consumers wrap a supervisor's Output() channel
// with these functions to select the records they need.
package feed

import (
	"context"
	"strings"

	"github.com/launchforge/launchkit"
)

// Channel returns a feed that only passes records from the given
// channels. Spawns a goroutine that exits when ctx is cancelled or ch
// is closed. The returned channel is closed when the goroutine exits.
func Channel(ctx context.Context, ch <-chan launchkit.OutputRecord, channels ...launchkit.Channel) <-chan launchkit.OutputRecord {
	allowed := make(map[launchkit.Channel]struct{}, len(channels))
	for _, c := range channels {
		allowed[c] = struct{}{}
	}
	return pipe(ctx, ch, func(rec launchkit.OutputRecord) bool {
		_, ok := allowed[rec.Channel]
		return ok
	})
}

// Stderr returns a feed that passes only stderr records — the channel
// the output classifier inspects.
func Stderr(ctx context.Context, ch <-chan launchkit.OutputRecord) <-chan launchkit.OutputRecord {
	return Channel(ctx, ch, launchkit.ChannelStderr)
}

// Matching returns a feed that passes only records whose text contains
// substr (case-insensitive).
func Matching(ctx context.Context, ch <-chan launchkit.OutputRecord, substr string) <-chan launchkit.OutputRecord {
	needle := strings.ToLower(substr)
	return pipe(ctx, ch, func(rec launchkit.OutputRecord) bool {
		return strings.Contains(strings.ToLower(rec.Text), needle)
	})
}

// pipe spawns a goroutine that reads from ch, passes records matching
// the predicate to the returned channel, and closes it when ch closes
// or ctx is cancelled. Callers must either drain the returned channel
// or cancel ctx to avoid goroutine leaks. Records accepted by the
// predicate may be silently dropped if ctx is cancelled mid-send.
func pipe(ctx context.Context, ch <-chan launchkit.OutputRecord, accept func(launchkit.OutputRecord) bool) <-chan launchkit.OutputRecord {
	out := make(chan launchkit.OutputRecord)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case rec, ok := <-ch:
				if !ok {
					return
				}
				if accept(rec) && !trySend(ctx, out, rec) {
					return
				}
			}
		}
	}()
	return out
}

// trySend sends rec on out, returning true on success.
// Returns false if ctx is cancelled before the send completes.
func trySend(ctx context.Context, out chan<- launchkit.OutputRecord, rec launchkit.OutputRecord) bool {
	select {
	case out <- rec:
		return true
	case <-ctx.Done():
		return false
	}
}
