//go:build !windows

package launcher

import (
	"context"

	"github.com/launchforge/launchkit"
)

// Run launches the request and drains the output feed until the session
// reaches a terminal state, invoking handler for each record. It returns
// the session's terminal error: nil for a clean exit,
// *launchkit.ExitError for a nonzero exit, launchkit.ErrTerminated after
// an explicit stop or kill.
//
// If the handler returns an error, the session is killed and that error
// is returned. Context cancellation also kills the session — Run is the
// one place a caller gets deadline semantics; the supervised process
// itself has no implicit timeout.
func Run(ctx context.Context, l *Launcher, req launchkit.LaunchRequest, handler func(launchkit.OutputRecord) error) error {
	if _, err := l.Launch(ctx, req); err != nil {
		return err
	}
	feed := l.Output()
	for {
		select {
		case rec, ok := <-feed:
			if !ok {
				return l.Wait()
			}
			if handler != nil {
				if err := handler(rec); err != nil {
					_, _ = l.Kill()
					_ = l.Wait()
					return err
				}
			}

		case <-ctx.Done():
			_, _ = l.Kill()
			_ = l.Wait()
			return ctx.Err()
		}
	}
}
