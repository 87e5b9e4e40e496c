package dom

import (
	"context"
	"time"
)

// readySelector matches the Gmail main region; once present the page is
// usable even if the sidebar is still streaming in.
const readySelector = `div[role="main"], [data-app="Gmail"]`

// Provider produces a fresh snapshot of the host page on demand.
type Provider func(ctx context.Context) (*Snapshot, error)

// WaitReady polls the provider until the Gmail main region appears, then
// returns the snapshot that contained it. On timeout it returns the last
// snapshot seen (possibly nil) rather than an error: the host page not
// finishing its boot is a degraded state, not a failure.
func WaitReady(ctx context.Context, provide Provider, interval, timeout time.Duration) *Snapshot {
	if interval <= 0 {
		interval = 800 * time.Millisecond
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var last *Snapshot
	for {
		snap, err := provide(ctx)
		if err == nil && snap != nil {
			last = snap
			if snap.Find(readySelector).Length() > 0 {
				return snap
			}
		}
		select {
		case <-ctx.Done():
			return last
		case <-ticker.C:
		}
	}
}
