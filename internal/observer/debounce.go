package observer

import (
	"sync"
	"time"
)

// DefaultDebounce is the settle window for sidebar mutation bursts. Gmail
// emits dozens of mutation records per logical update; only the state after
// the last one matters.
const DefaultDebounce = 150 * time.Millisecond

// Debouncer coalesces a burst of triggers into a single trailing-edge
// callback, fired one interval after the last trigger. This is a debounce,
// not a throttle: acting on an intermediate DOM state risks reordering
// against a half-updated tree, so earlier triggers in a burst are dropped.
type Debouncer struct {
	interval time.Duration
	fn       func()

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

// NewDebouncer creates a debouncer; interval <= 0 uses DefaultDebounce.
func NewDebouncer(interval time.Duration, fn func()) *Debouncer {
	if interval <= 0 {
		interval = DefaultDebounce
	}
	return &Debouncer{interval: interval, fn: fn}
}

// Trigger schedules (or reschedules) the callback. Each call resets the
// pending timer, so the callback fires once per burst.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	fn := d.fn
	d.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Stop cancels any pending callback and rejects further triggers.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
