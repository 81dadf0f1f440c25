package watch

import (
	"slices"
	"sync"
	"time"
)

// Debouncer collects paths and hands them to a callback once no new path
// has arrived for the configured interval.
type Debouncer struct {
	interval time.Duration
	fire     func(paths []string)

	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]struct{}
	stopped bool
}

// NewDebouncer creates a debouncer calling fire with the sorted set of paths
// seen during each burst.
func NewDebouncer(interval time.Duration, fire func(paths []string)) *Debouncer {
	return &Debouncer{
		interval: interval,
		fire:     fire,
		pending:  make(map[string]struct{}),
	}
}

// Trigger records path and restarts the quiet period.
func (d *Debouncer) Trigger(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.pending[path] = struct{}{}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.flush)
}

func (d *Debouncer) flush() {
	d.mu.Lock()
	if d.stopped || len(d.pending) == 0 {
		d.mu.Unlock()
		return
	}
	paths := make([]string, 0, len(d.pending))
	for p := range d.pending {
		paths = append(paths, p)
	}
	clear(d.pending)
	d.mu.Unlock()

	slices.Sort(paths)
	d.fire(paths)
}

// Stop cancels any pending callback. Trigger is a no-op afterwards.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	clear(d.pending)
}
