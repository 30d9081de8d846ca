package preview

import (
	"sync"
	"time"
)

// DefaultInterval is the quiet period between the first edit and a render.
const DefaultInterval = time.Second

// Debouncer coalesces text updates. The first Update after a render arms a
// timer; later updates only replace the pending text. When the timer fires the
// callback receives the latest text, unless it equals the last text rendered.
type Debouncer struct {
	mu       sync.Mutex
	interval time.Duration
	fn       func(text string)
	timer    *time.Timer
	pending  string
	armed    bool
	last     string
	rendered bool
	stopped  bool
}

// NewDebouncer returns a debouncer calling fn at most once per interval.
func NewDebouncer(interval time.Duration, fn func(text string)) *Debouncer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Debouncer{interval: interval, fn: fn}
}

// Update records text and arms the timer if it is idle.
func (d *Debouncer) Update(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.pending = text
	if d.armed {
		return
	}
	d.armed = true
	d.timer = time.AfterFunc(d.interval, d.fire)
}

// Flush renders the pending text immediately.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()
	d.fire()
}

// Stop cancels the pending render and ignores further updates.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	d.armed = false
	if d.timer != nil {
		d.timer.Stop()
	}
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if !d.armed || d.stopped {
		d.mu.Unlock()
		return
	}
	d.armed = false
	text := d.pending
	if d.rendered && text == d.last {
		d.mu.Unlock()
		return
	}
	d.last = text
	d.rendered = true
	fn := d.fn
	d.mu.Unlock()

	if fn != nil {
		fn(text)
	}
}
