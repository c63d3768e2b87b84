package store

import (
	"context"
	"sync"
	"time"
)

// Debouncer runs fn once delay has elapsed without another Schedule call.
// At most one call is ever pending: each Schedule replaces the previous one.
type Debouncer struct {
	delay time.Duration
	fn    func(context.Context) error

	mu       sync.Mutex
	idle     *sync.Cond
	timer    *time.Timer
	gen      uint64
	pending  bool
	inflight int
}

// NewDebouncer returns a debouncer that calls fn after delay of quiet. Calls
// fired by the timer get a background context and their error is dropped.
func NewDebouncer(delay time.Duration, fn func(context.Context) error) *Debouncer {
	d := &Debouncer{delay: delay, fn: fn}
	d.idle = sync.NewCond(&d.mu)
	return d
}

// Schedule (re)starts the quiet period.
func (d *Debouncer) Schedule() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = true
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	// a timer that lost the race against Stop must not run a superseded call
	if gen != d.gen || !d.pending {
		d.mu.Unlock()
		return
	}
	d.pending = false
	d.timer = nil
	d.inflight++
	d.mu.Unlock()

	defer d.done()
	_ = d.fn(context.Background())
}

func (d *Debouncer) done() {
	d.mu.Lock()
	d.inflight--
	d.idle.Broadcast()
	d.mu.Unlock()
}

// Flush runs the pending call immediately on the caller's goroutine, then
// waits for any call the timer already started. It returns the error of the
// call it ran itself.
func (d *Debouncer) Flush(ctx context.Context) error {
	var err error
	if d.Cancel() {
		err = d.fn(ctx)
	}
	d.wait()
	return err
}

// wait blocks until no timer-fired call is running.
func (d *Debouncer) wait() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for d.inflight > 0 {
		d.idle.Wait()
	}
}

// Cancel drops the pending call, reporting whether there was one. A call the
// timer already started is not affected.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.pending {
		return false
	}
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = false
	d.gen++
	return true
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}
