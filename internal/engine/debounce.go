package engine

import (
	"sync"
	"time"
)

// Debouncer runs the most recently scheduled task once no new task has
// been scheduled for the configured delay. Every Schedule call starts a new
// generation; a task can check IsCurrent before publishing its result so a
// superseded run never overwrites a newer one.
type Debouncer struct {
	mu         sync.Mutex
	delay      time.Duration
	timer      *time.Timer
	generation uint64
	pending    bool
}

// NewDebouncer creates a debouncer with the given delay.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Schedule cancels any pending task and arranges for fn to run after the
// delay. fn receives the generation it was scheduled under.
func (d *Debouncer) Schedule(fn func(generation uint64)) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.generation++
	gen := d.generation
	d.pending = true
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if d.generation == gen {
			d.pending = false
		}
		d.mu.Unlock()
		fn(gen)
	})
	return gen
}

// Cancel drops the pending task, if any, and invalidates running ones.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.generation++
	d.pending = false
}

// IsCurrent reports whether generation is the latest scheduled one.
func (d *Debouncer) IsCurrent(generation uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.generation == generation
}

// Pending reports whether a scheduled task has not started yet.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}
