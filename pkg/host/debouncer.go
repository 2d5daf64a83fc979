package host

import (
	"sync"
	"time"
)

// DefaultDebounce is the delay used for color changes.
const DefaultDebounce = 50 * time.Millisecond

// Debouncer coalesces bursts of triggers into one run of its effect,
// delay after the last trigger. The effect runs outside the lock.
type Debouncer struct {
	delay  time.Duration
	effect func()

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	pending bool
}

// NewDebouncer creates a debouncer. A non-positive delay uses DefaultDebounce.
func NewDebouncer(delay time.Duration, effect func()) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay, effect: effect}
}

// Trigger schedules the effect, cancelling any run still waiting.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	d.pending = true
	if d.timer != nil {
		d.timer.Stop()
	}
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	// A timer that lost the race with Trigger, Flush or Stop is stale.
	if gen != d.gen || !d.pending {
		d.mu.Unlock()
		return
	}
	d.pending = false
	d.mu.Unlock()

	d.effect()
}

// Flush runs a pending effect now. It reports whether one was pending.
func (d *Debouncer) Flush() bool {
	if !d.cancel() {
		return false
	}
	d.effect()
	return true
}

// Stop drops a pending effect without running it.
func (d *Debouncer) Stop() {
	d.cancel()
}

// Pending reports whether an effect is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

func (d *Debouncer) cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	was := d.pending
	d.pending = false
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	return was
}
