package engine

import (
	"sync"
	"time"

	"github.com/bep/debounce"
)

// DefaultDebounce is the delay used by interactive callers between the last edit and a recompute
const DefaultDebounce = 750 * time.Millisecond

// Debouncer runs fn once, delay after the most recent Trigger
type Debouncer struct {
	delay     time.Duration
	fn        func()
	debounced func(func())

	mu      sync.Mutex
	pending bool
}

// NewDebouncer creates a Debouncer. A non-positive delay uses DefaultDebounce.
func NewDebouncer(delay time.Duration, fn func()) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay, fn: fn, debounced: debounce.New(delay)}
}

// Trigger (re)starts the timer
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	d.pending = true
	d.mu.Unlock()
	d.debounced(d.fire)
}

// Cancel drops the pending call. It reports whether a call was pending.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	was := d.pending
	d.pending = false
	d.mu.Unlock()
	if was {
		// replaces the pending fire and stops its timer
		d.debounced(func() {})
	}
	return was
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if !d.pending {
		d.mu.Unlock()
		return
	}
	d.pending = false
	d.mu.Unlock()
	d.fn()
}
