package roomcore

import (
	"sync"
	"time"
)

// Debounced holds a trailing-edge copy of a value. Set stores a pending
// value; it becomes visible through Value only after delay has passed with
// no further Set calls.
type Debounced[T any] struct {
	mu       sync.Mutex
	delay    time.Duration
	value    T
	pending  T
	dirty    bool
	gen      uint64
	timer    *time.Timer
	onSettle func(T)
}

// NewDebounced returns a debouncer that starts settled at initial.
// onSettle, when set, runs outside the lock after each settle.
func NewDebounced[T any](initial T, delay time.Duration, onSettle func(T)) *Debounced[T] {
	return &Debounced[T]{delay: delay, value: initial, pending: initial, onSettle: onSettle}
}

// Set records v and restarts the settle timer.
func (d *Debounced[T]) Set(v T) {
	d.mu.Lock()
	d.pending = v
	d.dirty = true
	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.delay <= 0 {
		d.mu.Unlock()
		d.settle(gen)
		return
	}
	d.timer = time.AfterFunc(d.delay, func() { d.settle(gen) })
	d.mu.Unlock()
}

// Value returns the last settled value.
func (d *Debounced[T]) Value() T {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.value
}

// Pending reports whether a Set is waiting to settle.
func (d *Debounced[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dirty
}

// Flush settles a pending value right away. It reports whether there was one.
// The check and the promotion happen under one lock hold.
func (d *Debounced[T]) Flush() bool {
	d.mu.Lock()
	if !d.dirty {
		d.mu.Unlock()
		return false
	}
	v, cb := d.applyLocked()
	d.mu.Unlock()
	if cb != nil {
		cb(v)
	}
	return true
}

// Reset drops any pending value and sets both copies to v without
// calling onSettle.
func (d *Debounced[T]) Reset(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
	d.value = v
	d.pending = v
	d.dirty = false
}

// Stop cancels a pending settle. The pending value is discarded.
func (d *Debounced[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
	d.pending = d.value
	d.dirty = false
}

func (d *Debounced[T]) stopLocked() {
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// settle applies the pending value if gen is still current.
func (d *Debounced[T]) settle(gen uint64) bool {
	d.mu.Lock()
	if gen != d.gen || !d.dirty {
		d.mu.Unlock()
		return false
	}
	v, cb := d.applyLocked()
	d.mu.Unlock()
	if cb != nil {
		cb(v)
	}
	return true
}

// applyLocked promotes pending to value. Callers hold d.mu.
func (d *Debounced[T]) applyLocked() (T, func(T)) {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.value = d.pending
	d.dirty = false
	return d.value, d.onSettle
}
