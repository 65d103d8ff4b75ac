// Package timer provides a polling delay primitive driven by its owner's tick.
// A Timer never schedules anything on its own; it only advances when Update is
// called, which keeps gravity and input throttling deterministic under test.
package timer

import "time"

// Timer fires an optional callback once its duration has elapsed.
// Repeating timers re-arm themselves immediately after firing.
type Timer struct {
	duration time.Duration
	repeat   bool
	callback func()

	elapsed time.Duration
	active  bool
}

// New creates an inactive timer. callback may be nil.
func New(duration time.Duration, repeat bool, callback func()) *Timer {
	return &Timer{
		duration: duration,
		repeat:   repeat,
		callback: callback,
	}
}

// Activate marks the timer as running and restarts its elapsed window.
func (t *Timer) Activate() {
	t.active = true
	t.elapsed = 0
}

// Deactivate stops the timer without firing. Calling it on an inactive timer is a no-op.
func (t *Timer) Deactivate() {
	t.active = false
	t.elapsed = 0
}

// Update advances the timer by dt. When the duration has elapsed the callback
// runs, the timer deactivates, and a repeating timer activates again with a
// fresh window. Surplus time past the deadline is not carried over.
func (t *Timer) Update(dt time.Duration) {
	if !t.active {
		return
	}

	t.elapsed += dt
	if t.elapsed < t.duration {
		return
	}

	t.Deactivate()

	if t.callback != nil {
		t.callback()
	}

	// The callback may have re-armed the timer itself.
	if t.repeat && !t.active {
		t.Activate()
	}
}

// Active reports whether the timer is running.
func (t *Timer) Active() bool {
	return t.active
}

// Repeating reports whether the timer re-arms after firing.
func (t *Timer) Repeating() bool {
	return t.repeat
}

// Elapsed returns the time accumulated since the last activation.
func (t *Timer) Elapsed() time.Duration {
	return t.elapsed
}

// Remaining returns the time left before the timer fires, or zero when inactive.
func (t *Timer) Remaining() time.Duration {
	if !t.active || t.elapsed >= t.duration {
		return 0
	}
	return t.duration - t.elapsed
}

func (t *Timer) Duration() time.Duration {
	return t.duration
}

// SetDuration changes the firing threshold. A running timer keeps its elapsed time.
func (t *Timer) SetDuration(d time.Duration) {
	t.duration = d
}
