package adventure

import "time"

// Clock supplies the time used for every expiry and trigger comparison.
// Readings must be monotonic.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock. time.Now carries a monotonic reading,
// so durations computed from it are immune to wall-clock jumps.
type SystemClock struct{}

// NewSystemClock returns the real-time clock.
func NewSystemClock() SystemClock { return SystemClock{} }

// Now returns the current time.
func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock is a Clock that only moves when told to. Used by tests and by
// scripted runs that need deterministic timing.
// No locking: the engine is single-threaded.
type ManualClock struct {
	now time.Time
}

// NewManualClock creates a ManualClock starting at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current manual time.
func (c *ManualClock) Now() time.Time { return c.now }

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// Set jumps the clock to t.
func (c *ManualClock) Set(t time.Time) { c.now = t }
