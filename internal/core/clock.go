package core

import (
	"sync"
	"time"
)

// Clock supplies monotonic timestamps for frame-rate independent motion.
// Timestamps are durations since an arbitrary fixed origin; only differences
// between them are meaningful.
type Clock interface {
	Now() time.Duration
}

// SystemClock reads the process monotonic clock.
type SystemClock struct {
	start time.Time
}

// NewSystemClock creates a clock whose origin is the moment of creation.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// Now returns the time elapsed since the clock was created.
func (c *SystemClock) Now() time.Duration {
	return time.Since(c.start)
}

// ManualClock is a Clock that only moves when told to.
// Used by tests and replays to drive the simulation deterministically.
type ManualClock struct {
	mu  sync.Mutex
	now time.Duration
}

// NewManualClock creates a manual clock starting at the given timestamp.
func NewManualClock(start time.Duration) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current manual timestamp.
func (c *ManualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += d
}

// Set jumps the clock to an absolute timestamp.
func (c *ManualClock) Set(now time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}
