package testutil

import (
	"sync"
	"time"
)

// FrozenClock is a thread-safe wall clock pinned to a fixed instant.
//
// Date variables, sign-date fallbacks and business-day math all read the
// clock, so freezing it makes transformer output reproducible. Advance
// moves the instant for tests that cross month or year boundaries.
type FrozenClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFrozenClock creates a clock pinned to the given instant.
func NewFrozenClock(at time.Time) *FrozenClock {
	return &FrozenClock{now: at}
}

// Now returns the pinned instant. Pass as engine.WithClock(c.Now).
func (c *FrozenClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d and returns the new instant.
func (c *FrozenClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

// Set pins the clock to a new instant.
func (c *FrozenClock) Set(at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = at
}
