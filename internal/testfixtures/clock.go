package testfixtures

import (
	"sync"
	"time"
)

// Clock is a hand-driven time source. Booking and session timestamps in
// tests come from it, so assertions can pin exact created-at values.
type Clock struct {
	mu sync.Mutex
	at time.Time
}

// NewClock returns a clock frozen at start. The zero value selects the
// shared ReferenceTime so fixtures across packages agree on "today".
func NewClock(start time.Time) *Clock {
	if start.IsZero() {
		start = ReferenceTime()
	}
	return &Clock{at: start}
}

// Now returns the instant the clock is currently frozen at.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.at
}

// NowFunc adapts the clock to the now-function the services take as a
// dependency.
func (c *Clock) NowFunc() func() time.Time {
	if c == nil {
		return time.Now
	}
	return c.Now
}

// Set jumps the clock to the provided time.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	c.at = t
	c.mu.Unlock()
}

// Advance moves the clock forward by d, for example to expire a session,
// and returns the new time.
func (c *Clock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	c.at = c.at.Add(d)
	updated := c.at
	c.mu.Unlock()
	return updated
}

// Current reads the clock without advancing it.
func (c *Clock) Current() time.Time {
	return c.Now()
}
