// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"sync"
	"time"
)

// defaultFakeTime is the start of a FakeClock created from the zero time.
var defaultFakeTime = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

// FakeClock is a manually driven time source for formatters and dispatchers.
// Time moves only through Advance, or by the auto-step on every Now call.
type FakeClock struct {
	mu      sync.Mutex
	current time.Time
	step    time.Duration
}

// NewFakeClock returns a clock reading initial, or a fixed reference time when
// initial is zero.
func NewFakeClock(initial time.Time) *FakeClock {
	if initial.IsZero() {
		initial = defaultFakeTime
	}
	return &FakeClock{current: initial}
}

// Now returns the current reading, then applies the auto-step.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.current
	c.current = c.current.Add(c.step)
	return now
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}

// AutoStep makes every later Now call move the clock forward by d, so that a
// start and end reading around one call differ by exactly d.
func (c *FakeClock) AutoStep(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.step = d
}
