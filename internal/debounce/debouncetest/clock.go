// Package debouncetest provides a manually advanced clock for testing code
// built on the debounce package.
package debouncetest

import (
	"sync"
	"time"

	"github.com/phrazzld/lexsuggest/internal/debounce"
)

// FakeClock is a debounce.Clock whose time only moves when Advance is called.
// Due callbacks run synchronously inside Advance, in deadline order.
type FakeClock struct {
	mu      sync.Mutex
	elapsed time.Duration
	timers  []*fakeTimer
}

type fakeTimer struct {
	clock   *FakeClock
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

// NewFakeClock returns a clock at elapsed time zero.
func NewFakeClock() *FakeClock {
	return &FakeClock{}
}

// AfterFunc implements debounce.Clock.
func (c *FakeClock) AfterFunc(d time.Duration, f func()) debounce.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := &fakeTimer{clock: c, at: c.elapsed + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

// Elapsed returns the time advanced so far.
func (c *FakeClock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elapsed
}

// Active returns the number of timers that have neither fired nor been stopped.
func (c *FakeClock) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, running every callback that becomes
// due. Callbacks may schedule new timers; those fire too if due within d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.elapsed + d

	for {
		next := c.nextDueLocked(target)
		if next == nil {
			break
		}
		c.elapsed = next.at
		next.fired = true

		c.mu.Unlock()
		next.f()
		c.mu.Lock()
	}

	c.elapsed = target
	c.mu.Unlock()
}

func (c *FakeClock) nextDueLocked(target time.Duration) *fakeTimer {
	var next *fakeTimer
	for _, t := range c.timers {
		if t.stopped || t.fired || t.at > target {
			continue
		}
		if next == nil || t.at < next.at {
			next = t
		}
	}
	return next
}

// Stop implements debounce.Timer.
func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}
