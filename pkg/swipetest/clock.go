// Package swipetest provides deterministic test doubles for the swipe
// navigation system: a fake clock, a scripted configuration source and an
// in-memory dashboard document shaped like the host application.
package swipetest

import (
	"sync"
	"time"

	"github.com/MarkGodwin/hass-swipe-navigation/pkg/clock"
)

// FakeClock is a manually advanced clock.Clock. Timer callbacks run
// synchronously on the goroutine calling Advance, in due order, with the
// clock reading each timer's due time while it runs. Callbacks may
// schedule further timers; those fire within the same Advance when due.
type FakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
	seq    int
}

type fakeTimer struct {
	clock   *FakeClock
	when    time.Time
	seq     int
	fn      func()
	stopped bool
	fired   bool
}

// NewFakeClock returns a clock starting at a fixed epoch.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) AfterFunc(d time.Duration, fn func()) clock.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, when: c.now.Add(d), seq: c.seq, fn: fn}
	c.seq++
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward by d, firing every timer due on the way
// in (time, schedule) order.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.fireThroughLocked(c.now.Add(d))
}

// Set moves the clock to an exact time. A forward move fires timers due on
// the way, like Advance; a backward move only rewinds the reading.
func (c *FakeClock) Set(to time.Time) {
	c.mu.Lock()
	if to.Before(c.now) {
		c.now = to
		c.mu.Unlock()
		return
	}
	c.fireThroughLocked(to)
}

// fireThroughLocked fires every timer due by target, then leaves the clock
// at target. Takes c.mu held and releases it.
func (c *FakeClock) fireThroughLocked(target time.Time) {
	for {
		t := c.nextDueLocked(target)
		if t == nil {
			break
		}
		if t.when.After(c.now) {
			c.now = t.when
		}
		t.fired = true
		fn := t.fn
		c.mu.Unlock()
		fn()
		c.mu.Lock()
	}
	c.now = target
	c.mu.Unlock()
}

func (c *FakeClock) nextDueLocked(target time.Time) *fakeTimer {
	var best *fakeTimer
	for _, t := range c.timers {
		if t.stopped || t.fired || t.when.After(target) {
			continue
		}
		if best == nil || t.when.Before(best.when) ||
			(t.when.Equal(best.when) && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

// Pending reports how many timers are scheduled and not yet fired or
// stopped.
func (c *FakeClock) Pending() int {
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

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}
