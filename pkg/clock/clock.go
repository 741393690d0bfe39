// Package clock abstracts wall-clock time and delayed callbacks so the
// configuration bootstrap poll and the tab-change animation steps can run
// against controllable time in tests.
package clock

import "time"

// Clock provides time and timer scheduling. The default implementation uses
// system time. Tests inject a fake clock to control scheduling
// deterministically.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// AfterFunc schedules fn to run once after d has elapsed and returns a
	// handle that can cancel it.
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is a scheduled callback that has not necessarily fired yet.
type Timer interface {
	// Stop cancels the pending callback. It reports whether the timer was
	// stopped before firing.
	Stop() bool
}

// systemClock uses the time package.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, fn func()) Timer {
	return systemTimer{time.AfterFunc(d, fn)}
}

type systemTimer struct {
	t *time.Timer
}

func (s systemTimer) Stop() bool { return s.t.Stop() }

// System returns the Clock backed by the time package. Callbacks scheduled
// through it fire on their own goroutine; hosts that require single-threaded
// delivery serialize them in their event loop adapter.
func System() Clock { return systemClock{} }
