package debounce

import "time"

// Timer is the subset of *time.Timer used by the debouncer.
type Timer interface {
	// Stop prevents the timer from firing. It reports whether the call
	// stopped the timer.
	Stop() bool
}

// Clock schedules delayed callbacks.
type Clock interface {
	// AfterFunc waits for the duration to elapse and then calls f in its own
	// goroutine.
	AfterFunc(d time.Duration, f func()) Timer
}

// realClock schedules callbacks with the time package.
type realClock struct{}

// AfterFunc implements Clock using time.AfterFunc.
func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
