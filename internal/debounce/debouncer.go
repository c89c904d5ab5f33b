package debounce

import (
	"log/slog"
	"sync"
	"time"
)

// DefaultInterval is the quiet period used when an invalid interval is given.
const DefaultInterval = 500 * time.Millisecond

// Debouncer delays publishing a value until no new value has been set for
// the configured interval. Intermediate values are never published.
type Debouncer[V any] struct {
	mu sync.Mutex

	// interval is the quiet period required before publishing
	interval time.Duration

	// publish receives the stabilized value
	publish func(V)

	clock  Clock
	logger *slog.Logger

	timer   Timer
	pending bool
	value   V

	// generation increases on every Set, Flush and Stop so that a timer
	// callback that already started cannot publish a superseded value
	generation uint64

	stopped bool
}

// Option configures a Debouncer.
type Option func(*options)

type options struct {
	clock  Clock
	logger *slog.Logger
}

// WithClock replaces the clock used for scheduling.
func WithClock(c Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// New creates a Debouncer that calls publish with the latest value once
// interval has elapsed without a new value. Publish runs on the clock's
// callback goroutine, never while the debouncer's lock is held.
func New[V any](interval time.Duration, publish func(V), opts ...Option) *Debouncer[V] {
	o := options{
		clock:  realClock{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	// Apply defaults for invalid config values
	if interval <= 0 {
		o.logger.Warn("invalid debounce interval specified, using default",
			"specified_interval", interval,
			"default_interval", DefaultInterval)
		interval = DefaultInterval
	}

	return &Debouncer[V]{
		interval: interval,
		publish:  publish,
		clock:    o.clock,
		logger:   o.logger,
	}
}

// Interval returns the quiet period.
func (d *Debouncer[V]) Interval() time.Duration {
	return d.interval
}

// Set records v as the latest value and restarts the quiet period.
// A pending publish of an earlier value is cancelled.
func (d *Debouncer[V]) Set(v V) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.stopTimerLocked()
	d.value = v
	d.pending = true
	d.generation++
	gen := d.generation

	d.timer = d.clock.AfterFunc(d.interval, func() {
		d.fire(gen)
	})
}

// Flush publishes the pending value immediately and cancels the timer.
// It does nothing when no value is pending.
func (d *Debouncer[V]) Flush() {
	d.mu.Lock()
	if d.stopped || !d.pending {
		d.mu.Unlock()
		return
	}
	d.stopTimerLocked()
	d.generation++
	d.pending = false
	v := d.value
	d.mu.Unlock()

	d.publish(v)
}

// Pending reports whether a publish is scheduled.
func (d *Debouncer[V]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Stop cancels any pending publish. After Stop the debouncer ignores Set and
// Flush, so the owner receives no further values.
func (d *Debouncer[V]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.stopped = true
	d.stopTimerLocked()
	d.generation++
	d.pending = false
}

func (d *Debouncer[V]) stopTimerLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// fire publishes the pending value if gen is still the latest generation.
func (d *Debouncer[V]) fire(gen uint64) {
	d.mu.Lock()
	if d.stopped || gen != d.generation || !d.pending {
		d.mu.Unlock()
		return
	}
	d.pending = false
	d.timer = nil
	v := d.value
	d.mu.Unlock()

	d.publish(v)
}
