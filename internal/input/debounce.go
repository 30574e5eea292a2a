package input

import (
	"sync/atomic"
	"time"
)

// Debouncer tracks edit generations so that only the last edit in a burst
// is acted on once its delay has elapsed
type Debouncer struct {
	delay time.Duration
	gen   atomic.Uint64
}

// NewDebouncer creates a debouncer with the given quiet period
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Delay returns the quiet period
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Touch records an edit and returns its generation
func (d *Debouncer) Touch() uint64 {
	return d.gen.Add(1)
}

// Settled reports whether gen is the most recent edit
func (d *Debouncer) Settled(gen uint64) bool {
	return gen == d.gen.Load()
}
