// Package clock abstracts time so the hold window and the expiry
// sweep can be exercised in tests without sleeping.
package clock

import "time"

// Clock supplies the current instant to components that compare
// deadlines against "now".
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// NewSystem returns a clock backed by time.Now in UTC.
func NewSystem() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// Fixed is a clock pinned to a settable instant.  Tests advance it
// explicitly instead of waiting for real deadlines to pass.
type Fixed struct {
	now time.Time
}

// NewFixed returns a Fixed clock starting at t.
func NewFixed(t time.Time) *Fixed {
	return &Fixed{now: t.UTC()}
}

func (f *Fixed) Now() time.Time { return f.now }

// Advance moves the clock forward by d.
func (f *Fixed) Advance(d time.Duration) { f.now = f.now.Add(d) }
