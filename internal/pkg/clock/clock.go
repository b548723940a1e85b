package clock

import "time"

// Clock provides the current time. Every temporal business rule reads the
// clock through this interface so tests can pin "now".
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// System returns a Clock backed by the wall clock (UTC).
func System() Clock {
	return systemClock{}
}

// Fixed is a Clock that stands still until moved; for tests.
type Fixed struct {
	Current time.Time
}

// NewFixed creates a Fixed clock set to t.
func NewFixed(t time.Time) *Fixed {
	return &Fixed{Current: t}
}

func (f *Fixed) Now() time.Time {
	return f.Current
}

// Advance moves the clock forward by d.
func (f *Fixed) Advance(d time.Duration) {
	f.Current = f.Current.Add(d)
}
