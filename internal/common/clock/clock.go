package clock

import "time"

// Clock supplies the current time. The reservation engine takes its notion of
// "now" from a Clock so that the past-date check and the cancellation cutoff
// are deterministic under test.
type Clock interface {
	Now() time.Time
}

// System is the production Clock backed by the OS clock.
type System struct{}

// Now returns the current UTC time.
func (System) Now() time.Time { return time.Now().UTC() }

// Fixed is a Clock frozen at a single instant.
type Fixed struct {
	t time.Time
}

// NewFixed creates a Clock that always reports t.
func NewFixed(t time.Time) Fixed { return Fixed{t: t} }

// Now returns the frozen instant.
func (f Fixed) Now() time.Time { return f.t }
