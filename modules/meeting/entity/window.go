package entity

import "time"

// Window is a meeting's [Start, End) instant pair. Both instants are UTC.
type Window struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open windows share any instant.
// Touching endpoints do not overlap.
func (w Window) Overlaps(other Window) bool {
	return w.Start.Before(other.End) && w.End.After(other.Start)
}

func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Midpoint is the instant separating on-time from late markings.
func (w Window) Midpoint() time.Time {
	return w.Start.Add(w.Duration() / 2)
}

// Contains is inclusive at both ends: a marking exactly at End is accepted.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}
