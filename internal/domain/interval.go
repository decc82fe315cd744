package domain

import "time"

// TimeInterval represents a half-open time interval [Start, End).
// Derived intervals (clipped, expanded, merged) are always new values.
type TimeInterval struct {
	Start time.Time
	End   time.Time
}

// IsValid returns true if the interval has positive length
func (i TimeInterval) IsValid() bool {
	return i.Start.Before(i.End)
}

// Duration returns the length of the interval
func (i TimeInterval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Minutes returns the length of the interval in whole minutes
func (i TimeInterval) Minutes() int {
	return int(i.Duration() / time.Minute)
}

// Overlaps returns true if the intervals truly intersect.
// Intervals that only share a boundary do not overlap.
func (i TimeInterval) Overlaps(other TimeInterval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// Covers returns true if the interval fully contains other
func (i TimeInterval) Covers(other TimeInterval) bool {
	return !i.Start.After(other.Start) && !i.End.Before(other.End)
}

// Clip returns a copy of the interval clamped to bounds.
// The result may be invalid (IsValid() == false) if the interval
// lies entirely outside of bounds.
func (i TimeInterval) Clip(bounds TimeInterval) TimeInterval {
	out := i
	if out.Start.Before(bounds.Start) {
		out.Start = bounds.Start
	}
	if out.End.After(bounds.End) {
		out.End = bounds.End
	}
	return out
}

// Expand returns a copy of the interval widened by d on both sides
func (i TimeInterval) Expand(d time.Duration) TimeInterval {
	return TimeInterval{
		Start: i.Start.Add(-d),
		End:   i.End.Add(d),
	}
}
