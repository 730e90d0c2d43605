package schedule

import "time"

// DefaultDuration stands in for a missing end time.
const DefaultDuration = time.Hour

// Interval is a half-open time range; End may be nil.
type Interval struct {
	Start time.Time
	End   *time.Time
}

func (i Interval) EffectiveEnd() time.Time {
	if i.End != nil {
		return *i.End
	}
	return i.Start.Add(DefaultDuration)
}

// Overlaps reports whether a and b intersect. Touching endpoints do not overlap.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.EffectiveEnd()) && a.EffectiveEnd().After(b.Start)
}
