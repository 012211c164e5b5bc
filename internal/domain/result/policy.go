package result

import "time"

// Filter narrows which stored results a read returns.
// A zero PlayedBefore means no upper bound.
type Filter struct {
	PlayedBefore time.Time
}

func (f Filter) Match(r MatchResult) bool {
	if f.PlayedBefore.IsZero() {
		return true
	}
	return !r.MatchDate.After(f.PlayedBefore)
}

// Policy produces the filter applied to every read. It is evaluated per read
// so clock based policies move forward with time.
type Policy func() Filter

func AllResults() Policy {
	return func() Filter { return Filter{} }
}

// PlayedOnly hides results dated after the current clock reading.
func PlayedOnly(now func() time.Time) Policy {
	if now == nil {
		now = time.Now
	}
	return func() Filter {
		return Filter{PlayedBefore: now()}
	}
}
