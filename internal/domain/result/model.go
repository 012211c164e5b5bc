package result

import (
	"slices"
	"strings"
	"time"
)

// DefaultKickoffHour is used when a result is recorded without a kick-off time.
const DefaultKickoffHour = 16

// MatchResult is an immutable record of a finished match.
// Corrections are modelled as delete followed by a new insert.
type MatchResult struct {
	ID         string
	Seq        int64
	MatchType  string
	HomeClubID string
	AwayClubID string
	HomeScore  int
	AwayScore  int
	MatchDate  time.Time
	Venue      string
}

func (r MatchResult) Validate() error {
	home := strings.TrimSpace(r.HomeClubID)
	away := strings.TrimSpace(r.AwayClubID)
	switch {
	case home == "":
		return newInvalidResult("home club is required")
	case away == "":
		return newInvalidResult("away club is required")
	case home == away:
		return newInvalidResult("home club and away club must differ (club=%s)", home)
	case r.HomeScore < 0:
		return newInvalidResult("home score must be >= 0, got %d", r.HomeScore)
	case r.AwayScore < 0:
		return newInvalidResult("away score must be >= 0, got %d", r.AwayScore)
	case r.MatchDate.IsZero():
		return newInvalidResult("match date is required")
	}
	if len(r.MatchType) > 50 {
		return newInvalidResult("match type must be at most 50 characters")
	}
	if len(r.Venue) > 100 {
		return newInvalidResult("venue must be at most 100 characters")
	}

	return nil
}

// Involves reports whether the club played in this match.
func (r MatchResult) Involves(clubID string) bool {
	return r.HomeClubID == clubID || r.AwayClubID == clubID
}

// AtDefaultKickoff returns the calendar day of date at the default kick-off time.
func AtDefaultKickoff(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, DefaultKickoffHour, 0, 0, 0, date.Location())
}

// CompareForDisplay orders results newest first; results on the same date keep insertion order.
func CompareForDisplay(a, b MatchResult) int {
	if c := b.MatchDate.Compare(a.MatchDate); c != 0 {
		return c
	}
	switch {
	case a.Seq < b.Seq:
		return -1
	case a.Seq > b.Seq:
		return 1
	default:
		return 0
	}
}

func SortForDisplay(items []MatchResult) {
	slices.SortStableFunc(items, CompareForDisplay)
}
