package standings

import (
	"cmp"
	"slices"
)

// Compare orders rows by points, goal difference and goals scored (all
// descending), then by club name and id ascending. Two rows compare equal
// only when they belong to the same club.
func Compare(a, b Row) int {
	if c := cmp.Compare(b.Points, a.Points); c != 0 {
		return c
	}
	if c := cmp.Compare(b.GoalDifference, a.GoalDifference); c != 0 {
		return c
	}
	if c := cmp.Compare(b.GoalsFor, a.GoalsFor); c != 0 {
		return c
	}
	if c := cmp.Compare(a.ClubName, b.ClubName); c != 0 {
		return c
	}
	return cmp.Compare(a.ClubID, b.ClubID)
}

// Rank returns the rows as a table with positions starting at 1.
func Rank(rows map[string]Row) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, r)
	}

	slices.SortFunc(out, Compare)
	for i := range out {
		out[i].Position = i + 1
	}

	return out
}
