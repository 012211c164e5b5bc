package standings

// Row is the aggregated record of one club over a set of results.
// Rows are derived on every read and never edited directly.
type Row struct {
	ClubID         string
	ClubName       string
	Position       int
	Played         int
	Won            int
	Drawn          int
	Lost           int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
}
