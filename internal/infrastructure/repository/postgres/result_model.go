package postgres

import "time"

type matchResultTableModel struct {
	ID         int64     `db:"id"`
	PublicID   string    `db:"public_id"`
	MatchType  string    `db:"match_type"`
	HomeClubID string    `db:"home_club_public_id"`
	AwayClubID string    `db:"away_club_public_id"`
	HomeScore  int       `db:"home_score"`
	AwayScore  int       `db:"away_score"`
	MatchDate  time.Time `db:"match_date"`
	Venue      string    `db:"venue"`
	CreatedAt  time.Time `db:"created_at"`
}

type matchResultInsertModel struct {
	PublicID   string    `db:"public_id"`
	MatchType  string    `db:"match_type"`
	HomeClubID string    `db:"home_club_public_id"`
	AwayClubID string    `db:"away_club_public_id"`
	HomeScore  int       `db:"home_score"`
	AwayScore  int       `db:"away_score"`
	MatchDate  time.Time `db:"match_date"`
	Venue      string    `db:"venue"`
}
