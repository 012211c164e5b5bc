package httpapi

import (
	"time"

	"github.com/remostars/club-standings/internal/domain/club"
	"github.com/remostars/club-standings/internal/domain/result"
	"github.com/remostars/club-standings/internal/domain/standings"
	"github.com/remostars/club-standings/internal/usecase"
)

type registerClubRequest struct {
	Name    string `json:"name" validate:"required,max=50"`
	LogoURL string `json:"logoUrl" validate:"omitempty,max=500"`
}

type updateClubRequest struct {
	Name    string `json:"name" validate:"omitempty,max=50"`
	LogoURL string `json:"logoUrl" validate:"omitempty,max=500"`
}

// addResultRequest takes matchDate as YYYY-MM-DD plus an optional HH:MM
// kickoffTime, or a full RFC3339 timestamp in matchDate.
type addResultRequest struct {
	MatchType   string `json:"matchType" validate:"max=50"`
	HomeClubID  string `json:"homeClubId" validate:"required"`
	AwayClubID  string `json:"awayClubId" validate:"required"`
	HomeScore   *int   `json:"homeScore" validate:"required"`
	AwayScore   *int   `json:"awayScore" validate:"required"`
	MatchDate   string `json:"matchDate" validate:"required"`
	KickoffTime string `json:"kickoffTime" validate:"omitempty,datetime=15:04"`
	Venue       string `json:"venue" validate:"max=100"`
}

type importResultsRequest struct {
	Results []addResultRequest `json:"results" validate:"required,min=1,max=500,dive"`
}

type clubDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	LogoURL string `json:"logoUrl,omitempty"`
}

type resultDTO struct {
	ID           string    `json:"id"`
	MatchType    string    `json:"matchType,omitempty"`
	HomeClubID   string    `json:"homeClubId"`
	HomeClubName string    `json:"homeClubName,omitempty"`
	AwayClubID   string    `json:"awayClubId"`
	AwayClubName string    `json:"awayClubName,omitempty"`
	HomeScore    int       `json:"homeScore"`
	AwayScore    int       `json:"awayScore"`
	MatchDate    time.Time `json:"matchDate"`
	Venue        string    `json:"venue,omitempty"`
}

type standingsRowDTO struct {
	Position       int    `json:"position"`
	ClubID         string `json:"clubId"`
	ClubName       string `json:"clubName"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Drawn          int    `json:"drawn"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goalsFor"`
	GoalsAgainst   int    `json:"goalsAgainst"`
	GoalDifference int    `json:"goalDifference"`
	Points         int    `json:"points"`
}

type pointsRulesDTO struct {
	Win  int `json:"win"`
	Draw int `json:"draw"`
	Loss int `json:"loss"`
}

type pageDTO[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

type standingsTableDTO struct {
	Rules pointsRulesDTO           `json:"rules"`
	Table pageDTO[standingsRowDTO] `json:"table"`
}

func clubToDTO(item club.Club) clubDTO {
	return clubDTO{ID: item.ID, Name: item.Name, LogoURL: item.LogoURL}
}

func resultToDTO(item result.MatchResult, clubNames map[string]string) resultDTO {
	return resultDTO{
		ID:           item.ID,
		MatchType:    item.MatchType,
		HomeClubID:   item.HomeClubID,
		HomeClubName: clubNames[item.HomeClubID],
		AwayClubID:   item.AwayClubID,
		AwayClubName: clubNames[item.AwayClubID],
		HomeScore:    item.HomeScore,
		AwayScore:    item.AwayScore,
		MatchDate:    item.MatchDate.UTC(),
		Venue:        item.Venue,
	}
}

func standingsRowToDTO(row standings.Row) standingsRowDTO {
	return standingsRowDTO{
		Position:       row.Position,
		ClubID:         row.ClubID,
		ClubName:       row.ClubName,
		Played:         row.Played,
		Won:            row.Won,
		Drawn:          row.Drawn,
		Lost:           row.Lost,
		GoalsFor:       row.GoalsFor,
		GoalsAgainst:   row.GoalsAgainst,
		GoalDifference: row.GoalDifference,
		Points:         row.Points,
	}
}

func pageToDTO[S, T any](page usecase.Page[S], convert func(S) T) pageDTO[T] {
	items := make([]T, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, convert(item))
	}
	return pageDTO[T]{
		Items:      items,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	}
}
