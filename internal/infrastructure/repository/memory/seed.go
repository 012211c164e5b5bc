package memory

import (
	"time"

	"github.com/remostars/club-standings/internal/domain/club"
	"github.com/remostars/club-standings/internal/domain/result"
)

const (
	ClubIDRemoStars    = "npfl-remo-stars"
	ClubIDEnyimba      = "npfl-enyimba"
	ClubIDKanoPillars  = "npfl-kano-pillars"
	ClubIDRiversUnited = "npfl-rivers-united"
)

func SeedClubs() []club.Club {
	return []club.Club{
		{ID: ClubIDRemoStars, Name: "Remo Stars", LogoURL: "/media/logos/remo-stars.png"},
		{ID: ClubIDEnyimba, Name: "Enyimba", LogoURL: "/media/logos/enyimba.png"},
		{ID: ClubIDKanoPillars, Name: "Kano Pillars", LogoURL: "/media/logos/kano-pillars.png"},
		{ID: ClubIDRiversUnited, Name: "Rivers United", LogoURL: "/media/logos/rivers-united.png"},
	}
}

func SeedResults() []result.MatchResult {
	day := func(month time.Month, d int) time.Time {
		return result.AtDefaultKickoff(time.Date(2024, month, d, 0, 0, 0, 0, time.UTC))
	}

	return []result.MatchResult{
		{ID: "seed-md1-remo-enyimba", MatchType: "NPFL Matchday 1", HomeClubID: ClubIDRemoStars, AwayClubID: ClubIDEnyimba, HomeScore: 2, AwayScore: 1, MatchDate: day(time.September, 7), Venue: "Remo Stars Stadium, Ikenne"},
		{ID: "seed-md1-kano-rivers", MatchType: "NPFL Matchday 1", HomeClubID: ClubIDKanoPillars, AwayClubID: ClubIDRiversUnited, HomeScore: 0, AwayScore: 0, MatchDate: day(time.September, 7), Venue: "Sani Abacha Stadium, Kano"},
		{ID: "seed-md2-rivers-remo", MatchType: "NPFL Matchday 2", HomeClubID: ClubIDRiversUnited, AwayClubID: ClubIDRemoStars, HomeScore: 1, AwayScore: 1, MatchDate: day(time.September, 14), Venue: "Adokiye Amiesimaka Stadium, Port Harcourt"},
		{ID: "seed-md2-enyimba-kano", MatchType: "NPFL Matchday 2", HomeClubID: ClubIDEnyimba, AwayClubID: ClubIDKanoPillars, HomeScore: 3, AwayScore: 0, MatchDate: day(time.September, 14), Venue: "Enyimba International Stadium, Aba"},
	}
}
