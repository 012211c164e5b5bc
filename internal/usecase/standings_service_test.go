package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/remostars/club-standings/internal/domain/club"
	"github.com/remostars/club-standings/internal/domain/result"
	"github.com/remostars/club-standings/internal/domain/standings"
	"github.com/remostars/club-standings/internal/infrastructure/repository/memory"
	"github.com/remostars/club-standings/internal/platform/logging"
	clubmock "github.com/remostars/club-standings/internal/mocks/domain/club"
	resultmock "github.com/remostars/club-standings/internal/mocks/domain/result"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStandingsService_GetTable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clubRepo := memory.NewClubRepository(testClubs)
	resultRepo := memory.NewResultRepository(nil)
	results := NewResultService(clubRepo, resultRepo, newSequenceIDGenerator("result"), ResultServiceConfig{}, nil)
	service := NewStandingsService(clubRepo, resultRepo, nil, nil, PageLimits{}, nil)

	_, err := results.AddResult(ctx, AddResultInput{HomeClubID: "a", AwayClubID: "b", HomeScore: 3, AwayScore: 1, MatchDate: matchDay(1)})
	require.NoError(t, err)
	_, err = results.AddResult(ctx, AddResultInput{HomeClubID: "b", AwayClubID: "c", HomeScore: 0, AwayScore: 0, MatchDate: matchDay(2)})
	require.NoError(t, err)

	table, err := service.GetTable(ctx)
	require.NoError(t, err)
	require.Len(t, table, 3)

	want := []struct {
		clubID string
		points int
		gd     int
	}{
		{clubID: "a", points: 3, gd: 2},
		{clubID: "c", points: 1, gd: 0},
		{clubID: "b", points: 1, gd: -2},
	}
	for i, w := range want {
		row := table[i]
		assert.Equal(t, w.clubID, row.ClubID, "position %d", i+1)
		assert.Equal(t, i+1, row.Position)
		assert.Equal(t, w.points, row.Points, "points of %s", w.clubID)
		assert.Equal(t, w.gd, row.GoalDifference, "goal difference of %s", w.clubID)
	}

	again, err := service.GetTable(ctx)
	require.NoError(t, err)
	assert.Equal(t, table, again)
}

func TestStandingsService_SkipsUnknownClubResults(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clubRepo := clubmock.NewRepository(t)
	resultRepo := resultmock.NewRepository(t)
	service := NewStandingsService(clubRepo, resultRepo, result.AllResults(), nil, PageLimits{}, nil)

	clubRepo.On("List", mock.Anything).Return([]club.Club{
		{ID: "a", Name: "Abeokuta United"},
		{ID: "b", Name: "Bendel Insurance"},
	}, nil).Once()
	resultRepo.On("List", mock.Anything, result.Filter{}).Return([]result.MatchResult{
		{ID: "r-1", HomeClubID: "a", AwayClubID: "b", HomeScore: 1, MatchDate: matchDay(1)},
		{ID: "r-2", HomeClubID: "a", AwayClubID: "retired", HomeScore: 9, MatchDate: matchDay(2)},
	}, nil).Once()
	clubRepo.On("GetByID", mock.Anything, "retired").Return(club.Club{}, false, nil).Once()

	rows, err := service.ComputeStandings(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows["a"].Played)
	assert.Equal(t, 1, rows["a"].GoalsFor)
	_, ok := rows["retired"]
	assert.False(t, ok)
}

func TestStandingsService_LoadFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clubRepo := clubmock.NewRepository(t)
	resultRepo := resultmock.NewRepository(t)
	service := NewStandingsService(clubRepo, resultRepo, nil, nil, PageLimits{}, nil)

	clubRepo.On("List", mock.Anything).Return(nil, errors.New("connection refused")).Once()
	resultRepo.On("List", mock.Anything, mock.Anything).Return(nil, nil).Maybe()

	_, err := service.GetTable(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestStandingsService_GetTablePageAndRules(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clubRepo := memory.NewClubRepository(memory.SeedClubs())
	resultRepo := memory.NewResultRepository(memory.SeedResults())
	rules := standings.Rules{WinPoints: 2, DrawPoints: 1, LossPoints: 0}
	service := NewStandingsService(
		clubRepo,
		resultRepo,
		result.AllResults(),
		standings.NewAggregator(rules),
		PageLimits{DefaultSize: 3, MaxSize: 10},
		nil,
	)

	assert.Equal(t, rules, service.Rules())

	page, err := service.GetTablePage(ctx, PageRequest{Page: 2})
	require.NoError(t, err)
	assert.Equal(t, 4, page.TotalItems)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 4, page.Items[0].Position)
}

// listHookedClubs and listHookedResults run afterList once their read has
// returned, letting a test commit writes between the two reads of one table.
type listHookedClubs struct {
	club.Repository
	afterList func()
}

func (r listHookedClubs) List(ctx context.Context) ([]club.Club, error) {
	items, err := r.Repository.List(ctx)
	r.afterList()
	return items, err
}

type listHookedResults struct {
	result.Repository
	afterList func()
}

func (r listHookedResults) List(ctx context.Context, filter result.Filter) ([]result.MatchResult, error) {
	items, err := r.Repository.List(ctx, filter)
	r.afterList()
	return items, err
}

func TestStandingsService_WritesBetweenReadsNeverDropResults(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clubRepo := memory.NewClubRepository([]club.Club{
		{ID: "a", Name: "Abeokuta United"},
		{ID: "b", Name: "Bendel Insurance"},
	})
	resultRepo := memory.NewResultRepository(nil)
	writer := NewResultService(clubRepo, resultRepo, newSequenceIDGenerator("result"), ResultServiceConfig{}, nil)

	var once sync.Once
	commit := func() {
		once.Do(func() {
			require.NoError(t, clubRepo.Create(ctx, club.Club{ID: "x", Name: "Xtra Boys"}))
			_, err := writer.AddResult(ctx, AddResultInput{HomeClubID: "a", AwayClubID: "x", HomeScore: 2, MatchDate: matchDay(1)})
			require.NoError(t, err)
			_, err = writer.AddResult(ctx, AddResultInput{HomeClubID: "a", AwayClubID: "b", HomeScore: 1, MatchDate: matchDay(2)})
			require.NoError(t, err)
		})
	}

	core, logs := observer.New(zap.WarnLevel)
	service := NewStandingsService(
		listHookedClubs{Repository: clubRepo, afterList: commit},
		listHookedResults{Repository: resultRepo, afterList: commit},
		nil,
		nil,
		PageLimits{},
		logging.FromZap(zap.New(core)),
	)

	assertPostState := func(rows map[string]standings.Row) {
		t.Helper()
		require.Len(t, rows, 3)
		assert.Equal(t, 2, rows["a"].Played)
		assert.Equal(t, 6, rows["a"].Points)
		assert.Equal(t, 1, rows["b"].Played)
		assert.Equal(t, 1, rows["x"].Played)
	}

	during, err := service.ComputeStandings(ctx)
	require.NoError(t, err)
	if len(during) > 0 {
		assertPostState(during)
	}

	after, err := service.ComputeStandings(ctx)
	require.NoError(t, err)
	assertPostState(after)

	assert.Zero(t, logs.FilterMessage("result skipped while computing standings").Len())
}

func TestStandingsService_ResolvesClubsMissingFromStaleListing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clubRepo := clubmock.NewRepository(t)
	resultRepo := resultmock.NewRepository(t)
	service := NewStandingsService(clubRepo, resultRepo, result.AllResults(), nil, PageLimits{}, nil)

	resultRepo.On("List", mock.Anything, result.Filter{}).Return([]result.MatchResult{
		{ID: "r-1", HomeClubID: "a", AwayClubID: "x", HomeScore: 2, MatchDate: matchDay(1)},
		{ID: "r-2", HomeClubID: "a", AwayClubID: "b", HomeScore: 1, MatchDate: matchDay(2)},
	}, nil).Once()
	clubRepo.On("List", mock.Anything).Return([]club.Club{
		{ID: "a", Name: "Abeokuta United"},
		{ID: "b", Name: "Bendel Insurance"},
	}, nil).Once()
	clubRepo.On("GetByID", mock.Anything, "x").Return(club.Club{ID: "x", Name: "Xtra Boys"}, true, nil).Once()

	rows, err := service.ComputeStandings(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, 2, rows["a"].Played)
	assert.Equal(t, "Xtra Boys", rows["x"].ClubName)
}
