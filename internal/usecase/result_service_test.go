package usecase

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/remostars/club-standings/internal/domain/club"
	"github.com/remostars/club-standings/internal/domain/result"
	"github.com/remostars/club-standings/internal/domain/standings"
	"github.com/remostars/club-standings/internal/infrastructure/repository/memory"
	clubmock "github.com/remostars/club-standings/internal/mocks/domain/club"
	resultmock "github.com/remostars/club-standings/internal/mocks/domain/result"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

var testClubs = []club.Club{
	{ID: "a", Name: "Abeokuta United"},
	{ID: "b", Name: "Bendel Insurance"},
	{ID: "c", Name: "Crown FC"},
}

func newTestResultService(t *testing.T, policy result.Policy) (*ResultService, *memory.ResultRepository) {
	t.Helper()

	resultRepo := memory.NewResultRepository(nil)
	service := NewResultService(
		memory.NewClubRepository(testClubs),
		resultRepo,
		newSequenceIDGenerator("result"),
		ResultServiceConfig{Policy: policy, ImportWorkers: 3, PageLimits: PageLimits{DefaultSize: 2, MaxSize: 5}},
		nil,
	)
	return service, resultRepo
}

func matchDay(day int) time.Time {
	return time.Date(2025, time.March, day, 16, 0, 0, 0, time.UTC)
}

func TestResultService_AddResultRejectsInvalidAndLeavesStoreUnchanged(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, repo := newTestResultService(t, nil)

	_, err := service.AddResult(ctx, AddResultInput{HomeClubID: "a", AwayClubID: "b", HomeScore: 1, AwayScore: 0, MatchDate: matchDay(1)})
	require.NoError(t, err)

	cases := []struct {
		name  string
		input AddResultInput
		want  error
	}{
		{name: "same club", input: AddResultInput{HomeClubID: "a", AwayClubID: "a", MatchDate: matchDay(2)}, want: result.ErrInvalidResult},
		{name: "negative score", input: AddResultInput{HomeClubID: "a", AwayClubID: "b", HomeScore: -1, MatchDate: matchDay(2)}, want: result.ErrInvalidResult},
		{name: "missing date", input: AddResultInput{HomeClubID: "a", AwayClubID: "b"}, want: result.ErrInvalidResult},
		{name: "unknown club", input: AddResultInput{HomeClubID: "a", AwayClubID: "zz", MatchDate: matchDay(2)}, want: standings.ErrUnknownClub},
	}
	for _, tc := range cases {
		_, err := service.AddResult(ctx, tc.input)
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}

	items, err := repo.List(ctx, result.Filter{})
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestResultService_InvalidResultCarriesReason(t *testing.T) {
	t.Parallel()

	service, _ := newTestResultService(t, nil)

	_, err := service.AddResult(context.Background(), AddResultInput{HomeClubID: "a", AwayClubID: "a", MatchDate: matchDay(1)})

	var invalid *result.InvalidResultError
	require.ErrorAs(t, err, &invalid)
	assert.NotEmpty(t, invalid.Reason)
}

func TestResultService_ListResultsOrderAndRestart(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, _ := newTestResultService(t, nil)

	inputs := []AddResultInput{
		{MatchType: "first", HomeClubID: "a", AwayClubID: "b", MatchDate: matchDay(1)},
		{MatchType: "second", HomeClubID: "b", AwayClubID: "c", MatchDate: matchDay(8)},
		{MatchType: "third", HomeClubID: "c", AwayClubID: "a", MatchDate: matchDay(8)},
	}
	for _, input := range inputs {
		_, err := service.AddResult(ctx, input)
		require.NoError(t, err)
	}

	seq, err := service.ListResults(ctx)
	require.NoError(t, err)

	var labels []string
	for item := range seq {
		labels = append(labels, item.MatchType)
	}
	assert.Equal(t, []string{"second", "third", "first"}, labels)

	// Writes after the call do not leak into the returned sequence.
	_, err = service.AddResult(ctx, AddResultInput{MatchType: "late", HomeClubID: "a", AwayClubID: "c", MatchDate: matchDay(20)})
	require.NoError(t, err)

	replayed := slices.Collect(seq)
	assert.Len(t, replayed, 3)

	for item := range seq {
		assert.Equal(t, "second", item.MatchType)
		break
	}
}

func TestResultService_PlayedOnlyHidesFutureResults(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := matchDay(10)
	service, _ := newTestResultService(t, result.PlayedOnly(func() time.Time { return now }))

	_, err := service.AddResult(ctx, AddResultInput{HomeClubID: "a", AwayClubID: "b", MatchDate: matchDay(9)})
	require.NoError(t, err)
	_, err = service.AddResult(ctx, AddResultInput{HomeClubID: "b", AwayClubID: "c", MatchDate: matchDay(11)})
	require.NoError(t, err)

	seq, err := service.ListResults(ctx)
	require.NoError(t, err)
	assert.Len(t, slices.Collect(seq), 1)

	now = matchDay(12)
	seq, err = service.ListResults(ctx)
	require.NoError(t, err)
	assert.Len(t, slices.Collect(seq), 2)
}

func TestResultService_ListResultsPage(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, _ := newTestResultService(t, nil)
	for day := 1; day <= 5; day++ {
		_, err := service.AddResult(ctx, AddResultInput{HomeClubID: "a", AwayClubID: "b", MatchDate: matchDay(day)})
		require.NoError(t, err)
	}

	page, err := service.ListResultsPage(ctx, PageRequest{Page: 3})
	require.NoError(t, err)
	assert.Equal(t, 5, page.TotalItems)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Items, 1)
	assert.Equal(t, matchDay(1), page.Items[0].MatchDate)

	page, err = service.ListResultsPage(ctx, PageRequest{Page: 1, PageSize: 50})
	require.NoError(t, err)
	assert.Equal(t, 5, page.PageSize)
	assert.Len(t, page.Items, 5)
}

func TestResultService_ImportResultsIsAtomic(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, repo := newTestResultService(t, nil)

	_, err := service.ImportResults(ctx, []AddResultInput{
		{HomeClubID: "a", AwayClubID: "b", HomeScore: 2, MatchDate: matchDay(1)},
		{HomeClubID: "b", AwayClubID: "b", MatchDate: matchDay(2)},
		{HomeClubID: "c", AwayClubID: "ghost", MatchDate: matchDay(3)},
	})
	require.Error(t, err)
	errs := multierr.Errors(err)
	require.Len(t, errs, 2)
	assert.ErrorIs(t, errs[0], result.ErrInvalidResult)
	assert.Contains(t, errs[0].Error(), "entry 1")
	assert.ErrorIs(t, errs[1], standings.ErrUnknownClub)
	assert.Contains(t, errs[1].Error(), "entry 2")

	items, err := repo.List(ctx, result.Filter{})
	require.NoError(t, err)
	assert.Empty(t, items)

	imported, err := service.ImportResults(ctx, []AddResultInput{
		{MatchType: "one", HomeClubID: "a", AwayClubID: "b", MatchDate: matchDay(4)},
		{MatchType: "two", HomeClubID: "b", AwayClubID: "c", MatchDate: matchDay(4)},
		{MatchType: "three", HomeClubID: "c", AwayClubID: "a", MatchDate: matchDay(4)},
		{MatchType: "four", HomeClubID: "a", AwayClubID: "c", MatchDate: matchDay(4)},
	})
	require.NoError(t, err)
	require.Len(t, imported, 4)

	seq, err := service.ListResults(ctx)
	require.NoError(t, err)
	var labels []string
	for item := range seq {
		labels = append(labels, item.MatchType)
	}
	assert.Equal(t, []string{"one", "two", "three", "four"}, labels)
}

func TestResultService_ImportResultsRequiresEntries(t *testing.T) {
	t.Parallel()

	service, _ := newTestResultService(t, nil)
	_, err := service.ImportResults(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestResultService_DeleteResult(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clubRepo := clubmock.NewRepository(t)
	resultRepo := resultmock.NewRepository(t)
	service := NewResultService(clubRepo, resultRepo, newSequenceIDGenerator("result"), ResultServiceConfig{}, nil)

	resultRepo.On("Delete", ctx, "r-1").Return(true, nil).Once()
	resultRepo.On("Delete", ctx, "r-2").Return(false, nil).Once()

	require.NoError(t, service.DeleteResult(ctx, "r-1"))
	assert.ErrorIs(t, service.DeleteResult(ctx, "r-2"), ErrNotFound)
	assert.ErrorIs(t, service.DeleteResult(ctx, " "), ErrInvalidInput)
}

func TestResultService_StoreFailureIsReported(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clubRepo := clubmock.NewRepository(t)
	resultRepo := resultmock.NewRepository(t)
	service := NewResultService(clubRepo, resultRepo, newSequenceIDGenerator("result"), ResultServiceConfig{}, nil)

	clubRepo.On("List", ctx).Return(testClubs, nil).Once()
	resultRepo.On("Create", ctx, mock.AnythingOfType("result.MatchResult")).Return(errors.New("disk full")).Once()

	_, err := service.AddResult(ctx, AddResultInput{HomeClubID: "a", AwayClubID: "b", MatchDate: matchDay(1)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestResultService_GetResult(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := matchDay(10)
	service, _ := newTestResultService(t, result.PlayedOnly(func() time.Time { return now }))

	played, err := service.AddResult(ctx, AddResultInput{HomeClubID: "a", AwayClubID: "b", HomeScore: 2, MatchDate: matchDay(3)})
	require.NoError(t, err)
	upcoming, err := service.AddResult(ctx, AddResultInput{HomeClubID: "b", AwayClubID: "c", MatchDate: matchDay(20)})
	require.NoError(t, err)

	got, err := service.GetResult(ctx, " "+played.ID+" ")
	require.NoError(t, err)
	assert.Equal(t, played.ID, got.ID)
	assert.Equal(t, 2, got.HomeScore)
	assert.Equal(t, matchDay(3), got.MatchDate)

	_, err = service.GetResult(ctx, upcoming.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = service.GetResult(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = service.GetResult(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestResultService_LatestResult(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, _ := newTestResultService(t, nil)

	_, err := service.LatestResult(ctx)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = service.AddResult(ctx, AddResultInput{HomeClubID: "a", AwayClubID: "b", MatchDate: matchDay(5)})
	require.NoError(t, err)
	first, err := service.AddResult(ctx, AddResultInput{HomeClubID: "b", AwayClubID: "c", MatchDate: matchDay(9)})
	require.NoError(t, err)
	_, err = service.AddResult(ctx, AddResultInput{HomeClubID: "c", AwayClubID: "a", MatchDate: matchDay(9)})
	require.NoError(t, err)

	latest, err := service.LatestResult(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, latest.ID)
}

func TestResultService_AcceptsClubMissingFromStaleListing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clubRepo := clubmock.NewRepository(t)
	resultRepo := resultmock.NewRepository(t)
	service := NewResultService(clubRepo, resultRepo, newSequenceIDGenerator("result"), ResultServiceConfig{}, nil)

	clubRepo.On("List", ctx).Return(testClubs, nil).Once()
	clubRepo.On("GetByID", mock.Anything, "x").Return(club.Club{ID: "x", Name: "Xtra Boys"}, true, nil).Once()
	resultRepo.On("Create", ctx, mock.AnythingOfType("result.MatchResult")).Return(nil).Once()

	item, err := service.AddResult(ctx, AddResultInput{HomeClubID: "a", AwayClubID: "x", HomeScore: 2, MatchDate: matchDay(1)})
	require.NoError(t, err)
	assert.Equal(t, "x", item.AwayClubID)
}
