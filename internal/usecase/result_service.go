package usecase

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/remostars/club-standings/internal/domain/club"
	"github.com/remostars/club-standings/internal/domain/result"
	"github.com/remostars/club-standings/internal/domain/standings"
	idgen "github.com/remostars/club-standings/internal/platform/id"
	"github.com/remostars/club-standings/internal/platform/logging"
	"go.uber.org/multierr"
)

const defaultImportWorkers = 4

type AddResultInput struct {
	MatchType  string
	HomeClubID string
	AwayClubID string
	HomeScore  int
	AwayScore  int
	MatchDate  time.Time
	Venue      string
}

type ResultServiceConfig struct {
	Policy        result.Policy
	ImportWorkers int
	PageLimits    PageLimits
}

type ResultService struct {
	clubRepo   club.Repository
	resultRepo result.Repository
	idGen      idgen.Generator
	cfg        ResultServiceConfig
	logger     *logging.Logger
}

func NewResultService(
	clubRepo club.Repository,
	resultRepo result.Repository,
	idGen idgen.Generator,
	cfg ResultServiceConfig,
	logger *logging.Logger,
) *ResultService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Policy == nil {
		cfg.Policy = result.AllResults()
	}
	if cfg.ImportWorkers <= 0 {
		cfg.ImportWorkers = defaultImportWorkers
	}
	if cfg.PageLimits.DefaultSize <= 0 {
		cfg.PageLimits = DefaultPageLimits()
	}

	return &ResultService{
		clubRepo:   clubRepo,
		resultRepo: resultRepo,
		idGen:      idGen,
		cfg:        cfg,
		logger:     logger.Named("result"),
	}
}

// AddResult validates and stores one result. On any error the store is unchanged.
func (s *ResultService) AddResult(ctx context.Context, input AddResultInput) (result.MatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.AddResult")
	defer span.End()

	registry, err := clubRegistry(ctx, s.clubRepo, inputClubs(input))
	if err != nil {
		return result.MatchResult{}, err
	}

	item, err := s.buildResult(input, registry)
	if err != nil {
		return result.MatchResult{}, err
	}

	if err := s.resultRepo.Create(ctx, item); err != nil {
		return result.MatchResult{}, fmt.Errorf("create result: %w", err)
	}

	s.logger.InfoContext(ctx, "result recorded",
		"result_id", item.ID,
		"home_club_id", item.HomeClubID,
		"away_club_id", item.AwayClubID,
		"score", fmt.Sprintf("%d:%d", item.HomeScore, item.AwayScore),
	)
	return item, nil
}

// ImportResults validates every entry on a worker pool and stores all of them
// in one atomic insert. A single invalid entry rejects the whole batch.
func (s *ResultService) ImportResults(ctx context.Context, inputs []AddResultInput) ([]result.MatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.ImportResults")
	defer span.End()

	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: at least one result is required", ErrInvalidInput)
	}

	registry, err := clubRegistry(ctx, s.clubRepo, inputClubs(inputs...))
	if err != nil {
		return nil, err
	}

	pool, err := ants.NewPool(min(s.cfg.ImportWorkers, len(inputs)))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	items := make([]result.MatchResult, len(inputs))
	entryErrs := make([]error, len(inputs))

	var workers sync.WaitGroup
	for idx, input := range inputs {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			items[idx], entryErrs[idx] = s.buildResult(input, registry)
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit import entry to worker pool: %w", err)
		}
	}
	workers.Wait()

	var errs error
	for idx, err := range entryErrs {
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("entry %d: %w", idx, err))
		}
	}
	if errs != nil {
		return nil, errs
	}

	// Sequence numbers follow submission order, not worker completion order.
	if err := s.resultRepo.Create(ctx, items...); err != nil {
		return nil, fmt.Errorf("create results: %w", err)
	}

	s.logger.InfoContext(ctx, "results imported", "count", len(items))
	return items, nil
}

func (s *ResultService) DeleteResult(ctx context.Context, resultID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.DeleteResult")
	defer span.End()

	resultID = strings.TrimSpace(resultID)
	if resultID == "" {
		return fmt.Errorf("%w: result id is required", ErrInvalidInput)
	}

	deleted, err := s.resultRepo.Delete(ctx, resultID)
	if err != nil {
		return fmt.Errorf("delete result: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: result=%s", ErrNotFound, resultID)
	}

	s.logger.InfoContext(ctx, "result deleted", "result_id", resultID)
	return nil
}

// GetResult returns one visible result.
func (s *ResultService) GetResult(ctx context.Context, resultID string) (result.MatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.GetResult")
	defer span.End()

	resultID = strings.TrimSpace(resultID)
	if resultID == "" {
		return result.MatchResult{}, fmt.Errorf("%w: result id is required", ErrInvalidInput)
	}

	item, ok, err := s.resultRepo.GetByID(ctx, resultID)
	if err != nil {
		return result.MatchResult{}, fmt.Errorf("get result: %w", err)
	}
	if !ok || !s.cfg.Policy().Match(item) {
		return result.MatchResult{}, fmt.Errorf("%w: result=%s", ErrNotFound, resultID)
	}
	return item, nil
}

// LatestResult returns the first result in display order.
func (s *ResultService) LatestResult(ctx context.Context) (result.MatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.LatestResult")
	defer span.End()

	items, err := s.ListResults(ctx)
	if err != nil {
		return result.MatchResult{}, err
	}
	for item := range items {
		return item, nil
	}
	return result.MatchResult{}, fmt.Errorf("%w: no results recorded", ErrNotFound)
}

// ListResults returns a lazy sequence over one snapshot of the visible
// results, newest first. Ranging over it again replays the same snapshot.
func (s *ResultService) ListResults(ctx context.Context) (iter.Seq[result.MatchResult], error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.ListResults")
	defer span.End()

	items, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return slices.Values(items), nil
}

func (s *ResultService) ListResultsPage(ctx context.Context, req PageRequest) (Page[result.MatchResult], error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.ListResultsPage")
	defer span.End()

	items, err := s.snapshot(ctx)
	if err != nil {
		return Page[result.MatchResult]{}, err
	}
	return paginate(items, req, s.cfg.PageLimits), nil
}

func (s *ResultService) snapshot(ctx context.Context) ([]result.MatchResult, error) {
	items, err := s.resultRepo.List(ctx, s.cfg.Policy())
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	result.SortForDisplay(items)
	return items, nil
}

func (s *ResultService) buildResult(input AddResultInput, registry standings.Registry) (result.MatchResult, error) {
	item := result.MatchResult{
		MatchType:  strings.TrimSpace(input.MatchType),
		HomeClubID: strings.TrimSpace(input.HomeClubID),
		AwayClubID: strings.TrimSpace(input.AwayClubID),
		HomeScore:  input.HomeScore,
		AwayScore:  input.AwayScore,
		MatchDate:  input.MatchDate,
		Venue:      strings.TrimSpace(input.Venue),
	}
	if err := item.Validate(); err != nil {
		return result.MatchResult{}, err
	}
	for _, clubID := range []string{item.HomeClubID, item.AwayClubID} {
		if _, ok := registry[clubID]; !ok {
			return result.MatchResult{}, standings.NewUnknownClubError("", clubID)
		}
	}

	resultID, err := s.idGen.NewID()
	if err != nil {
		return result.MatchResult{}, fmt.Errorf("generate result id: %w", err)
	}
	item.ID = resultID

	return item, nil
}

func inputClubs(inputs ...AddResultInput) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, input := range inputs {
			if !yield(strings.TrimSpace(input.HomeClubID)) || !yield(strings.TrimSpace(input.AwayClubID)) {
				return
			}
		}
	}
}
