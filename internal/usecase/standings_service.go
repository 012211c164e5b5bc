package usecase

import (
	"context"
	"fmt"
	"slices"

	"github.com/remostars/club-standings/internal/domain/club"
	"github.com/remostars/club-standings/internal/domain/result"
	"github.com/remostars/club-standings/internal/domain/standings"
	"github.com/remostars/club-standings/internal/platform/logging"
	"go.uber.org/multierr"
)

// StandingsService serves the league table. Every call recomputes the table
// from the current result log; nothing derived is persisted.
type StandingsService struct {
	clubRepo   club.Repository
	resultRepo result.Repository
	policy     result.Policy
	aggregator *standings.Aggregator
	limits     PageLimits
	logger     *logging.Logger
}

func NewStandingsService(
	clubRepo club.Repository,
	resultRepo result.Repository,
	policy result.Policy,
	aggregator *standings.Aggregator,
	limits PageLimits,
	logger *logging.Logger,
) *StandingsService {
	if logger == nil {
		logger = logging.Default()
	}
	if policy == nil {
		policy = result.AllResults()
	}
	if aggregator == nil {
		aggregator = standings.NewAggregator(standings.DefaultRules())
	}
	if limits.DefaultSize <= 0 {
		limits = DefaultPageLimits()
	}

	return &StandingsService{
		clubRepo:   clubRepo,
		resultRepo: resultRepo,
		policy:     policy,
		aggregator: aggregator,
		limits:     limits,
		logger:     logger.Named("standings"),
	}
}

// ComputeStandings aggregates the visible results into rows keyed by club id.
// Results are read before clubs. A result committed after the read is left
// out whole, and any club a read result refers to already exists.
func (s *StandingsService) ComputeStandings(ctx context.Context) (map[string]standings.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.ComputeStandings")
	defer span.End()

	results, err := s.resultRepo.List(ctx, s.policy())
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}

	registry, err := clubRegistry(ctx, s.clubRepo, referencedClubs(results))
	if err != nil {
		return nil, err
	}

	rows, err := s.aggregator.Compute(slices.Values(results), registry)
	for _, skipped := range multierr.Errors(err) {
		s.logger.WarnContext(ctx, "result skipped while computing standings", "error", skipped)
	}

	return rows, nil
}

// GetTable returns every row of the ranked table.
func (s *StandingsService) GetTable(ctx context.Context) ([]standings.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.GetTable")
	defer span.End()

	rows, err := s.ComputeStandings(ctx)
	if err != nil {
		return nil, err
	}
	return standings.Rank(rows), nil
}

func (s *StandingsService) GetTablePage(ctx context.Context, req PageRequest) (Page[standings.Row], error) {
	table, err := s.GetTable(ctx)
	if err != nil {
		return Page[standings.Row]{}, err
	}
	return paginate(table, req, s.limits), nil
}

func (s *StandingsService) Rules() standings.Rules {
	return s.aggregator.Rules()
}
