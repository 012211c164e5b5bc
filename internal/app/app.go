package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/remostars/club-standings/internal/config"
	"github.com/remostars/club-standings/internal/domain/club"
	"github.com/remostars/club-standings/internal/domain/result"
	"github.com/remostars/club-standings/internal/domain/standings"
	"github.com/remostars/club-standings/internal/infrastructure/database"
	"github.com/remostars/club-standings/internal/infrastructure/repository/cache"
	"github.com/remostars/club-standings/internal/infrastructure/repository/memory"
	"github.com/remostars/club-standings/internal/infrastructure/repository/postgres"
	"github.com/remostars/club-standings/internal/interfaces/httpapi"
	idgen "github.com/remostars/club-standings/internal/platform/id"
	"github.com/remostars/club-standings/internal/platform/logging"
	"github.com/remostars/club-standings/internal/usecase"
)

// Server bundles the HTTP server with the resources it owns.
type Server struct {
	HTTP    *http.Server
	closers []func() error
}

// Close releases store connections. Call it after the HTTP server has shut down.
func (s *Server) Close() error {
	var firstErr error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

type repositories struct {
	clubs   club.Repository
	results result.Repository
	close   func() error
}

func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	rules := standings.Rules{
		WinPoints:  cfg.PointsWin,
		DrawPoints: cfg.PointsDraw,
		LossPoints: cfg.PointsLoss,
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("points rules: %w", err)
	}

	repos, err := newRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	clubRepo := repos.clubs
	if cfg.CacheEnabled {
		clubRepo = cache.NewClubRepository(clubRepo, cfg.CacheTTL)
	}

	policy := result.AllResults()
	if cfg.ResultsPlayedOnly {
		policy = result.PlayedOnly(time.Now)
	}

	var aggOpts []standings.Option
	if cfg.IncludeIdleClubs {
		aggOpts = append(aggOpts, standings.WithIdleClubs())
	}

	limits := usecase.PageLimits{DefaultSize: cfg.DefaultPageSize, MaxSize: cfg.MaxPageSize}
	ids := idgen.NewUUIDGenerator()

	clubSvc := usecase.NewClubService(clubRepo, repos.results, ids, logger)
	resultSvc := usecase.NewResultService(clubRepo, repos.results, ids, usecase.ResultServiceConfig{
		Policy:        policy,
		ImportWorkers: cfg.ImportWorkers,
		PageLimits:    limits,
	}, logger)
	standingsSvc := usecase.NewStandingsService(
		clubRepo,
		repos.results,
		policy,
		standings.NewAggregator(rules, aggOpts...),
		limits,
		logger,
	)

	handler := httpapi.NewHandler(clubSvc, resultSvc, standingsSvc, logger)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterConfig{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		AdminToken:         cfg.AdminToken,
	})

	server := &Server{
		HTTP: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}
	if repos.close != nil {
		server.closers = append(server.closers, repos.close)
	}

	logger.Info("http server configured",
		"store_driver", cfg.StoreDriver,
		"cache_enabled", cfg.CacheEnabled,
		"results_played_only", cfg.ResultsPlayedOnly,
		"include_idle_clubs", cfg.IncludeIdleClubs,
	)
	return server, nil
}

func newRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	switch cfg.StoreDriver {
	case config.StoreMemory, "":
		return repositories{
			clubs:   memory.NewClubRepository(memory.SeedClubs()),
			results: memory.NewResultRepository(memory.SeedResults()),
		}, nil
	case config.StorePostgres:
		db, err := database.Open(ctx, database.Options{
			URL:                         cfg.DBURL,
			DisablePreparedBinaryResult: cfg.DBDisablePreparedBinary,
			MaxOpenConns:                20,
			MaxIdleConns:                5,
			ConnMaxLifetime:             30 * time.Minute,
		})
		if err != nil {
			return repositories{}, fmt.Errorf("open database: %w", err)
		}
		logger.Info("database connected", "db_name", database.NameFromURL(cfg.DBURL))

		return repositories{
			clubs:   postgres.NewClubRepository(db),
			results: postgres.NewResultRepository(db),
			close:   db.Close,
		}, nil
	default:
		return repositories{}, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}
