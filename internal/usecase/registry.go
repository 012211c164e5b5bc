package usecase

import (
	"context"
	"fmt"
	"iter"

	"github.com/remostars/club-standings/internal/domain/club"
	"github.com/remostars/club-standings/internal/domain/result"
	"github.com/remostars/club-standings/internal/domain/standings"
	"github.com/sourcegraph/conc/pool"
)

const maxClubLookups = 4

// clubRegistry lists the clubs and resolves any referenced id the listing
// lacks by a direct lookup. Clubs are never deleted, so a miss only means the
// listing predates the club: a cached list, or one read before a concurrent
// registration. Ids that stay unresolved are left out of the registry.
func clubRegistry(ctx context.Context, repo club.Repository, referenced iter.Seq[string]) (standings.Registry, error) {
	clubs, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}
	registry := standings.NewRegistry(clubs)

	missing := make(map[string]struct{})
	for clubID := range referenced {
		if _, ok := registry[clubID]; !ok && clubID != "" {
			missing[clubID] = struct{}{}
		}
	}
	if len(missing) == 0 {
		return registry, nil
	}

	p := pool.NewWithResults[club.Club]().
		WithContext(ctx).
		WithCancelOnError().
		WithMaxGoroutines(min(maxClubLookups, len(missing)))
	for clubID := range missing {
		p.Go(func(ctx context.Context) (club.Club, error) {
			item, ok, err := repo.GetByID(ctx, clubID)
			if err != nil {
				return club.Club{}, fmt.Errorf("get club %s: %w", clubID, err)
			}
			if !ok {
				return club.Club{}, nil
			}
			return item, nil
		})
	}
	found, err := p.Wait()
	if err != nil {
		return nil, err
	}
	for _, item := range found {
		if item.ID != "" {
			registry[item.ID] = item
		}
	}
	return registry, nil
}

func referencedClubs(results []result.MatchResult) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, item := range results {
			if !yield(item.HomeClubID) || !yield(item.AwayClubID) {
				return
			}
		}
	}
}
