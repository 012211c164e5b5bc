package cache

import (
	"context"
	"slices"
	"time"

	"github.com/remostars/club-standings/internal/domain/club"
	basecache "github.com/remostars/club-standings/internal/platform/cache"
)

const clubListKey = "clubs"

// ClubRepository serves club reads from one cached copy of the registry.
// Writes go straight to next and purge the cache. A GetByID miss is answered
// by next, since another instance may have registered the club after the copy
// was taken.
type ClubRepository struct {
	next  club.Repository
	cache *basecache.Store[[]club.Club]
}

func NewClubRepository(next club.Repository, ttl time.Duration) *ClubRepository {
	return &ClubRepository{next: next, cache: basecache.NewStore[[]club.Club](ttl)}
}

func (r *ClubRepository) List(ctx context.Context) ([]club.Club, error) {
	items, err := r.cache.Load(ctx, clubListKey, r.next.List)
	if err != nil {
		return nil, err
	}
	return slices.Clone(items), nil
}

func (r *ClubRepository) GetByID(ctx context.Context, clubID string) (club.Club, bool, error) {
	items, err := r.cache.Load(ctx, clubListKey, r.next.List)
	if err != nil {
		return club.Club{}, false, err
	}
	idx := slices.IndexFunc(items, func(item club.Club) bool { return item.ID == clubID })
	if idx >= 0 {
		return items[idx], true, nil
	}

	item, ok, err := r.next.GetByID(ctx, clubID)
	if err != nil || !ok {
		return club.Club{}, false, err
	}
	r.cache.Purge()
	return item, true, nil
}

func (r *ClubRepository) Create(ctx context.Context, item club.Club) error {
	defer r.cache.Purge()
	return r.next.Create(ctx, item)
}

func (r *ClubRepository) Update(ctx context.Context, item club.Club) error {
	defer r.cache.Purge()
	return r.next.Update(ctx, item)
}
