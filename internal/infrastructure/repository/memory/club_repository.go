package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/remostars/club-standings/internal/domain/club"
)

type ClubRepository struct {
	mu    sync.RWMutex
	clubs map[string]club.Club
}

func NewClubRepository(clubs []club.Club) *ClubRepository {
	byID := make(map[string]club.Club, len(clubs))
	for _, item := range clubs {
		byID[item.ID] = item
	}

	return &ClubRepository{clubs: byID}
}

func (r *ClubRepository) List(_ context.Context) ([]club.Club, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]club.Club, 0, len(r.clubs))
	for _, item := range r.clubs {
		out = append(out, item)
	}
	return out, nil
}

func (r *ClubRepository) GetByID(_ context.Context, clubID string) (club.Club, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.clubs[clubID]
	return item, ok, nil
}

func (r *ClubRepository) Create(_ context.Context, item club.Club) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.nameTakenLocked(item.ID, item.Name) {
		return club.ErrNameTaken
	}
	r.clubs[item.ID] = item
	return nil
}

func (r *ClubRepository) Update(_ context.Context, item club.Club) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clubs[item.ID]; !ok {
		return club.ErrNotFound
	}
	if r.nameTakenLocked(item.ID, item.Name) {
		return club.ErrNameTaken
	}
	r.clubs[item.ID] = item
	return nil
}

func (r *ClubRepository) nameTakenLocked(clubID, name string) bool {
	for id, existing := range r.clubs {
		if id != clubID && strings.EqualFold(existing.Name, name) {
			return true
		}
	}
	return false
}
