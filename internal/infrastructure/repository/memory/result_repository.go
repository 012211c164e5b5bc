package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/remostars/club-standings/internal/domain/result"
)

// ResultRepository keeps the result log in memory. Reads copy the log under
// the lock, so callers always see a whole snapshot before or after a write.
type ResultRepository struct {
	mu      sync.RWMutex
	items   []result.MatchResult
	nextSeq int64
}

func NewResultRepository(seed []result.MatchResult) *ResultRepository {
	r := &ResultRepository{}
	for _, item := range seed {
		r.nextSeq++
		item.Seq = r.nextSeq
		r.items = append(r.items, item)
	}
	return r
}

func (r *ResultRepository) List(_ context.Context, filter result.Filter) ([]result.MatchResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]result.MatchResult, 0, len(r.items))
	for _, item := range r.items {
		if filter.Match(item) {
			out = append(out, item)
		}
	}
	result.SortForDisplay(out)
	return out, nil
}

func (r *ResultRepository) GetByID(_ context.Context, resultID string) (result.MatchResult, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.ID == resultID {
			return item, true, nil
		}
	}
	return result.MatchResult{}, false, nil
}

func (r *ResultRepository) Create(_ context.Context, items ...result.MatchResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{}, len(items))
	for _, existing := range r.items {
		seen[existing.ID] = struct{}{}
	}
	for _, item := range items {
		if _, dup := seen[item.ID]; dup {
			return fmt.Errorf("result %s already exists", item.ID)
		}
		seen[item.ID] = struct{}{}
	}

	for _, item := range items {
		r.nextSeq++
		item.Seq = r.nextSeq
		r.items = append(r.items, item)
	}
	return nil
}

func (r *ResultRepository) Delete(_ context.Context, resultID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx, item := range r.items {
		if item.ID == resultID {
			r.items = append(r.items[:idx:idx], r.items[idx+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *ResultRepository) CountByClub(_ context.Context, clubID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, item := range r.items {
		if item.Involves(clubID) {
			count++
		}
	}
	return count, nil
}
