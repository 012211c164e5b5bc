package result

import "context"

// Repository stores the result log. Create inserts every item or none.
type Repository interface {
	List(ctx context.Context, filter Filter) ([]MatchResult, error)
	GetByID(ctx context.Context, resultID string) (MatchResult, bool, error)
	Create(ctx context.Context, items ...MatchResult) error
	Delete(ctx context.Context, resultID string) (bool, error)
	CountByClub(ctx context.Context, clubID string) (int, error)
}
