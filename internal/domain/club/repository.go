package club

import "context"

// Repository describes club registry persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Club, error)
	GetByID(ctx context.Context, clubID string) (Club, bool, error)
	Create(ctx context.Context, item Club) error
	Update(ctx context.Context, item Club) error
}
