package club

import (
	"context"

	domain "clubhub/internal/domain/club"
)

// Store persists Club state.
type Store interface {
	GetByID(ctx context.Context, id int64) (domain.Club, error)
	Create(ctx context.Context, value domain.Club) (int64, error)
	SetAdmin(ctx context.Context, clubID int64, adminID int64) error
	List(ctx context.Context) ([]domain.Club, error)
	FindByAdmin(ctx context.Context, adminID int64) (domain.Club, error)
	Count(ctx context.Context) (int, error)
}
