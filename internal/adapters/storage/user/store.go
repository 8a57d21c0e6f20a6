package user

import (
	"context"

	domain "clubhub/internal/domain/user"
)

// Store persists User state.
type Store interface {
	GetByID(ctx context.Context, id int64) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByLocalPart(ctx context.Context, localPart string) (domain.User, error)
	Create(ctx context.Context, value domain.User) (int64, error)
	UpdateRole(ctx context.Context, id int64, role string) error
	List(ctx context.Context) ([]domain.User, error)
	ListUnassigned(ctx context.Context) ([]domain.User, error)
	Count(ctx context.Context) (int, error)
}
