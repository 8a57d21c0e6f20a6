package payment

import (
	"context"

	domain "clubhub/internal/domain/payment"
)

// Store persists Payment state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Payment, error)
	Save(ctx context.Context, value domain.Payment) error
	ListByPayer(ctx context.Context, payerRef string) ([]domain.Payment, error)
}
