package event

import (
	"context"

	domain "clubhub/internal/domain/event"
)

// Store persists Event state. Events are append-only.
type Store interface {
	Save(ctx context.Context, value domain.Event) error
	ListGeneral(ctx context.Context) ([]domain.Event, error)
	ListByClub(ctx context.Context, clubID int64) ([]domain.Event, error)
	ListAll(ctx context.Context) ([]domain.Event, error)
	CountByClub(ctx context.Context, clubID int64) (int, error)
}
