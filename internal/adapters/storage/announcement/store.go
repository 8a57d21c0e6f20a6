package announcement

import (
	"context"

	domain "clubhub/internal/domain/announcement"
)

// Store persists Announcement state. Announcements are append-only.
type Store interface {
	Save(ctx context.Context, value domain.Announcement) error
	ListGeneral(ctx context.Context) ([]domain.Announcement, error)
	ListByClub(ctx context.Context, clubID int64) ([]domain.Announcement, error)
}
