package membership

import (
	"context"
	"time"

	"clubhub/internal/domain/user"
)

// Store persists the membership relation. One ordered relation backs both
// views the application needs: a user's club list and a club's member list.
type Store interface {
	ListClubIDs(ctx context.Context, ref user.Ref) ([]int64, error)
	ListMembers(ctx context.Context, clubID int64) ([]user.Ref, error)
	Exists(ctx context.Context, clubID int64, ref user.Ref) (bool, error)
	Add(ctx context.Context, clubID int64, ref user.Ref, joinedAt time.Time) error
	Remove(ctx context.Context, clubID int64, ref user.Ref) error
	CountByClub(ctx context.Context, clubID int64) (int, error)
}
