package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"clubhub/internal/domain/announcement"
	"clubhub/internal/domain/session"
)

// AnnouncementWriter persists announcements.
type AnnouncementWriter interface {
	Save(ctx context.Context, value announcement.Announcement) error
}

// PostAnnouncementInput contains the data needed to post an announcement.
// ClubID 0 targets the general board.
type PostAnnouncementInput struct {
	ClubID int64
	Text   string
	Actor  session.Snapshot
}

// PostAnnouncementDeps contains the dependencies for ExecutePostAnnouncement.
type PostAnnouncementDeps struct {
	AnnouncementStore AnnouncementWriter
	ClubStore         ClubReader
	GenerateID        func() string
	Now               func() time.Time
}

// ExecutePostAnnouncement appends an announcement to the general board or
// a club's board. The posting date is stamped server-side.
// PRE: Actor holds the Creator or Admin role
// POST: the announcement is persisted; boards are append-only
func ExecutePostAnnouncement(ctx context.Context, input PostAnnouncementInput, deps PostAnnouncementDeps) (announcement.Announcement, error) {
	if !canManageMembers(input.Actor) {
		return announcement.Announcement{}, ErrForbidden
	}
	if strings.TrimSpace(input.Text) == "" {
		return announcement.Announcement{}, ErrMissingInput
	}
	if input.ClubID != 0 {
		if _, err := deps.ClubStore.GetByID(ctx, input.ClubID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return announcement.Announcement{}, ErrNotFound
			}
			return announcement.Announcement{}, err
		}
	}

	now := deps.Now()
	a := announcement.Announcement{
		ID:        deps.GenerateID(),
		ClubID:    input.ClubID,
		Date:      now.Format(announcement.DateLayout),
		Text:      input.Text,
		CreatedAt: now,
	}
	if err := a.Validate(); err != nil {
		return announcement.Announcement{}, err
	}
	if err := deps.AnnouncementStore.Save(ctx, a); err != nil {
		return announcement.Announcement{}, err
	}
	slog.Info("announcement_posted", "id", a.ID, "club_id", a.ClubID, "general", a.IsGeneral())
	return a, nil
}
