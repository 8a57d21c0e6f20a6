package projections

import (
	"context"
	"database/sql"
	"errors"

	"clubhub/internal/domain/announcement"
	"clubhub/internal/domain/club"
	"clubhub/internal/domain/event"
	"clubhub/internal/domain/session"
	"clubhub/internal/domain/user"
)

// ClubReader is the subset of the club store needed by read queries.
type ClubReader interface {
	GetByID(ctx context.Context, id int64) (club.Club, error)
	FindByAdmin(ctx context.Context, adminID int64) (club.Club, error)
	Count(ctx context.Context) (int, error)
}

// UserCounter counts directory users.
type UserCounter interface {
	Count(ctx context.Context) (int, error)
}

// MembershipCounter counts a club's members.
type MembershipCounter interface {
	CountByClub(ctx context.Context, clubID int64) (int, error)
}

// AnnouncementReader is the subset of the announcement store needed by
// read queries.
type AnnouncementReader interface {
	ListGeneral(ctx context.Context) ([]announcement.Announcement, error)
	ListByClub(ctx context.Context, clubID int64) ([]announcement.Announcement, error)
}

// EventCounter counts a club's events.
type EventCounter interface {
	CountByClub(ctx context.Context, clubID int64) (int, error)
}

// Dashboard is the role-dependent landing view. Only the section matching
// the viewer's role is populated.
type Dashboard struct {
	Role    string
	Creator *CreatorDashboard
	Admin   *AdminDashboard
	Member  *MemberDashboard
}

// CreatorDashboard summarizes the whole system.
type CreatorDashboard struct {
	TotalClubs int
	TotalUsers int
}

// AdminDashboard summarizes the club whose seat the viewer holds.
type AdminDashboard struct {
	Club          *club.Club // nil when the viewer holds no seat
	MemberCount   int
	EventCount    int
	Announcements []announcement.Announcement
}

// MemberDashboard is the joined-clubs view.
type MemberDashboard struct {
	ClubIDs       []int64
	Announcements []announcement.Announcement
	Events        []event.Event
}

// DashboardDeps contains the dependencies for QueryDashboard.
type DashboardDeps struct {
	UserStore         UserCounter
	ClubStore         ClubReader
	MembershipStore   MembershipCounter
	AnnouncementStore AnnouncementReader
	EventStore        interface {
		EventReader
		EventCounter
	}
}

// QueryDashboard assembles the landing view for the viewer's role.
// General announcements come newest first; club announcements keep
// posting order.
func QueryDashboard(ctx context.Context, snap session.Snapshot, deps DashboardDeps) (Dashboard, error) {
	d := Dashboard{Role: snap.Role}
	switch snap.Role {
	case user.RoleCreator:
		clubs, err := deps.ClubStore.Count(ctx)
		if err != nil {
			return Dashboard{}, err
		}
		users, err := deps.UserStore.Count(ctx)
		if err != nil {
			return Dashboard{}, err
		}
		d.Creator = &CreatorDashboard{TotalClubs: clubs, TotalUsers: users}

	case user.RoleAdmin:
		admin, err := adminDashboard(ctx, snap, deps)
		if err != nil {
			return Dashboard{}, err
		}
		d.Admin = admin

	default:
		member, err := memberDashboard(ctx, snap, deps)
		if err != nil {
			return Dashboard{}, err
		}
		d.Member = member
	}
	return d, nil
}

func adminDashboard(ctx context.Context, snap session.Snapshot, deps DashboardDeps) (*AdminDashboard, error) {
	ad := &AdminDashboard{}
	general, err := deps.AnnouncementStore.ListGeneral(ctx)
	if err != nil {
		return nil, err
	}
	ad.Announcements = general

	if !snap.Ref.IsNumeric() {
		// Synthetic admins hold no directory seat; they see the general
		// board only.
		return ad, nil
	}
	c, err := deps.ClubStore.FindByAdmin(ctx, snap.Ref.Numeric())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ad, nil
		}
		return nil, err
	}
	ad.Club = &c
	if ad.MemberCount, err = deps.MembershipStore.CountByClub(ctx, c.ID); err != nil {
		return nil, err
	}
	if ad.EventCount, err = deps.EventStore.CountByClub(ctx, c.ID); err != nil {
		return nil, err
	}
	clubAnns, err := deps.AnnouncementStore.ListByClub(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	ad.Announcements = append(ad.Announcements, clubAnns...)
	return ad, nil
}

func memberDashboard(ctx context.Context, snap session.Snapshot, deps DashboardDeps) (*MemberDashboard, error) {
	md := &MemberDashboard{ClubIDs: snap.Clubs}
	anns, err := deps.AnnouncementStore.ListGeneral(ctx)
	if err != nil {
		return nil, err
	}
	for _, id := range snap.Clubs {
		clubAnns, err := deps.AnnouncementStore.ListByClub(ctx, id)
		if err != nil {
			return nil, err
		}
		anns = append(anns, clubAnns...)
	}
	md.Announcements = anns

	events, err := QueryEventFeed(ctx, snap.Clubs, EventFeedDeps{EventStore: deps.EventStore})
	if err != nil {
		return nil, err
	}
	md.Events = events
	return md, nil
}
