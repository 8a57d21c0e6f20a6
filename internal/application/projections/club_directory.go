package projections

import (
	"context"
	"database/sql"
	"errors"

	"clubhub/internal/domain/club"
	"clubhub/internal/domain/session"
	"clubhub/internal/domain/user"
)

// ClubLister lists every club.
type ClubLister interface {
	List(ctx context.Context) ([]club.Club, error)
}

// MembershipRoster reads a club's member list and membership flags.
type MembershipRoster interface {
	ListMembers(ctx context.Context, clubID int64) ([]user.Ref, error)
	Exists(ctx context.Context, clubID int64, ref user.Ref) (bool, error)
	CountByClub(ctx context.Context, clubID int64) (int, error)
}

// UserReader resolves directory users for roster display.
type UserReader interface {
	GetByID(ctx context.Context, id int64) (user.User, error)
	ListUnassigned(ctx context.Context) ([]user.User, error)
}

// DirectoryEntry is one club in the directory listing.
type DirectoryEntry struct {
	Club        club.Club
	MemberCount int
	Joined      bool
}

// ClubDirectoryDeps contains the dependencies for QueryClubDirectory.
type ClubDirectoryDeps struct {
	ClubStore       ClubLister
	MembershipStore MembershipRoster
}

// QueryClubDirectory lists every club with its member count and whether
// the viewer already belongs to it.
func QueryClubDirectory(ctx context.Context, viewer session.Snapshot, deps ClubDirectoryDeps) ([]DirectoryEntry, error) {
	clubs, err := deps.ClubStore.List(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]DirectoryEntry, 0, len(clubs))
	for _, c := range clubs {
		n, err := deps.MembershipStore.CountByClub(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		joined, err := deps.MembershipStore.Exists(ctx, c.ID, viewer.Ref)
		if err != nil {
			return nil, err
		}
		entries = append(entries, DirectoryEntry{Club: c, MemberCount: n, Joined: joined})
	}
	return entries, nil
}

// RosterMember is one member in the management view.
type RosterMember struct {
	Ref     user.Ref
	Name    string // email local part, or the external id verbatim
	IsAdmin bool
}

// Roster is the member-management view of one club.
type Roster struct {
	Club       club.Club
	Members    []RosterMember
	Unassigned []user.User // directory users eligible for admin-assisted add
}

// RosterDeps contains the dependencies for QueryRoster.
type RosterDeps struct {
	ClubStore       ClubReader
	MembershipStore MembershipRoster
	UserStore       UserReader
}

// QueryRoster assembles a club's member list in join order, plus the
// unassigned directory users offered by the add-member picker.
func QueryRoster(ctx context.Context, clubID int64, deps RosterDeps) (Roster, error) {
	c, err := deps.ClubStore.GetByID(ctx, clubID)
	if err != nil {
		return Roster{}, err
	}
	refs, err := deps.MembershipStore.ListMembers(ctx, clubID)
	if err != nil {
		return Roster{}, err
	}

	r := Roster{Club: c}
	for _, ref := range refs {
		m := RosterMember{Ref: ref, Name: ref.String()}
		if ref.IsNumeric() {
			u, err := deps.UserStore.GetByID(ctx, ref.Numeric())
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					continue
				}
				return Roster{}, err
			}
			m.Name = u.LocalPart()
			m.IsAdmin = c.IsAdmin(u.ID)
		}
		r.Members = append(r.Members, m)
	}

	unassigned, err := deps.UserStore.ListUnassigned(ctx)
	if err != nil {
		return Roster{}, err
	}
	r.Unassigned = unassigned
	return r, nil
}
