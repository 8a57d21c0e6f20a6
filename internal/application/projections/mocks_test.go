package projections

import (
	"context"
	"database/sql"
	"slices"
	"time"

	"clubhub/internal/domain/announcement"
	"clubhub/internal/domain/club"
	"clubhub/internal/domain/event"
	"clubhub/internal/domain/user"
)

var fixedTime = time.Date(2025, 10, 25, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return fixedTime }

// mockEvents is a slice-backed event store preserving insertion order.
type mockEvents struct {
	list []event.Event
}

func (s *mockEvents) add(clubID int64, id, title, date string) {
	s.list = append(s.list, event.Event{ID: id, ClubID: clubID, Title: title, Date: date, Description: title})
}

func (s *mockEvents) ListGeneral(_ context.Context) ([]event.Event, error) {
	var out []event.Event
	for _, e := range s.list {
		if e.IsGeneral() {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *mockEvents) ListByClub(_ context.Context, clubID int64) ([]event.Event, error) {
	var out []event.Event
	for _, e := range s.list {
		if e.ClubID == clubID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *mockEvents) ListAll(_ context.Context) ([]event.Event, error) {
	return append([]event.Event(nil), s.list...), nil
}

func (s *mockEvents) CountByClub(_ context.Context, clubID int64) (int, error) {
	n := 0
	for _, e := range s.list {
		if e.ClubID == clubID {
			n++
		}
	}
	return n, nil
}

// mockAnnouncements is a slice-backed announcement store. General listing
// returns newest first, matching the real store.
type mockAnnouncements struct {
	list []announcement.Announcement
}

func (s *mockAnnouncements) add(clubID int64, id, text string) {
	s.list = append(s.list, announcement.Announcement{ID: id, ClubID: clubID, Date: "2025-10-25", Text: text})
}

func (s *mockAnnouncements) ListGeneral(_ context.Context) ([]announcement.Announcement, error) {
	var out []announcement.Announcement
	for i := len(s.list) - 1; i >= 0; i-- {
		if s.list[i].IsGeneral() {
			out = append(out, s.list[i])
		}
	}
	return out, nil
}

func (s *mockAnnouncements) ListByClub(_ context.Context, clubID int64) ([]announcement.Announcement, error) {
	var out []announcement.Announcement
	for _, a := range s.list {
		if a.ClubID == clubID {
			out = append(out, a)
		}
	}
	return out, nil
}

// mockClubs is a map-backed club store.
type mockClubs struct {
	m map[int64]club.Club
}

func (s *mockClubs) GetByID(_ context.Context, id int64) (club.Club, error) {
	c, ok := s.m[id]
	if !ok {
		return club.Club{}, sql.ErrNoRows
	}
	return c, nil
}

func (s *mockClubs) FindByAdmin(_ context.Context, adminID int64) (club.Club, error) {
	for _, c := range s.m {
		if c.AdminID == adminID {
			return c, nil
		}
	}
	return club.Club{}, sql.ErrNoRows
}

func (s *mockClubs) List(_ context.Context) ([]club.Club, error) {
	var out []club.Club
	for id := int64(1); id <= int64(len(s.m)); id++ {
		if c, ok := s.m[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *mockClubs) Count(_ context.Context) (int, error) { return len(s.m), nil }

// mockUsers is a map-backed user store. Unassigned users are derived the
// same way the SQL store derives them.
type mockUsers struct {
	m           map[int64]user.User
	memberships *mockMemberships
}

func (s *mockUsers) GetByID(_ context.Context, id int64) (user.User, error) {
	u, ok := s.m[id]
	if !ok {
		return user.User{}, sql.ErrNoRows
	}
	return u, nil
}

func (s *mockUsers) Count(_ context.Context) (int, error) { return len(s.m), nil }

func (s *mockUsers) ListUnassigned(_ context.Context) ([]user.User, error) {
	ids := make([]int64, 0, len(s.m))
	for id := range s.m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	var out []user.User
	for _, id := range ids {
		u := s.m[id]
		if u.Role == user.RoleCreator {
			continue
		}
		assigned := false
		for _, m := range s.memberships.rows {
			if m.ref == user.NumericRef(id) {
				assigned = true
				break
			}
		}
		if !assigned {
			out = append(out, u)
		}
	}
	return out, nil
}

// mockMemberships is a slice-backed membership relation.
type mockMemberships struct {
	rows []membershipRow
}

type membershipRow struct {
	clubID int64
	ref    user.Ref
}

func (s *mockMemberships) ListMembers(_ context.Context, clubID int64) ([]user.Ref, error) {
	var out []user.Ref
	for _, m := range s.rows {
		if m.clubID == clubID {
			out = append(out, m.ref)
		}
	}
	return out, nil
}

func (s *mockMemberships) Exists(_ context.Context, clubID int64, ref user.Ref) (bool, error) {
	for _, m := range s.rows {
		if m.clubID == clubID && m.ref == ref {
			return true, nil
		}
	}
	return false, nil
}

func (s *mockMemberships) CountByClub(_ context.Context, clubID int64) (int, error) {
	n := 0
	for _, m := range s.rows {
		if m.clubID == clubID {
			n++
		}
	}
	return n, nil
}

