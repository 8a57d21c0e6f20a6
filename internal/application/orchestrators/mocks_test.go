package orchestrators

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"clubhub/internal/adapters/email"
	"clubhub/internal/domain/announcement"
	"clubhub/internal/domain/club"
	"clubhub/internal/domain/event"
	"clubhub/internal/domain/payment"
	"clubhub/internal/domain/session"
	"clubhub/internal/domain/theme"
	"clubhub/internal/domain/user"
)

var fixedTime = time.Date(2025, 10, 25, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return fixedTime }

func fixedID() string { return "test-id-001" }

func fixedToken() string { return "test-token-001" }

// mockUsers is a map-backed user store.
type mockUsers struct {
	m    map[int64]user.User
	next int64
}

func (s *mockUsers) GetByID(_ context.Context, id int64) (user.User, error) {
	u, ok := s.m[id]
	if !ok {
		return user.User{}, sql.ErrNoRows
	}
	return u, nil
}

func (s *mockUsers) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range s.m {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return user.User{}, sql.ErrNoRows
}

func (s *mockUsers) GetByLocalPart(_ context.Context, localPart string) (user.User, error) {
	for _, u := range s.m {
		if u.LocalPart() == localPart {
			return u, nil
		}
	}
	return user.User{}, sql.ErrNoRows
}

func (s *mockUsers) Create(_ context.Context, u user.User) (int64, error) {
	s.next++
	u.ID = s.next
	s.m[u.ID] = u
	return u.ID, nil
}

func (s *mockUsers) UpdateRole(_ context.Context, id int64, role string) error {
	u, ok := s.m[id]
	if !ok {
		return sql.ErrNoRows
	}
	u.Role = role
	s.m[id] = u
	return nil
}

func (s *mockUsers) Count(_ context.Context) (int, error) { return len(s.m), nil }

// mockClubs is a map-backed club store.
type mockClubs struct {
	m    map[int64]club.Club
	next int64
}

func (s *mockClubs) GetByID(_ context.Context, id int64) (club.Club, error) {
	c, ok := s.m[id]
	if !ok {
		return club.Club{}, sql.ErrNoRows
	}
	return c, nil
}

func (s *mockClubs) Create(_ context.Context, c club.Club) (int64, error) {
	s.next++
	c.ID = s.next
	s.m[c.ID] = c
	return c.ID, nil
}

func (s *mockClubs) SetAdmin(_ context.Context, clubID int64, adminID int64) error {
	c, ok := s.m[clubID]
	if !ok {
		return sql.ErrNoRows
	}
	c.AdminID = adminID
	s.m[clubID] = c
	return nil
}

// membershipRow is one entry in the ordered membership relation.
type membershipRow struct {
	clubID int64
	ref    user.Ref
}

// mockMemberships is a slice-backed membership relation that preserves
// insertion order like the real table does.
type mockMemberships struct {
	rows []membershipRow
}

func (s *mockMemberships) ListClubIDs(_ context.Context, ref user.Ref) ([]int64, error) {
	var out []int64
	for _, m := range s.rows {
		if m.ref == ref {
			out = append(out, m.clubID)
		}
	}
	return out, nil
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

func (s *mockMemberships) Add(_ context.Context, clubID int64, ref user.Ref, _ time.Time) error {
	s.rows = append(s.rows, membershipRow{clubID: clubID, ref: ref})
	return nil
}

func (s *mockMemberships) Remove(_ context.Context, clubID int64, ref user.Ref) error {
	for i, m := range s.rows {
		if m.clubID == clubID && m.ref == ref {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return nil
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

// mockSessions is a map-backed session store.
type mockSessions struct {
	m map[string]session.Record
}

func (s *mockSessions) Get(_ context.Context, token string) (session.Record, error) {
	rec, ok := s.m[token]
	if !ok {
		return session.Record{}, sql.ErrNoRows
	}
	return rec, nil
}

func (s *mockSessions) Put(_ context.Context, rec session.Record) error {
	s.m[rec.Token] = rec
	return nil
}

func (s *mockSessions) Delete(_ context.Context, token string) error {
	delete(s.m, token)
	return nil
}

// mockAnnouncements records saved announcements in order.
type mockAnnouncements struct {
	saved []announcement.Announcement
}

func (s *mockAnnouncements) Save(_ context.Context, a announcement.Announcement) error {
	s.saved = append(s.saved, a)
	return nil
}

// mockEvents records saved events in order.
type mockEvents struct {
	saved []event.Event
}

func (s *mockEvents) Save(_ context.Context, e event.Event) error {
	s.saved = append(s.saved, e)
	return nil
}

// mockPayments is a map-backed payment store.
type mockPayments struct {
	m map[string]payment.Payment
}

func (s *mockPayments) Save(_ context.Context, p payment.Payment) error {
	s.m[p.ID] = p
	return nil
}

func (s *mockPayments) GetByID(_ context.Context, id string) (payment.Payment, error) {
	p, ok := s.m[id]
	if !ok {
		return payment.Payment{}, sql.ErrNoRows
	}
	return p, nil
}

// mockThemes is a map-backed theme store.
type mockThemes struct {
	m map[string]theme.Preference
}

func (s *mockThemes) Get(_ context.Context, ownerRef string) (theme.Preference, error) {
	p, ok := s.m[ownerRef]
	if !ok {
		return theme.Preference{}, sql.ErrNoRows
	}
	return p, nil
}

func (s *mockThemes) Save(_ context.Context, p theme.Preference) error {
	s.m[p.OwnerRef] = p
	return nil
}

// mockEmail records sent notifications.
type mockEmail struct {
	sent []email.Message
}

func (s *mockEmail) Send(_ context.Context, msg email.Message) (string, error) {
	s.sent = append(s.sent, msg)
	return "mock-msg", nil
}

// fixture groups the mock stores behind one setup point.
type fixture struct {
	users       *mockUsers
	clubs       *mockClubs
	memberships *mockMemberships
	sessions    *mockSessions
	anns        *mockAnnouncements
	events      *mockEvents
	payments    *mockPayments
	themes      *mockThemes
	email       *mockEmail
}

func newFixture() *fixture {
	return &fixture{
		users:       &mockUsers{m: make(map[int64]user.User)},
		clubs:       &mockClubs{m: make(map[int64]club.Club)},
		memberships: &mockMemberships{},
		sessions:    &mockSessions{m: make(map[string]session.Record)},
		anns:        &mockAnnouncements{},
		events:      &mockEvents{},
		payments:    &mockPayments{m: make(map[string]payment.Payment)},
		themes:      &mockThemes{m: make(map[string]theme.Preference)},
		email:       &mockEmail{},
	}
}

// addUser inserts a directory user with a bcrypt-hashed password.
func (f *fixture) addUser(t *testing.T, email, password, role string) int64 {
	t.Helper()
	u := user.User{Email: email, Role: role}
	if err := u.SetPassword(password); err != nil {
		t.Fatalf("set password: %v", err)
	}
	id, err := f.users.Create(context.Background(), u)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return id
}

func (f *fixture) addClub(name string, adminID int64) int64 {
	f.clubs.next++
	id := f.clubs.next
	f.clubs.m[id] = club.Club{ID: id, Name: name, AdminID: adminID}
	return id
}

func (f *fixture) addMembership(clubID int64, ref user.Ref) {
	f.memberships.rows = append(f.memberships.rows, membershipRow{clubID: clubID, ref: ref})
}

// checkAdminInvariant verifies that every occupied admin seat points at a
// listed member whose role is Admin.
func checkAdminInvariant(t *testing.T, f *fixture) {
	t.Helper()
	for id, c := range f.clubs.m {
		if !c.HasAdmin() {
			continue
		}
		found := false
		for _, m := range f.memberships.rows {
			if m.clubID == id && m.ref == user.NumericRef(c.AdminID) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("club %d admin seat %d is not in the member list", id, c.AdminID)
		}
		if u, ok := f.users.m[c.AdminID]; ok && u.Role != user.RoleAdmin {
			t.Errorf("club %d admin %d has role %s, want Admin", id, c.AdminID, u.Role)
		}
	}
}
