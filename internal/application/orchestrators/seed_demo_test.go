package orchestrators

import (
	"context"
	"fmt"
	"testing"
)

func seedDeps(f *fixture) SeedDemoDeps {
	n := 0
	return SeedDemoDeps{
		UserStore:         f.users,
		ClubStore:         f.clubs,
		MembershipStore:   f.memberships,
		AnnouncementStore: f.anns,
		EventStore:        f.events,
		GenerateID: func() string {
			n++
			return fmt.Sprintf("seed-%03d", n)
		},
		Now: fixedNow,
	}
}

// TestExecuteSeedDemo_Fixture tests that seeding builds a consistent demo
// data set.
func TestExecuteSeedDemo_Fixture(t *testing.T) {
	f := newFixture()
	if err := ExecuteSeedDemo(context.Background(), seedDeps(f)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(f.users.m) != 4 {
		t.Errorf("expected 4 users, got %d", len(f.users.m))
	}
	if len(f.clubs.m) != 3 {
		t.Errorf("expected 3 clubs, got %d", len(f.clubs.m))
	}
	if len(f.anns.saved) == 0 || len(f.events.saved) == 0 {
		t.Error("expected starter announcements and events")
	}
	checkAdminInvariant(t, f)

	// The fixture passwords work through the login path.
	_, err := ExecuteLogin(context.Background(), LoginInput{
		Identifier: "creator@example.com",
		Password:   "123",
	}, loginDeps(f))
	if err != nil {
		t.Errorf("seeded creator cannot log in: %v", err)
	}
}

// TestExecuteSeedDemo_Idempotent tests that a second run changes nothing.
func TestExecuteSeedDemo_Idempotent(t *testing.T) {
	f := newFixture()
	if err := ExecuteSeedDemo(context.Background(), seedDeps(f)); err != nil {
		t.Fatalf("first run: %v", err)
	}
	usersBefore := len(f.users.m)
	annsBefore := len(f.anns.saved)

	if err := ExecuteSeedDemo(context.Background(), seedDeps(f)); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(f.users.m) != usersBefore || len(f.anns.saved) != annsBefore {
		t.Error("expected the second run to be a no-op")
	}
}
