package orchestrators

import (
	"context"
	"errors"
	"testing"

	"clubhub/internal/domain/session"
	"clubhub/internal/domain/user"
)

func removeDeps(f *fixture) RemoveMemberDeps {
	return RemoveMemberDeps{
		UserStore:       f.users,
		ClubStore:       f.clubs,
		MembershipStore: f.memberships,
	}
}

// TestExecuteRemoveMember_AdminLosesSeat tests that removing the club's
// admin vacates the seat and demotes the role.
func TestExecuteRemoveMember_AdminLosesSeat(t *testing.T) {
	f := newFixture()
	admin := f.addUser(t, "leader@example.com", "123", user.RoleAdmin)
	clubID := f.addClub("Robotics Club", admin)
	f.addMembership(clubID, user.NumericRef(admin))

	err := ExecuteRemoveMember(context.Background(), RemoveMemberInput{
		ClubID: clubID,
		Member: user.NumericRef(admin),
		Actor:  creatorActor(),
	}, removeDeps(f))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ok, _ := f.memberships.Exists(context.Background(), clubID, user.NumericRef(admin))
	if ok {
		t.Error("expected membership row to be gone")
	}
	if c := f.clubs.m[clubID]; c.HasAdmin() {
		t.Errorf("expected vacated admin seat, got %d", c.AdminID)
	}
	if got := f.users.m[admin].Role; got != user.RoleMember {
		t.Errorf("expected role Member, got %s", got)
	}
	checkAdminInvariant(t, f)
}

// TestExecuteRemoveMember_DemotesAcrossClubs tests that removal from any
// club resets a directory user's role, even when they still hold another
// club's admin seat.
func TestExecuteRemoveMember_DemotesAcrossClubs(t *testing.T) {
	f := newFixture()
	mary := f.addUser(t, "mary@example.com", "123", user.RoleAdmin)
	robotics := f.addClub("Robotics Club", 0)
	art := f.addClub("Art Guild", mary)
	f.addMembership(robotics, user.NumericRef(mary))
	f.addMembership(art, user.NumericRef(mary))

	err := ExecuteRemoveMember(context.Background(), RemoveMemberInput{
		ClubID: robotics,
		Member: user.NumericRef(mary),
		Actor:  creatorActor(),
	}, removeDeps(f))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := f.users.m[mary].Role; got != user.RoleMember {
		t.Errorf("expected role Member after removal, got %s", got)
	}
	// The Art Guild seat still points at her; the demotion does not follow
	// seat ownership.
	if got := f.clubs.m[art].AdminID; got != mary {
		t.Errorf("expected Art Guild seat unchanged, got %d", got)
	}
}

// TestExecuteRemoveMember_NotMember tests removing someone who is not in
// the member list.
func TestExecuteRemoveMember_NotMember(t *testing.T) {
	f := newFixture()
	john := f.addUser(t, "john@example.com", "123", user.RoleMember)
	clubID := f.addClub("Robotics Club", 0)

	err := ExecuteRemoveMember(context.Background(), RemoveMemberInput{
		ClubID: clubID,
		Member: user.NumericRef(john),
		Actor:  creatorActor(),
	}, removeDeps(f))
	if !errors.Is(err, ErrNotMember) {
		t.Errorf("expected ErrNotMember, got %v", err)
	}
}

// TestExecuteRemoveMember_Forbidden tests that plain members cannot remove
// anyone.
func TestExecuteRemoveMember_Forbidden(t *testing.T) {
	f := newFixture()
	john := f.addUser(t, "john@example.com", "123", user.RoleMember)
	clubID := f.addClub("Robotics Club", 0)
	f.addMembership(clubID, user.NumericRef(john))

	err := ExecuteRemoveMember(context.Background(), RemoveMemberInput{
		ClubID: clubID,
		Member: user.NumericRef(john),
		Actor:  session.Snapshot{Ref: user.NumericRef(john), Role: user.RoleMember},
	}, removeDeps(f))
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

// TestExecuteRemoveMember_ExternalRef tests that removing a quick account
// touches no directory role state.
func TestExecuteRemoveMember_ExternalRef(t *testing.T) {
	f := newFixture()
	clubID := f.addClub("Robotics Club", 0)
	ref := user.ExternalRef("qa_handler")
	f.addMembership(clubID, ref)

	err := ExecuteRemoveMember(context.Background(), RemoveMemberInput{
		ClubID: clubID,
		Member: ref,
		Actor:  creatorActor(),
	}, removeDeps(f))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ok, _ := f.memberships.Exists(context.Background(), clubID, ref)
	if ok {
		t.Error("expected membership row to be gone")
	}
}
