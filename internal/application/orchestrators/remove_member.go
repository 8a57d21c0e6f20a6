package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"clubhub/internal/domain/session"
	"clubhub/internal/domain/user"
)

// MembershipStoreForRemove is the subset of the membership store needed
// to remove a member.
type MembershipStoreForRemove interface {
	Exists(ctx context.Context, clubID int64, ref user.Ref) (bool, error)
	Remove(ctx context.Context, clubID int64, ref user.Ref) error
	ListClubIDs(ctx context.Context, ref user.Ref) ([]int64, error)
}

// RemoveMemberInput contains the data needed to remove a club member.
type RemoveMemberInput struct {
	ClubID int64
	Member user.Ref
	Actor  session.Snapshot
}

// RemoveMemberDeps contains the dependencies for ExecuteRemoveMember.
type RemoveMemberDeps struct {
	UserStore       UserStoreForRoles
	ClubStore       ClubAdminStore
	MembershipStore MembershipStoreForRemove
}

// ExecuteRemoveMember removes a member from a club. If the member held the
// club's admin seat the seat is vacated so it never points outside the
// member list.
//
// A removed directory user is demoted to Member regardless of which club
// they were removed from.
// TODO: scope the demotion to the club whose seat was vacated; a user
// removed from club A while holding the admin seat of club B currently
// loses the Admin role even though B's seat still points at them.
// PRE: Actor holds the Creator or Admin role
// POST: the ref is absent from the club's member list
func ExecuteRemoveMember(ctx context.Context, input RemoveMemberInput, deps RemoveMemberDeps) error {
	if !canManageMembers(input.Actor) {
		return ErrForbidden
	}

	c, err := deps.ClubStore.GetByID(ctx, input.ClubID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	exists, err := deps.MembershipStore.Exists(ctx, c.ID, input.Member)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotMember
	}

	if err := deps.MembershipStore.Remove(ctx, c.ID, input.Member); err != nil {
		return err
	}

	if input.Member.IsNumeric() {
		memberID := input.Member.Numeric()
		if c.IsAdmin(memberID) {
			if err := deps.ClubStore.SetAdmin(ctx, c.ID, 0); err != nil {
				return err
			}
			slog.Info("admin_seat_vacated", "club_id", c.ID, "user_id", memberID)
		}
		if err := deps.UserStore.UpdateRole(ctx, memberID, user.RoleMember); err != nil {
			return err
		}
	}

	slog.Info("member_removed", "club_id", c.ID, "ref", input.Member.String())
	return nil
}
