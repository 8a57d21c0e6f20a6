package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"clubhub/internal/domain/club"
	"clubhub/internal/domain/session"
	"clubhub/internal/domain/user"
)

// UserStoreForRoles is the subset of the user store needed to move role
// state with the admin seat.
type UserStoreForRoles interface {
	GetByID(ctx context.Context, id int64) (user.User, error)
	UpdateRole(ctx context.Context, id int64, role string) error
}

// ClubAdminStore is the subset of the club store needed to manage the
// admin seat.
type ClubAdminStore interface {
	GetByID(ctx context.Context, id int64) (club.Club, error)
	SetAdmin(ctx context.Context, clubID int64, adminID int64) error
}

// AssignAdminInput contains the data needed to assign a club admin.
type AssignAdminInput struct {
	ClubID       int64
	TargetUserID int64
	Actor        session.Snapshot
}

// AssignAdminDeps contains the dependencies for ExecuteAssignAdmin.
type AssignAdminDeps struct {
	UserStore       UserStoreForRoles
	ClubStore       ClubAdminStore
	MembershipStore MembershipChecker
}

// MembershipChecker answers whether a ref is in a club's member list.
type MembershipChecker interface {
	Exists(ctx context.Context, clubID int64, ref user.Ref) (bool, error)
}

// ExecuteAssignAdmin promotes a member into a club's admin seat. The seat
// holds at most one user; any prior holder is demoted to Member in the
// same operation, so promotion is never additive.
// PRE: Actor holds the Creator or Admin role
// POST: club.AdminID is the target; the target's role is Admin; the prior
// admin (if different) holds role Member
func ExecuteAssignAdmin(ctx context.Context, input AssignAdminInput, deps AssignAdminDeps) error {
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
	target, err := deps.UserStore.GetByID(ctx, input.TargetUserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	// The admin seat must point into the member list.
	isMember, err := deps.MembershipStore.Exists(ctx, c.ID, target.Ref())
	if err != nil {
		return err
	}
	if !isMember {
		return ErrNotMember
	}

	if c.IsAdmin(target.ID) {
		return nil // already holds the seat
	}

	if c.HasAdmin() {
		if err := deps.UserStore.UpdateRole(ctx, c.AdminID, user.RoleMember); err != nil {
			return err
		}
		slog.Info("admin_demoted", "club_id", c.ID, "user_id", c.AdminID)
	}

	if err := deps.ClubStore.SetAdmin(ctx, c.ID, target.ID); err != nil {
		return err
	}
	if err := deps.UserStore.UpdateRole(ctx, target.ID, user.RoleAdmin); err != nil {
		return err
	}
	slog.Info("admin_assigned", "club_id", c.ID, "user_id", target.ID)
	return nil
}

// canManageMembers mirrors user.CanManageMembers for snapshot identities.
func canManageMembers(s session.Snapshot) bool {
	return s.Role == user.RoleCreator || s.Role == user.RoleAdmin
}
