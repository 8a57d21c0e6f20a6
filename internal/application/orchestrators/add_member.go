package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"clubhub/internal/domain/session"
)

// AddMemberInput contains the data needed for an admin-assisted add.
type AddMemberInput struct {
	ClubID       int64
	TargetUserID int64
	Actor        session.Snapshot
}

// AddMemberDeps contains the dependencies for ExecuteAddMember.
type AddMemberDeps struct {
	UserStore       UserStoreForRestore
	ClubStore       ClubReader
	MembershipStore MembershipStoreForJoin
	Now             func() time.Time
}

// ExecuteAddMember adds a directory user to a club on an admin's behalf.
// It goes through the same guarded insert as a self-service join, so the
// duplicate-membership check cannot be bypassed from the management panel.
// PRE: Actor holds the Creator or Admin role
// POST: membership exists exactly once
func ExecuteAddMember(ctx context.Context, input AddMemberInput, deps AddMemberDeps) error {
	if !canManageMembers(input.Actor) {
		return ErrForbidden
	}

	u, err := deps.UserStore.GetByID(ctx, input.TargetUserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	c, err := deps.ClubStore.GetByID(ctx, input.ClubID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	exists, err := deps.MembershipStore.Exists(ctx, c.ID, u.Ref())
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyMember
	}
	if err := deps.MembershipStore.Add(ctx, c.ID, u.Ref(), deps.Now()); err != nil {
		return err
	}
	slog.Info("member_added", "club_id", c.ID, "user_id", u.ID, "by", input.Actor.Ref.String())
	return nil
}
