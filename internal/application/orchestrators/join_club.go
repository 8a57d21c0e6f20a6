package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"clubhub/internal/adapters/email"
	"clubhub/internal/domain/club"
	"clubhub/internal/domain/session"
	"clubhub/internal/domain/user"
)

// ClubReader is the subset of the club store needed to look up clubs.
type ClubReader interface {
	GetByID(ctx context.Context, id int64) (club.Club, error)
}

// MembershipStoreForJoin is the subset of the membership store needed
// to add a member.
type MembershipStoreForJoin interface {
	Exists(ctx context.Context, clubID int64, ref user.Ref) (bool, error)
	Add(ctx context.Context, clubID int64, ref user.Ref, joinedAt time.Time) error
	ListClubIDs(ctx context.Context, ref user.Ref) ([]int64, error)
}

// JoinClubInput contains the data needed to join a club.
type JoinClubInput struct {
	ClubID int64
	Joiner session.Snapshot
	Token  string // current session token, for synthetic write-through
}

// JoinClubDeps contains the dependencies for ExecuteJoinClub.
type JoinClubDeps struct {
	ClubStore       ClubReader
	MembershipStore MembershipStoreForJoin
	SessionStore    SessionWriter
	UserStore       UserStoreForRestore
	EmailSender     email.Sender
	Now             func() time.Time
}

// ExecuteJoinClub adds the joiner to a club's member list. The insert is
// guarded: a second join of the same club fails with ErrAlreadyMember
// instead of duplicating the membership row.
// PRE: input.Joiner is an authenticated identity
// POST: membership exists exactly once; for synthetic joiners the session
// blob is rewritten with the new club list; the club admin is notified by
// email (best effort)
func ExecuteJoinClub(ctx context.Context, input JoinClubInput, deps JoinClubDeps) (club.Club, error) {
	c, err := deps.ClubStore.GetByID(ctx, input.ClubID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return club.Club{}, ErrNotFound
		}
		return club.Club{}, err
	}

	ref := input.Joiner.Ref
	exists, err := deps.MembershipStore.Exists(ctx, c.ID, ref)
	if err != nil {
		return club.Club{}, err
	}
	if exists {
		return club.Club{}, ErrAlreadyMember
	}

	if err := deps.MembershipStore.Add(ctx, c.ID, ref, deps.Now()); err != nil {
		return club.Club{}, err
	}
	slog.Info("club_joined", "club_id", c.ID, "ref", ref.String())

	if input.Joiner.IsSynthetic() && input.Token != "" {
		snap := input.Joiner
		clubs, err := deps.MembershipStore.ListClubIDs(ctx, ref)
		if err == nil {
			snap.Clubs = clubs
		} else {
			snap.Clubs = append(snap.Clubs, c.ID)
		}
		persistSession(ctx, deps.SessionStore, input.Token, snap, deps.Now())
	}

	notifyClubAdmin(ctx, deps, c, input.Joiner)
	return c, nil
}

// notifyClubAdmin emails the club's admin about a new member. Delivery
// failures are logged, never surfaced: joining must not depend on the
// mail provider.
func notifyClubAdmin(ctx context.Context, deps JoinClubDeps, c club.Club, joiner session.Snapshot) {
	if deps.EmailSender == nil || !c.HasAdmin() {
		return
	}
	admin, err := deps.UserStore.GetByID(ctx, c.AdminID)
	if err != nil {
		slog.Warn("join_notify_skipped", "club_id", c.ID, "admin_id", c.AdminID, "error", err)
		return
	}
	msg := email.Message{
		To:      admin.Email,
		Subject: fmt.Sprintf("New member in %s", c.Name),
		HTML: fmt.Sprintf("<p><strong>%s</strong> just joined <strong>%s</strong>.</p>",
			joiner.Email, c.Name),
	}
	if _, err := deps.EmailSender.Send(ctx, msg); err != nil {
		slog.Warn("join_notify_failed", "club_id", c.ID, "error", err)
	}
}
