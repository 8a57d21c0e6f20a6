package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"clubhub/internal/domain/session"
	"clubhub/internal/domain/user"
)

// SessionStoreForRestore is the subset of the session store needed to
// restore and end sessions.
type SessionStoreForRestore interface {
	Get(ctx context.Context, token string) (session.Record, error)
	Delete(ctx context.Context, token string) error
}

// UserStoreForRestore resolves directory identities on restore.
type UserStoreForRestore interface {
	GetByID(ctx context.Context, id int64) (user.User, error)
}

// RestoreDeps contains the dependencies for ExecuteRestoreSession.
type RestoreDeps struct {
	SessionStore    SessionStoreForRestore
	UserStore       UserStoreForRestore
	MembershipStore MembershipReader
	Now             func() time.Time
}

// ExecuteRestoreSession resolves a token back into an identity snapshot.
// Directory-backed sessions store only {"id":N}; email, role and club list
// are re-read from the directory so a restored session always reflects
// current records, not the records as of login. Synthetic sessions carry
// their whole record in the blob and are trusted as-is.
// PRE: token is non-empty
// POST: expired, malformed, or dangling records are deleted and ErrNoSession
// is returned; the caller treats that as logged-out, never as a failure
func ExecuteRestoreSession(ctx context.Context, token string, deps RestoreDeps) (session.Snapshot, error) {
	rec, err := deps.SessionStore.Get(ctx, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return session.Snapshot{}, ErrNoSession
		}
		return session.Snapshot{}, err
	}

	if rec.Expired(deps.Now()) {
		purgeSession(ctx, deps.SessionStore, token, "expired")
		return session.Snapshot{}, ErrNoSession
	}

	snap, err := session.DecodeBlob(rec.Blob)
	if err != nil {
		purgeSession(ctx, deps.SessionStore, token, "malformed")
		return session.Snapshot{}, ErrNoSession
	}

	if snap.IsSynthetic() {
		return snap, nil
	}

	u, err := deps.UserStore.GetByID(ctx, snap.Ref.Numeric())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// The directory row is gone; the stale session goes with it.
			purgeSession(ctx, deps.SessionStore, token, "dangling")
			return session.Snapshot{}, ErrNoSession
		}
		return session.Snapshot{}, err
	}
	clubs, err := deps.MembershipStore.ListClubIDs(ctx, u.Ref())
	if err != nil {
		return session.Snapshot{}, err
	}
	return session.Snapshot{Ref: u.Ref(), Email: u.Email, Role: u.Role, Clubs: clubs}, nil
}

// ExecuteLogout ends a session. Deleting an unknown token is a no-op.
// POST: the token no longer resolves
func ExecuteLogout(ctx context.Context, token string, deps RestoreDeps) error {
	if token == "" {
		return nil
	}
	if err := deps.SessionStore.Delete(ctx, token); err != nil {
		return err
	}
	slog.Info("logout_succeeded")
	return nil
}

func purgeSession(ctx context.Context, store SessionStoreForRestore, token, reason string) {
	if err := store.Delete(ctx, token); err != nil {
		slog.Warn("session_purge_failed", "reason", reason, "error", err)
		return
	}
	slog.Info("session_purged", "reason", reason)
}
