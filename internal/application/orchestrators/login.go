package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"clubhub/internal/domain/session"
	"clubhub/internal/domain/user"
)

// QuickAccount is a demo credential that has no directory row. A successful
// quick login produces a synthetic identity ("qa_<username>") whose session
// blob is the only record of it.
type QuickAccount struct {
	Username string
	Password string
	Role     string
}

// quickAccounts is the fixed demo credential table.
var quickAccounts = []QuickAccount{
	{Username: "handler", Password: "handler123", Role: user.RoleCreator},
	{Username: "leader", Password: "leader123", Role: user.RoleAdmin},
}

// QuickAccounts returns the demo credential table, for display on the
// login surface.
func QuickAccounts() []QuickAccount {
	out := make([]QuickAccount, len(quickAccounts))
	copy(out, quickAccounts)
	return out
}

// UserStoreForLogin is the subset of the user store needed by login.
type UserStoreForLogin interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
	GetByLocalPart(ctx context.Context, localPart string) (user.User, error)
}

// MembershipReader resolves a member's club list.
type MembershipReader interface {
	ListClubIDs(ctx context.Context, ref user.Ref) ([]int64, error)
}

// SessionWriter persists session records.
type SessionWriter interface {
	Put(ctx context.Context, value session.Record) error
}

// LoginInput contains the data needed to authenticate.
type LoginInput struct {
	Identifier string // email, quick-account username, or email local part
	Password   string
}

// LoginDeps contains the dependencies for ExecuteLogin.
type LoginDeps struct {
	UserStore       UserStoreForLogin
	MembershipStore MembershipReader
	SessionStore    SessionWriter
	GenerateToken   func() string
	Now             func() time.Time
}

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	Token    string
	Snapshot session.Snapshot
}

// ExecuteLogin authenticates an identifier/password pair. Resolution tries,
// in order: case-insensitive directory email, the quick-account table, and
// an exact match on the part of a directory email before '@'. All paths
// yield the same ErrInvalidCredentials so a caller cannot probe which
// identifiers exist.
// PRE: deps stores are non-nil; GenerateToken and Now are set
// POST: on success a session record is persisted (best effort) and the
// caller receives the token plus the resolved identity snapshot
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	identifier := strings.TrimSpace(input.Identifier)
	if identifier == "" || input.Password == "" {
		return LoginResult{}, ErrMissingInput
	}

	snap, err := resolveCredentials(ctx, identifier, input.Password, deps)
	if err != nil {
		slog.Info("login_rejected", "identifier", identifier)
		return LoginResult{}, err
	}

	token := deps.GenerateToken()
	persistSession(ctx, deps.SessionStore, token, snap, deps.Now())

	slog.Info("login_succeeded",
		"ref", snap.Ref.String(),
		"role", snap.Role,
		"synthetic", snap.IsSynthetic())
	return LoginResult{Token: token, Snapshot: snap}, nil
}

// resolveCredentials maps an identifier/password pair to an identity
// snapshot, or ErrInvalidCredentials.
func resolveCredentials(ctx context.Context, identifier, password string, deps LoginDeps) (session.Snapshot, error) {
	if strings.Contains(identifier, "@") {
		u, err := deps.UserStore.GetByEmail(ctx, identifier)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return session.Snapshot{}, ErrInvalidCredentials
			}
			return session.Snapshot{}, err
		}
		return directorySnapshot(ctx, u, password, deps)
	}

	// The table matches on the username/password pair. A known username
	// with a non-matching password is not a rejection: it may still be a
	// directory user's email local part.
	for _, qa := range quickAccounts {
		if qa.Username == identifier && qa.Password == password {
			return syntheticSnapshot(ctx, qa, deps)
		}
	}

	// Fallback: a directory user may log in with just the part of their
	// email before '@'. Exact match only.
	u, err := deps.UserStore.GetByLocalPart(ctx, identifier)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return session.Snapshot{}, ErrInvalidCredentials
		}
		return session.Snapshot{}, err
	}
	return directorySnapshot(ctx, u, password, deps)
}

func directorySnapshot(ctx context.Context, u user.User, password string, deps LoginDeps) (session.Snapshot, error) {
	if err := u.CheckPassword(password); err != nil {
		return session.Snapshot{}, ErrInvalidCredentials
	}
	clubs, err := deps.MembershipStore.ListClubIDs(ctx, u.Ref())
	if err != nil {
		return session.Snapshot{}, err
	}
	return session.Snapshot{Ref: u.Ref(), Email: u.Email, Role: u.Role, Clubs: clubs}, nil
}

func syntheticSnapshot(ctx context.Context, qa QuickAccount, deps LoginDeps) (session.Snapshot, error) {
	ref := user.ExternalRef("qa_" + qa.Username)
	// Quick accounts have no directory row, but their memberships persist
	// in the relation across logins like anyone else's.
	clubs, err := deps.MembershipStore.ListClubIDs(ctx, ref)
	if err != nil {
		return session.Snapshot{}, err
	}
	return session.Snapshot{
		Ref:   ref,
		Email: qa.Username + "@clubhub.local",
		Role:  qa.Role,
		Clubs: clubs,
	}, nil
}

// persistSession writes the session record, logging and swallowing failures.
// A lost write degrades to "logged out after restart", not a login failure.
func persistSession(ctx context.Context, store SessionWriter, token string, snap session.Snapshot, now time.Time) {
	blob, err := session.EncodeBlob(snap)
	if err != nil {
		slog.Warn("session_encode_failed", "ref", snap.Ref.String(), "error", err)
		return
	}
	rec := session.Record{Token: token, Blob: blob, CreatedAt: now}
	if err := store.Put(ctx, rec); err != nil {
		slog.Warn("session_persist_failed", "ref", snap.Ref.String(), "error", err)
	}
}
