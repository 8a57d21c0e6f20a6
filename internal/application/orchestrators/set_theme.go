package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"clubhub/internal/domain/session"
	"clubhub/internal/domain/theme"
)

// ThemeStore persists theme preferences.
type ThemeStore interface {
	Get(ctx context.Context, ownerRef string) (theme.Preference, error)
	Save(ctx context.Context, value theme.Preference) error
}

// SetThemeInput contains the data needed to save a theme preference.
type SetThemeInput struct {
	Theme string
	Owner session.Snapshot
}

// SetThemeDeps contains the dependencies for ExecuteSetTheme.
type SetThemeDeps struct {
	ThemeStore ThemeStore
}

// ExecuteSetTheme saves the owner's theme preference.
// PRE: Owner is an authenticated identity
// POST: the preference is persisted and survives logout
func ExecuteSetTheme(ctx context.Context, input SetThemeInput, deps SetThemeDeps) error {
	p := theme.Preference{OwnerRef: input.Owner.Ref.String(), Theme: input.Theme}
	if err := p.Validate(); err != nil {
		return err
	}
	if err := deps.ThemeStore.Save(ctx, p); err != nil {
		return err
	}
	slog.Info("theme_saved", "owner", p.OwnerRef, "theme", p.Theme)
	return nil
}

// ThemeForOwner returns the owner's saved theme, falling back to the
// default when nothing has been saved yet.
func ThemeForOwner(ctx context.Context, owner session.Snapshot, deps SetThemeDeps) (string, error) {
	p, err := deps.ThemeStore.Get(ctx, owner.Ref.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return theme.Default, nil
		}
		return "", err
	}
	return p.Theme, nil
}
