package theme

import (
	"context"

	domain "clubhub/internal/domain/theme"
)

// Store persists theme preferences.
type Store interface {
	Get(ctx context.Context, ownerRef string) (domain.Preference, error)
	Save(ctx context.Context, value domain.Preference) error
}
