package session

import (
	"context"

	domain "clubhub/internal/domain/session"
)

// Store persists session records. Writes are a best-effort convenience
// cache; callers log and swallow failures rather than surfacing them.
type Store interface {
	Get(ctx context.Context, token string) (domain.Record, error)
	Put(ctx context.Context, value domain.Record) error
	Delete(ctx context.Context, token string) error
}
