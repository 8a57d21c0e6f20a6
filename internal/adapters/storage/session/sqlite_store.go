package session

import (
	"context"
	"log/slog"
	"time"

	"clubhub/internal/adapters/storage"
	domain "clubhub/internal/domain/session"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get retrieves a session record by token.
// PRE: token is non-empty
// POST: Returns the record or sql.ErrNoRows if not found
func (s *SQLiteStore) Get(ctx context.Context, token string) (domain.Record, error) {
	var rec domain.Record
	var createdAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT token, blob, created_at FROM session WHERE token = ?`, token).
		Scan(&rec.Token, &rec.Blob, &createdAt)
	if err != nil {
		return domain.Record{}, err
	}
	rec.CreatedAt = parseTime(createdAt, rec.Token)
	return rec, nil
}

// Put inserts or replaces a session record.
// PRE: value has a non-empty token
// POST: Record is persisted
func (s *SQLiteStore) Put(ctx context.Context, rec domain.Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO session (token, blob, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(token) DO UPDATE SET blob=excluded.blob`,
		rec.Token, rec.Blob, rec.CreatedAt.UTC().Format(timeLayout))
	return err
}

// Delete removes a session record by token.
// PRE: none; deleting an absent token is a no-op
// POST: Record with given token is removed
func (s *SQLiteStore) Delete(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE token = ?`, token)
	return err
}

// parseTime parses a time string, logging a warning on failure.
func parseTime(raw, token string) time.Time {
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		slog.Warn("session: failed to parse time", "token", token, "raw", raw, "error", err)
	}
	return t
}
