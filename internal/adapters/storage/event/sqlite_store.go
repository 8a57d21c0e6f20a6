package event

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"clubhub/internal/adapters/storage"
	domain "clubhub/internal/domain/event"
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

const eventColumns = `id, club_id, title, date, description, created_at`

// Save inserts an event.
// PRE: entity has been validated
// POST: Entity is persisted
func (s *SQLiteStore) Save(ctx context.Context, e domain.Event) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO event (id, club_id, title, date, description, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, nullableID(e.ClubID), e.Title, e.Date, e.Description, e.CreatedAt.UTC().Format(timeLayout))
	return err
}

// ListGeneral returns general-scope events in insertion order.
func (s *SQLiteStore) ListGeneral(ctx context.Context) ([]domain.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM event WHERE club_id IS NULL ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

// ListByClub returns a club's events in insertion order.
// PRE: clubID is non-zero
func (s *SQLiteStore) ListByClub(ctx context.Context, clubID int64) ([]domain.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM event WHERE club_id = ? ORDER BY rowid`, clubID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

// ListAll returns every event in insertion order. Used by the calendar grid,
// which marks days regardless of club ownership.
func (s *SQLiteStore) ListAll(ctx context.Context) ([]domain.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM event ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

// CountByClub returns the number of events owned by a club.
func (s *SQLiteStore) CountByClub(ctx context.Context, clubID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM event WHERE club_id = ?`, clubID).Scan(&n)
	return n, err
}

// scanEvents scans multiple rows into a slice of Events.
func scanEvents(rows *sql.Rows) ([]domain.Event, error) {
	var list []domain.Event
	for rows.Next() {
		var e domain.Event
		var clubID sql.NullInt64
		var createdAt string
		if err := rows.Scan(&e.ID, &clubID, &e.Title, &e.Date, &e.Description, &createdAt); err != nil {
			return nil, err
		}
		if clubID.Valid {
			e.ClubID = clubID.Int64
		}
		e.CreatedAt = parseTime(createdAt, e.ID)
		list = append(list, e)
	}
	return list, rows.Err()
}

// parseTime parses a time string, logging a warning on failure.
func parseTime(raw, id string) time.Time {
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		slog.Warn("event: failed to parse time", "event_id", id, "raw", raw, "error", err)
	}
	return t
}

func nullableID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}
