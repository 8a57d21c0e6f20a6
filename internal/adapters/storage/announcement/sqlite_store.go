package announcement

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"clubhub/internal/adapters/storage"
	domain "clubhub/internal/domain/announcement"
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

const announcementColumns = `id, club_id, date, text, created_at`

// Save inserts an announcement.
// PRE: entity has been validated
// POST: Entity is persisted
func (s *SQLiteStore) Save(ctx context.Context, a domain.Announcement) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO announcement (id, club_id, date, text, created_at) VALUES (?, ?, ?, ?, ?)`,
		a.ID, nullableID(a.ClubID), a.Date, a.Text, a.CreatedAt.UTC().Format(timeLayout))
	return err
}

// ListGeneral returns general-scope announcements, newest first.
// POST: Returns announcements ordered most-recently-posted first
func (s *SQLiteStore) ListGeneral(ctx context.Context) ([]domain.Announcement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+announcementColumns+` FROM announcement WHERE club_id IS NULL ORDER BY rowid DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAnnouncements(rows)
}

// ListByClub returns a club's announcements in insertion order.
// PRE: clubID is non-zero
// POST: Returns announcements ordered oldest-posted first
func (s *SQLiteStore) ListByClub(ctx context.Context, clubID int64) ([]domain.Announcement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+announcementColumns+` FROM announcement WHERE club_id = ? ORDER BY rowid`, clubID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAnnouncements(rows)
}

// scanAnnouncements scans multiple rows into a slice of Announcements.
func scanAnnouncements(rows *sql.Rows) ([]domain.Announcement, error) {
	var list []domain.Announcement
	for rows.Next() {
		var a domain.Announcement
		var clubID sql.NullInt64
		var createdAt string
		if err := rows.Scan(&a.ID, &clubID, &a.Date, &a.Text, &createdAt); err != nil {
			return nil, err
		}
		if clubID.Valid {
			a.ClubID = clubID.Int64
		}
		a.CreatedAt = parseTime(createdAt, a.ID)
		list = append(list, a)
	}
	return list, rows.Err()
}

// parseTime parses a time string, logging a warning on failure.
func parseTime(raw, id string) time.Time {
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		slog.Warn("announcement: failed to parse time", "announcement_id", id, "raw", raw, "error", err)
	}
	return t
}

func nullableID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}
