package membership

import (
	"context"
	"time"

	"clubhub/internal/adapters/storage"
	"clubhub/internal/domain/user"
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

// ListClubIDs returns the ids of clubs the identity belongs to, in join order.
// PRE: ref is non-zero
// POST: Returns club ids ordered by insertion
func (s *SQLiteStore) ListClubIDs(ctx context.Context, ref user.Ref) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT club_id FROM membership WHERE member_ref = ? ORDER BY id`, ref.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListMembers returns the member identities of a club, in join order.
// PRE: clubID is non-zero
// POST: Returns member refs ordered by insertion
func (s *SQLiteStore) ListMembers(ctx context.Context, clubID int64) ([]user.Ref, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT member_ref FROM membership WHERE club_id = ? ORDER BY id`, clubID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var refs []user.Ref
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		refs = append(refs, user.ParseRef(raw))
	}
	return refs, rows.Err()
}

// Exists reports whether the identity is a member of the club.
func (s *SQLiteStore) Exists(ctx context.Context, clubID int64, ref user.Ref) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM membership WHERE club_id = ? AND member_ref = ?`,
		clubID, ref.String()).Scan(&n)
	return n > 0, err
}

// Add inserts a membership row.
// PRE: the pair (clubID, ref) is not already present
// POST: the identity appears at the end of both orderings
func (s *SQLiteStore) Add(ctx context.Context, clubID int64, ref user.Ref, joinedAt time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO membership (club_id, member_ref, joined_at) VALUES (?, ?, ?)`,
		clubID, ref.String(), joinedAt.UTC().Format(timeLayout))
	return err
}

// Remove deletes a membership row.
// PRE: none; removing an absent pair is a no-op
// POST: the pair is absent
func (s *SQLiteStore) Remove(ctx context.Context, clubID int64, ref user.Ref) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM membership WHERE club_id = ? AND member_ref = ?`,
		clubID, ref.String())
	return err
}

// CountByClub returns the number of members in a club.
func (s *SQLiteStore) CountByClub(ctx context.Context, clubID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM membership WHERE club_id = ?`, clubID).Scan(&n)
	return n, err
}
