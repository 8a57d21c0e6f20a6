package theme

import (
	"context"

	"clubhub/internal/adapters/storage"
	domain "clubhub/internal/domain/theme"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get retrieves a preference by owner identity.
// PRE: ownerRef is non-empty
// POST: Returns the preference or sql.ErrNoRows if the owner has none saved
func (s *SQLiteStore) Get(ctx context.Context, ownerRef string) (domain.Preference, error) {
	var p domain.Preference
	err := s.db.QueryRowContext(ctx,
		`SELECT owner_ref, theme FROM theme_preference WHERE owner_ref = ?`, ownerRef).
		Scan(&p.OwnerRef, &p.Theme)
	return p, err
}

// Save inserts or updates a preference.
// PRE: value has been validated
// POST: Preference is persisted
func (s *SQLiteStore) Save(ctx context.Context, p domain.Preference) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO theme_preference (owner_ref, theme) VALUES (?, ?)
		 ON CONFLICT(owner_ref) DO UPDATE SET theme=excluded.theme`,
		p.OwnerRef, p.Theme)
	return err
}
