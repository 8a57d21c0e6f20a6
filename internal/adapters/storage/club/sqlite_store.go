package club

import (
	"context"
	"database/sql"

	"clubhub/internal/adapters/storage"
	domain "clubhub/internal/domain/club"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const clubColumns = `id, name, image_url, description, admin_id`

// GetByID retrieves a club by ID.
// PRE: id is non-zero
// POST: Returns the entity or sql.ErrNoRows if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (domain.Club, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+clubColumns+` FROM club WHERE id = ?`, id)
	return scanClub(row)
}

// Create inserts a club and returns the assigned id.
// PRE: entity has been validated
// POST: Entity is persisted with a fresh autoincrement id
func (s *SQLiteStore) Create(ctx context.Context, c domain.Club) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO club (name, image_url, description, admin_id) VALUES (?, ?, ?, ?)`,
		c.Name, c.ImageURL, c.Description, nullableID(c.AdminID))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// SetAdmin assigns or vacates the club's admin seat (adminID 0 clears it).
// PRE: clubID refers to an existing club
// POST: admin_id column is updated
func (s *SQLiteStore) SetAdmin(ctx context.Context, clubID int64, adminID int64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE club SET admin_id = ? WHERE id = ?`, nullableID(adminID), clubID)
	return err
}

// List returns all clubs ordered by id.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Club, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+clubColumns+` FROM club ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var clubs []domain.Club
	for rows.Next() {
		c, err := scanClubRows(rows)
		if err != nil {
			return nil, err
		}
		clubs = append(clubs, c)
	}
	return clubs, rows.Err()
}

// FindByAdmin returns the club administered by the given user.
// PRE: adminID is non-zero
// POST: Returns the entity or sql.ErrNoRows if the user admins no club
func (s *SQLiteStore) FindByAdmin(ctx context.Context, adminID int64) (domain.Club, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+clubColumns+` FROM club WHERE admin_id = ?`, adminID)
	return scanClub(row)
}

// Count returns the number of clubs.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM club`).Scan(&n)
	return n, err
}

// scanClub scans a single row into a Club.
func scanClub(row *sql.Row) (domain.Club, error) {
	var c domain.Club
	var adminID sql.NullInt64
	if err := row.Scan(&c.ID, &c.Name, &c.ImageURL, &c.Description, &adminID); err != nil {
		return domain.Club{}, err
	}
	if adminID.Valid {
		c.AdminID = adminID.Int64
	}
	return c, nil
}

func scanClubRows(rows *sql.Rows) (domain.Club, error) {
	var c domain.Club
	var adminID sql.NullInt64
	if err := rows.Scan(&c.ID, &c.Name, &c.ImageURL, &c.Description, &adminID); err != nil {
		return domain.Club{}, err
	}
	if adminID.Valid {
		c.AdminID = adminID.Int64
	}
	return c, nil
}

func nullableID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}
