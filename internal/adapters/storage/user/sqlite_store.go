package user

import (
	"context"
	"database/sql"

	"clubhub/internal/adapters/storage"
	domain "clubhub/internal/domain/user"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const userColumns = `id, email, password_hash, role`

// GetByID retrieves a user by ID.
// PRE: id is non-zero
// POST: Returns the entity or sql.ErrNoRows if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM user WHERE id = ?`, id)
	return scanUser(row)
}

// GetByEmail retrieves a user by email, compared case-insensitively.
// PRE: email is non-empty
// POST: Returns the entity or sql.ErrNoRows if not found
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM user WHERE email = ? COLLATE NOCASE`, email)
	return scanUser(row)
}

// GetByLocalPart retrieves a user whose email local-part matches exactly.
// PRE: localPart is non-empty
// POST: Returns the entity or sql.ErrNoRows if not found
func (s *SQLiteStore) GetByLocalPart(ctx context.Context, localPart string) (domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM user WHERE substr(email, 1, instr(email, '@') - 1) = ?`, localPart)
	return scanUser(row)
}

// Create inserts a user and returns the assigned id.
// PRE: entity has been validated
// POST: Entity is persisted with a fresh autoincrement id
func (s *SQLiteStore) Create(ctx context.Context, u domain.User) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO user (email, password_hash, role) VALUES (?, ?, ?)`,
		u.Email, u.PasswordHash, u.Role)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateRole sets a user's role.
// PRE: id refers to an existing user, role is valid
// POST: Role column is updated
func (s *SQLiteStore) UpdateRole(ctx context.Context, id int64, role string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE user SET role = ? WHERE id = ?`, role, id)
	return err
}

// List returns all users ordered by id.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM user ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

// ListUnassigned returns users with no club memberships and a role other
// than Creator, ordered by id. Used to populate the assignment picker.
func (s *SQLiteStore) ListUnassigned(ctx context.Context) ([]domain.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM user
		 WHERE role != ?
		 AND NOT EXISTS (
		   SELECT 1 FROM membership WHERE membership.member_ref = CAST(user.id AS TEXT)
		 )
		 ORDER BY id`, domain.RoleCreator)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

// Count returns the number of users.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM user`).Scan(&n)
	return n, err
}

// scanUser scans a single row into a User.
func scanUser(row *sql.Row) (domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// scanUsers scans multiple rows into a slice of Users.
func scanUsers(rows *sql.Rows) ([]domain.User, error) {
	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
