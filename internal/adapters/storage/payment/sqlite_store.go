package payment

import (
	"context"
	"log/slog"
	"time"

	"clubhub/internal/adapters/storage"
	domain "clubhub/internal/domain/payment"
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

const paymentColumns = `id, payer_ref, amount_cents, method, status, created_at`

// GetByID retrieves a payment by ID.
// PRE: id is non-empty
// POST: Returns the entity or sql.ErrNoRows if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Payment, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+paymentColumns+` FROM payment WHERE id = ?`, id)
	var p domain.Payment
	var createdAt string
	if err := row.Scan(&p.ID, &p.PayerRef, &p.AmountCents, &p.Method, &p.Status, &createdAt); err != nil {
		return domain.Payment{}, err
	}
	p.CreatedAt = parseTime(createdAt, p.ID)
	return p, nil
}

// Save inserts or updates a payment.
// PRE: entity has been validated
// POST: Entity is persisted
func (s *SQLiteStore) Save(ctx context.Context, p domain.Payment) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO payment (id, payer_ref, amount_cents, method, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET status=excluded.status`,
		p.ID, p.PayerRef, p.AmountCents, p.Method, p.Status, p.CreatedAt.UTC().Format(timeLayout))
	return err
}

// ListByPayer returns a payer's payments, newest first.
// PRE: payerRef is non-empty
func (s *SQLiteStore) ListByPayer(ctx context.Context, payerRef string) ([]domain.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+paymentColumns+` FROM payment WHERE payer_ref = ? ORDER BY rowid DESC`, payerRef)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []domain.Payment
	for rows.Next() {
		var p domain.Payment
		var createdAt string
		if err := rows.Scan(&p.ID, &p.PayerRef, &p.AmountCents, &p.Method, &p.Status, &createdAt); err != nil {
			return nil, err
		}
		p.CreatedAt = parseTime(createdAt, p.ID)
		list = append(list, p)
	}
	return list, rows.Err()
}

// parseTime parses a time string, logging a warning on failure.
func parseTime(raw, id string) time.Time {
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		slog.Warn("payment: failed to parse time", "payment_id", id, "raw", raw, "error", err)
	}
	return t
}
