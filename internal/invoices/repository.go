package invoices

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jeremyjsx/dashboard/internal/database"
)

type Repository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

func (r *Repository) Insert(ctx context.Context, in Input) (*Invoice, error) {
	inv := &Invoice{
		ID:         uuid.New(),
		CustomerID: in.CustomerID,
		Amount:     in.Amount,
		Status:     in.Status,
		Date:       database.NewDate(r.now().UTC()),
	}
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO invoices (id, customer_id, amount, status, date)
		VALUES (?, ?, ?, ?, ?)`),
		inv.ID, inv.CustomerID, inv.Amount, inv.Status, inv.Date)
	if err != nil {
		return nil, fmt.Errorf("insert invoice: %w", err)
	}
	return inv, nil
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, in Input) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE invoices
		SET customer_id = ?, amount = ?, status = ?
		WHERE id = ?`),
		in.CustomerID, in.Amount, in.Status, id)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	return affected(res.RowsAffected())
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM invoices WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return affected(res.RowsAffected())
}

func affected(n int64, err error) error {
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns invoices whose customer, amount, date or status contain query,
// newest first. An empty query matches everything.
func (r *Repository) List(ctx context.Context, query string, limit, offset int) ([]Row, error) {
	pattern := "%" + query + "%"
	rows := []Row{}
	err := r.db.SelectContext(ctx, &rows, r.db.Rebind(`
		SELECT i.id, i.customer_id, i.amount, i.status, i.date,
		       COALESCE(c.name, '') AS customer_name,
		       COALESCE(c.email, '') AS customer_email
		FROM invoices i
		LEFT JOIN customers c ON c.id = i.customer_id
		WHERE LOWER(COALESCE(c.name, '')) LIKE LOWER(?)
		   OR LOWER(COALESCE(c.email, '')) LIKE LOWER(?)
		   OR CAST(i.amount AS TEXT) LIKE ?
		   OR CAST(i.date AS TEXT) LIKE ?
		   OR LOWER(i.status) LIKE LOWER(?)
		ORDER BY i.date DESC, i.id
		LIMIT ? OFFSET ?`),
		pattern, pattern, pattern, pattern, pattern, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return rows, nil
}
