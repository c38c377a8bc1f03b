// Package users reads the dashboard authors. Accounts themselves are managed
// by the sign-in provider.
package users

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type User struct {
	ID    string `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
}

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Exists(ctx context.Context, id string) (bool, error) {
	var n int
	err := r.db.GetContext(ctx, &n, r.db.Rebind(`SELECT COUNT(*) FROM users WHERE id = ?`), id)
	if err != nil {
		return false, fmt.Errorf("lookup user: %w", err)
	}
	return n > 0, nil
}

// List returns authors ordered by name, for the author select on the post
// form.
func (r *Repository) List(ctx context.Context) ([]User, error) {
	users := []User{}
	err := r.db.SelectContext(ctx, &users, `SELECT id, name, email FROM users ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
