// Package dbtest opens throwaway sqlite databases for tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/jeremyjsx/dashboard/internal/database"
)

// Open returns a migrated sqlite database living in t.TempDir().
func Open(t testing.TB) *sqlx.DB {
	t.Helper()
	ctx := context.Background()
	db, err := database.Open(ctx, database.DriverSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := database.EnsureSchema(ctx, db); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return db
}

func SeedUser(t testing.TB, db *sqlx.DB, id, name string) {
	t.Helper()
	_, err := db.ExecContext(context.Background(),
		db.Rebind(`INSERT INTO users (id, name, email) VALUES (?, ?, ?)`),
		id, name, id+"@example.com")
	if err != nil {
		t.Fatalf("seed user %s: %v", id, err)
	}
}

func SeedCustomer(t testing.TB, db *sqlx.DB, id, name string) {
	t.Helper()
	_, err := db.ExecContext(context.Background(),
		db.Rebind(`INSERT INTO customers (id, name, email) VALUES (?, ?, ?)`),
		id, name, id+"@example.com")
	if err != nil {
		t.Fatalf("seed customer %s: %v", id, err)
	}
}

// Count returns the number of rows in table matching the optional where
// clause.
func Count(t testing.TB, db *sqlx.DB, table, where string, args ...any) int {
	t.Helper()
	query := "SELECT COUNT(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}
	var n int
	if err := db.GetContext(context.Background(), &n, db.Rebind(query), args...); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
