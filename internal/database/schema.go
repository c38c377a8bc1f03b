package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS posts (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    slug TEXT NOT NULL UNIQUE,
    user_id TEXT NOT NULL,
    date_created DATE NOT NULL,
    created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS posts_name_created_at_idx ON posts (name, created_at);
CREATE TABLE IF NOT EXISTS post_meta (
    id TEXT PRIMARY KEY,
    post_id TEXT NOT NULL,
    post_title TEXT NOT NULL,
    meta_title TEXT NOT NULL,
    meta_description TEXT NOT NULL,
    header_image_url TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS post_meta_post_id_idx ON post_meta (post_id);
CREATE TABLE IF NOT EXISTS customers (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS invoices (
    id TEXT PRIMARY KEY,
    customer_id TEXT NOT NULL,
    amount INTEGER NOT NULL,
    status TEXT NOT NULL,
    date DATE NOT NULL
);
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    email TEXT NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS posts (
    id UUID PRIMARY KEY,
    name TEXT NOT NULL,
    slug TEXT NOT NULL UNIQUE,
    user_id TEXT NOT NULL,
    date_created DATE NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS posts_name_created_at_idx ON posts (name, created_at DESC);
CREATE TABLE IF NOT EXISTS post_meta (
    id UUID PRIMARY KEY,
    post_id UUID NOT NULL,
    post_title TEXT NOT NULL,
    meta_title TEXT NOT NULL,
    meta_description TEXT NOT NULL,
    header_image_url VARCHAR(255) NOT NULL
);
CREATE INDEX IF NOT EXISTS post_meta_post_id_idx ON post_meta (post_id);
CREATE TABLE IF NOT EXISTS customers (
    id TEXT PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    email VARCHAR(255) NOT NULL
);
CREATE TABLE IF NOT EXISTS invoices (
    id UUID PRIMARY KEY,
    customer_id TEXT NOT NULL,
    amount BIGINT NOT NULL,
    status VARCHAR(255) NOT NULL,
    date DATE NOT NULL
);
`

// EnsureSchema creates the dashboard tables when they are missing. It is a
// bootstrap for empty databases, not a migration tool.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	var schema string
	switch db.DriverName() {
	case DriverPostgres:
		schema = postgresSchema
	case DriverSQLite:
		schema = sqliteSchema
	default:
		return fmt.Errorf("no schema for driver %q", db.DriverName())
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
