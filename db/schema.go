package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'USER',
		failed_attempts INT NOT NULL DEFAULT 0,
		lockout_until TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS login_attempts (
		id UUID PRIMARY KEY,
		username TEXT NOT NULL,
		ip_address TEXT NOT NULL DEFAULT '',
		attempt_time TIMESTAMPTZ NOT NULL DEFAULT now(),
		successful BOOLEAN NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id UUID PRIMARY KEY,
		title TEXT NOT NULL,
		color TEXT NOT NULL DEFAULT '',
		author_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS task_items (
		id UUID PRIMARY KEY,
		task_id UUID NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		checked BOOLEAN NOT NULL DEFAULT false,
		position INT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS tags (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		color TEXT NOT NULL DEFAULT '',
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS task_tags (
		task_id UUID NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		tag_id UUID NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
		PRIMARY KEY (task_id, tag_id)
	)`,
}

// EnsureSchema creates the tables if they do not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
