package repository

import (
	"context"
	"database/sql"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS scheduled_posts (
		id BIGSERIAL PRIMARY KEY,
		media_ref TEXT NOT NULL,
		media_kind TEXT NOT NULL DEFAULT 'other',
		mime_type TEXT NOT NULL DEFAULT '',
		caption TEXT NOT NULL DEFAULT '',
		platforms TEXT[] NOT NULL DEFAULT '{}',
		scheduled_at TIMESTAMPTZ NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_scheduled_posts_due
		ON scheduled_posts (scheduled_at) WHERE status = 'pending'`,
	`CREATE TABLE IF NOT EXISTS platform_accounts (
		platform TEXT PRIMARY KEY,
		connected BOOLEAN NOT NULL DEFAULT false,
		label TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS publish_outcomes (
		id BIGSERIAL PRIMARY KEY,
		post_id BIGINT NOT NULL,
		platform TEXT NOT NULL,
		success BOOLEAN NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		issued_at TIMESTAMPTZ NOT NULL,
		expires_at TIMESTAMPTZ NOT NULL
	)`,
}

// Migrate creates the tables on first startup so a fresh database is
// usable without a separate migration step.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, q := range schema {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}
