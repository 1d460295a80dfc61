// Package repository provides PostgreSQL-backed implementations of the
// analytics storage interfaces for server deployments. Local and
// single-node deployments use the SQLite stores instead.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
)

// Connect opens a pgx connection pool and verifies connectivity.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

// schema is applied idempotently at startup. The jsonb set columns are
// nullable; readers treat NULL as the empty set.
const schema = `
CREATE TABLE IF NOT EXISTS activity_records (
    id                UUID PRIMARY KEY,
    user_id           TEXT NOT NULL,
    subject           TEXT NOT NULL,
    topic             TEXT NOT NULL,
    difficulty        TEXT NOT NULL,
    performance       DOUBLE PRECISION NOT NULL,
    time_spent        INTEGER NOT NULL,
    attempts          INTEGER NOT NULL,
    correct_answers   INTEGER NOT NULL,
    total_questions   INTEGER NOT NULL,
    learning_velocity DOUBLE PRECISION NOT NULL,
    retention_rate    DOUBLE PRECISION NOT NULL,
    created_at        TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_activity_user_recent
    ON activity_records (user_id, created_at DESC);

CREATE INDEX IF NOT EXISTS idx_activity_user_key_recent
    ON activity_records (user_id, subject, topic, created_at DESC);

CREATE TABLE IF NOT EXISTS preferences (
    user_id               TEXT PRIMARY KEY,
    preferred_difficulty  TEXT NOT NULL DEFAULT 'medium',
    learning_style        TEXT NOT NULL DEFAULT '',
    study_time_preference TEXT NOT NULL DEFAULT '',
    session_duration      INTEGER NOT NULL DEFAULT 30,
    subjects              JSONB,
    weak_areas            JSONB,
    strong_areas          JSONB,
    updated_at            TIMESTAMPTZ NOT NULL
);
`

// EnsureSchema applies the schema through database/sql so startup does
// not hold pool connections.
func EnsureSchema(databaseURL string) error {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return fmt.Errorf("open postgres: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
