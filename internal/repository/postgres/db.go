package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// schema is applied on every connect; every statement is idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS events (
	id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	slug        TEXT NOT NULL UNIQUE,
	title       TEXT NOT NULL,
	description TEXT NOT NULL,
	overview    TEXT NOT NULL,
	image       TEXT NOT NULL,
	venue       TEXT NOT NULL,
	location    TEXT NOT NULL,
	date        TEXT NOT NULL,
	time        TEXT NOT NULL,
	mode        TEXT NOT NULL CHECK (mode IN ('online', 'offline', 'hybrid')),
	audience    TEXT NOT NULL,
	agenda      TEXT[] NOT NULL,
	organizer   TEXT NOT NULL,
	tags        TEXT[] NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS events_created_at_idx ON events (created_at DESC);
CREATE INDEX IF NOT EXISTS events_tags_idx ON events USING GIN (tags);

CREATE TABLE IF NOT EXISTS bookings (
	id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	event_id   TEXT NOT NULL,
	slug       TEXT NOT NULL,
	email      TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS bookings_event_id_idx ON bookings (event_id);
`

// DBGetter yields the shared database handle, opening it on first use.
type DBGetter interface {
	Get(ctx context.Context) (*sql.DB, error)
}

// Connect opens a Postgres handle for dsn, pings it and applies the schema.
func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}

// Close closes db; it matches store.Closer.
func Close(_ context.Context, db *sql.DB) error {
	return db.Close()
}
