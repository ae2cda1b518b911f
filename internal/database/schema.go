package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS events (
	id            TEXT PRIMARY KEY,
	title         TEXT NOT NULL,
	description   TEXT NOT NULL DEFAULT '',
	location_name TEXT NOT NULL DEFAULT '',
	latitude      DOUBLE PRECISION NOT NULL,
	longitude     DOUBLE PRECISION NOT NULL,
	category_slug TEXT NOT NULL DEFAULT '',
	starts_at     TIMESTAMPTZ NOT NULL,
	created_by    TEXT NOT NULL,
	capacity      INTEGER NOT NULL,
	sold          INTEGER NOT NULL DEFAULT 0,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CONSTRAINT events_sold_within_capacity CHECK (sold >= 0 AND sold <= capacity)
);

CREATE INDEX IF NOT EXISTS events_starts_at_idx ON events (starts_at);
CREATE INDEX IF NOT EXISTS events_lat_lon_idx ON events (latitude, longitude);

CREATE TABLE IF NOT EXISTS registrations (
	id             TEXT PRIMARY KEY,
	event_id       TEXT NOT NULL REFERENCES events (id) ON DELETE CASCADE,
	user_id        TEXT NOT NULL,
	attendee_name  TEXT NOT NULL,
	attendee_email TEXT NOT NULL,
	attendee_phone TEXT NOT NULL DEFAULT '',
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CONSTRAINT registrations_event_user_key UNIQUE (event_id, user_id)
);

CREATE INDEX IF NOT EXISTS registrations_user_idx ON registrations (user_id);
`

// Bootstrap applies the schema. Statements are idempotent; an advisory lock
// keeps concurrently starting replicas from racing each other.
func Bootstrap(ctx context.Context, pool *pgxpool.Pool) error {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire conn: %w", err)
	}
	defer conn.Release()

	const advisoryLockID int64 = 424242001
	if _, err := conn.Exec(ctx, `SELECT pg_advisory_lock($1)`, advisoryLockID); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}
	defer func() {
		_, _ = conn.Exec(context.Background(), `SELECT pg_advisory_unlock($1)`, advisoryLockID)
	}()

	if _, err := conn.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
