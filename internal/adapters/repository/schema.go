package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// schemaStatements only create what is missing, so they can run on every start.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS guests (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		phone TEXT NOT NULL,
		email TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS rooms (
		id BIGSERIAL PRIMARY KEY,
		room_number INTEGER NOT NULL UNIQUE CHECK (room_number >= 1),
		room_type TEXT NOT NULL CHECK (room_type IN ('Single', 'Double', 'Suite')),
		price_per_night NUMERIC(10, 2) NOT NULL CHECK (price_per_night >= 0),
		status TEXT NOT NULL DEFAULT 'Available' CHECK (status IN ('Available', 'Occupied'))
	)`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id BIGSERIAL PRIMARY KEY,
		guest_id BIGINT NOT NULL REFERENCES guests (id),
		room_id BIGINT NOT NULL REFERENCES rooms (id),
		check_in DATE NOT NULL,
		check_out DATE NOT NULL,
		CONSTRAINT reservations_date_range_check CHECK (check_out > check_in)
	)`,
	`CREATE INDEX IF NOT EXISTS rooms_status_idx ON rooms (status)`,
	`CREATE TABLE IF NOT EXISTS outbox_events (
		id VARCHAR(36) PRIMARY KEY,
		aggregate_type VARCHAR(50) NOT NULL,
		aggregate_id VARCHAR(36) NOT NULL,
		event_type VARCHAR(50) NOT NULL,
		payload JSONB NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		processed_at TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS outbox_events_unprocessed_idx
		ON outbox_events (created_at) WHERE processed_at IS NULL`,
	`CREATE OR REPLACE FUNCTION notify_outbox_insert()
	RETURNS TRIGGER AS $$
	BEGIN
		PERFORM pg_notify('outbox_channel', NEW.id::text);
		RETURN NEW;
	END;
	$$ LANGUAGE plpgsql`,
	`DROP TRIGGER IF EXISTS outbox_notify_trigger ON outbox_events`,
	`CREATE TRIGGER outbox_notify_trigger
		AFTER INSERT ON outbox_events
		FOR EACH ROW
		EXECUTE FUNCTION notify_outbox_insert()`,
}

// EnsureSchema creates the hotel tables, constraints and the outbox trigger
// when they are absent. Running it against an existing store keeps all rows.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return classify(err)
	}
	defer tx.Rollback()

	for i, stmt := range schemaStatements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i+1, classify(err))
		}
	}

	return classify(tx.Commit())
}
