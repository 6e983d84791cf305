package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
)

// trips.account_id deliberately carries no foreign key: rejecting an account
// leaves its trips in place with a dangling reference.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id         BIGSERIAL PRIMARY KEY,
		email      TEXT NOT NULL UNIQUE,
		password   TEXT NOT NULL,
		role       TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('admin', 'user')),
		approved   BOOLEAN NOT NULL DEFAULT FALSE,
		balance    NUMERIC(14,2) NOT NULL DEFAULT 2000 CHECK (balance >= 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS trips (
		id                BIGSERIAL PRIMARY KEY,
		account_id        BIGINT,
		rfid_type         TEXT NOT NULL DEFAULT '',
		vehicle_type      TEXT NOT NULL DEFAULT '',
		plate_number      TEXT NOT NULL DEFAULT '',
		driver            TEXT NOT NULL DEFAULT '',
		department        TEXT NOT NULL DEFAULT '',
		travel_date       TEXT NOT NULL DEFAULT '',
		from_location     TEXT NOT NULL DEFAULT '',
		to_location       TEXT NOT NULL DEFAULT '',
		rfid_location     TEXT NOT NULL DEFAULT '',
		amount            NUMERIC(14,2) NOT NULL DEFAULT 0,
		remaining_balance NUMERIC(14,2) NOT NULL DEFAULT 0,
		created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_trips_account_id ON trips (account_id)`,
	`CREATE TABLE IF NOT EXISTS scans (
		id           BIGSERIAL PRIMARY KEY,
		tag_id       TEXT NOT NULL,
		student_name TEXT NOT NULL DEFAULT '',
		grade        TEXT NOT NULL DEFAULT '',
		scan_time    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_scans_scan_time ON scans (scan_time DESC)`,
}

// Migrate creates the tables the service needs. Statements are idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i+1, err)
		}
	}
	log.Printf("Database schema ready (%d statements)", len(schema))
	return nil
}
