package database

import (
	"database/sql"
	"fmt"
)

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS customers (
    card_code TEXT PRIMARY KEY,
    name TEXT NOT NULL DEFAULT '',
    amount_paid BIGINT NOT NULL DEFAULT 0,
    status TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS benefits (
    benefit_code TEXT PRIMARY KEY,
    vessel_type TEXT NOT NULL DEFAULT '',
    vessel_description TEXT NOT NULL DEFAULT '',
    vessel_weight TEXT NOT NULL DEFAULT '',
    commodities_json TEXT NOT NULL DEFAULT '{}',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS submissions (
    id BIGSERIAL PRIMARY KEY,
    phone TEXT NOT NULL DEFAULT '',
    card_code TEXT NOT NULL DEFAULT '',
    benefit_code TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_submissions_benefit_code ON submissions(benefit_code);
`

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS customers (
    card_code TEXT PRIMARY KEY,
    name TEXT NOT NULL DEFAULT '',
    amount_paid INTEGER NOT NULL DEFAULT 0,
    status TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS benefits (
    benefit_code TEXT PRIMARY KEY,
    vessel_type TEXT NOT NULL DEFAULT '',
    vessel_description TEXT NOT NULL DEFAULT '',
    vessel_weight TEXT NOT NULL DEFAULT '',
    commodities_json TEXT NOT NULL DEFAULT '{}',
    created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS submissions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    phone TEXT NOT NULL DEFAULT '',
    card_code TEXT NOT NULL DEFAULT '',
    benefit_code TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_submissions_benefit_code ON submissions(benefit_code);
`

// InitSchema creates the three record sets if they are absent. Safe to run
// on every start; existing data is never touched.
func InitSchema(db *sql.DB, uri string) error {
	schema := schemaPostgres
	if DriverFor(uri) == "sqlite3" {
		schema = schemaSQLite
	}
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to init schema: %w", err)
	}
	return nil
}
