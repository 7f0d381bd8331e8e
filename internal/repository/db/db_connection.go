package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// InitDB opens/creates a SQLite DB file and ensures tables and the stock
// cooling profile catalog exist.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// Conservative pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is not great with many writers
	db.SetMaxIdleConns(1)

	// Pragmas to improve reliability
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set PRAGMA journal_mode=WAL: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set PRAGMA foreign_keys=ON: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set PRAGMA busy_timeout=5000: %w", err)
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := seedCoolingProfiles(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Fail fast if the DB cannot be reached
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

const sqliteDriverName = "sqlite"

const schemaSimulationRuns = `
CREATE TABLE IF NOT EXISTS simulation_runs (
    id TEXT PRIMARY KEY,
    created_at TIMESTAMP NOT NULL,
    params TEXT NOT NULL,
    result TEXT NOT NULL
);
`

const schemaCoolingProfiles = `
CREATE TABLE IF NOT EXISTS cooling_profiles (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    rth_ca REAL NOT NULL,
    budget_w REAL NOT NULL
);
`

const schemaUsers = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL
);
`

func ensureSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		// In case of panic, rollback to avoid leaving an open transaction
		_ = tx.Rollback()
	}()

	for i, stmt := range []string{
		schemaSimulationRuns,
		schemaCoolingProfiles,
		schemaUsers,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}

// Stock catalog: thermal resistance is case-to-ambient in °C/W, budget the
// steady-state power the solution can remove. INSERT OR IGNORE keeps user
// edits intact across restarts.
const seedCoolingProfilesSQL = `
INSERT OR IGNORE INTO cooling_profiles (id, name, rth_ca, budget_w) VALUES
    ('bare-case',     'No heatsink (bare case)',  60.0, 3.0),
    ('passive-small', 'Small passive heatsink',   20.0, 8.0),
    ('passive-large', 'Large passive heatsink',    8.0, 20.0),
    ('forced-air',    'Forced-air heatsink',       1.5, 120.0),
    ('liquid-loop',   'Liquid cooling loop',       0.08, 500.0);
`

func seedCoolingProfiles(db *sql.DB) error {
	if _, err := db.Exec(seedCoolingProfilesSQL); err != nil {
		return fmt.Errorf("seed cooling profiles: %w", err)
	}
	return nil
}
