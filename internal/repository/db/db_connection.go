package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// InitDB opens/creates the run archive and ensures tables exist.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// SQLite is not great with many writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

const sqliteDriverName = "sqlite"

const schemaFitRuns = `
CREATE TABLE IF NOT EXISTS fit_runs (
    id TEXT PRIMARY KEY,
    input TEXT NOT NULL,
    started_at TIMESTAMP NOT NULL,
    samples INTEGER NOT NULL,
    complete INTEGER NOT NULL,
    skipped INTEGER NOT NULL,
    channels INTEGER NOT NULL,
    outputs TEXT
);
`

const schemaFitLines = `
CREATE TABLE IF NOT EXISTS fit_lines (
    run_id TEXT NOT NULL REFERENCES fit_runs(id) ON DELETE CASCADE,
    channel INTEGER NOT NULL,
    seq INTEGER NOT NULL,
    kind TEXT NOT NULL,
    x_lo REAL NOT NULL,
    x_hi REAL NOT NULL,
    intercept REAL NOT NULL,
    slope REAL NOT NULL,
    PRIMARY KEY (run_id, channel, seq)
);
`

const indexFitRunsStarted = `
CREATE INDEX IF NOT EXISTS idx_fit_runs_started_at ON fit_runs(started_at);
`

func ensureSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for i, stmt := range []string{
		schemaFitRuns,
		schemaFitLines,
		indexFitRunsStarted,
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
