package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// InitSQLite opens (or creates) the audit database and its schema.
func InitSQLite(dbPath string) (*sqlx.DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// A single writer keeps SQLite from returning SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	if err := createSchemas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schemas: %w", err)
	}

	return db, nil
}

func createSchemas(db *sqlx.DB) error {
	schemas := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			patients INTEGER NOT NULL,
			start_timestamp INTEGER NOT NULL,
			treated INTEGER NOT NULL DEFAULT 0,
			exceeded INTEGER NOT NULL DEFAULT 0,
			finished BOOLEAN NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS events (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			run_id TEXT NOT NULL,
			timestamp INTEGER NOT NULL,
			minute INTEGER NOT NULL,
			event_type TEXT NOT NULL,
			patient_id TEXT NOT NULL,
			payload TEXT NOT NULL,
			FOREIGN KEY (run_id) REFERENCES runs(run_id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_events_run_id ON events(run_id);`,
		`CREATE INDEX IF NOT EXISTS idx_events_patient_id ON events(patient_id);`,
		`CREATE INDEX IF NOT EXISTS idx_events_event_type ON events(event_type);`,
	}

	for _, query := range schemas {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}

	return nil
}
