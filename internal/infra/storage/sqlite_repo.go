package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SQLiteEventRepository implements EventRepository for SQLite.
type SQLiteEventRepository struct {
	db *sqlx.DB
}

func NewSQLiteEventRepository(db *sqlx.DB) *SQLiteEventRepository {
	return &SQLiteEventRepository{db: db}
}

func (r *SQLiteEventRepository) Append(ctx context.Context, event EventRecord) error {
	query := `
		INSERT INTO events (id, run_id, timestamp, minute, event_type, patient_id, payload)
		VALUES (:id, :run_id, :timestamp, :minute, :event_type, :patient_id, :payload)
	`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}
	return nil
}

const selectEvents = `SELECT seq, id, run_id, timestamp, minute, event_type, patient_id, payload FROM events`

func (r *SQLiteEventRepository) getMany(ctx context.Context, query string, args ...interface{}) ([]EventRecord, error) {
	var events []EventRecord
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *SQLiteEventRepository) GetByRunID(ctx context.Context, runID string) ([]EventRecord, error) {
	return r.getMany(ctx, selectEvents+` WHERE run_id = ? ORDER BY seq ASC`, runID)
}

func (r *SQLiteEventRepository) GetByPatientID(ctx context.Context, runID, patientID string) ([]EventRecord, error) {
	return r.getMany(ctx, selectEvents+` WHERE run_id = ? AND patient_id = ? ORDER BY seq ASC`, runID, patientID)
}

func (r *SQLiteEventRepository) GetByEventType(ctx context.Context, runID, eventType string) ([]EventRecord, error) {
	return r.getMany(ctx, selectEvents+` WHERE run_id = ? AND event_type = ? ORDER BY seq ASC`, runID, eventType)
}

func (r *SQLiteEventRepository) CountByType(ctx context.Context, runID string) (map[string]int, error) {
	var rows []struct {
		EventType string `db:"event_type"`
		N         int    `db:"n"`
	}
	query := `SELECT event_type, COUNT(*) AS n FROM events WHERE run_id = ? GROUP BY event_type`
	if err := r.db.SelectContext(ctx, &rows, query, runID); err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.EventType] = row.N
	}
	return counts, nil
}

// ---------------------------------------------------------
// SQLiteRunRepository
// ---------------------------------------------------------

type SQLiteRunRepository struct {
	db *sqlx.DB
}

func NewSQLiteRunRepository(db *sqlx.DB) *SQLiteRunRepository {
	return &SQLiteRunRepository{db: db}
}

func (r *SQLiteRunRepository) Create(ctx context.Context, run RunRecord) error {
	query := `
		INSERT INTO runs (run_id, seed, patients, start_timestamp, treated, exceeded, finished)
		VALUES (:run_id, :seed, :patients, :start_timestamp, :treated, :exceeded, :finished)
	`
	if _, err := r.db.NamedExecContext(ctx, query, run); err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

func (r *SQLiteRunRepository) Finish(ctx context.Context, runID string, treated, exceeded int) error {
	query := `UPDATE runs SET treated = ?, exceeded = ?, finished = 1 WHERE run_id = ?`
	_, err := r.db.ExecContext(ctx, query, treated, exceeded, runID)
	return err
}

func (r *SQLiteRunRepository) Get(ctx context.Context, runID string) (*RunRecord, error) {
	query := `SELECT run_id, seed, patients, start_timestamp, treated, exceeded, finished FROM runs WHERE run_id = ?`
	var run RunRecord
	if err := r.db.GetContext(ctx, &run, query, runID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &run, nil
}
