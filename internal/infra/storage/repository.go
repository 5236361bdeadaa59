// Package storage provides the optional audit store for triage runs.
// It only ever receives a copy of the event trail; triage state is never read back from it.
package storage

import "context"

// EventRecord mirrors events.TriageEvent for persistence.
// The domain packages should NOT import this; the persister adapter translates.
type EventRecord struct {
	Seq       int64  `json:"seq" db:"seq"`
	ID        string `json:"id" db:"id"`
	RunID     string `json:"run_id" db:"run_id"`
	Timestamp int64  `json:"timestamp" db:"timestamp"`
	Minute    int    `json:"minute" db:"minute"`
	EventType string `json:"event_type" db:"event_type"`
	PatientID string `json:"patient_id" db:"patient_id"`
	Payload   string `json:"payload" db:"payload"` // JSON
}

// RunRecord summarises one simulated day.
type RunRecord struct {
	RunID          string `json:"run_id" db:"run_id"`
	Seed           int64  `json:"seed" db:"seed"`
	Patients       int    `json:"patients" db:"patients"`
	StartTimestamp int64  `json:"start_timestamp" db:"start_timestamp"`
	Treated        int    `json:"treated" db:"treated"`
	Exceeded       int    `json:"exceeded" db:"exceeded"`
	Finished       bool   `json:"finished" db:"finished"`
}

// EventRepository defines the interface for event persistence.
type EventRepository interface {
	// Append adds a new event to the immutable ledger.
	Append(ctx context.Context, event EventRecord) error

	// GetByRunID retrieves all events of a run in append order.
	GetByRunID(ctx context.Context, runID string) ([]EventRecord, error)

	// GetByPatientID retrieves the events concerning one patient.
	GetByPatientID(ctx context.Context, runID, patientID string) ([]EventRecord, error)

	// GetByEventType retrieves all events of a specific type.
	GetByEventType(ctx context.Context, runID, eventType string) ([]EventRecord, error)

	// CountByType counts a run's events per type.
	CountByType(ctx context.Context, runID string) (map[string]int, error)
}

// RunRepository stores one summary row per run.
type RunRepository interface {
	Create(ctx context.Context, run RunRecord) error
	Finish(ctx context.Context, runID string, treated, exceeded int) error
	Get(ctx context.Context, runID string) (*RunRecord, error)
}
