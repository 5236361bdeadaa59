package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/xavieroyarzun/triage-sim/internal/events"
)

// EventLogPersister translates triage events to storage records.
// It satisfies events.EventPersister.
type EventLogPersister struct {
	repo  EventRepository
	runID string
}

// NewEventLogPersister writes every event under runID.
func NewEventLogPersister(repo EventRepository, runID string) *EventLogPersister {
	return &EventLogPersister{repo: repo, runID: runID}
}

func (a *EventLogPersister) Append(event events.TriageEvent) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	record := EventRecord{
		ID:        event.ID,
		RunID:     a.runID,
		Timestamp: event.Timestamp,
		Minute:    event.Minute,
		EventType: string(event.Type),
		PatientID: event.PatientID,
		Payload:   string(payload),
	}
	return a.repo.Append(context.Background(), record)
}
