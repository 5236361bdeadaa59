// Package events provides the append-only audit trail of a triage run.
// Every arrival, dispatch, dropped admission and SLA breach is recorded here.
package events

import "github.com/google/uuid"

// EventType defines the category of a triage event.
type EventType string

const (
	EventTypeTimeTick           EventType = "TIME_TICK"
	EventTypePatientArrived     EventType = "PATIENT_ARRIVED"
	EventTypePatientDispatched  EventType = "PATIENT_DISPATCHED"
	EventTypeAdmissionDropped   EventType = "ADMISSION_DROPPED"
	EventTypeSLABreach          EventType = "SLA_BREACH"
	EventTypeCategoryReassigned EventType = "CATEGORY_REASSIGNED"
)

// TriageEvent represents an immutable record of something that happened at the desk.
type TriageEvent struct {
	ID        string      `json:"id"`
	Timestamp int64       `json:"timestamp"` // simulated seconds since epoch
	Minute    int         `json:"minute"`    // simulated minute of the day
	Type      EventType   `json:"type"`
	PatientID string      `json:"patient_id"` // empty for clock events
	Payload   interface{} `json:"payload"`
}

// EventPersister defines how an event is durably stored.
type EventPersister interface {
	Append(event TriageEvent) error
}

// EventLog is the in-memory append-only log of triage events.
// It is owned by a single simulation loop and is not safe for concurrent use.
type EventLog struct {
	events    []TriageEvent
	persister EventPersister
	failures  int
	lastErr   error
}

// NewEventLog creates a new event log. persister may be nil.
func NewEventLog(persister EventPersister) *EventLog {
	return &EventLog{
		events:    make([]TriageEvent, 0),
		persister: persister,
	}
}

// Append adds a new event to the log and writes it through to the persister.
// A persister failure never loses the in-memory copy; it is counted and
// available from Err.
func (el *EventLog) Append(event TriageEvent) {
	if event.ID == "" {
		event.ID = NewEventID()
	}
	el.events = append(el.events, event)

	if el.persister != nil {
		if err := el.persister.Append(event); err != nil {
			el.failures++
			el.lastErr = err
		}
	}
}

// Err returns the most recent persister error and how many writes failed.
func (el *EventLog) Err() (failures int, last error) {
	return el.failures, el.lastErr
}

// GetByPatient returns all events concerning a specific patient.
func (el *EventLog) GetByPatient(patientID string) []TriageEvent {
	var result []TriageEvent
	for _, e := range el.events {
		if e.PatientID == patientID {
			result = append(result, e)
		}
	}
	return result
}

// GetByType returns all events of one type in append order.
func (el *EventLog) GetByType(t EventType) []TriageEvent {
	var result []TriageEvent
	for _, e := range el.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// Replay returns a copy of the full history.
func (el *EventLog) Replay() []TriageEvent {
	out := make([]TriageEvent, len(el.events))
	copy(out, el.events)
	return out
}

// Len returns the number of events appended so far.
func (el *EventLog) Len() int {
	return len(el.events)
}

// NewEventID creates a unique event identifier.
func NewEventID() string {
	return uuid.NewString()
}
