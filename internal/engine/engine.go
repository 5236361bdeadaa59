package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/xavieroyarzun/triage-sim/internal/domain/patient"
	"github.com/xavieroyarzun/triage-sim/internal/events"
	"github.com/xavieroyarzun/triage-sim/internal/platform/logger"
	"github.com/xavieroyarzun/triage-sim/internal/platform/metrics"
	"github.com/xavieroyarzun/triage-sim/internal/triage"
)

// Engine is the central orchestrator: it drives the clock for one day and
// routes every TIME_TICK to the arrival and dispatch subsystems.
type Engine struct {
	eventLog *events.EventLog
	logger   *logger.Logger
	metrics  *metrics.Collector
	hospital *triage.Hospital

	// Sub-systems, rebuilt per run
	census         *Census
	arrivalSystem  *ArrivalSystem
	dispatchSystem *DispatchSystem
}

// NewEngine wires a fresh hospital to the given event log, logger and collector.
// Nil collaborators are replaced with silent defaults.
func NewEngine(eventLog *events.EventLog, log *logger.Logger, m *metrics.Collector) *Engine {
	if eventLog == nil {
		eventLog = events.NewEventLog(nil)
	}
	if log == nil {
		log = logger.NewNop()
	}
	if m == nil {
		m = metrics.NewCollector()
	}
	return &Engine{
		eventLog: eventLog,
		logger:   log,
		metrics:  m,
		hospital: triage.NewHospital(log),
	}
}

// Hospital exposes the triage desk used by the run.
func (e *Engine) Hospital() *triage.Hospital {
	return e.hospital
}

// GetEventLog exposes the audit trail of the run.
func (e *Engine) GetEventLog() *events.EventLog {
	return e.eventLog
}

// Metrics exposes the run's collector.
func (e *Engine) Metrics() *metrics.Collector {
	return e.metrics
}

// Run simulates one day starting at the start timestamp with the given
// pre-generated population, in arrival order. Patients still queued at the
// end of the day are left in the queue. The only error is ctx cancellation,
// checked between ticks.
func (e *Engine) Run(ctx context.Context, population []*patient.Patient, start int64) (*Statistics, error) {
	began := time.Now()
	e.logger.Info("starting triage day", "patients", len(population), "start", start)

	clock := NewClock(start)
	census := NewCensus(population)
	e.census = census
	stats := NewStatistics()
	e.arrivalSystem = NewArrivalSystem(e.hospital, census, e.eventLog, e.logger, e.metrics)
	e.dispatchSystem = NewDispatchSystem(e.hospital, census, stats, e.eventLog, e.logger, e.metrics)

	for ; !clock.Done(); clock.Advance() {
		if err := ctx.Err(); err != nil {
			return stats, fmt.Errorf("simulation stopped at minute %d: %w", clock.Minute(), err)
		}
		e.tick(clock.Payload())
	}

	e.metrics.RecordRun(time.Since(began))
	e.logger.Info("triage day finished",
		"treated", stats.TotalTreated,
		"still_queued", census.Queued,
		"not_arrived", census.Remaining(),
		"sla_exceeded", stats.ExceededCount(),
		"occupancy", e.hospital.Areas().Occupancy(),
	)
	return stats, nil
}

// tick emits the TIME_TICK event and dispatches it to the subsystems.
func (e *Engine) tick(payload TimeTickPayload) {
	event := events.TriageEvent{
		Timestamp: payload.Now,
		Minute:    payload.Minute,
		Type:      events.EventTypeTimeTick,
		Payload:   payload,
	}
	e.eventLog.Append(event)
	e.metrics.RecordTick()
	e.dispatch(event)
}

// dispatch routes a TriageEvent to the subsystems that react to it.
func (e *Engine) dispatch(event events.TriageEvent) {
	switch event.Type {
	case events.EventTypeTimeTick:
		payload, ok := event.Payload.(TimeTickPayload)
		if !ok {
			return
		}
		// Order matters: arrivals first, so a patient can be dispatched in
		// the minute it arrives.
		e.arrivalSystem.OnTimeTick(payload)
		e.dispatchSystem.OnTimeTick(payload)
	}
}

// ReassignCategory changes a waiting patient's category through the desk
// and records it in the audit trail. minute and now stamp the event.
func (e *Engine) ReassignCategory(id string, c patient.Category, minute int, now int64) bool {
	p := e.hospital.Patient(id)
	var from patient.Category
	requeued := false
	if p != nil {
		from = p.Category()
		requeued = p.Status() != patient.StatusWaiting
	}
	if !e.hospital.ReassignCategory(id, c) {
		return false
	}
	// A treated patient is back in the queue; keep the dispatch rules in step.
	if requeued && e.census != nil {
		e.census.Queued++
	}
	e.metrics.RecordReassignment()
	e.eventLog.Append(events.TriageEvent{
		Timestamp: now,
		Minute:    minute,
		Type:      events.EventTypeCategoryReassigned,
		PatientID: id,
		Payload:   map[string]int{"from": int(from), "to": int(c)},
	})
	return true
}
