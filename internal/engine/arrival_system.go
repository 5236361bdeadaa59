package engine

import (
	"github.com/xavieroyarzun/triage-sim/internal/domain/patient"
	"github.com/xavieroyarzun/triage-sim/internal/events"
	"github.com/xavieroyarzun/triage-sim/internal/platform/logger"
	"github.com/xavieroyarzun/triage-sim/internal/platform/metrics"
	"github.com/xavieroyarzun/triage-sim/internal/triage"
)

// ArrivalEvery is the cadence, in minutes, at which a generated patient reaches the desk.
const ArrivalEvery = 10

// ArrivalPayload is attached to PATIENT_ARRIVED events.
type ArrivalPayload struct {
	Patient patient.Snapshot `json:"patient"`
	Arrived int              `json:"arrived"`
	Queued  int              `json:"queued"`
}

// ArrivalSystem admits one pre-generated patient into the triage queue every ArrivalEvery minutes.
type ArrivalSystem struct {
	hospital *triage.Hospital
	census   *Census
	eventLog *events.EventLog
	logger   *logger.Logger
	metrics  *metrics.Collector
}

// NewArrivalSystem creates the arrival subsystem.
func NewArrivalSystem(h *triage.Hospital, census *Census, eventLog *events.EventLog, log *logger.Logger, m *metrics.Collector) *ArrivalSystem {
	return &ArrivalSystem{
		hospital: h,
		census:   census,
		eventLog: eventLog,
		logger:   log,
		metrics:  m,
	}
}

// OnTimeTick registers the next patient when the minute is on cadence.
func (as *ArrivalSystem) OnTimeTick(tick TimeTickPayload) {
	if tick.Minute%ArrivalEvery != 0 || as.census.Remaining() == 0 {
		return
	}

	p := as.census.takeNext()
	if err := as.hospital.Register(p); err != nil {
		// Generated ids are unique; a clash means the caller reused a population.
		as.logger.Error("arrival rejected", "patient", p.ID(), "error", err)
		return
	}
	as.census.Arrived++
	as.census.Queued++
	as.metrics.RecordArrival()

	as.eventLog.Append(events.TriageEvent{
		Timestamp: tick.Now,
		Minute:    tick.Minute,
		Type:      events.EventTypePatientArrived,
		PatientID: p.ID(),
		Payload: ArrivalPayload{
			Patient: p.Snapshot(),
			Arrived: as.census.Arrived,
			Queued:  as.census.Queued,
		},
	})
	as.logger.Debug("patient arrived", "patient", p.ID(), "minute", tick.Minute, "queued", as.census.Queued)
}
