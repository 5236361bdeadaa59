package engine

import (
	"fmt"

	"github.com/xavieroyarzun/triage-sim/internal/events"
	"github.com/xavieroyarzun/triage-sim/internal/platform/logger"
	"github.com/xavieroyarzun/triage-sim/internal/platform/metrics"
	"github.com/xavieroyarzun/triage-sim/internal/triage"
)

const (
	// DispatchEvery is the cadence, in minutes, of the single scheduled dispatch.
	DispatchEvery = 15
	// BatchArrivalMultiple triggers a double dispatch whenever the arrival
	// count is a multiple of it and at least BatchSize patients wait.
	BatchArrivalMultiple = 3
	BatchSize            = 2
)

// DispatchPayload is attached to PATIENT_DISPATCHED events.
type DispatchPayload struct {
	Category    int    `json:"category"`
	Area        string `json:"area"`
	WaitMinutes int64  `json:"wait_minutes"`
	Admitted    bool   `json:"admitted"`
	Batch       bool   `json:"batch"`
}

// SLABreachPayload is attached to SLA_BREACH events.
type SLABreachPayload struct {
	Category    int   `json:"category"`
	WaitMinutes int64 `json:"wait_minutes"`
}

// DispatchSystem moves patients from the triage queue into treatment areas.
type DispatchSystem struct {
	hospital *triage.Hospital
	census   *Census
	stats    *Statistics
	eventLog *events.EventLog
	logger   *logger.Logger
	metrics  *metrics.Collector
}

// NewDispatchSystem creates the dispatch subsystem.
func NewDispatchSystem(h *triage.Hospital, census *Census, stats *Statistics, eventLog *events.EventLog, log *logger.Logger, m *metrics.Collector) *DispatchSystem {
	return &DispatchSystem{
		hospital: h,
		census:   census,
		stats:    stats,
		eventLog: eventLog,
		logger:   log,
		metrics:  m,
	}
}

// OnTimeTick applies both dispatch rules. They are independent: a single
// minute can fire the scheduled dispatch and then the batch.
func (ds *DispatchSystem) OnTimeTick(tick TimeTickPayload) {
	if tick.Minute%DispatchEvery == 0 && ds.census.Queued > 0 {
		ds.dispatchOne(tick, false)
		ds.census.Queued--
	}

	if ds.census.Arrived%BatchArrivalMultiple == 0 && ds.census.Queued >= BatchSize {
		for i := 0; i < BatchSize; i++ {
			ds.dispatchOne(tick, true)
		}
		ds.census.Queued -= BatchSize
	}
}

func (ds *DispatchSystem) dispatchOne(tick TimeTickPayload, batch bool) {
	d, ok := ds.hospital.Dispatch()
	if !ok {
		ds.logger.Warn("dispatch requested on empty queue", "minute", tick.Minute)
		return
	}
	p := d.Patient

	wait := p.WaitMinutes(tick.Now)
	breach := ds.stats.Record(p, wait)

	ds.metrics.RecordDispatch(d.Admitted)
	if a := ds.hospital.Area(p.Area()); a != nil {
		ds.metrics.ObserveArea(a.Name(), a.Len())
	}

	ds.eventLog.Append(events.TriageEvent{
		Timestamp: tick.Now,
		Minute:    tick.Minute,
		Type:      events.EventTypePatientDispatched,
		PatientID: p.ID(),
		Payload: DispatchPayload{
			Category:    int(p.Category()),
			Area:        p.Area(),
			WaitMinutes: wait,
			Admitted:    d.Admitted,
			Batch:       batch,
		},
	})

	if !d.Admitted {
		ds.eventLog.Append(events.TriageEvent{
			Timestamp: tick.Now,
			Minute:    tick.Minute,
			Type:      events.EventTypeAdmissionDropped,
			PatientID: p.ID(),
			Payload:   map[string]string{"area": p.Area()},
		})
	}

	if breach {
		ds.metrics.RecordSLABreach()
		ds.eventLog.Append(events.TriageEvent{
			Timestamp: tick.Now,
			Minute:    tick.Minute,
			Type:      events.EventTypeSLABreach,
			PatientID: p.ID(),
			Payload:   SLABreachPayload{Category: int(p.Category()), WaitMinutes: wait},
		})
		ds.logger.Event(string(events.EventTypeSLABreach), p.ID(),
			fmt.Sprintf("category %d dispatched after %d minutes", p.Category(), wait))
	}
}
