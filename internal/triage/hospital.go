// Package triage implements the admission desk: the global priority queue,
// the patient index, category reassignment and dispatch into treatment areas.
//
// Hospital is not safe for concurrent use. The remove-and-reinsert in
// ReassignCategory must stay a single critical section if that ever changes.
package triage

import (
	"errors"
	"fmt"

	"github.com/xavieroyarzun/triage-sim/internal/domain/area"
	"github.com/xavieroyarzun/triage-sim/internal/domain/patient"
	"github.com/xavieroyarzun/triage-sim/internal/domain/queue"
	"github.com/xavieroyarzun/triage-sim/internal/platform/logger"
)

var (
	ErrNilPatient       = errors.New("triage: nil patient")
	ErrDuplicatePatient = errors.New("triage: patient already registered")
)

// Dispatch describes the outcome of moving one patient out of the queue.
type Dispatch struct {
	Patient *patient.Patient
	// Admitted is false when the target area was saturated and the
	// patient was dropped from it.
	Admitted bool
}

// Hospital owns every patient seen so far and the queue of those still waiting.
type Hospital struct {
	patients map[string]*patient.Patient
	queue    *queue.PatientQueue
	areas    *AreaRegistry
	treated  []*patient.Patient
	logger   *logger.Logger
}

// NewHospital creates a hospital with the standard areas.
func NewHospital(log *logger.Logger) *Hospital {
	return NewHospitalWithAreas(NewAreaRegistry(), log)
}

// NewHospitalWithAreas creates a hospital dispatching into the given registry.
func NewHospitalWithAreas(areas *AreaRegistry, log *logger.Logger) *Hospital {
	if log == nil {
		log = logger.NewNop()
	}
	return &Hospital{
		patients: make(map[string]*patient.Patient),
		queue:    queue.New(),
		areas:    areas,
		treated:  make([]*patient.Patient, 0),
		logger:   log,
	}
}

// Register indexes p and places it in the admission queue.
// Registering an id twice is a caller error and leaves state untouched.
func (h *Hospital) Register(p *patient.Patient) error {
	if p == nil {
		return ErrNilPatient
	}
	if _, exists := h.patients[p.ID()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicatePatient, p.ID())
	}
	h.patients[p.ID()] = p
	h.queue.Push(p)
	h.logger.Debug("patient registered", "patient", p.ID(), "category", p.Category())
	return nil
}

// ReassignCategory changes a patient's category and re-queues it with the
// new priority. Unknown ids are ignored and return false.
// A patient already in treatment is re-admitted as a fresh waiting record
// carrying the same history; the record in its area is left as it was.
func (h *Hospital) ReassignCategory(id string, newCategory patient.Category) bool {
	p, ok := h.patients[id]
	if !ok {
		return false
	}

	old := p.Category()
	h.queue.RemoveID(id)

	if p.Status() != patient.StatusWaiting {
		p = p.Reissue(newCategory)
		h.patients[id] = p
	} else {
		p.SetCategory(newCategory)
	}
	p.RecordChange(fmt.Sprintf("category changed from %d to %d", old, newCategory))
	h.queue.Push(p)

	h.logger.Info("category reassigned", "patient", id, "from", old, "to", newCategory, "area", p.Area())
	return true
}

// DispatchNext moves the highest priority patient into treatment.
// Returns nil when nobody is waiting.
func (h *Hospital) DispatchNext() *patient.Patient {
	d, ok := h.Dispatch()
	if !ok {
		return nil
	}
	return d.Patient
}

// Dispatch is DispatchNext that also reports whether the area accepted the
// patient. ok is false when the queue is empty.
func (h *Hospital) Dispatch() (d Dispatch, ok bool) {
	p := h.queue.Pop()
	if p == nil {
		return Dispatch{}, false
	}

	p.SetStatus(patient.StatusInTreatment)

	admitted := false
	if a := h.areas.Get(p.Area()); a != nil {
		admitted = a.Admit(p)
	}
	if !admitted {
		h.logger.Warn("area saturated, admission dropped", "patient", p.ID(), "area", p.Area())
	}

	h.treated = append(h.treated, p)
	return Dispatch{Patient: p, Admitted: admitted}, true
}

// ByCategory returns the waiting patients with the given category in no
// particular order.
func (h *Hospital) ByCategory(c patient.Category) []*patient.Patient {
	var out []*patient.Patient
	for _, p := range h.queue.Items() {
		if p.Category() == c {
			out = append(out, p)
		}
	}
	return out
}

// Patient looks up any patient ever registered, or nil.
func (h *Hospital) Patient(id string) *patient.Patient {
	return h.patients[id]
}

// Peek returns the next patient to be dispatched without removing it.
func (h *Hospital) Peek() *patient.Patient {
	return h.queue.Peek()
}

// QueueLen is the number of patients waiting for dispatch.
func (h *Hospital) QueueLen() int {
	return h.queue.Len()
}

// QueueCount returns how many queue entries carry id. Never more than one.
func (h *Hospital) QueueCount(id string) int {
	return h.queue.Count(id)
}

// Area returns the named treatment area, or nil.
func (h *Hospital) Area(name string) *area.Area {
	return h.areas.Get(name)
}

// Areas exposes the registry for reporting.
func (h *Hospital) Areas() *AreaRegistry {
	return h.areas
}

// Treated lists every dispatched patient in dispatch order, including those
// dropped by a saturated area.
func (h *Hospital) Treated() []*patient.Patient {
	out := make([]*patient.Patient, len(h.treated))
	copy(out, h.treated)
	return out
}
