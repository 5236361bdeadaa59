// Package area defines the domain entity for a treatment area.
// This package is PURE and must NOT import any infrastructure packages.
package area

import (
	"github.com/xavieroyarzun/triage-sim/internal/domain/patient"
	"github.com/xavieroyarzun/triage-sim/internal/domain/queue"
)

// Area is a capacity-bounded pool of patients awaiting treatment,
// ordered by the same rule as the admission queue.
type Area struct {
	name     string
	capacity int
	patients *queue.PatientQueue
}

// NewArea creates an empty area. Capacity is fixed for its lifetime.
func NewArea(name string, capacity int) *Area {
	return &Area{
		name:     name,
		capacity: capacity,
		patients: queue.New(),
	}
}

func (a *Area) Name() string  { return a.name }
func (a *Area) Capacity() int { return a.capacity }
func (a *Area) Len() int      { return a.patients.Len() }

// Admit places p in the area.
// Returns false if the area is full; the patient is dropped, not queued.
func (a *Area) Admit(p *patient.Patient) bool {
	if a.patients.Len() >= a.capacity {
		return false
	}
	a.patients.Push(p)
	return true
}

// ReleaseNext removes the highest priority occupant, or returns nil when empty.
func (a *Area) ReleaseNext() *patient.Patient {
	return a.patients.Pop()
}

// IsSaturated reports whether a further admission would be dropped.
func (a *Area) IsSaturated() bool {
	return a.patients.Len() >= a.capacity
}

// SnapshotSorted lists current occupants in priority order for reporting.
func (a *Area) SnapshotSorted() []*patient.Patient {
	return a.patients.Sorted()
}
