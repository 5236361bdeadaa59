package triage

import (
	"github.com/xavieroyarzun/triage-sim/internal/domain/area"
	"github.com/xavieroyarzun/triage-sim/internal/domain/patient"
)

// Area capacities are hospital policy, not derived from load.
const (
	CapacityAdultEmergency = 150
	CapacityUrgentCare     = 200
	CapacityPediatric      = 100
)

// AreaRegistry holds the treatment areas keyed by name.
type AreaRegistry struct {
	areas map[string]*area.Area
	order []string
}

// NewAreaRegistry creates the three standard areas.
func NewAreaRegistry() *AreaRegistry {
	r := &AreaRegistry{areas: make(map[string]*area.Area)}
	r.add(area.NewArea(patient.AreaAdultEmergency, CapacityAdultEmergency))
	r.add(area.NewArea(patient.AreaUrgentCare, CapacityUrgentCare))
	r.add(area.NewArea(patient.AreaPediatric, CapacityPediatric))
	return r
}

// NewAreaRegistryWith builds a registry from caller supplied areas.
// Tests use it to exercise saturation without hundreds of patients.
func NewAreaRegistryWith(areas ...*area.Area) *AreaRegistry {
	r := &AreaRegistry{areas: make(map[string]*area.Area)}
	for _, a := range areas {
		r.add(a)
	}
	return r
}

func (r *AreaRegistry) add(a *area.Area) {
	if _, exists := r.areas[a.Name()]; !exists {
		r.order = append(r.order, a.Name())
	}
	r.areas[a.Name()] = a
}

// Get returns the named area, or nil if unknown.
func (r *AreaRegistry) Get(name string) *area.Area {
	return r.areas[name]
}

// Names lists the areas in registration order.
func (r *AreaRegistry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Occupancy reports the current occupant count per area.
func (r *AreaRegistry) Occupancy() map[string]int {
	out := make(map[string]int, len(r.areas))
	for name, a := range r.areas {
		out[name] = a.Len()
	}
	return out
}
