package engine

import "github.com/xavieroyarzun/triage-sim/internal/domain/patient"

// Census is the running head count shared by the arrival and dispatch systems.
type Census struct {
	pending []*patient.Patient // generated, not yet arrived, in arrival order
	next    int

	Arrived int // patients registered so far
	Queued  int // patients registered and not yet dispatched
}

// NewCensus starts a day with the given pre-generated population.
func NewCensus(pending []*patient.Patient) *Census {
	return &Census{pending: pending}
}

// Remaining is the number of generated patients that have not arrived.
func (c *Census) Remaining() int {
	return len(c.pending) - c.next
}

// takeNext hands out the next generated patient, or nil when none remain.
func (c *Census) takeNext() *patient.Patient {
	if c.next >= len(c.pending) {
		return nil
	}
	p := c.pending[c.next]
	c.next++
	return p
}
