package engine

import (
	"github.com/xavieroyarzun/triage-sim/internal/domain/patient"
	"github.com/xavieroyarzun/triage-sim/internal/domain/rules"
)

// Statistics accumulates the outcome of every dispatch in a run.
// Arrays are indexed by category; index 0 is unused.
type Statistics struct {
	TotalTreated int
	Treated      [patient.MaxCategory + 1]int
	TotalWait    [patient.MaxCategory + 1]int64
	Exceeded     []*patient.Patient
}

// NewStatistics creates empty statistics.
func NewStatistics() *Statistics {
	return &Statistics{Exceeded: make([]*patient.Patient, 0)}
}

// Record counts a dispatch that waited waitMinutes and reports whether it
// breached the SLA. Categories outside 1..5 only count toward the total.
func (s *Statistics) Record(p *patient.Patient, waitMinutes int64) (breach bool) {
	s.TotalTreated++

	c := p.Category()
	if c.Valid() {
		s.Treated[c]++
		s.TotalWait[c] += waitMinutes
	}

	if rules.ExceedsSLA(c, waitMinutes) {
		s.Exceeded = append(s.Exceeded, p)
		return true
	}
	return false
}

// TreatedIn returns how many category c patients were dispatched.
func (s *Statistics) TreatedIn(c patient.Category) int {
	if !c.Valid() {
		return 0
	}
	return s.Treated[c]
}

// AverageWait returns the mean wait in minutes for category c, 0 if none.
func (s *Statistics) AverageWait(c patient.Category) float64 {
	if !c.Valid() || s.Treated[c] == 0 {
		return 0
	}
	return float64(s.TotalWait[c]) / float64(s.Treated[c])
}

// ExceededCount is the number of SLA breaches, duplicates included.
func (s *Statistics) ExceededCount() int {
	return len(s.Exceeded)
}
