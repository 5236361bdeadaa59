// Package report renders the end-of-day summary of a triage run.
package report

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/xavieroyarzun/triage-sim/internal/domain/patient"
	"github.com/xavieroyarzun/triage-sim/internal/engine"
)

// CategoryLine is the per-category part of the summary.
type CategoryLine struct {
	Category    patient.Category `json:"category"`
	Treated     int              `json:"treated"`
	AverageWait float64          `json:"average_wait_minutes"`
}

// Report is what the console summary needs from a run.
type Report struct {
	TotalTreated  int            `json:"total_treated"`
	Categories    []CategoryLine `json:"categories"`
	ExceededCount int            `json:"sla_exceeded"`
}

// FromStatistics extracts a Report from engine statistics.
func FromStatistics(s *engine.Statistics) Report {
	r := Report{
		TotalTreated:  s.TotalTreated,
		ExceededCount: s.ExceededCount(),
		Categories:    make([]CategoryLine, 0, patient.MaxCategory),
	}
	for c := patient.MinCategory; c <= patient.MaxCategory; c++ {
		r.Categories = append(r.Categories, CategoryLine{
			Category:    c,
			Treated:     s.TreatedIn(c),
			AverageWait: s.AverageWait(c),
		})
	}
	return r
}

// Render writes the summary in the console layout.
func (r Report) Render(w io.Writer) error {
	ew := &errWriter{w: w}

	ew.printf("Total patients treated: %s\n", humanize.Comma(int64(r.TotalTreated)))

	ew.printf("\nPatients treated per category:\n")
	for _, line := range r.Categories {
		ew.printf("C%d: %s\n", line.Category, humanize.Comma(int64(line.Treated)))
	}

	ew.printf("\nAverage wait per category:\n")
	for _, line := range r.Categories {
		ew.printf("C%d: %.2f minutes\n", line.Category, line.AverageWait)
	}

	ew.printf("\nPatients who exceeded the maximum wait: %s\n", humanize.Comma(int64(r.ExceededCount)))
	return ew.err
}

// errWriter keeps the first write error so Render can stay linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
