// Package metrics provides observability counters for a triage run.
package metrics

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Collector gathers run metrics. One collector per Engine.
type Collector struct {
	// Clock
	TickCount int64

	// Desk
	Arrivals          int64
	Dispatches        int64
	AdmissionsDropped int64
	Reassignments     int64
	SLABreaches       int64

	// Areas
	mu       sync.Mutex
	areaPeak map[string]int64

	// Wall time spent in Run
	RunLatency time.Duration

	StartTime time.Time
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{
		areaPeak:  make(map[string]int64),
		StartTime: time.Now(),
	}
}

// RecordTick records a processed minute.
func (c *Collector) RecordTick() {
	atomic.AddInt64(&c.TickCount, 1)
}

// RecordArrival records a patient entering the admission queue.
func (c *Collector) RecordArrival() {
	atomic.AddInt64(&c.Arrivals, 1)
}

// RecordDispatch records a dispatch and whether its area accepted the patient.
func (c *Collector) RecordDispatch(admitted bool) {
	atomic.AddInt64(&c.Dispatches, 1)
	if !admitted {
		atomic.AddInt64(&c.AdmissionsDropped, 1)
	}
}

// RecordReassignment records a category change.
func (c *Collector) RecordReassignment() {
	atomic.AddInt64(&c.Reassignments, 1)
}

// RecordSLABreach records a dispatch past its category threshold.
func (c *Collector) RecordSLABreach() {
	atomic.AddInt64(&c.SLABreaches, 1)
}

// ObserveArea keeps the high-water mark of an area's occupancy.
func (c *Collector) ObserveArea(name string, occupants int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if int64(occupants) > c.areaPeak[name] {
		c.areaPeak[name] = int64(occupants)
	}
}

// AreaPeak returns the highest occupancy seen for name.
func (c *Collector) AreaPeak(name string) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.areaPeak[name]
}

// areaPeaks copies the high-water marks under the lock.
func (c *Collector) areaPeaks() map[string]int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	peaks := make(map[string]int64, len(c.areaPeak))
	for k, v := range c.areaPeak {
		peaks[k] = v
	}
	return peaks
}

// RecordRun records how long the simulation loop took in wall time.
func (c *Collector) RecordRun(latency time.Duration) {
	c.RunLatency = latency
}

// Snapshot returns current metrics as a map.
func (c *Collector) Snapshot() map[string]interface{} {
	peaks := c.areaPeaks()

	return map[string]interface{}{
		"uptime_seconds": time.Since(c.StartTime).Seconds(),

		"clock": map[string]interface{}{
			"ticks":          atomic.LoadInt64(&c.TickCount),
			"run_latency_ms": float64(c.RunLatency) / 1e6,
		},

		"desk": map[string]interface{}{
			"arrivals":           atomic.LoadInt64(&c.Arrivals),
			"dispatches":         atomic.LoadInt64(&c.Dispatches),
			"admissions_dropped": atomic.LoadInt64(&c.AdmissionsDropped),
			"reassignments":      atomic.LoadInt64(&c.Reassignments),
			"sla_breaches":       atomic.LoadInt64(&c.SLABreaches),
		},

		"area_peak": peaks,
	}
}

// WriteText writes the metrics in Prometheus text format.
func (c *Collector) WriteText(w io.Writer) error {
	counters := []struct {
		name, help string
		value      int64
	}{
		{"triage_ticks_total", "Simulated minutes processed", atomic.LoadInt64(&c.TickCount)},
		{"triage_arrivals_total", "Patients registered at the desk", atomic.LoadInt64(&c.Arrivals)},
		{"triage_dispatches_total", "Patients dispatched to an area", atomic.LoadInt64(&c.Dispatches)},
		{"triage_admissions_dropped_total", "Dispatches dropped by a saturated area", atomic.LoadInt64(&c.AdmissionsDropped)},
		{"triage_reassignments_total", "Category reassignments", atomic.LoadInt64(&c.Reassignments)},
		{"triage_sla_breaches_total", "Dispatches past the category wait limit", atomic.LoadInt64(&c.SLABreaches)},
	}

	for _, m := range counters {
		if _, err := fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s counter\n%s %d\n\n", m.name, m.help, m.name, m.name, m.value); err != nil {
			return err
		}
	}

	peaks := c.areaPeaks()
	names := make([]string, 0, len(peaks))
	for name := range peaks {
		names = append(names, name)
	}
	sort.Strings(names)

	if _, err := fmt.Fprintf(w, "# HELP triage_area_peak_occupancy Highest occupancy per area\n# TYPE triage_area_peak_occupancy gauge\n"); err != nil {
		return err
	}
	for _, name := range names {
		if _, err := fmt.Fprintf(w, "triage_area_peak_occupancy{area=%q} %d\n", name, peaks[name]); err != nil {
			return err
		}
	}
	return nil
}
