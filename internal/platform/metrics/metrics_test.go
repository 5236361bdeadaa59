package metrics

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountersAndSnapshot(t *testing.T) {
	c := NewCollector()
	c.RecordTick()
	c.RecordTick()
	c.RecordArrival()
	c.RecordDispatch(true)
	c.RecordDispatch(false)
	c.RecordReassignment()
	c.RecordSLABreach()
	c.ObserveArea("pediatric", 3)
	c.ObserveArea("pediatric", 1)

	assert.Equal(t, int64(2), c.TickCount)
	assert.Equal(t, int64(2), c.Dispatches)
	assert.Equal(t, int64(1), c.AdmissionsDropped)
	assert.Equal(t, int64(3), c.AreaPeak("pediatric"))

	snap := c.Snapshot()
	desk, ok := snap["desk"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, int64(1), desk["arrivals"])
	assert.Equal(t, int64(1), desk["sla_breaches"])
}

func TestWriteText(t *testing.T) {
	c := NewCollector()
	c.RecordArrival()
	c.ObserveArea("urgent-care clinic", 2)

	var buf bytes.Buffer
	require.NoError(t, c.WriteText(&buf))

	out := buf.String()
	assert.Contains(t, out, "triage_arrivals_total 1")
	assert.Contains(t, out, "# TYPE triage_dispatches_total counter")
	assert.Contains(t, out, `triage_area_peak_occupancy{area="urgent-care clinic"} 2`)
}

func TestObserveAreaConcurrently(t *testing.T) {
	c := NewCollector()

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			c.ObserveArea("adult emergency", n)
			c.RecordDispatch(true)
			_ = c.AreaPeak("adult emergency")
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(50), c.AreaPeak("adult emergency"))
	assert.Equal(t, int64(50), c.Dispatches)

	var buf bytes.Buffer
	require.NoError(t, c.WriteText(&buf))
	assert.Contains(t, buf.String(), `triage_area_peak_occupancy{area="adult emergency"} 50`)
}
