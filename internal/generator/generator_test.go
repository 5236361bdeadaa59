package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavieroyarzun/triage-sim/internal/domain/patient"
)

func TestGenerateShape(t *testing.T) {
	g := New(42)
	const start int64 = 1_000_000

	ps := g.Generate(5, start)
	require.Len(t, ps, 5)

	for i, p := range ps {
		assert.Equal(t, start+int64(i)*ArrivalSpacing, p.ArrivalTime())
		assert.True(t, p.Category().Valid())
		assert.Equal(t, patient.StatusWaiting, p.Status())
		assert.Contains(t, names, p.Name())
		assert.Contains(t, surnames, p.Surname())
	}
	assert.Equal(t, "id-1", ps[0].ID())
	assert.Equal(t, "id-5", ps[4].ID())
}

func TestIDsContinueAcrossCallsButNotAcrossGenerators(t *testing.T) {
	g := New(1)
	g.Generate(3, 0)
	next := g.Generate(2, 0)
	assert.Equal(t, "id-4", next[0].ID())
	assert.Equal(t, "id-5", next[1].ID())

	other := New(1)
	assert.Equal(t, "id-1", other.Generate(1, 0)[0].ID())
}

func TestSameSeedSamePopulation(t *testing.T) {
	a := New(7).Generate(50, 0)
	b := New(7).Generate(50, 0)
	for i := range a {
		assert.Equal(t, a[i].Snapshot(), b[i].Snapshot())
	}
}

func TestZeroAndNegativeCount(t *testing.T) {
	g := New(3)
	assert.Empty(t, g.Generate(0, 0))
	assert.Empty(t, g.Generate(-4, 0))
}

func TestCategoryDistribution(t *testing.T) {
	g := New(2024)
	const n = 100_000
	counts := map[patient.Category]int{}
	for _, p := range g.Generate(n, 0) {
		counts[p.Category()]++
	}

	want := map[patient.Category]float64{1: 0.10, 2: 0.15, 3: 0.18, 4: 0.27, 5: 0.30}
	for c, share := range want {
		assert.InDelta(t, share, float64(counts[c])/n, 0.01, "category %d", c)
	}
}
