package patient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPatientDefaults(t *testing.T) {
	p := New("Juan", "Perez", "id-001", 1, 1_000)

	assert.Equal(t, "id-001", p.ID())
	assert.Equal(t, "Juan", p.Name())
	assert.Equal(t, "Perez", p.Surname())
	assert.Equal(t, Category(1), p.Category())
	assert.Equal(t, int64(1_000), p.ArrivalTime())
	assert.Equal(t, StatusWaiting, p.Status())
	assert.Equal(t, AreaAdultEmergency, p.Area())
	assert.Equal(t, 0, p.History().Len())
}

func TestAreaFollowsCategory(t *testing.T) {
	tests := []struct {
		category Category
		area     string
	}{
		{1, AreaAdultEmergency},
		{2, AreaAdultEmergency},
		{3, AreaUrgentCare},
		{4, AreaUrgentCare},
		{5, AreaPediatric},
	}

	for _, tt := range tests {
		p := New("A", "B", "id", tt.category, 0)
		assert.Equal(t, tt.area, p.Area(), "category %d", tt.category)
		assert.Equal(t, tt.area, AreaFor(tt.category))
	}

	p := New("A", "B", "id", 5, 0)
	p.SetCategory(2)
	assert.Equal(t, AreaAdultEmergency, p.Area())
	p.SetCategory(4)
	assert.Equal(t, AreaUrgentCare, p.Area())
}

func TestWaitMinutes(t *testing.T) {
	p := New("A", "B", "id", 3, 1_000)

	assert.Equal(t, int64(0), p.WaitMinutes(1_000))
	assert.Equal(t, int64(0), p.WaitMinutes(1_059))
	assert.Equal(t, int64(1), p.WaitMinutes(1_060))
	assert.Equal(t, int64(181), p.WaitMinutes(1_000+181*60))
	// Truncation toward zero for a "now" before arrival.
	assert.Equal(t, int64(0), p.WaitMinutes(990))
	assert.Equal(t, int64(-1), p.WaitMinutes(1_000-90))
}

func TestChangeHistoryIsLIFO(t *testing.T) {
	p := New("A", "B", "id", 3, 0)

	_, ok := p.PopLastChange()
	require.False(t, ok)

	p.RecordChange("first")
	p.RecordChange("second")

	last, ok := p.LastChange()
	require.True(t, ok)
	assert.Equal(t, "second", last)

	got, ok := p.PopLastChange()
	require.True(t, ok)
	assert.Equal(t, "second", got)

	got, ok = p.PopLastChange()
	require.True(t, ok)
	assert.Equal(t, "first", got)

	got, ok = p.PopLastChange()
	assert.False(t, ok)
	assert.Empty(t, got)
}

func TestSnapshotCopiesState(t *testing.T) {
	p := New("Maria", "Gomez", "id-002", 3, 42)
	p.SetStatus(StatusInTreatment)

	snap := p.Snapshot()
	assert.Equal(t, Snapshot{
		ID:          "id-002",
		Name:        "Maria",
		Surname:     "Gomez",
		Category:    3,
		ArrivalTime: 42,
		Status:      StatusInTreatment,
		Area:        AreaUrgentCare,
	}, snap)

	assert.Contains(t, p.String(), "id: id-002")
	assert.Contains(t, p.String(), "area: urgent-care clinic")
}

func TestCategoryValid(t *testing.T) {
	assert.False(t, Category(0).Valid())
	assert.True(t, Category(1).Valid())
	assert.True(t, Category(5).Valid())
	assert.False(t, Category(6).Valid())
}

func TestReissueCopiesIdentityAndHistory(t *testing.T) {
	p := New("Pedro", "Lopez", "id-003", 4, 500)
	p.SetStatus(StatusInTreatment)
	p.RecordChange("triaged")

	fresh := p.Reissue(1)
	assert.Equal(t, "id-003", fresh.ID())
	assert.Equal(t, int64(500), fresh.ArrivalTime())
	assert.Equal(t, StatusWaiting, fresh.Status())
	assert.Equal(t, AreaAdultEmergency, fresh.Area())
	assert.Equal(t, 1, fresh.History().Len())

	fresh.RecordChange("category changed from 4 to 1")
	assert.Equal(t, 1, p.History().Len(), "histories are independent")
	assert.Equal(t, Category(4), p.Category())
	assert.Equal(t, AreaUrgentCare, p.Area())
	assert.Equal(t, StatusInTreatment, p.Status())
}
