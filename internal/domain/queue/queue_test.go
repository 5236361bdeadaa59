package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavieroyarzun/triage-sim/internal/domain/patient"
)

func TestPopReturnsMinimum(t *testing.T) {
	q := New()
	require.Nil(t, q.Pop())
	require.Nil(t, q.Peek())

	q.Push(patient.New("c", "c", "c", 5, 100))
	q.Push(patient.New("b", "b", "b", 3, 300))
	q.Push(patient.New("a2", "a", "a2", 1, 200))
	q.Push(patient.New("a1", "a", "a1", 1, 100))

	require.Equal(t, 4, q.Len())
	assert.Equal(t, "a1", q.Peek().ID())

	var order []string
	for p := q.Pop(); p != nil; p = q.Pop() {
		order = append(order, p.ID())
	}
	assert.Equal(t, []string{"a1", "a2", "b", "c"}, order)
	assert.Equal(t, 0, q.Len())
}

func TestRemoveIDDropsAllEntries(t *testing.T) {
	q := New()
	dup := patient.New("d", "d", "dup", 2, 10)
	q.Push(dup)
	q.Push(dup)
	q.Push(patient.New("x", "x", "x", 3, 5))
	q.Push(patient.New("y", "y", "y", 1, 50))

	require.Equal(t, 2, q.Count("dup"))
	assert.Equal(t, 2, q.RemoveID("dup"))
	assert.Equal(t, 0, q.Count("dup"))
	assert.Equal(t, 2, q.Len())
	assert.Equal(t, 0, q.RemoveID("missing"))

	assert.Equal(t, "y", q.Pop().ID())
	assert.Equal(t, "x", q.Pop().ID())
}

func TestSortedDoesNotDrain(t *testing.T) {
	q := New()
	q.Push(patient.New("b", "b", "b", 4, 1))
	q.Push(patient.New("a", "a", "a", 2, 9))
	q.Push(patient.New("c", "c", "c", 4, 0))

	sorted := q.Sorted()
	ids := make([]string, 0, len(sorted))
	for _, p := range sorted {
		ids = append(ids, p.ID())
	}
	assert.Equal(t, []string{"a", "c", "b"}, ids)
	assert.Equal(t, 3, q.Len())
}
