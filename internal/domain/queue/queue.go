// Package queue provides the patient priority queue shared by the admission
// desk and the treatment areas. Ordering is always rules.Less.
package queue

import (
	"container/heap"
	"sort"

	"github.com/xavieroyarzun/triage-sim/internal/domain/patient"
	"github.com/xavieroyarzun/triage-sim/internal/domain/rules"
)

// patientHeap implements heap.Interface ordered by rules.Less.
type patientHeap []*patient.Patient

func (h patientHeap) Len() int           { return len(h) }
func (h patientHeap) Less(i, j int) bool { return rules.Less(h[i], h[j]) }
func (h patientHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *patientHeap) Push(x any) {
	*h = append(*h, x.(*patient.Patient))
}

func (h *patientHeap) Pop() any {
	old := *h
	n := len(old)
	p := old[n-1]
	old[n-1] = nil // avoid memory leak
	*h = old[:n-1]
	return p
}

// PatientQueue is a min-heap of patients. The zero value is not usable; call New.
type PatientQueue struct {
	items patientHeap
}

// New creates an empty queue.
func New() *PatientQueue {
	q := &PatientQueue{items: make(patientHeap, 0)}
	heap.Init(&q.items)
	return q
}

// Push inserts p in O(log n).
func (q *PatientQueue) Push(p *patient.Patient) {
	heap.Push(&q.items, p)
}

// Pop removes and returns the highest priority patient, or nil if empty.
func (q *PatientQueue) Pop() *patient.Patient {
	if q.items.Len() == 0 {
		return nil
	}
	return heap.Pop(&q.items).(*patient.Patient)
}

// Peek returns the highest priority patient without removing it.
func (q *PatientQueue) Peek() *patient.Patient {
	if q.items.Len() == 0 {
		return nil
	}
	return q.items[0]
}

func (q *PatientQueue) Len() int {
	return q.items.Len()
}

// RemoveID drops every entry whose ID is id and returns how many were removed.
// Priority cannot be lowered in place, so callers re-Push after a category change.
func (q *PatientQueue) RemoveID(id string) int {
	kept := q.items[:0]
	removed := 0
	for _, p := range q.items {
		if p.ID() == id {
			removed++
			continue
		}
		kept = append(kept, p)
	}
	for i := len(kept); i < len(q.items); i++ {
		q.items[i] = nil
	}
	q.items = kept
	if removed > 0 {
		heap.Init(&q.items)
	}
	return removed
}

// Count returns how many entries carry id.
func (q *PatientQueue) Count(id string) int {
	n := 0
	for _, p := range q.items {
		if p.ID() == id {
			n++
		}
	}
	return n
}

// Items returns the entries in heap order. The slice is a copy.
func (q *PatientQueue) Items() []*patient.Patient {
	out := make([]*patient.Patient, len(q.items))
	copy(out, q.items)
	return out
}

// Sorted returns the entries fully ordered by rules.Less without draining the queue.
func (q *PatientQueue) Sorted() []*patient.Patient {
	out := q.Items()
	sort.SliceStable(out, func(i, j int) bool { return rules.Less(out[i], out[j]) })
	return out
}
