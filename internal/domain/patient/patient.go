// Package patient defines the core domain entity for a patient waiting at triage.
// This package is PURE and must NOT import any infrastructure packages (engine, events, platform).
package patient

import "fmt"

// Category is the acuity category assigned at triage: 1 is the most urgent, 5 the least.
type Category int

const (
	MinCategory Category = 1
	MaxCategory Category = 5
)

// Valid reports whether c is inside 1..5.
func (c Category) Valid() bool {
	return c >= MinCategory && c <= MaxCategory
}

// Status is the lifecycle state of a patient.
type Status string

const (
	StatusWaiting     Status = "waiting"
	StatusInTreatment Status = "in_treatment"
)

// Treatment area names. A patient's area is always derived from its category.
const (
	AreaAdultEmergency = "adult emergency"
	AreaUrgentCare     = "urgent-care clinic"
	AreaPediatric      = "pediatric"
)

// AreaFor maps a category to the area that treats it.
func AreaFor(c Category) string {
	switch c {
	case 1, 2:
		return AreaAdultEmergency
	case 3, 4:
		return AreaUrgentCare
	default:
		return AreaPediatric
	}
}

// Patient represents one arrival at the emergency room.
// ID, names and arrival time never change after New.
type Patient struct {
	id          string
	name        string
	surname     string
	category    Category
	arrivalTime int64 // seconds since epoch
	status      Status
	area        string
	history     ChangeLog
}

// New creates a waiting patient. The category is not validated.
func New(name, surname, id string, category Category, arrivalTime int64) *Patient {
	p := &Patient{
		id:          id,
		name:        name,
		surname:     surname,
		arrivalTime: arrivalTime,
		status:      StatusWaiting,
	}
	p.SetCategory(category)
	return p
}

func (p *Patient) ID() string          { return p.id }
func (p *Patient) Name() string        { return p.name }
func (p *Patient) Surname() string     { return p.surname }
func (p *Patient) Category() Category  { return p.category }
func (p *Patient) ArrivalTime() int64  { return p.arrivalTime }
func (p *Patient) Status() Status      { return p.status }
func (p *Patient) Area() string        { return p.area }
func (p *Patient) History() *ChangeLog { return &p.history }

// SetStatus moves the patient through its lifecycle.
func (p *Patient) SetStatus(s Status) {
	p.status = s
}

// SetCategory changes the category and recomputes the area in the same step.
// Outside the triage registry use Hospital.ReassignCategory instead, which
// also keeps the admission queue ordered.
func (p *Patient) SetCategory(c Category) {
	p.category = c
	p.area = AreaFor(c)
}

// Reissue returns a new waiting record for the same person with category c.
// Identity, arrival time and change history carry over; p itself is untouched,
// so a copy sitting in a treatment area keeps its place there.
func (p *Patient) Reissue(c Category) *Patient {
	fresh := New(p.name, p.surname, p.id, c, p.arrivalTime)
	fresh.history = p.history.clone()
	return fresh
}

// WaitMinutes returns whole minutes elapsed between arrival and now.
// now is supplied by the caller; the division truncates toward zero.
func (p *Patient) WaitMinutes(now int64) int64 {
	return (now - p.arrivalTime) / 60
}

// RecordChange pushes a human-readable description onto the change history.
func (p *Patient) RecordChange(description string) {
	p.history.Push(description)
}

// PopLastChange removes and returns the most recent change.
// ok is false when the history is empty.
func (p *Patient) PopLastChange() (description string, ok bool) {
	return p.history.Pop()
}

// LastChange returns the most recent change without removing it.
func (p *Patient) LastChange() (description string, ok bool) {
	return p.history.Peek()
}

// Snapshot is a flat, serialisable view of a patient.
type Snapshot struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Surname     string   `json:"surname"`
	Category    Category `json:"category"`
	ArrivalTime int64    `json:"arrival_time"`
	Status      Status   `json:"status"`
	Area        string   `json:"area"`
}

// Snapshot copies the current state of p.
func (p *Patient) Snapshot() Snapshot {
	return Snapshot{
		ID:          p.id,
		Name:        p.name,
		Surname:     p.surname,
		Category:    p.category,
		ArrivalTime: p.arrivalTime,
		Status:      p.status,
		Area:        p.area,
	}
}

func (p *Patient) String() string {
	return fmt.Sprintf("Patient: name: %s, surname: %s, id: %s, category: %d, arrivalTime: %d, status: %s, area: %s",
		p.name, p.surname, p.id, p.category, p.arrivalTime, p.status, p.area)
}
