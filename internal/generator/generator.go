// Package generator produces the synthetic patient population for a simulated day.
package generator

import (
	"fmt"
	"math/rand/v2"

	"github.com/xavieroyarzun/triage-sim/internal/domain/patient"
)

// ArrivalSpacing is the gap, in seconds, between consecutive generated arrivals.
const ArrivalSpacing = 600

var names = []string{"Juan", "Maria", "Pedro", "Ana", "Luis", "Laura", "Carlos", "Sofia", "David", "Javiera", "Nicolas", "Esteban", "Millaray", "Martin", "Balatro"}

var surnames = []string{"Garcia", "Rodriguez", "Gonzalez", "Fernandez", "Lopez", "Martinez", "Sanchez", "Perez", "Fuentes", "Castro", "Balatrez", "Cuevas", "Cifuentes"}

// categoryCumulative holds the upper bound (exclusive, out of 100) of each
// category's share: 10% C1, 15% C2, 18% C3, 27% C4, 30% C5.
var categoryCumulative = [...]int{10, 25, 43, 70, 100}

// Generator creates patients with monotonically increasing ids.
// The id counter belongs to the instance, so two generators never share it.
type Generator struct {
	rng    *rand.Rand
	nextID int
}

// New creates a generator seeded for reproducible populations.
func New(seed int64) *Generator {
	return NewWithRand(rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)))
}

// NewWithRand creates a generator drawing from rng.
func NewWithRand(rng *rand.Rand) *Generator {
	return &Generator{rng: rng, nextID: 1}
}

// Generate returns count patients arriving ArrivalSpacing seconds apart from start.
func (g *Generator) Generate(count int, start int64) []*patient.Patient {
	out := make([]*patient.Patient, 0, max(count, 0))
	for i := 0; i < count; i++ {
		name := names[g.rng.IntN(len(names))]
		surname := surnames[g.rng.IntN(len(surnames))]
		id := fmt.Sprintf("id-%d", g.nextID)
		g.nextID++
		arrival := start + int64(i)*ArrivalSpacing

		out = append(out, patient.New(name, surname, id, g.category(), arrival))
	}
	return out
}

func (g *Generator) category() patient.Category {
	roll := g.rng.IntN(100)
	for i, bound := range categoryCumulative {
		if roll < bound {
			return patient.Category(i + 1)
		}
	}
	return patient.MaxCategory
}
