// Package rules contains the pure calculation logic for triage decisions.
// This package is PURE and must NOT import any infrastructure packages.
package rules

import "github.com/xavieroyarzun/triage-sim/internal/domain/patient"

// Less is the single triage ordering rule shared by the admission queue and
// every area pool: lower category first, then earlier arrival.
func Less(a, b *patient.Patient) bool {
	if a.Category() != b.Category() {
		return a.Category() < b.Category()
	}
	return a.ArrivalTime() < b.ArrivalTime()
}
