package rules

import "github.com/xavieroyarzun/triage-sim/internal/domain/patient"

// maxWaitMinutes is the longest wait tolerated per category before a dispatch
// counts as an SLA breach. Category 5 has no limit.
var maxWaitMinutes = map[patient.Category]int64{
	1: 0,
	2: 30,
	3: 90,
	4: 180,
}

// MaxWait returns the SLA threshold in minutes for c. ok is false when the
// category is never flagged.
func MaxWait(c patient.Category) (minutes int64, ok bool) {
	minutes, ok = maxWaitMinutes[c]
	return minutes, ok
}

// ExceedsSLA reports whether a dispatch after waitMinutes breaches the limit
// for c. The comparison is strict: a category 4 patient at exactly 180
// minutes is on time. Category 1 tolerates no waiting at all.
func ExceedsSLA(c patient.Category, waitMinutes int64) bool {
	limit, ok := maxWaitMinutes[c]
	if !ok {
		return false
	}
	return waitMinutes > limit
}
