// Package label defines the DP state carried along a partial schedule and
// the dominance relation over labels that share a (time, activity) cell.
package label

import "github.com/charlotteesavage/ev-scheduling-dp/internal/domain"

// Label is one DP state: an activity occupancy in progress (or just
// finished), plus the cumulative SoC/cost/utility/elementarity-memory
// state required to extend it further.
type Label struct {
	ActID int

	Time      int
	StartTime int
	Duration  int

	SoCAtActivityStart float64
	CurrentSoC         float64
	DeltaSoC           float64

	ChargeDuration int
	ChargeCost     float64

	Utility float64

	Mem domain.GroupMask

	// LastChargeMode is the mode applied during the most recent interval
	// of charging at the current activity; used by the feasibility
	// predicate's no-mid-activity-charge-mode-switch rule.
	LastChargeMode domain.ChargeMode

	Previous *Label
}

// Root builds the DAWN label a DP sweep starts from, occupying DAWN for
// its minimum duration before the first transition is considered.
func Root(dawn domain.Activity, initialSoC float64) *Label {
	return &Label{
		ActID:              dawn.ID,
		Time:               dawn.MinDuration,
		StartTime:          0,
		Duration:           dawn.MinDuration,
		SoCAtActivityStart: initialSoC,
		CurrentSoC:         initialSoC,
		Mem:                domain.GroupMask(0),
		Previous:           nil,
	}
}

// Dominates reports whether l1 renders l2 permanently unusable. Both are
// assumed to sit at the same (time, activity) cell — the caller guarantees
// this by only ever comparing labels within one bucket cell. l1 dominates
// l2 only if l1.Utility >= l2.Utility, l2.Mem is a subset of l1.Mem, and
// l1.Time <= l2.Time. This is a partial order: none of the three checks
// may be dropped or merged into a single scalar comparison, or labels that
// are genuinely incomparable (better utility but worse memory, say) would
// wrongly prune one another.
func Dominates(l1, l2 *Label) bool {
	if l1.Utility < l2.Utility {
		return false
	}
	if !l1.Mem.IsSuperset(l2.Mem) {
		return false
	}
	if l1.Time > l2.Time {
		return false
	}
	return true
}
