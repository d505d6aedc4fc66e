// Package domain defines the static data model consumed by the scheduling
// engine: activities, charge modes, and the global parameters/coefficients
// a solve is configured with.
package domain

import "fmt"

// ChargeMode is the charger speed an activity offers, if any.
type ChargeMode string

const (
	ChargeNone  ChargeMode = "none"
	ChargeSlow  ChargeMode = "slow"
	ChargeFast  ChargeMode = "fast"
	ChargeRapid ChargeMode = "rapid"
)

func (m ChargeMode) Valid() bool {
	switch m {
	case ChargeNone, ChargeSlow, ChargeFast, ChargeRapid:
		return true
	}
	return false
}

// NumGroups bounds the number of distinct activity-type tags a solve may
// use. Group 0 is reserved for home/DAWN/DUSK and is exempt from
// elementarity. Groups are dense indices in [0, NumGroups), which also
// bounds the ASC/early/late/long/short coefficient arrays.
const NumGroups = 9

// Activity is an immutable candidate activity instance. id=0 is DAWN
// (forced first); id=N-1 is DUSK (forced last).
type Activity struct {
	ID    int
	X, Y  float64
	Group int

	EarliestStart int
	LatestStart   int
	MinDuration   int
	MaxDuration   int

	DesStartTime int
	DesDuration  int

	ChargeMode       ChargeMode
	IsCharging       bool
	IsServiceStation bool

	// Memory is the DSSR-accumulated set of forbidden group tags. It is
	// mutated only between DP sweeps (see internal/engine's DSSR loop),
	// never during one, and is cleared at the start of a fresh solve.
	Memory GroupMask
}

// GroupMask is a fixed-width bitset over group tags: cheaper to copy and
// compare than a linked list of forbidden groups, and NumGroups comfortably
// fits in a uint64.
type GroupMask uint64

func (m GroupMask) Has(group int) bool     { return m&(1<<uint(group)) != 0 }
func (m GroupMask) With(group int) GroupMask { return m | (1 << uint(group)) }
func (m GroupMask) Union(other GroupMask) GroupMask { return m | other }

// IsSuperset reports whether m contains every group in other.
func (m GroupMask) IsSuperset(other GroupMask) bool { return m&other == other }

// Validate checks the per-activity invariants (duration/window ordering,
// the service-station/charging implication). It does not check
// dataset-wide properties (id density, DAWN/DUSK placement); see
// ActivitySet.Validate for those.
func (a Activity) Validate() error {
	if a.Group < 0 || a.Group >= NumGroups {
		return fmt.Errorf("activity %d: group %d out of range [0,%d)", a.ID, a.Group, NumGroups)
	}
	if a.EarliestStart > a.LatestStart {
		return fmt.Errorf("activity %d: earliest_start %d > latest_start %d", a.ID, a.EarliestStart, a.LatestStart)
	}
	if a.MinDuration <= 0 {
		return fmt.Errorf("activity %d: min_duration must be > 0", a.ID)
	}
	if a.MinDuration > a.MaxDuration {
		return fmt.Errorf("activity %d: min_duration %d > max_duration %d", a.ID, a.MinDuration, a.MaxDuration)
	}
	if a.IsServiceStation && (!a.IsCharging || a.ChargeMode == ChargeNone) {
		return fmt.Errorf("activity %d: is_service_station requires is_charging and a charge_mode", a.ID)
	}
	if a.IsCharging && !a.ChargeMode.Valid() {
		return fmt.Errorf("activity %d: is_charging requires a valid charge_mode", a.ID)
	}
	if !a.IsCharging && a.ChargeMode != "" && a.ChargeMode != ChargeNone {
		return fmt.Errorf("activity %d: charge_mode set without is_charging", a.ID)
	}
	return nil
}

// ActivitySet is the dense, validated activity vector a solve runs over.
type ActivitySet struct {
	Activities []Activity
}

// Dawn returns the forced-first activity (id 0).
func (s ActivitySet) Dawn() Activity { return s.Activities[0] }

// Dusk returns the forced-last activity (id N-1).
func (s ActivitySet) Dusk() Activity { return s.Activities[len(s.Activities)-1] }

// N is the number of activities, including DAWN and DUSK.
func (s ActivitySet) N() int { return len(s.Activities) }

// Validate checks dataset-wide invariants: dense ids, DAWN/DUSK placement,
// and per-activity validity.
func (s ActivitySet) Validate() error {
	n := len(s.Activities)
	if n < 2 {
		return fmt.Errorf("activity set must contain at least DAWN and DUSK (got %d)", n)
	}
	for i, a := range s.Activities {
		if a.ID != i {
			return fmt.Errorf("activity at index %d has id %d, expected dense id", i, a.ID)
		}
		if err := a.Validate(); err != nil {
			return err
		}
	}
	if s.Activities[0].Group != 0 {
		return fmt.Errorf("DAWN (id 0) must be in group 0")
	}
	if s.Activities[n-1].Group != 0 {
		return fmt.Errorf("DUSK (id %d) must be in group 0", n-1)
	}
	return nil
}

// ResetMemory clears every activity's DSSR memory in place. Called at the
// top of a fresh solve so elementarity state from a previous solve never
// leaks into the next one.
func (s ActivitySet) ResetMemory() {
	for i := range s.Activities {
		s.Activities[i].Memory = 0
	}
}
