package engine

import (
	"github.com/charlotteesavage/ev-scheduling-dp/internal/domain"
	"github.com/charlotteesavage/ev-scheduling-dp/internal/geo"
	"github.com/charlotteesavage/ev-scheduling-dp/internal/label"
	"github.com/charlotteesavage/ev-scheduling-dp/internal/tariff"
)

// feasible runs every constraint check before extending l with activity a.
func (s *Solver) feasible(l *label.Label, a domain.Activity) bool {
	if l == nil {
		return false
	}
	if l.ActID != 0 && a.ID == 0 {
		return false
	}

	if a.ID == l.ActID {
		return s.feasibleStay(l, a)
	}
	return s.feasibleTransition(l, a)
}

// feasibleStay checks staying one more interval at the current activity.
func (s *Solver) feasibleStay(l *label.Label, a domain.Activity) bool {
	if l.Duration+1 > a.MaxDuration {
		return false
	}
	// A stay advances time by W; it must not run past the last interval.
	if l.Time+s.params.IntervalMinutes > s.params.Horizon-1 {
		return false
	}
	if a.IsServiceStation && !a.IsCharging {
		return false
	}
	if a.IsCharging {
		if a.ChargeMode == domain.ChargeNone {
			return false
		}
		if l.LastChargeMode != a.ChargeMode {
			return false
		}
		rate, _, err := tariff.RateAndPrice(a, s.params.Battery.CapacityKWh, s.params.IntervalMinutes, s.params.Charger)
		if err != nil {
			return false
		}
		if l.CurrentSoC+rate > 1 {
			return false
		}
	}
	return true
}

// feasibleTransition checks leaving l.ActID for a.
func (s *Solver) feasibleTransition(l *label.Label, a domain.Activity) bool {
	fromAct := s.activities.Activities[l.ActID]
	dusk := s.activities.Dusk()

	if l.Previous != nil && l.Previous.ActID == a.ID {
		return false
	}
	if l.ActID == s.activities.N()-1 {
		return false
	}
	if l.Duration < fromAct.MinDuration {
		return false
	}

	tt := s.travelTime(fromAct, a)
	arrival := l.Time + tt
	backToDusk := s.travelTime(a, dusk)
	if arrival+a.MinDuration+backToDusk >= s.params.Horizon-1 {
		return false
	}
	if arrival < a.EarliestStart || arrival > a.LatestStart {
		return false
	}
	if a.Group != 0 && l.Mem.Has(a.Group) {
		return false
	}

	consumed := geo.EnergyConsumedSoC(geo.Distance(fromAct.X, fromAct.Y, a.X, a.Y), s.params.Battery.ConsumptionKWhPerKm, s.params.Battery.CapacityKWh)
	if l.CurrentSoC-consumed < 0 {
		return false
	}
	if a.IsServiceStation && !a.IsCharging {
		return false
	}
	if a.IsCharging && a.ChargeMode == domain.ChargeNone {
		return false
	}
	return true
}

func (s *Solver) travelTime(from, to domain.Activity) int {
	d := geo.Distance(from.X, from.Y, to.X, to.Y)
	return geo.TravelTimeIntervals(d, s.params.SpeedMetersPerMinute, s.params.IntervalMinutes)
}
