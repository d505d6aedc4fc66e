package engine

import (
	"math"

	"github.com/charlotteesavage/ev-scheduling-dp/internal/domain"
	"github.com/charlotteesavage/ev-scheduling-dp/internal/geo"
	"github.com/charlotteesavage/ev-scheduling-dp/internal/label"
	"github.com/charlotteesavage/ev-scheduling-dp/internal/tariff"
)

// workGroup is the activity-type tag reserved for work activities; home
// is always group 0. Every other non-zero group counts as non-work for
// the gamma-term selection in transitionUtilityDelta.
const workGroup = 6

// extend produces the successor label in state (t', a).
func (s *Solver) extend(l *label.Label, a domain.Activity) *label.Label {
	if a.ID == l.ActID {
		return s.extendStay(l, a)
	}
	return s.extendTransition(l, a)
}

func (s *Solver) extendStay(l *label.Label, a domain.Activity) *label.Label {
	w := s.params.IntervalMinutes
	next := &label.Label{
		ActID:              l.ActID,
		Time:               l.Time + w,
		StartTime:          l.StartTime,
		Duration:           l.Duration + w,
		SoCAtActivityStart: l.SoCAtActivityStart,
		CurrentSoC:         l.CurrentSoC,
		ChargeDuration:     l.ChargeDuration,
		ChargeCost:         l.ChargeCost,
		Utility:            l.Utility,
		Mem:                l.Mem,
		LastChargeMode:     l.LastChargeMode,
		Previous:           l,
	}
	if a.IsCharging && l.CurrentSoC < 1 {
		s.applyChargeStep(next, a, l.Time)
	}
	return next
}

func (s *Solver) extendTransition(l *label.Label, a domain.Activity) *label.Label {
	fromAct := s.activities.Activities[l.ActID]
	n := s.activities.N()

	tt := s.travelTime(fromAct, a)
	startTime := l.Time + tt

	next := &label.Label{
		ActID:     a.ID,
		StartTime: startTime,
		Mem:       l.Mem.With(a.Group).Union(a.Memory),
		Previous:  l,
	}
	if a.ID == n-1 {
		next.Time = s.params.Horizon - 1
		next.Duration = next.Time - startTime
	} else {
		next.Duration = a.MinDuration
		next.Time = startTime + next.Duration
	}

	consumed := geo.EnergyConsumedSoC(geo.Distance(fromAct.X, fromAct.Y, a.X, a.Y), s.params.Battery.ConsumptionKWhPerKm, s.params.Battery.CapacityKWh)
	next.SoCAtActivityStart = l.CurrentSoC - consumed
	next.CurrentSoC = next.SoCAtActivityStart
	next.ChargeCost = l.ChargeCost
	next.ChargeDuration = 0

	if a.IsCharging {
		s.applyChargeStep(next, a, startTime)
	}

	next.Utility = l.Utility + s.transitionUtilityDelta(l, fromAct, a, tt, startTime)
	return next
}

// applyChargeStep applies one interval of charging at a.ChargeMode to
// next, at wall-clock interval tNow.
func (s *Solver) applyChargeStep(next *label.Label, a domain.Activity, tNow int) {
	rate, price, err := tariff.RateAndPrice(a, s.params.Battery.CapacityKWh, s.params.IntervalMinutes, s.params.Charger)
	if err != nil {
		return
	}
	delta := math.Min(1-next.CurrentSoC, rate)
	next.CurrentSoC += delta
	next.DeltaSoC = delta
	next.ChargeDuration += s.params.IntervalMinutes
	factor := tariff.Factor(tNow, s.params.IntervalMinutes, s.params.Tariff)
	next.ChargeCost += price * factor * delta * s.params.Battery.CapacityKWh
	next.LastChargeMode = a.ChargeMode
}

// transitionUtilityDelta computes the utility contribution of a transition
// into a after finishing previous activity p, where p is the activity
// l.ActID occupied (the just-finished one) and l is the label ending it.
func (s *Solver) transitionUtilityDelta(l *label.Label, p, a domain.Activity, tt, startTime int) float64 {
	w := float64(s.params.IntervalMinutes)
	c := s.params.Coefficients

	delta := c.ASC[a.Group] - s.params.TravelTimePenalty*float64(tt)

	if p.Group != 0 && !p.IsServiceStation {
		delta += c.Short[p.Group] * w * math.Max(0, float64(p.DesDuration-l.Duration))
		delta += c.Long[p.Group] * w * math.Max(0, float64(l.Duration-p.DesDuration))
	}
	if a.Group != 0 && !a.IsServiceStation {
		delta += c.Early[a.Group] * w * math.Max(0, float64(a.DesStartTime-startTime))
		delta += c.Late[a.Group] * w * math.Max(0, float64(startTime-a.DesStartTime))
	}
	if p.IsCharging {
		cu := s.params.ChargingUtility
		switch p.Group {
		case 0:
			delta += cu.GammaHome
		case workGroup:
			delta += cu.GammaWork
		default:
			delta += cu.GammaNonWork
		}
		delta += cu.ThetaLowSoC * math.Max(0, cu.SoCThreshold-l.SoCAtActivityStart)
		delta += cu.BetaDeltaSoC * (l.CurrentSoC - l.SoCAtActivityStart)
		prevCost := 0.0
		if l.Previous != nil {
			prevCost = l.Previous.ChargeCost
		}
		delta += cu.BetaChargeCost * (l.ChargeCost - prevCost)
	}
	return delta
}
