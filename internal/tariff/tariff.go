// Package tariff converts an interval index to a wall-clock time-of-use
// factor, and selects a charger's rate and $/kWh price by charge mode and
// activity kind.
package tariff

import (
	"fmt"

	"github.com/charlotteesavage/ev-scheduling-dp/internal/domain"
)

// Factor converts an interval index to a wall-clock minute-of-day and
// returns the TOU multiplier for whichever window that minute falls in.
func Factor(t, intervalMinutes int, params domain.TariffParams) float64 {
	minuteOfDay := (t * intervalMinutes) % (24 * 60)
	switch periodOf(minuteOfDay, params) {
	case domain.Peak:
		return params.PeakFactor
	case domain.MidPeak:
		return params.MidpeakFactor
	default:
		return params.OffpeakFactor
	}
}

func periodOf(minuteOfDay int, params domain.TariffParams) domain.TOUPeriod {
	if inWindow(minuteOfDay, params.PeakStartMin, params.PeakEndMin) {
		return domain.Peak
	}
	if inWindow(minuteOfDay, params.Midpeak1StartMin, params.Midpeak1EndMin) ||
		inWindow(minuteOfDay, params.Midpeak2StartMin, params.Midpeak2EndMin) {
		return domain.MidPeak
	}
	return domain.OffPeak
}

// inWindow checks membership in a half-open [start, end) minute-of-day
// window, including midnight wraparound.
func inWindow(mins, start, end int) bool {
	if start == end {
		return false
	}
	if start < end {
		return mins >= start && mins < end
	}
	return mins >= start || mins < end
}

// RateAndPrice returns (SoC fraction added per interval, currency per kWh)
// for activity a. Rate is power_kW / capacity_kWh * (W/60). Price
// selection: home (group 0) + slow => home_slow; non-home + slow => AC;
// fast => AC; rapid => public_dc.
func RateAndPrice(a domain.Activity, batteryCapacityKWh float64, intervalMinutes int, charger domain.ChargerTable) (rate, pricePerKWh float64, err error) {
	if !a.IsCharging || a.ChargeMode == domain.ChargeNone {
		return 0, 0, fmt.Errorf("activity %d is not a charging activity", a.ID)
	}
	powerKW, ok := charger.PowerKW[a.ChargeMode]
	if !ok {
		return 0, 0, fmt.Errorf("no charger power configured for mode %q", a.ChargeMode)
	}
	rate = powerKW / batteryCapacityKWh * (float64(intervalMinutes) / 60.0)

	switch a.ChargeMode {
	case domain.ChargeSlow:
		if a.Group == 0 {
			pricePerKWh = charger.PriceHomeSlowPerKWh
		} else {
			pricePerKWh = charger.PriceACPerKWh
		}
	case domain.ChargeFast:
		pricePerKWh = charger.PriceACPerKWh
	case domain.ChargeRapid:
		pricePerKWh = charger.PricePublicDCPerKWh
	default:
		return 0, 0, fmt.Errorf("unsupported charge mode %q", a.ChargeMode)
	}
	return rate, pricePerKWh, nil
}
