package domain

import "fmt"

// Coefficients are the per-group utility weights. Indexes are group tags
// in [0, NumGroups). Early/Late/Long/Short are expected to be supplied as
// negative values so deviations reduce utility.
type Coefficients struct {
	ASC   [NumGroups]float64
	Early [NumGroups]float64
	Late  [NumGroups]float64
	Long  [NumGroups]float64
	Short [NumGroups]float64
}

// ChargingUtility bundles the charging-related utility coefficients
// applied at transition: the gamma/theta/beta terms.
type ChargingUtility struct {
	GammaWork    float64
	GammaHome    float64
	GammaNonWork float64

	SoCThreshold   float64
	ThetaLowSoC    float64
	BetaDeltaSoC   float64
	BetaChargeCost float64
}

// GeneralParams bundles every solve-wide configuration input — horizon,
// interval width, travel speed/penalty, coefficients, and the
// battery/charger/tariff tables — into one explicit value passed to every
// engine operation instead of held as process-wide globals. This lets
// independent solves run concurrently without shared mutable state.
type GeneralParams struct {
	// Horizon is H, the number of intervals in the planning day.
	Horizon int
	// IntervalMinutes is W. Deviation penalties multiply by W despite
	// already operating on interval counts; this is preserved to match
	// the published parameter fits rather than "corrected" here.
	IntervalMinutes int

	SpeedMetersPerMinute float64
	TravelTimePenalty    float64

	Coefficients    Coefficients
	ChargingUtility ChargingUtility

	Battery BatteryParams
	Tariff  TariffParams
	Charger ChargerTable

	// DSSRMaxIterations caps the outer DSSR loop: a safety cap against
	// pathological inputs that never settle to an elementary path, not a
	// normal code path.
	DSSRMaxIterations int
}

// BatteryParams is the energy model: capacity and consumption per km.
type BatteryParams struct {
	CapacityKWh          float64
	ConsumptionKWhPerKm  float64
}

// Validate rejects parameter errors at the configuration entry point.
func (p GeneralParams) Validate() error {
	if p.Horizon <= 0 {
		return fmt.Errorf("horizon must be > 0")
	}
	if p.IntervalMinutes <= 0 {
		return fmt.Errorf("interval width (W) must be > 0")
	}
	if p.SpeedMetersPerMinute <= 0 {
		return fmt.Errorf("speed must be > 0")
	}
	if p.Battery.CapacityKWh <= 0 {
		return fmt.Errorf("battery capacity must be > 0")
	}
	if p.Battery.ConsumptionKWhPerKm < 0 {
		return fmt.Errorf("consumption rate must be >= 0")
	}
	if p.DSSRMaxIterations <= 0 {
		return fmt.Errorf("DSSR max iterations must be > 0")
	}
	if err := p.Tariff.Validate(); err != nil {
		return fmt.Errorf("tariff: %w", err)
	}
	if err := p.Charger.Validate(); err != nil {
		return fmt.Errorf("charger table: %w", err)
	}
	return nil
}
