// Package config loads the YAML configuration a solve is parameterized
// with: horizon/interval width, utility coefficients, the battery model,
// the TOU tariff windows, and the charger rate/price table. Load and
// LoadUnchecked split validated from unvalidated reads, and BatteryFile
// lets a battery profile be maintained separately from the rest of the
// config with field-level override merge.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/charlotteesavage/ev-scheduling-dp/internal/domain"
)

// Config is the on-disk configuration shape.
type Config struct {
	// BatteryFile optionally points at a separately maintained battery
	// profile (e.g. fleet/battery-profiles/*.yaml); Battery overrides
	// any field it sets non-zero, via MergeBattery below.
	BatteryFile string         `yaml:"battery_file"`
	Battery     BatteryConfig  `yaml:"battery"`
	General     GeneralConfig  `yaml:"general"`
	Tariff      TariffConfig   `yaml:"tariff"`
	Charger     ChargerConfig  `yaml:"charger"`
}

type BatteryConfig struct {
	CapacityKWh         float64 `yaml:"capacity_kwh"`
	ConsumptionKWhPerKm float64 `yaml:"consumption_kwh_per_km"`
	InitialSoC          float64 `yaml:"initial_soc"`
}

type GeneralConfig struct {
	Horizon              int        `yaml:"horizon"`
	IntervalMinutes      int        `yaml:"interval_minutes"`
	SpeedMetersPerMinute float64    `yaml:"speed_m_per_min"`
	TravelTimePenalty    float64    `yaml:"travel_time_penalty"`
	DSSRMaxIterations    int        `yaml:"dssr_max_iterations"`
	Coefficients         CoeffsYAML `yaml:"coefficients"`
	ChargingUtility      ChargingUtilityYAML `yaml:"charging_utility"`
}

// CoeffsYAML mirrors domain.Coefficients with YAML tags; each array is
// keyed positionally by group tag, same as the core.
type CoeffsYAML struct {
	ASC   [domain.NumGroups]float64 `yaml:"asc"`
	Early [domain.NumGroups]float64 `yaml:"early"`
	Late  [domain.NumGroups]float64 `yaml:"late"`
	Long  [domain.NumGroups]float64 `yaml:"long"`
	Short [domain.NumGroups]float64 `yaml:"short"`
}

type ChargingUtilityYAML struct {
	GammaWork      float64 `yaml:"gamma_work"`
	GammaHome      float64 `yaml:"gamma_home"`
	GammaNonWork   float64 `yaml:"gamma_non_work"`
	SoCThreshold   float64 `yaml:"soc_threshold"`
	ThetaLowSoC    float64 `yaml:"theta_low_soc"`
	BetaDeltaSoC   float64 `yaml:"beta_delta_soc"`
	BetaChargeCost float64 `yaml:"beta_charge_cost"`
}

type TariffConfig struct {
	PeakStartMin     int `yaml:"peak_start_min"`
	PeakEndMin       int `yaml:"peak_end_min"`
	Midpeak1StartMin int `yaml:"midpeak1_start_min"`
	Midpeak1EndMin   int `yaml:"midpeak1_end_min"`
	Midpeak2StartMin int `yaml:"midpeak2_start_min"`
	Midpeak2EndMin   int `yaml:"midpeak2_end_min"`

	PeakFactor    float64 `yaml:"peak_factor"`
	MidpeakFactor float64 `yaml:"midpeak_factor"`
	OffpeakFactor float64 `yaml:"offpeak_factor"`
}

type ChargerConfig struct {
	SlowKW float64 `yaml:"slow_kw"`
	FastKW float64 `yaml:"fast_kw"`
	RapidKW float64 `yaml:"rapid_kw"`

	PriceHomeSlowPerKWh float64 `yaml:"price_home_slow_per_kwh"`
	PriceACPerKWh       float64 `yaml:"price_ac_per_kwh"`
	PricePublicDCPerKWh float64 `yaml:"price_public_dc_per_kwh"`
}

// Load reads, merges, and validates the config at path.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config without validating it. Useful for
// debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	if c.BatteryFile != "" {
		batteryPath := c.BatteryFile
		if !filepath.IsAbs(batteryPath) {
			cand := filepath.Join(filepath.Dir(path), batteryPath)
			if _, err := os.Stat(cand); err == nil {
				batteryPath = cand
			}
		}
		loaded, err := loadBatteryFile(batteryPath)
		if err != nil {
			return nil, err
		}
		c.Battery = MergeBattery(loaded, c.Battery)
	}
	return &c, nil
}

type batteryFileWrapper struct {
	Battery BatteryConfig `yaml:"battery"`
}

func loadBatteryFile(path string) (BatteryConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return BatteryConfig{}, err
	}
	var w batteryFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return BatteryConfig{}, err
	}
	return w.Battery, nil
}

// MergeBattery overlays non-zero fields from override onto base.
func MergeBattery(base, override BatteryConfig) BatteryConfig {
	out := base
	if override.CapacityKWh != 0 {
		out.CapacityKWh = override.CapacityKWh
	}
	if override.ConsumptionKWhPerKm != 0 {
		out.ConsumptionKWhPerKm = override.ConsumptionKWhPerKm
	}
	if override.InitialSoC != 0 {
		out.InitialSoC = override.InitialSoC
	}
	return out
}

// Validate constructs the domain params this config describes, surfacing
// any parameter error before a solve starts.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if _, err := c.GeneralParams(); err != nil {
		return fmt.Errorf("config invalid: %w", err)
	}
	return nil
}

// GeneralParams converts the on-disk shape into the domain.GeneralParams
// the engine consumes.
func (c *Config) GeneralParams() (domain.GeneralParams, error) {
	p := domain.GeneralParams{
		Horizon:              c.General.Horizon,
		IntervalMinutes:      c.General.IntervalMinutes,
		SpeedMetersPerMinute: c.General.SpeedMetersPerMinute,
		TravelTimePenalty:    c.General.TravelTimePenalty,
		DSSRMaxIterations:    c.General.DSSRMaxIterations,
		Coefficients: domain.Coefficients{
			ASC:   c.General.Coefficients.ASC,
			Early: c.General.Coefficients.Early,
			Late:  c.General.Coefficients.Late,
			Long:  c.General.Coefficients.Long,
			Short: c.General.Coefficients.Short,
		},
		ChargingUtility: domain.ChargingUtility{
			GammaWork:      c.General.ChargingUtility.GammaWork,
			GammaHome:      c.General.ChargingUtility.GammaHome,
			GammaNonWork:   c.General.ChargingUtility.GammaNonWork,
			SoCThreshold:   c.General.ChargingUtility.SoCThreshold,
			ThetaLowSoC:    c.General.ChargingUtility.ThetaLowSoC,
			BetaDeltaSoC:   c.General.ChargingUtility.BetaDeltaSoC,
			BetaChargeCost: c.General.ChargingUtility.BetaChargeCost,
		},
		Battery: domain.BatteryParams{
			CapacityKWh:         c.Battery.CapacityKWh,
			ConsumptionKWhPerKm: c.Battery.ConsumptionKWhPerKm,
		},
		Tariff: domain.TariffParams{
			PeakStartMin:     c.Tariff.PeakStartMin,
			PeakEndMin:       c.Tariff.PeakEndMin,
			Midpeak1StartMin: c.Tariff.Midpeak1StartMin,
			Midpeak1EndMin:   c.Tariff.Midpeak1EndMin,
			Midpeak2StartMin: c.Tariff.Midpeak2StartMin,
			Midpeak2EndMin:   c.Tariff.Midpeak2EndMin,
			PeakFactor:       c.Tariff.PeakFactor,
			MidpeakFactor:    c.Tariff.MidpeakFactor,
			OffpeakFactor:    c.Tariff.OffpeakFactor,
		},
		Charger: domain.ChargerTable{
			PowerKW: map[domain.ChargeMode]float64{
				domain.ChargeSlow:  c.Charger.SlowKW,
				domain.ChargeFast:  c.Charger.FastKW,
				domain.ChargeRapid: c.Charger.RapidKW,
			},
			PriceHomeSlowPerKWh: c.Charger.PriceHomeSlowPerKWh,
			PriceACPerKWh:       c.Charger.PriceACPerKWh,
			PricePublicDCPerKWh: c.Charger.PricePublicDCPerKWh,
		},
	}
	if err := p.Validate(); err != nil {
		return domain.GeneralParams{}, err
	}
	return p, nil
}
