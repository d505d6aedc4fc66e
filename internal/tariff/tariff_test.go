package tariff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charlotteesavage/ev-scheduling-dp/internal/domain"
)

func testTariff() domain.TariffParams {
	return domain.TariffParams{
		PeakStartMin: 16 * 60, PeakEndMin: 21 * 60,
		Midpeak1StartMin: 7 * 60, Midpeak1EndMin: 11 * 60,
		Midpeak2StartMin: 17*60 + 0, Midpeak2EndMin: 17*60 + 0, // empty second midpeak
		PeakFactor: 2.0, MidpeakFactor: 1.5, OffpeakFactor: 1.0,
	}
}

func TestFactorPeakMidOff(t *testing.T) {
	params := testTariff()
	// interval index 216 at W=5 -> minute 1080 = 18:00, inside peak window.
	assert.Equal(t, 2.0, Factor(216, 5, params))
	// interval index 96 at W=5 -> minute 480 = 08:00, inside midpeak1.
	assert.Equal(t, 1.5, Factor(96, 5, params))
	// interval index 0 -> minute 0 = midnight, offpeak.
	assert.Equal(t, 1.0, Factor(0, 5, params))
}

func TestInWindowMidnightWraparound(t *testing.T) {
	assert.True(t, inWindow(23*60, 22*60, 2*60))
	assert.True(t, inWindow(60, 22*60, 2*60))
	assert.False(t, inWindow(12*60, 22*60, 2*60))
	assert.False(t, inWindow(100, 50, 50)) // empty window never matches
}

func TestRateAndPriceHomeSlow(t *testing.T) {
	a := domain.Activity{ID: 1, Group: 0, IsCharging: true, ChargeMode: domain.ChargeSlow}
	charger := domain.ChargerTable{
		PowerKW:             map[domain.ChargeMode]float64{domain.ChargeSlow: 7, domain.ChargeFast: 22, domain.ChargeRapid: 50},
		PriceHomeSlowPerKWh: 0.10,
		PriceACPerKWh:       0.25,
		PricePublicDCPerKWh: 0.40,
	}
	rate, price, err := RateAndPrice(a, 50, 5, charger)
	require.NoError(t, err)
	assert.InDelta(t, 7.0/50.0*(5.0/60.0), rate, 1e-9)
	assert.Equal(t, 0.10, price)
}

func TestRateAndPriceNonHomeSlowUsesAC(t *testing.T) {
	a := domain.Activity{ID: 2, Group: 6, IsCharging: true, ChargeMode: domain.ChargeSlow}
	charger := domain.ChargerTable{
		PowerKW:             map[domain.ChargeMode]float64{domain.ChargeSlow: 7},
		PriceHomeSlowPerKWh: 0.10,
		PriceACPerKWh:       0.25,
	}
	_, price, err := RateAndPrice(a, 50, 5, charger)
	require.NoError(t, err)
	assert.Equal(t, 0.25, price)
}

func TestRateAndPriceRejectsNonCharging(t *testing.T) {
	a := domain.Activity{ID: 3, IsCharging: false}
	_, _, err := RateAndPrice(a, 50, 5, domain.ChargerTable{})
	assert.Error(t, err)
}
