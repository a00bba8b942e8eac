package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/powerplan/core/model"
)

func testFuels() []model.Fuel {
	return model.ParseFuels(map[string]float64{
		"gas(euro/MWh)":      10,
		"kerosine(euro/MWh)": 50,
		"co2(euro/ton)":      20,
		"wind(%)":            60,
	})
}

func TestTurbojetStrategy(t *testing.T) {
	r, err := ComputeRankedPlant(model.PowerPlant{Name: "tj1", Type: model.CategoryTurbojet, Efficiency: 0.5, Pmin: 0, Pmax: 16}, testFuels())
	require.NoError(t, err)
	assert.Equal(t, 100.0, r.Cost)
	assert.Equal(t, 200.0, r.Order)
	assert.Equal(t, 160, r.AvailablePower)
	assert.Equal(t, 0, r.MinimumPower)
	assert.Equal(t, 0, r.DispatchedPower)
}

func TestGasFiredStrategy(t *testing.T) {
	r, err := ComputeRankedPlant(model.PowerPlant{Name: "gasfiredbig1", Type: model.CategoryGasFired, Efficiency: 0.5, Pmin: 100, Pmax: 460}, testFuels())
	require.NoError(t, err)
	assert.Equal(t, 20.0, r.Cost)
	assert.Equal(t, 30.0, r.Order)
	assert.Equal(t, 4600, r.AvailablePower)
	assert.Equal(t, 1000, r.MinimumPower)
}

func TestWindTurbineStrategy(t *testing.T) {
	tests := []struct {
		pmax      int
		available int
	}{
		{150, 900},
		{36, 210},
		{0, 0},
	}
	for _, tt := range tests {
		r, err := ComputeRankedPlant(model.PowerPlant{Name: "wp", Type: model.CategoryWindTurbine, Efficiency: 1, Pmax: tt.pmax}, testFuels())
		require.NoError(t, err)
		assert.Equal(t, tt.available, r.AvailablePower, "pmax %d", tt.pmax)
		assert.Equal(t, 0.0, r.Cost)
		assert.Equal(t, float64(1-tt.available), r.Order)
	}
}

func TestMeritOrderAcrossCategories(t *testing.T) {
	o := NewOrchestrator()
	ranked, err := o.RankAll([]model.PowerPlant{
		{Name: "tj", Type: model.CategoryTurbojet, Efficiency: 0.9, Pmax: 10},
		{Name: "gas", Type: model.CategoryGasFired, Efficiency: 0.1, Pmax: 10},
		{Name: "wind", Type: model.CategoryWindTurbine, Efficiency: 1, Pmax: 10},
	}, testFuels())
	require.NoError(t, err)
	require.Len(t, ranked, 3)
	// Expensive gas (cost 100) still ranks before a cheap turbojet.
	assert.Less(t, ranked[2].Order, ranked[1].Order)
	assert.Less(t, ranked[1].Order, ranked[0].Order)
}

func TestUnmatchedFuelsDegradeToZero(t *testing.T) {
	o := NewOrchestrator()
	none := model.ParseFuels(map[string]float64{"co2(euro/ton)": 20})
	gas, err := o.Rank(model.PowerPlant{Name: "g", Type: model.CategoryGasFired, Efficiency: 0.5, Pmin: 10, Pmax: 20}, none)
	require.NoError(t, err)
	assert.Equal(t, 0.0, gas.Cost)
	assert.Equal(t, 10.0, gas.Order)

	twice := model.ParseFuels(map[string]float64{"wind(%)": 60, "wind-offshore(%)": 80})
	wind, err := o.Rank(model.PowerPlant{Name: "w", Type: model.CategoryWindTurbine, Efficiency: 1, Pmax: 100}, twice)
	require.NoError(t, err)
	assert.Equal(t, 0, wind.AvailablePower)
	assert.Equal(t, 1.0, wind.Order)
}

func TestRankUnsupportedCategory(t *testing.T) {
	_, err := ComputeRankedPlant(model.PowerPlant{Name: "n1", Type: "nuclear", Efficiency: 0.3, Pmax: 1000}, testFuels())
	require.ErrorIs(t, err, model.ErrUnsupportedCategory)

	_, err = NewOrchestrator().RankAll([]model.PowerPlant{
		{Name: "g", Type: model.CategoryGasFired, Efficiency: 0.5, Pmax: 10},
		{Name: "x", Type: "hydro", Efficiency: 0.9, Pmax: 10},
	}, testFuels())
	assert.ErrorIs(t, err, model.ErrUnsupportedCategory)
}

func TestRankNormalizesCategory(t *testing.T) {
	r, err := ComputeRankedPlant(model.PowerPlant{Name: "g", Type: "GasFired", Efficiency: 0.5, Pmax: 10}, testFuels())
	require.NoError(t, err)
	assert.Equal(t, model.CategoryGasFired, r.Category)
}
