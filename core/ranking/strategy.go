package ranking

import (
	"math"

	"github.com/kilianp07/powerplan/core/model"
)

const (
	gasFiredOrderOffset = 10
	turbojetOrderOffset = 100
	// MW to tenths of MW.
	powerScale = 10
)

// Strategy converts a plant and the fuels matching its category into a
// ranked record.
type Strategy interface {
	Compute(plant model.PowerPlant, fuels []model.Fuel) model.RankedPlant
}

// fuelCost returns the cost of producing 1 MWh from the single matching fuel.
// Zero or ambiguous matches yield a zero cost.
func fuelCost(plant model.PowerPlant, fuels []model.Fuel) float64 {
	if len(fuels) != 1 || plant.Efficiency == 0 {
		return 0
	}
	return fuels[0].Value / plant.Efficiency
}

func thermal(plant model.PowerPlant, fuels []model.Fuel, offset float64) model.RankedPlant {
	cost := fuelCost(plant, fuels)
	return model.RankedPlant{
		Name:           plant.Name,
		Category:       plant.Type,
		AvailablePower: plant.Pmax * powerScale,
		MinimumPower:   plant.Pmin * powerScale,
		Cost:           cost,
		Order:          offset + cost,
	}
}

// GasFiredStrategy ranks gas-fired plants between wind and turbojets.
type GasFiredStrategy struct{}

func (GasFiredStrategy) Compute(plant model.PowerPlant, fuels []model.Fuel) model.RankedPlant {
	return thermal(plant, fuels, gasFiredOrderOffset)
}

// TurbojetStrategy ranks turbojets after every gas-fired plant regardless of
// their cost.
type TurbojetStrategy struct{}

func (TurbojetStrategy) Compute(plant model.PowerPlant, fuels []model.Fuel) model.RankedPlant {
	return thermal(plant, fuels, turbojetOrderOffset)
}

// WindTurbineStrategy derives the available power from the wind percentage.
// The order decreases with the available power so the windiest park is
// dispatched first.
type WindTurbineStrategy struct{}

func (WindTurbineStrategy) Compute(plant model.PowerPlant, fuels []model.Fuel) model.RankedPlant {
	available := 0
	if len(fuels) == 1 {
		available = int(math.Floor(float64(plant.Pmax)/100*fuels[0].Value)) * powerScale
	}
	return model.RankedPlant{
		Name:           plant.Name,
		Category:       plant.Type,
		AvailablePower: available,
		MinimumPower:   plant.Pmin * powerScale,
		Cost:           0,
		Order:          float64(1 - available),
	}
}
