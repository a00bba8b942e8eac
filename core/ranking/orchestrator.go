package ranking

import (
	"fmt"

	"github.com/kilianp07/powerplan/core/model"
)

// Orchestrator routes each plant to the strategy of its category.
type Orchestrator struct {
	strategies map[model.Category]Strategy
}

// NewOrchestrator returns an Orchestrator knowing the three plant categories.
func NewOrchestrator() *Orchestrator {
	return &Orchestrator{strategies: map[model.Category]Strategy{
		model.CategoryGasFired:    GasFiredStrategy{},
		model.CategoryTurbojet:    TurbojetStrategy{},
		model.CategoryWindTurbine: WindTurbineStrategy{},
	}}
}

// Rank matches the fuels against the plant category and computes its ranked
// record. An unknown category fails with model.ErrUnsupportedCategory.
func (o *Orchestrator) Rank(plant model.PowerPlant, fuels []model.Fuel) (model.RankedPlant, error) {
	c, err := model.ParseCategory(string(plant.Type))
	if err != nil {
		return model.RankedPlant{}, fmt.Errorf("rank %s: %w", plant.Name, err)
	}
	s, ok := o.strategies[c]
	if !ok {
		return model.RankedPlant{}, fmt.Errorf("rank %s: %w: no strategy for %s", plant.Name, model.ErrUnsupportedCategory, c)
	}
	plant.Type = c
	return s.Compute(plant, model.MatchFuels(c, fuels)), nil
}

// RankAll ranks every plant, stopping at the first unsupported category.
func (o *Orchestrator) RankAll(plants []model.PowerPlant, fuels []model.Fuel) ([]model.RankedPlant, error) {
	out := make([]model.RankedPlant, 0, len(plants))
	for _, p := range plants {
		r, err := o.Rank(p, fuels)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

var defaultOrchestrator = NewOrchestrator()

// ComputeRankedPlant ranks a single plant with the default orchestrator.
func ComputeRankedPlant(plant model.PowerPlant, fuels []model.Fuel) (model.RankedPlant, error) {
	return defaultOrchestrator.Rank(plant, fuels)
}
