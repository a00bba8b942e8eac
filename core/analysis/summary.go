// Package analysis reports on a computed plan: how far it is from the
// requested load, what it costs per hour and how that cost compares with the
// relaxed problem where minimum power thresholds are ignored.
package analysis

import (
	"errors"

	"gonum.org/v1/gonum/floats"

	"github.com/kilianp07/powerplan/core/dispatch"
	"github.com/kilianp07/powerplan/core/model"
)

// Summary describes a plan against the request that produced it. Powers are
// in tenths of MW, costs in currency per hour.
type Summary struct {
	RequestedPower  int      `json:"requested_power"`
	DispatchedPower int      `json:"dispatched_power"`
	Imbalance       int      `json:"imbalance"`
	Balanced        bool     `json:"balanced"`
	HourlyCost      float64  `json:"hourly_cost"`
	RelaxedCost     *float64 `json:"relaxed_cost,omitempty"`
	Violations      []string `json:"violations,omitempty"`
}

// Summarize computes the summary of dispatched plants for the load in MW.
func Summarize(plants []model.RankedPlant, load int) Summary {
	power := make([]float64, len(plants))
	cost := make([]float64, len(plants))
	var violations []string
	for i, p := range plants {
		power[i] = float64(p.DispatchedPower)
		cost[i] = p.Cost
		if p.DispatchedPower < 0 || p.DispatchedPower > p.AvailablePower ||
			(p.DispatchedPower > 0 && p.DispatchedPower < p.MinimumPower) {
			violations = append(violations, p.Name)
		}
	}
	s := Summary{
		RequestedPower: load * dispatch.PowerScale,
		Violations:     violations,
	}
	if len(plants) > 0 {
		s.DispatchedPower = int(floats.Sum(power))
		s.HourlyCost = floats.Dot(power, cost) / dispatch.PowerScale
	}
	s.Imbalance = s.RequestedPower - s.DispatchedPower
	s.Balanced = s.Imbalance == 0
	if relaxed, err := RelaxedCost(plants, float64(s.RequestedPower)); err == nil {
		s.RelaxedCost = &relaxed
	}
	return s
}

// CostGap returns how much more expensive the plan is than its relaxed lower
// bound. ok is false when no bound could be computed.
func (s Summary) CostGap() (gap float64, ok bool) {
	if s.RelaxedCost == nil {
		return 0, false
	}
	return s.HourlyCost - *s.RelaxedCost, true
}

// ErrInfeasible indicates the fleet cannot cover the requested power even
// without minimum thresholds.
var ErrInfeasible = errors.New("relaxed problem infeasible")
