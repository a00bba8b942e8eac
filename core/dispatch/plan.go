package dispatch

import (
	"sort"

	"github.com/kilianp07/powerplan/core/model"
)

// PowerScale converts the requested load in MW to the plan unit (0.1 MW).
const PowerScale = 10

// Regime is one dispatch pass over the plants of a single category.
type Regime struct {
	Category   model.Category
	Dispatcher Dispatcher
}

// regimes lists the passes in the order they consume the load: wind first,
// then gas-fired plants, then turbojets.
var regimes = []Regime{
	{Category: model.CategoryWindTurbine, Dispatcher: SequentialDispatcher{}},
	{Category: model.CategoryGasFired, Dispatcher: PairwiseDispatcher{}},
	{Category: model.CategoryTurbojet, Dispatcher: SequentialDispatcher{}},
}

// Regimes returns a copy of the dispatch passes in the order they run.
func Regimes() []Regime {
	return append([]Regime(nil), regimes...)
}

// RegimeResult holds the outcome of one regime.
type RegimeResult struct {
	Category   model.Category
	Load       int
	Dispatched int
	Plants     []model.RankedPlant
}

// AssembleRegimes sorts the plants by merit order, runs every regime against
// the shared remaining load and returns the per-regime results. Plants with a
// category outside the regimes are returned last with nothing dispatched.
func AssembleRegimes(ranked []model.RankedPlant, load int) []RegimeResult {
	sorted := make([]model.RankedPlant, len(ranked))
	copy(sorted, ranked)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })

	groups := make(map[model.Category][]model.RankedPlant, len(regimes))
	for _, r := range sorted {
		groups[r.Category] = append(groups[r.Category], r)
	}

	remaining := load * PowerScale
	results := make([]RegimeResult, 0, len(regimes)+1)
	for _, reg := range regimes {
		res := RegimeResult{Category: reg.Category, Load: remaining}
		res.Plants = reg.Dispatcher.Dispatch(groups[reg.Category], remaining)
		for _, p := range res.Plants {
			res.Dispatched += p.DispatchedPower
		}
		remaining -= res.Dispatched
		delete(groups, reg.Category)
		results = append(results, res)
	}
	if len(groups) > 0 {
		res := RegimeResult{Load: remaining}
		for _, r := range sorted {
			if _, ok := groups[r.Category]; ok {
				r.DispatchedPower = 0
				res.Plants = append(res.Plants, r)
			}
		}
		results = append(results, res)
	}
	return results
}

// Assemble returns the dispatched plants in plan order.
func Assemble(ranked []model.RankedPlant, load int) []model.RankedPlant {
	var out []model.RankedPlant
	for _, res := range AssembleRegimes(ranked, load) {
		out = append(out, res.Plants...)
	}
	return out
}

// BuildPlan computes the production plan for the requested load in MW. The
// returned entries are in plan order, one per ranked plant.
func BuildPlan(ranked []model.RankedPlant, load int) []model.PlanEntry {
	plants := Assemble(ranked, load)
	plan := make([]model.PlanEntry, 0, len(plants))
	for _, p := range plants {
		plan = append(plan, model.PlanEntry{Name: p.Name, Power: p.DispatchedPower})
	}
	return plan
}
