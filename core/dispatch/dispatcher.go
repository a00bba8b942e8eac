package dispatch

import "github.com/kilianp07/powerplan/core/model"

// Dispatcher distributes a load across plants already sorted by merit order.
// The input slice is never modified; the returned slice holds one record per
// input plant with DispatchedPower set.
type Dispatcher interface {
	Dispatch(plants []model.RankedPlant, load int) []model.RankedPlant
}

// SequentialDispatcher fills plants one after the other. A plant is skipped
// when the remaining load does not reach its minimum power, leaving the load
// for the next ones.
type SequentialDispatcher struct{}

func (SequentialDispatcher) Dispatch(plants []model.RankedPlant, load int) []model.RankedPlant {
	out := make([]model.RankedPlant, len(plants))
	copy(out, plants)
	remaining := load
	for i := range out {
		p := &out[i]
		switch {
		case remaining <= 0 || p.AvailablePower < p.MinimumPower:
			p.DispatchedPower = 0
		case remaining > p.AvailablePower:
			p.DispatchedPower = p.AvailablePower
			remaining -= p.AvailablePower
		case p.MinimumPower < remaining && remaining < p.AvailablePower:
			p.DispatchedPower = remaining
			remaining = 0
		default:
			p.DispatchedPower = 0
		}
	}
	return out
}

// PairwiseDispatcher chains FillPair over consecutive plants so that minimum
// power thresholds can be honoured where a greedy fill would fail.
type PairwiseDispatcher struct{}

func (PairwiseDispatcher) Dispatch(plants []model.RankedPlant, load int) []model.RankedPlant {
	units := make([]model.RankedPlant, len(plants))
	copy(units, plants)
	switch len(units) {
	case 0:
		return units
	case 1:
		units[0] = FillSingle(units[0], load, false)
		return units
	case 2:
		units[0], units[1] = FillPair(units[0], units[1], load)
		return units
	}

	out := make([]model.RankedPlant, 0, len(units))
	remaining := load
	prev := 0
	for i := 1; i < len(units) && remaining > 0; i++ {
		prior := units[prev].DispatchedPower
		units[prev], units[i] = FillPair(units[prev], units[i], remaining)
		// The previous plant was already accounted for by the last pair.
		if i > 1 {
			remaining += prior
		}
		remaining -= units[prev].DispatchedPower + units[i].DispatchedPower
		out = append(out, units[prev])
		prev = i
		if i == len(units)-1 {
			out = append(out, units[i])
		}
	}
	return appendMissing(out, units)
}

// appendMissing adds to out every unit whose name it does not contain yet,
// keeping the units order.
func appendMissing(out, units []model.RankedPlant) []model.RankedPlant {
	if len(out) == len(units) {
		return out
	}
	seen := make(map[string]struct{}, len(out))
	for _, r := range out {
		seen[r.Name] = struct{}{}
	}
	for _, u := range units {
		if _, ok := seen[u.Name]; !ok {
			out = append(out, u)
		}
	}
	return out
}
