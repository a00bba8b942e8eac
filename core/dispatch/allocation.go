package dispatch

import "github.com/kilianp07/powerplan/core/model"

// FillSingle sets the dispatched power of a single plant for the given load.
// With useAverage the load is ignored and the plant runs at the midpoint of
// its operating range. Otherwise the plant takes the whole load when it fits
// strictly inside (minimum, available), runs at full power when the load
// exceeds it, and stays off in every other case.
func FillSingle(p model.RankedPlant, load int, useAverage bool) model.RankedPlant {
	switch {
	case p.AvailablePower < p.MinimumPower:
		// Averaging here would dispatch above the available power or below the minimum.
		p.DispatchedPower = 0
	case useAverage:
		p.DispatchedPower = (p.MinimumPower + p.AvailablePower) / 2
	case p.MinimumPower < load && load < p.AvailablePower:
		p.DispatchedPower = load
	case load > p.AvailablePower:
		p.DispatchedPower = p.AvailablePower
	default:
		p.DispatchedPower = 0
	}
	return p
}

// FillPair splits the load across two adjacent plants without placing either
// of them below its minimum power. When one side already carries power only
// the right plant may still pick up the whole load.
func FillPair(left, right model.RankedPlant, load int) (model.RankedPlant, model.RankedPlant) {
	available := left.AvailablePower + right.AvailablePower
	dispatched := left.DispatchedPower + right.DispatchedPower
	minimum := min(left.MinimumPower, right.MinimumPower)

	if dispatched != 0 || load < minimum {
		if right.Idle() && right.MinimumPower < load && load < right.AvailablePower {
			right.DispatchedPower = load
		}
		return left, right
	}

	if load >= available {
		left.DispatchedPower = left.AvailablePower
		right.DispatchedPower = right.AvailablePower
		return left, right
	}

	tentative := FillSingle(left, load, false)
	remaining := load - tentative.DispatchedPower
	if remaining <= 0 || remaining >= right.MinimumPower {
		left = tentative
		right = FillSingle(right, load-left.DispatchedPower, false)
		return left, right
	}

	// The leftover is too small for the right plant: back the left plant off
	// to its midpoint and try again.
	averaged := FillSingle(left, load, true)
	if load-averaged.DispatchedPower < right.MinimumPower {
		left = FillSingle(left, (load+1)/2, false)
		right = FillSingle(right, load/2, false)
		return left, right
	}
	left = averaged
	right = FillSingle(right, load-left.DispatchedPower, false)
	return left, right
}
