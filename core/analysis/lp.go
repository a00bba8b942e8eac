package analysis

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/kilianp07/powerplan/core/dispatch"
	"github.com/kilianp07/powerplan/core/model"
)

// RelaxedCost solves the linear relaxation of the dispatch problem: cover
// target (0.1 MW) at minimum hourly cost with 0 <= p_i <= available_i. It is
// a lower bound for any plan honouring minimum thresholds.
func RelaxedCost(plants []model.RankedPlant, target float64) (float64, error) {
	if target <= 0 {
		return 0, nil
	}
	caps := make([]float64, len(plants))
	for i, p := range plants {
		caps[i] = float64(p.AvailablePower)
	}
	if len(plants) == 0 || floats.Sum(caps) < target {
		return 0, ErrInfeasible
	}
	return lpSolve(plants, caps, target)
}

func solveRelaxed(plants []model.RankedPlant, caps []float64, target float64) (float64, error) {
	n := len(plants)
	c := make([]float64, n)
	for i, p := range plants {
		c[i] = p.Cost / dispatch.PowerScale
	}

	// p_i <= available_i and -p_i <= 0; the general form leaves x free.
	g := mat.NewDense(2*n, n, nil)
	h := make([]float64, 2*n)
	for i, cp := range caps {
		g.Set(i, i, 1)
		h[i] = cp
		g.Set(n+i, i, -1)
	}

	A := mat.NewDense(1, n, nil)
	for i := range caps {
		A.Set(0, i, 1)
	}
	b := []float64{target}

	cStd, AStd, bStd := lp.Convert(c, g, h, A, b)
	opt, _, err := lp.Simplex(cStd, AStd, bStd, 1e-7, nil)
	return opt, err
}

// lpSolve points to the function used to solve the LP. It can be overridden in
// tests to simulate solver failures.
var lpSolve = solveRelaxed
