package opt

import (
	"math"
	"math/rand"
)

// RandomSearch samples the box uniformly. It is the baseline the other
// optimizers are compared against.
type RandomSearch struct {
	evals int
	seed  int64
}

// NewRandomSearch creates a random search spending evals evaluations.
func NewRandomSearch(evals int, seed int64) Optimizer {
	return &RandomSearch{evals: evals, seed: seed}
}

// Run evaluates evals uniform samples and returns the best.
func (s *RandomSearch) Run(eval func([]float64) float64, lower, upper []float64, dim int) ([]float64, float64) {
	rng := rand.New(rand.NewSource(s.seed))

	best := make([]float64, dim)
	bestCost := math.Inf(1)
	x := make([]float64, dim)
	for i := 0; i < s.evals; i++ {
		for d := range x {
			x[d] = lower[d] + rng.Float64()*(upper[d]-lower[d])
		}
		if c := eval(x); c < bestCost {
			bestCost = c
			copy(best, x)
		}
	}
	return best, bestCost
}
