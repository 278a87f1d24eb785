package opt

import (
	"log/slog"
	"math/rand"

	"github.com/cwbudde/mayfly"
)

// MayflyAdapter wraps the external Mayfly library to conform to our Optimizer interface
type MayflyAdapter struct {
	maxIters int
	popSize  int
	seed     int64
}

// NewMayfly creates a new Mayfly optimizer adapter
func NewMayfly(maxIters, popSize int, seed int64) Optimizer {
	return &MayflyAdapter{
		maxIters: maxIters,
		popSize:  popSize,
		seed:     seed,
	}
}

// Run executes the Mayfly optimization using the external library.
//
// The library only takes one scalar range for all dimensions, so the swarm
// searches the unit cube and every position is mapped onto [lower, upper]
// before it reaches eval.
func (m *MayflyAdapter) Run(eval func([]float64) float64, lower, upper []float64, dim int) ([]float64, float64) {
	box := unitBox{lower: lower, upper: upper}

	config := mayfly.NewDefaultConfig()
	config.ObjectiveFunc = func(u []float64) float64 {
		return eval(box.scale(u))
	}
	config.ProblemSize = dim
	config.MaxIterations = m.maxIters
	config.NPop = m.popSize
	config.LowerBound = 0
	config.UpperBound = 1
	config.Rand = rand.New(rand.NewSource(m.seed))

	result, err := mayfly.Optimize(config)
	if err != nil {
		slog.Error("Mayfly optimization failed", "error", err, "dim", dim, "seed", m.seed)
		center := make([]float64, dim)
		for i := range center {
			center[i] = 0.5
		}
		x := box.scale(center)
		return x, eval(x)
	}

	return box.scale(result.GlobalBest.Position), result.GlobalBest.Cost
}

type unitBox struct {
	lower, upper []float64
}

// scale maps u from the unit cube onto the box, clamping stray coordinates.
func (b unitBox) scale(u []float64) []float64 {
	x := make([]float64, len(u))
	for i, v := range u {
		v = min(max(v, 0), 1)
		x[i] = b.lower[i] + v*(b.upper[i]-b.lower[i])
	}
	return x
}
