// Package opt provides the optimizers and benchmark functions used to
// generate trial tables.
package opt

import (
	"fmt"
	"sort"
	"strings"
)

// Optimizer defines an optimization algorithm interface
type Optimizer interface {
	// Run executes the optimization
	// eval: objective function to minimize
	// lower, upper: parameter bounds
	// dim: dimensionality of parameter space
	// Returns: best parameters and best cost
	Run(eval func([]float64) float64, lower, upper []float64, dim int) ([]float64, float64)
}

// Params holds the knobs shared by all optimizers. Each optimizer reads the
// fields it needs.
type Params struct {
	Iterations  int
	PopSize     int
	Evaluations int
	Seed        int64
}

// MinPopSize is the smallest population the Mayfly library accepts.
const MinPopSize = 20

type factory func(p Params) (Optimizer, error)

var optimizers = map[string]factory{
	"mayfly": func(p Params) (Optimizer, error) {
		if p.PopSize < MinPopSize {
			return nil, fmt.Errorf("mayfly: population must be at least %d, got %d", MinPopSize, p.PopSize)
		}
		if p.Iterations < 1 {
			return nil, fmt.Errorf("mayfly: iterations must be positive, got %d", p.Iterations)
		}
		return NewMayfly(p.Iterations, p.PopSize, p.Seed), nil
	},
	"random": func(p Params) (Optimizer, error) {
		if p.Evaluations < 1 {
			return nil, fmt.Errorf("random: evaluations must be positive, got %d", p.Evaluations)
		}
		return NewRandomSearch(p.Evaluations, p.Seed), nil
	},
}

// New creates the named optimizer ("mayfly" or "random").
func New(name string, p Params) (Optimizer, error) {
	f, ok := optimizers[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown optimizer %q (available: %s)", name, strings.Join(Optimizers(), ", "))
	}
	return f(p)
}

// Optimizers lists the registered optimizer names.
func Optimizers() []string {
	names := make([]string, 0, len(optimizers))
	for n := range optimizers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
