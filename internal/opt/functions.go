package opt

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Function is a benchmark objective with its search box and known minimum.
type Function struct {
	Name    string
	Eval    func(x []float64) float64
	Lower   float64
	Upper   float64
	Optimum float64
	// Dim fixes the dimensionality; zero accepts any.
	Dim int
}

// Bounds returns per-dimension bounds for dim dimensions.
func (f Function) Bounds(dim int) (lower, upper []float64) {
	lower = make([]float64, dim)
	upper = make([]float64, dim)
	for i := range lower {
		lower[i], upper[i] = f.Lower, f.Upper
	}
	return lower, upper
}

// CheckDim reports whether the function is defined in dim dimensions.
func (f Function) CheckDim(dim int) error {
	if dim < 1 {
		return fmt.Errorf("%s: dimension must be positive, got %d", f.Name, dim)
	}
	if f.Dim != 0 && dim != f.Dim {
		return fmt.Errorf("%s: defined for %d dimensions only, got %d", f.Name, f.Dim, dim)
	}
	return nil
}

var functions = map[string]Function{
	"ackley": {
		Name:  "Ackley",
		Eval:  Ackley,
		Lower: -32.768, Upper: 32.768,
	},
	"bohachevsky": {
		Name:  "Bohachevsky",
		Eval:  Bohachevsky,
		Lower: -100, Upper: 100,
	},
	"easom": {
		Name:  "Easom",
		Eval:  Easom,
		Lower: -100, Upper: 100,
		Optimum: -1,
		Dim:     2,
	},
	"sphere": {
		Name:  "Sphere",
		Eval:  Sphere,
		Lower: -5.12, Upper: 5.12,
	},
}

// Lookup finds a benchmark function by case-insensitive name.
func Lookup(name string) (Function, bool) {
	f, ok := functions[strings.ToLower(name)]
	return f, ok
}

// Functions lists the registered function names, sorted.
func Functions() []string {
	names := make([]string, 0, len(functions))
	for _, f := range functions {
		names = append(names, f.Name)
	}
	sort.Strings(names)
	return names
}

// Ackley has its global minimum 0 at the origin.
func Ackley(x []float64) float64 {
	const a, b, c = 20.0, 0.2, 2 * math.Pi
	n := float64(len(x))
	var sq, cs float64
	for _, v := range x {
		sq += v * v
		cs += math.Cos(c * v)
	}
	return -a*math.Exp(-b*math.Sqrt(sq/n)) - math.Exp(cs/n) + a + math.E
}

// Bohachevsky is the first Bohachevsky function, chained over consecutive
// coordinate pairs. Minimum 0 at the origin.
func Bohachevsky(x []float64) float64 {
	if len(x) == 1 {
		return x[0]*x[0] - 0.3*math.Cos(3*math.Pi*x[0]) + 0.3
	}
	var sum float64
	for i := 0; i+1 < len(x); i++ {
		a, b := x[i], x[i+1]
		sum += a*a + 2*b*b - 0.3*math.Cos(3*math.Pi*a) - 0.4*math.Cos(4*math.Pi*b) + 0.7
	}
	return sum
}

// Easom is two-dimensional with minimum -1 at (pi, pi).
func Easom(x []float64) float64 {
	dx, dy := x[0]-math.Pi, x[1]-math.Pi
	return -math.Cos(x[0]) * math.Cos(x[1]) * math.Exp(-(dx*dx + dy*dy))
}

// Sphere is the sum of squares.
func Sphere(x []float64) float64 {
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return sum
}
