package opt

import (
	"math"
	"testing"
)

func TestMayflyAdapterOnSphere(t *testing.T) {
	optimizer := NewMayfly(100, 20, 42) // maxIters, popSize, seed

	dim := 3
	f, _ := Lookup("sphere")
	lower, upper := f.Bounds(dim)

	best, cost := optimizer.Run(Sphere, lower, upper, dim)

	if len(best) != dim {
		t.Fatalf("Expected %d parameters, got %d", dim, len(best))
	}

	if cost > 0.1 {
		t.Errorf("Expected cost near 0, got %f", cost)
	}

	for i, v := range best {
		if math.Abs(v) > 1.0 {
			t.Errorf("Parameter %d = %f, expected near 0", i, v)
		}
	}
}

func TestMayflyAdapterDeterministic(t *testing.T) {
	dim := 2
	lower := []float64{-5, -5}
	upper := []float64{5, 5}

	// popSize must be >=20 for mayfly v0.1.0
	_, cost1 := NewMayfly(50, 20, 123).Run(Sphere, lower, upper, dim)
	_, cost2 := NewMayfly(50, 20, 123).Run(Sphere, lower, upper, dim)

	if cost1 != cost2 {
		t.Errorf("Non-deterministic: cost1=%f, cost2=%f", cost1, cost2)
	}
}

func TestMayflyAdapterWithRecorder(t *testing.T) {
	rec := NewRecorder(Sphere, 20, 10)
	_, cost := NewMayfly(30, 20, 7).Run(rec.Eval, []float64{-5, -5}, []float64{5, 5}, 2)

	if rec.Evaluations() == 0 {
		t.Fatal("Expected the optimizer to evaluate through the recorder")
	}
	if rec.Best() > cost {
		t.Errorf("Recorder best %f worse than reported cost %f", rec.Best(), cost)
	}

	curve := rec.Curve()
	if len(curve) != 10 {
		t.Fatalf("Expected 10 checkpoints, got %d", len(curve))
	}
	for i := 1; i < len(curve); i++ {
		if curve[i] > curve[i-1] {
			t.Errorf("Curve increases at %d: %f > %f", i, curve[i], curve[i-1])
		}
	}
}

func TestRandomSearch(t *testing.T) {
	rec := NewRecorder(Sphere, 10, 5)
	best, cost := NewRandomSearch(50, 1).Run(rec.Eval, []float64{-1, -1}, []float64{1, 1}, 2)

	if rec.Evaluations() != 50 {
		t.Errorf("Expected 50 evaluations, got %d", rec.Evaluations())
	}
	if !rec.Done() {
		t.Error("Expected every checkpoint to be recorded")
	}
	if got := Sphere(best); got != cost {
		t.Errorf("Best position evaluates to %f, reported %f", got, cost)
	}
	for _, v := range best {
		if v < -1 || v > 1 {
			t.Errorf("Position %f outside bounds", v)
		}
	}

	_, again := NewRandomSearch(50, 1).Run(Sphere, []float64{-1, -1}, []float64{1, 1}, 2)
	if again != cost {
		t.Errorf("Non-deterministic: %f vs %f", cost, again)
	}
}

func TestNew(t *testing.T) {
	if _, err := New("Mayfly", Params{Iterations: 10, PopSize: 20}); err != nil {
		t.Errorf("mayfly: %v", err)
	}
	if _, err := New("mayfly", Params{Iterations: 10, PopSize: 5}); err == nil {
		t.Error("Expected error for population below minimum")
	}
	if _, err := New("random", Params{Evaluations: 100}); err != nil {
		t.Errorf("random: %v", err)
	}
	if _, err := New("random", Params{}); err == nil {
		t.Error("Expected error for zero evaluations")
	}
	if _, err := New("anneal", Params{}); err == nil {
		t.Error("Expected error for unknown optimizer")
	}
}

func TestMayflyAdapterPerDimensionBounds(t *testing.T) {
	lower := []float64{1, -50}
	upper := []float64{2, 50}

	best, cost := NewMayfly(40, 20, 3).Run(Sphere, lower, upper, 2)

	for i, v := range best {
		if v < lower[i] || v > upper[i] {
			t.Errorf("Parameter %d = %f outside [%f, %f]", i, v, lower[i], upper[i])
		}
	}
	// The minimum over the box is 1 at (1, 0).
	if cost < 1-1e-9 || cost > 5 {
		t.Errorf("Expected cost in [1, 5], got %f", cost)
	}
}

func TestUnitBoxScale(t *testing.T) {
	b := unitBox{lower: []float64{-1, 10}, upper: []float64{1, 20}}
	got := b.scale([]float64{0.5, 1.2})
	if got[0] != 0 || got[1] != 20 {
		t.Errorf("scale = %v, want [0 20]", got)
	}
}
