package opt

import (
	"log/slog"
	"math"
)

// Recorder wraps an objective and samples the best value seen so far every
// Interval evaluations. The sampled curve is never increasing.
//
// A Recorder is not safe for concurrent use.
type Recorder struct {
	eval        func([]float64) float64
	interval    int
	checkpoints int

	evals int
	best  float64
	curve []float64
}

// NewRecorder records up to checkpoints samples, one every interval
// evaluations of eval.
func NewRecorder(eval func([]float64) float64, interval, checkpoints int) *Recorder {
	return &Recorder{
		eval:        eval,
		interval:    max(1, interval),
		checkpoints: max(0, checkpoints),
		best:        math.Inf(1),
		curve:       make([]float64, 0, max(0, checkpoints)),
	}
}

// Eval evaluates x and updates the curve. It has the objective signature so
// it can be handed to an Optimizer directly.
func (r *Recorder) Eval(x []float64) float64 {
	v := r.eval(x)
	r.evals++
	if v < r.best {
		r.best = v
	}
	if r.evals%r.interval == 0 && len(r.curve) < r.checkpoints {
		r.curve = append(r.curve, r.best)
		slog.Debug("Checkpoint recorded", "evals", r.evals, "best", r.best, "checkpoint", len(r.curve))
	}
	return v
}

// Evaluations is the number of calls to Eval so far.
func (r *Recorder) Evaluations() int {
	return r.evals
}

// Best is the lowest value seen, +Inf before the first evaluation.
func (r *Recorder) Best() float64 {
	return r.best
}

// Done reports whether every checkpoint has been sampled.
func (r *Recorder) Done() bool {
	return len(r.curve) >= r.checkpoints
}

// Budget is the number of evaluations needed to fill the curve.
func (r *Recorder) Budget() int {
	return r.interval * r.checkpoints
}

// Curve returns the sampled curve with exactly checkpoints entries. When the
// optimizer stopped early the remaining entries repeat the final best value;
// without any evaluation they are NaN.
func (r *Recorder) Curve() []float64 {
	out := make([]float64, r.checkpoints)
	copy(out, r.curve)
	fill := r.best
	if r.evals == 0 {
		fill = math.NaN()
	}
	for i := len(r.curve); i < len(out); i++ {
		out[i] = fill
	}
	return out
}
