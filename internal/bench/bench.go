// Package bench generates trial tables by running an optimizer repeatedly on
// a benchmark function. Each trial is one row of best-so-far values sampled at
// fixed evaluation checkpoints.
package bench

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cwbudde/trialstat/internal/naming"
	"github.com/cwbudde/trialstat/internal/opt"
	"github.com/cwbudde/trialstat/internal/table"
)

// Config describes one benchmark experiment.
type Config struct {
	Algorithm string
	Function  string
	Dim       int

	Trials      int
	Checkpoints int
	// Interval is the number of evaluations between checkpoints.
	Interval int

	// Iterations and PopSize configure population-based optimizers.
	Iterations int
	PopSize    int

	// Seed of the first trial; trial i uses Seed+i.
	Seed int64

	// Tag is an optional trailing name field, e.g. a parameter variant.
	Tag string

	OutputDir string
}

// DefaultConfig returns an 81-checkpoint Mayfly run on Ackley.
func DefaultConfig() Config {
	return Config{
		Algorithm:   "mayfly",
		Function:    "ackley",
		Dim:         10,
		Trials:      30,
		Checkpoints: 81,
		Interval:    100,
		Iterations:  200,
		PopSize:     opt.MinPopSize,
		Seed:        1,
	}
}

// Validate checks the config before any trial runs.
func (c Config) Validate() error {
	f, ok := opt.Lookup(c.Function)
	if !ok {
		return fmt.Errorf("unknown function %q (available: %s)", c.Function, strings.Join(opt.Functions(), ", "))
	}
	if err := f.CheckDim(c.Dim); err != nil {
		return err
	}
	if c.Trials < 1 {
		return fmt.Errorf("trials must be positive, got %d", c.Trials)
	}
	if c.Checkpoints < 1 {
		return fmt.Errorf("checkpoints must be positive, got %d", c.Checkpoints)
	}
	if c.Interval < 1 {
		return fmt.Errorf("interval must be positive, got %d", c.Interval)
	}
	if strings.Contains(c.Tag, naming.FieldSep) {
		return fmt.Errorf("tag %q must not contain %q", c.Tag, naming.FieldSep)
	}
	_, err := c.optimizer(0)
	return err
}

func (c Config) optimizer(trial int) (opt.Optimizer, error) {
	return opt.New(c.Algorithm, opt.Params{
		Iterations:  c.Iterations,
		PopSize:     c.PopSize,
		Evaluations: c.Interval * c.Checkpoints,
		Seed:        c.Seed + int64(trial),
	})
}

// FileName is the result file name:
// result_reals_<algorithm>+<function>+d<dim>[+<tag>].csv.
func (c Config) FileName() string {
	f, ok := opt.Lookup(c.Function)
	fn := c.Function
	if ok {
		fn = f.Name
	}
	fields := []string{c.Algorithm, fn, "d" + strconv.Itoa(c.Dim)}
	if c.Tag != "" {
		fields = append(fields, c.Tag)
	}
	return "result_reals_" + strings.Join(fields, naming.FieldSep) + ".csv"
}

// Run executes the trials and writes the result table. It returns the path
// written. Cancellation is checked between trials; a cancelled run writes
// nothing.
func Run(ctx context.Context, cfg Config) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", fmt.Errorf("invalid benchmark config: %w", err)
	}
	f, _ := opt.Lookup(cfg.Function)
	lower, upper := f.Bounds(cfg.Dim)

	slog.Info("Starting benchmark",
		"algorithm", cfg.Algorithm,
		"function", f.Name,
		"dim", cfg.Dim,
		"trials", cfg.Trials,
		"checkpoints", cfg.Checkpoints,
		"interval", cfg.Interval,
	)

	start := time.Now()
	rows := make([][]string, 0, cfg.Trials)
	for i := 0; i < cfg.Trials; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		o, err := cfg.optimizer(i)
		if err != nil {
			return "", err
		}
		rec := opt.NewRecorder(f.Eval, cfg.Interval, cfg.Checkpoints)
		o.Run(rec.Eval, lower, upper, cfg.Dim)

		if !rec.Done() {
			slog.Warn("Trial ended before the last checkpoint",
				"trial", i+1, "evaluations", rec.Evaluations(), "budget", rec.Budget(), "best", rec.Best())
		}
		slog.Debug("Trial complete", "trial", i+1, "best", rec.Best(), "evaluations", rec.Evaluations())

		curve := rec.Curve()
		row := make([]string, len(curve))
		for k, v := range curve {
			row[k] = table.FormatFloat(v)
		}
		rows = append(rows, row)
	}

	path := filepath.Join(cfg.OutputDir, cfg.FileName())
	if err := table.WriteFile(path, table.New(rows)); err != nil {
		return "", fmt.Errorf("failed to save results: %w", err)
	}

	slog.Info("Benchmark complete", "path", path, "elapsed", time.Since(start))
	return path, nil
}
