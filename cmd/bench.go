package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cwbudde/trialstat/internal/batch"
	"github.com/cwbudde/trialstat/internal/bench"
	"github.com/cwbudde/trialstat/internal/opt"
	"github.com/cwbudde/trialstat/internal/store"
)

var benchCfg = bench.DefaultConfig()

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Generate trial tables by running an optimizer on a benchmark function",
	Long: `Runs --trials independent, seeded trials of --algorithm on --function and
records the best value found every --interval evaluations, --checkpoints
times. Writes result_reals_<algorithm>+<function>+d<dim>[+<tag>].csv to --out.`,
	RunE: runBench,
}

func init() {
	d := bench.DefaultConfig()
	f := benchCmd.Flags()
	f.StringVar(&benchCfg.Algorithm, "algorithm", d.Algorithm, "Optimizer: "+strings.Join(opt.Optimizers(), ", "))
	f.StringVar(&benchCfg.Function, "function", d.Function, "Benchmark function: "+strings.Join(opt.Functions(), ", "))
	f.IntVar(&benchCfg.Dim, "dim", d.Dim, "Problem dimension")
	f.IntVar(&benchCfg.Trials, "trials", d.Trials, "Number of trials")
	f.IntVar(&benchCfg.Checkpoints, "checkpoints", d.Checkpoints, "Checkpoints per trial")
	f.IntVar(&benchCfg.Interval, "interval", d.Interval, "Evaluations between checkpoints")
	f.IntVar(&benchCfg.Iterations, "iters", d.Iterations, "Max iterations (mayfly)")
	f.IntVar(&benchCfg.PopSize, "pop", d.PopSize, "Population size (mayfly)")
	f.Int64Var(&benchCfg.Seed, "seed", d.Seed, "Seed of the first trial")
	f.StringVar(&benchCfg.Tag, "tag", "", "Optional trailing name field")
	f.StringVar(&benchCfg.OutputDir, "out", "", "Output directory (required)")

	rootCmd.AddCommand(benchCmd)
}

func runBench(cmd *cobra.Command, args []string) error {
	if err := requireFlag("out", benchCfg.OutputDir); err != nil {
		return err
	}

	var path string
	err := withRun("bench", "", benchCfg.OutputDir, func(rec batch.Recorder) error {
		var err error
		path, err = bench.Run(cmd.Context(), benchCfg)
		ev := store.FileEvent{File: benchCfg.FileName(), Output: path, Outcome: batch.Outcome(err)}
		if err != nil {
			ev.Error = err.Error()
		} else {
			ev.Rows, ev.Cols = benchCfg.Trials, benchCfg.Checkpoints
		}
		rec.Record(ev)
		return err
	})
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %s (%d trials x %d checkpoints)\n", path, benchCfg.Trials, benchCfg.Checkpoints)
	return nil
}
