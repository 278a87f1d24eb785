package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cwbudde/trialstat/internal/batch"
	"github.com/cwbudde/trialstat/internal/naming"
	"github.com/cwbudde/trialstat/internal/stats"
)

var (
	summarizeIn     string
	summarizeOut    string
	summarizeNaming string
	summarizeLevel  float64
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Append summary statistics to every trial table in a directory",
	Long: `Reads every CSV in --in, appends four rows (mean, standard deviation,
confidence-interval lower and upper bound) and writes the result to --out.
Text columns are passed through. A file that cannot be processed is logged
and recorded; the remaining files are still processed.`,
	RunE: runSummarize,
}

func init() {
	summarizeCmd.Flags().StringVar(&summarizeIn, "in", "", "Input directory of trial CSVs (required)")
	summarizeCmd.Flags().StringVar(&summarizeOut, "out", "", "Output directory (required)")
	summarizeCmd.Flags().StringVar(&summarizeNaming, "naming", naming.SuffixProcessed, "Output file naming: suffix (<stem>_processed.csv) or prefix (processed_<name>)")
	summarizeCmd.Flags().Float64Var(&summarizeLevel, "level", stats.DefaultLevel, "Confidence level of the interval")

	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	if err := requireFlag("in", summarizeIn); err != nil {
		return err
	}
	if err := requireFlag("out", summarizeOut); err != nil {
		return err
	}
	if err := checkLevel(summarizeLevel); err != nil {
		return err
	}

	slog.Info("Starting summarize", "in", summarizeIn, "out", summarizeOut, "level", summarizeLevel)

	var res *batch.Result
	err := withRun("summarize", summarizeIn, summarizeOut, func(rec batch.Recorder) error {
		p := &batch.Processor{
			InputDir:  summarizeIn,
			OutputDir: summarizeOut,
			Naming:    summarizeNaming,
			Level:     summarizeLevel,
			Recorder:  rec,
		}
		var err error
		res, err = p.Run(cmd.Context())
		return err
	})
	printResult(res)
	return err
}
