package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cwbudde/trialstat/internal/batch"
	"github.com/cwbudde/trialstat/internal/naming"
	"github.com/cwbudde/trialstat/internal/opt"
	"github.com/cwbudde/trialstat/internal/plot"
	"github.com/cwbudde/trialstat/internal/stats"
)

var (
	plotIn        string
	plotOut       string
	plotProcessed bool
	plotWidth     int
	plotHeight    int
	plotOptimum   float64
	plotNoOptimum bool

	groupColumns   int
	groupSingle    bool
	groupLevel     float64
	groupErrorBars int

	trialsPerPlot int
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Render convergence charts",
}

var plotGroupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "One comparison chart per result group",
	Long: `Groups the CSVs in --in by the function and dimension fields of their
names and draws, per group, the mean curve of every file with confidence
interval bars. The reference line sits at the known optimum of the group's
function unless --optimum is given.`,
	RunE: runPlotGroups,
}

var plotTrialsCmd = &cobra.Command{
	Use:   "trials",
	Short: "Individual trial curves, a few trials per chart",
	RunE:  runPlotTrials,
}

func init() {
	for _, c := range []*cobra.Command{plotGroupsCmd, plotTrialsCmd} {
		c.Flags().StringVar(&plotIn, "in", "", "Input directory of CSVs (required)")
		c.Flags().StringVar(&plotOut, "out", "", "Output directory for PNGs (required)")
		c.Flags().BoolVar(&plotProcessed, "processed", false, "Inputs carry appended summary rows; drop them first")
		c.Flags().IntVar(&plotWidth, "width", 1400, "Chart width in pixels")
		c.Flags().IntVar(&plotHeight, "height", 800, "Chart height in pixels")
		c.Flags().Float64Var(&plotOptimum, "optimum", 0, "Reference line value")
		c.Flags().BoolVar(&plotNoOptimum, "no-optimum", false, "Do not draw the reference line")
		plotCmd.AddCommand(c)
	}

	plotGroupsCmd.Flags().IntVar(&groupColumns, "columns", 0, "Keep the first N checkpoints; skip narrower files (0 = all)")
	plotGroupsCmd.Flags().BoolVar(&groupSingle, "single", false, "Draw all files into one chart")
	plotGroupsCmd.Flags().Float64Var(&groupLevel, "level", stats.DefaultLevel, "Confidence level of the bars")
	plotGroupsCmd.Flags().IntVar(&groupErrorBars, "error-bars", 15, "Approximate number of CI bars per curve")

	plotTrialsCmd.Flags().IntVar(&trialsPerPlot, "per-plot", plot.DefaultPerPlot, "Trials per chart")

	rootCmd.AddCommand(plotCmd)
}

func chartOptions() plot.Options {
	o := plot.DefaultOptions()
	o.Width, o.Height = plotWidth, plotHeight
	o.Optimum = plotOptimum
	o.ShowOptimum = !plotNoOptimum
	return o
}

func checkPlotFlags() error {
	if err := requireFlag("in", plotIn); err != nil {
		return err
	}
	if err := requireFlag("out", plotOut); err != nil {
		return err
	}
	if plotWidth < 1 || plotHeight < 1 {
		return fmt.Errorf("chart size must be positive, got %dx%d", plotWidth, plotHeight)
	}
	return nil
}

// groupOptimum reads the function name from the first field of a group and
// returns its known minimum.
func groupOptimum(group string) (float64, bool) {
	fn, _, _ := strings.Cut(group, naming.FieldSep)
	f, ok := opt.Lookup(fn)
	if !ok {
		return 0, false
	}
	return f.Optimum, true
}

func runPlotGroups(cmd *cobra.Command, args []string) error {
	if err := checkPlotFlags(); err != nil {
		return err
	}
	if err := checkLevel(groupLevel); err != nil {
		return err
	}

	opts := plot.GroupOptions{
		InputDir:  plotIn,
		OutputDir: plotOut,
		Columns:   groupColumns,
		Processed: plotProcessed,
		Single:    groupSingle,
		Level:     groupLevel,
		Chart:     chartOptions(),
	}
	opts.Chart.ErrorBars = groupErrorBars
	if !cmd.Flags().Changed("optimum") {
		opts.Optimum = groupOptimum
	}

	var res *plot.GroupResult
	err := withRun("plot groups", plotIn, plotOut, func(rec batch.Recorder) error {
		opts.Recorder = rec
		var err error
		res, err = plot.Groups(cmd.Context(), opts)
		return err
	})
	if res != nil {
		printResult(res.Result)
		fmt.Printf("Wrote %d chart(s) to %s\n", len(res.Charts), plotOut)
	}
	return err
}

func runPlotTrials(cmd *cobra.Command, args []string) error {
	if err := checkPlotFlags(); err != nil {
		return err
	}
	if trialsPerPlot < 1 {
		return fmt.Errorf("--per-plot must be positive, got %d", trialsPerPlot)
	}

	slog.Info("Starting trial plots", "in", plotIn, "out", plotOut, "per_plot", trialsPerPlot)

	var res *batch.Result
	err := withRun("plot trials", plotIn, plotOut, func(rec batch.Recorder) error {
		var err error
		res, err = plot.TrialCharts(cmd.Context(), plot.TrialOptions{
			InputDir:  plotIn,
			OutputDir: plotOut,
			PerPlot:   trialsPerPlot,
			Processed: plotProcessed,
			Chart:     chartOptions(),
			Recorder:  rec,
		})
		return err
	})
	printResult(res)
	return err
}
