package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/trialstat/internal/batch"
	"github.com/cwbudde/trialstat/internal/collect"
)

var (
	collectSrc string
	collectDst string
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Copy result CSVs from an experiment tree into one directory",
	Long: `Walks --src recursively and copies every CSV into --dst, keeping base
names. Files with a name seen before overwrite the earlier copy.`,
	RunE: runCollect,
}

func init() {
	collectCmd.Flags().StringVar(&collectSrc, "src", "", "Experiment tree to search (required)")
	collectCmd.Flags().StringVar(&collectDst, "dst", "", "Flat destination directory (required)")

	rootCmd.AddCommand(collectCmd)
}

func runCollect(cmd *cobra.Command, args []string) error {
	if err := requireFlag("src", collectSrc); err != nil {
		return err
	}
	if err := requireFlag("dst", collectDst); err != nil {
		return err
	}

	var res *collect.Result
	err := withRun("collect", collectSrc, collectDst, func(rec batch.Recorder) error {
		var err error
		res, err = collect.Run(cmd.Context(), collectSrc, collectDst, rec)
		return err
	})
	if res != nil {
		fmt.Printf("%d copied, %d failed, %d duplicate name(s)\n", res.Copied, res.Failed, res.Duplicates)
	}
	return err
}
