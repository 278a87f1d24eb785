package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cwbudde/trialstat/internal/batch"
	"github.com/cwbudde/trialstat/internal/config"
	"github.com/cwbudde/trialstat/internal/store"
)

var (
	logLevel   string
	logFormat  string
	configPath string
	dataDir    string
	logger     *slog.Logger
	cfgFile    *config.File
)

var rootCmd = &cobra.Command{
	Use:   "trialstat",
	Short: "Summary statistics, tables and plots for optimization benchmark trials",
	Long: `trialstat post-processes repeated-trial benchmark results. Each input is a
header-less CSV with one row per trial and one column per evaluation checkpoint.
It appends mean, standard deviation and Student-t confidence bounds to every
table, renders comparison plots and emits LaTeX or xlsx summary tables.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "json", "Log format (json, text)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", config.DefaultDataDir, "Directory for run logs (env "+config.EnvDataDir+")")
}

func setup(cmd *cobra.Command, args []string) error {
	if configPath != "" {
		f, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfgFile = f

		flags := cmd.Flags()
		if f.LogLevel != "" && !flags.Changed("log-level") {
			logLevel = f.LogLevel
		}
		if f.LogFormat != "" && !flags.Changed("log-format") {
			logFormat = f.LogFormat
		}
	}

	var section map[string]any
	if cfgFile != nil {
		section = cfgFile.Section(commandKey(cmd))
		if err := config.Apply(cmd.Flags(), section); err != nil {
			return fmt.Errorf("config %s [%s]: %w", configPath, commandKey(cmd), err)
		}
	}

	logger = newLogger(logOutput(cmd), logLevel, logFormat)
	slog.SetDefault(logger)
	if cfgFile != nil {
		slog.Debug("Config applied", "path", configPath, "section", commandKey(cmd), "keys", len(section))
	}

	dataDir = config.DataDir(dataDir, cmd.Flags().Changed("data-dir"), cfgFile)
	return nil
}

// logOutput keeps stdout clean for commands whose product is written there.
func logOutput(cmd *cobra.Command) io.Writer {
	if cmd == tableCmd && tableOut == "" {
		return os.Stderr
	}
	return os.Stdout
}

func newLogger(w io.Writer, level, format string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	if strings.ToLower(format) == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler)
}

// commandKey is the command path without the binary name, e.g. "plot groups".
func commandKey(cmd *cobra.Command) string {
	parts := strings.Fields(cmd.CommandPath())
	if len(parts) <= 1 {
		return ""
	}
	return strings.Join(parts[1:], " ")
}

// checkLevel rejects confidence levels outside (0, 1).
func checkLevel(level float64) error {
	if !(level > 0 && level < 1) {
		return fmt.Errorf("--level must be in (0, 1), got %g", level)
	}
	return nil
}

func requireFlag(name, value string) error {
	if value == "" {
		return fmt.Errorf("--%s is required (flag or config file)", name)
	}
	return nil
}

// withRun opens a run log, hands fn the session as its recorder and saves the
// log with fn's outcome.
func withRun(command, inputDir, outputDir string, fn func(rec batch.Recorder) error) error {
	fs, err := store.NewFSStore(dataDir)
	if err != nil {
		return fmt.Errorf("failed to open run store: %w", err)
	}
	sess, err := store.Begin(fs, command, inputDir, outputDir)
	if err != nil {
		return err
	}

	runErr := fn(sess)
	if err := sess.End(runErr); err != nil {
		slog.Error("Failed to save run log", "run_id", sess.Run().ID, "error", err)
	}
	return runErr
}

func printResult(res *batch.Result) {
	if res == nil {
		return
	}
	fmt.Printf("%d processed, %d skipped, %d failed\n",
		res.Count(store.OutcomeProcessed),
		res.Count(store.OutcomeSkipped),
		res.Count(store.OutcomeFailed),
	)
}
