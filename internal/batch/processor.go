package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cwbudde/trialstat/internal/naming"
	"github.com/cwbudde/trialstat/internal/stats"
	"github.com/cwbudde/trialstat/internal/table"
)

// Processor appends summary rows to every trial table in InputDir and writes
// the results to OutputDir.
type Processor struct {
	InputDir  string
	OutputDir string

	// Naming selects the output file name: naming.SuffixProcessed
	// (<stem>_processed.csv, the default) or naming.PrefixProcessed
	// (processed_<name>).
	Naming string

	// Level is the confidence level; zero means stats.DefaultLevel.
	Level float64

	Recorder Recorder
}

// Run processes the directory. See Walk for error semantics. The output
// directory is only created once the input directory is known to be readable.
func (p *Processor) Run(ctx context.Context) (*Result, error) {
	if _, err := naming.ProcessedName("x.csv", p.Naming); err != nil {
		return nil, err
	}
	if _, err := ListCSV(p.InputDir); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(p.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	return Walk(ctx, p.InputDir, p.Recorder, p.processFile)
}

func (p *Processor) level() float64 {
	if p.Level == 0 {
		return stats.DefaultLevel
	}
	return p.Level
}

func (p *Processor) processFile(path string, fr *FileResult) error {
	in, err := table.ReadFile(path)
	if err != nil {
		return err
	}
	fr.Rows, fr.Cols = in.Rows(), in.Cols()

	out, err := stats.AppendSummary(in, p.level())
	if err != nil {
		return fmt.Errorf("%s: %w", fr.File, err)
	}

	name, err := naming.ProcessedName(fr.File, p.Naming)
	if err != nil {
		return err
	}
	outPath := filepath.Join(p.OutputDir, name)
	if err := table.WriteFile(outPath, out); err != nil {
		return fmt.Errorf("failed to save %s: %w", outPath, err)
	}

	fr.Output = outPath
	return nil
}
