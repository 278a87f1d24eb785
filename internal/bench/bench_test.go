package bench

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/trialstat/internal/naming"
	"github.com/cwbudde/trialstat/internal/table"
)

func randomConfig(dir string) Config {
	cfg := DefaultConfig()
	cfg.Algorithm = "random"
	cfg.Function = "sphere"
	cfg.Dim = 3
	cfg.Trials = 4
	cfg.Checkpoints = 6
	cfg.Interval = 10
	cfg.OutputDir = dir
	return cfg
}

func TestFileName(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "result_reals_mayfly+Ackley+d10.csv", cfg.FileName())

	cfg.Tag = "pop40"
	assert.Equal(t, "result_reals_mayfly+Ackley+d10+pop40.csv", cfg.FileName())

	n, err := naming.Parse(cfg.FileName())
	require.NoError(t, err)
	assert.Equal(t, "Ackley+d10", n.Group())
	assert.Equal(t, "mayfly+pop40", n.Algorithm())
}

func TestValidate(t *testing.T) {
	base := randomConfig("")
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown function", func(c *Config) { c.Function = "nope" }},
		{"easom needs 2d", func(c *Config) { c.Function = "easom"; c.Dim = 3 }},
		{"no trials", func(c *Config) { c.Trials = 0 }},
		{"no checkpoints", func(c *Config) { c.Checkpoints = 0 }},
		{"no interval", func(c *Config) { c.Interval = 0 }},
		{"tag with separator", func(c *Config) { c.Tag = "a+b" }},
		{"unknown optimizer", func(c *Config) { c.Algorithm = "anneal" }},
		{"small mayfly population", func(c *Config) { c.Algorithm = "mayfly"; c.PopSize = 4 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	cfg := randomConfig(dir)

	path, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "result_reals_random+Sphere+d3.csv"), path)

	tbl, err := table.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 4, tbl.Rows())
	assert.Equal(t, 6, tbl.Cols())

	for r := 0; r < tbl.Rows(); r++ {
		prev, ok := tbl.Float(r, 0)
		require.True(t, ok)
		for c := 1; c < tbl.Cols(); c++ {
			v, ok := tbl.Float(r, c)
			require.True(t, ok)
			assert.LessOrEqual(t, v, prev, "row %d col %d", r, c)
			prev = v
		}
	}

	// Distinct seeds give distinct trials.
	assert.NotEqual(t, tbl.Row(0), tbl.Row(1))
}

func TestRun_Deterministic(t *testing.T) {
	cfg := randomConfig(t.TempDir())
	p1, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	t1, err := table.ReadFile(p1)
	require.NoError(t, err)

	cfg.OutputDir = t.TempDir()
	p2, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	t2, err := table.ReadFile(p2)
	require.NoError(t, err)

	assert.Equal(t, t1.Records(), t2.Records())
}

func TestRun_Mayfly(t *testing.T) {
	cfg := randomConfig(t.TempDir())
	cfg.Algorithm = "mayfly"
	cfg.Trials = 2
	cfg.Iterations = 20
	cfg.PopSize = 20

	path, err := Run(context.Background(), cfg)
	require.NoError(t, err)

	tbl, err := table.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Rows())
	assert.True(t, tbl.IsNumeric(cfg.Checkpoints-1))
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, randomConfig(t.TempDir()))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_Invalid(t *testing.T) {
	cfg := randomConfig(t.TempDir())
	cfg.Trials = 0
	_, err := Run(context.Background(), cfg)
	assert.Error(t, err)
}
