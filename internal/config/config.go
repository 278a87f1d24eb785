// Package config loads the optional YAML configuration file. The file holds
// global settings plus one section per command whose keys are that command's
// flag names:
//
//	data_dir: ./trialstat-data
//	log_level: info
//	summarize:
//	  in: results/raw
//	  out: results/processed
//	plot:
//	  groups:
//	    columns: 81
//	    processed: true
//
// Flags given on the command line always win over the file.
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// EnvDataDir overrides the default data directory.
const EnvDataDir = "TRIALSTAT_DATA_DIR"

// DefaultDataDir holds run logs when nothing else is configured.
const DefaultDataDir = "./trialstat-data"

// File is a parsed configuration file.
type File struct {
	DataDir   string `yaml:"data_dir"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Commands holds the per-command sections, nested the way commands are.
	Commands map[string]any `yaml:",inline"`
}

// Load reads and validates the file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &f, nil
}

// Validate checks the global settings.
func (f *File) Validate() error {
	switch strings.ToLower(f.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level: unknown level %q", f.LogLevel)
	}
	switch strings.ToLower(f.LogFormat) {
	case "", "json", "text":
	default:
		return fmt.Errorf("log_format: unknown format %q", f.LogFormat)
	}
	for name, v := range f.Commands {
		if _, ok := v.(map[string]any); !ok {
			return fmt.Errorf("%s: expected a section, got %T", name, v)
		}
	}
	return nil
}

// Section returns the settings for a command path such as "plot groups".
// Nested subcommand sections are not part of the result. A missing section
// yields nil.
func (f *File) Section(path string) map[string]any {
	if f == nil {
		return nil
	}

	var cur any = f.Commands
	for _, seg := range strings.Fields(path) {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur, ok = m[seg]
		if !ok {
			return nil
		}
	}

	m, ok := cur.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		if _, nested := v.(map[string]any); nested {
			continue
		}
		out[k] = v
	}
	return out
}

// Apply sets every flag named in section that was not given on the command
// line. Keys that name no flag are an error.
func Apply(flags *pflag.FlagSet, section map[string]any) error {
	keys := make([]string, 0, len(section))
	for k := range section {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fl := flags.Lookup(k)
		if fl == nil {
			return fmt.Errorf("unknown setting %q", k)
		}
		if fl.Changed {
			continue
		}
		if err := flags.Set(k, format(section[k])); err != nil {
			return fmt.Errorf("setting %q: %w", k, err)
		}
	}
	return nil
}

func format(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []any:
		parts := make([]string, len(x))
		for i, p := range x {
			parts[i] = format(p)
		}
		return strings.Join(parts, ",")
	}
	return fmt.Sprint(v)
}

// DataDir resolves the run-log directory: an explicit flag value, then the
// environment, then the file, then DefaultDataDir.
func DataDir(flag string, flagSet bool, f *File) string {
	if flagSet && flag != "" {
		return flag
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return env
	}
	if f != nil && f.DataDir != "" {
		return f.DataDir
	}
	if flag != "" {
		return flag
	}
	return DefaultDataDir
}
