// Package naming parses result file names of the form
//
//	[result_reals_]<algorithm>+<group>+<group>+<variant...>[_processed].csv
//
// into the parts used for grouping plots, labelling series and captioning
// tables.
package naming

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
)

const (
	// FieldSep separates the fields of a result stem.
	FieldSep = "+"

	// DefaultGroup is the group of names with fewer than three fields.
	DefaultGroup = "default_group"

	resultPrefix    = "result_reals_"
	processedPrefix = "processed_"
	processedSuffix = "_processed"
	csvExt          = ".csv"
)

// Name is a parsed result file name.
type Name struct {
	// File is the base name as given (directory stripped).
	File string
	// Stem is the name with extension and known decorations removed.
	Stem string
	// Fields are the FieldSep-separated parts of Stem.
	Fields []string
}

// SchemeError reports a file name that does not follow the naming scheme.
type SchemeError struct {
	File   string
	Reason string
}

func (e *SchemeError) Error() string {
	return fmt.Sprintf("naming: %q: %s", e.File, e.Reason)
}

// Parse parses a result file name. Directory components are ignored.
func Parse(filename string) (Name, error) {
	file := filepath.Base(filename)
	if filename == "" || file == "." || file == string(filepath.Separator) {
		return Name{}, &SchemeError{File: filename, Reason: "empty name"}
	}
	if !strings.EqualFold(filepath.Ext(file), csvExt) {
		return Name{}, &SchemeError{File: file, Reason: "not a .csv file"}
	}

	stem := Clean(file)
	if stem == "" {
		return Name{}, &SchemeError{File: file, Reason: "empty stem"}
	}

	return Name{
		File:   file,
		Stem:   stem,
		Fields: strings.Split(stem, FieldSep),
	}, nil
}

// Clean strips the extension and the known prefixes and suffix.
func Clean(file string) string {
	stem := strings.TrimSuffix(file, filepath.Ext(file))
	stem = strings.TrimPrefix(stem, processedPrefix)
	stem = strings.TrimPrefix(stem, resultPrefix)
	stem = strings.TrimSuffix(stem, processedSuffix)
	return stem
}

// Group identifies the comparison a file belongs to: the second and third
// fields joined, or the second field alone when there are exactly three.
func (n Name) Group() string {
	var g string
	switch {
	case len(n.Fields) >= 4:
		g = strings.Join(n.Fields[1:3], FieldSep)
	case len(n.Fields) == 3:
		g = n.Fields[1]
	default:
		return DefaultGroup
	}
	g = strings.Trim(g, "_")
	if g == "" {
		return DefaultGroup
	}
	return g
}

// Algorithm is the series label: the first field plus whatever follows the
// group fields.
func (n Name) Algorithm() string {
	switch {
	case len(n.Fields) >= 4:
		return n.Fields[0] + FieldSep + strings.Join(n.Fields[3:], FieldSep)
	case len(n.Fields) >= 2:
		return n.Fields[0] + FieldSep + strings.Join(n.Fields[2:], FieldSep)
	}
	return n.Stem
}

// TableName is the part of the file name between the first and the last
// underscore, or the name without extension when there are fewer than two
// underscores.
func (n Name) TableName() string {
	parts := strings.Split(n.File, "_")
	if len(parts) > 2 {
		return strings.Join(parts[1:len(parts)-1], "_")
	}
	return strings.TrimSuffix(n.File, filepath.Ext(n.File))
}

// Caption is TableName made readable for a table caption.
func (n Name) Caption() string {
	c := strings.ReplaceAll(n.TableName(), "_", " ")
	return strings.ReplaceAll(c, "reals", "")
}

// Sanitize replaces every rune that is not a letter or digit with '_'.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, s)
}

// Output naming variants for processed files.
const (
	SuffixProcessed = "suffix"
	PrefixProcessed = "prefix"
)

// ProcessedName derives the output file name for a processed input file.
func ProcessedName(file, variant string) (string, error) {
	file = filepath.Base(file)
	switch variant {
	case "", SuffixProcessed:
		return strings.TrimSuffix(file, filepath.Ext(file)) + processedSuffix + csvExt, nil
	case PrefixProcessed:
		return processedPrefix + file, nil
	}
	return "", fmt.Errorf("unknown output naming %q (want %s or %s)", variant, SuffixProcessed, PrefixProcessed)
}
