package reporter

import (
	"fmt"
	"io"
	"os"

	"github.com/yaklabco/changelint/pkg/config"
	"github.com/yaklabco/changelint/pkg/lint"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// fullContextLines is the number of source lines shown by the full format.
const fullContextLines = 3

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format config.OutputFormat

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowSummary appends per-rule and per-file tables to text output.
	ShowSummary bool

	// Compact disables indentation in json and sarif output.
	Compact bool

	// RuleFormat controls how rule identifiers appear in output.
	RuleFormat config.RuleFormat

	// Catalog supplies rule descriptions for SARIF output. Optional.
	Catalog *lint.Catalog

	// ToolVersion is reported as the SARIF driver version.
	ToolVersion string

	// TermWidth caps the summary table width. Zero detects it from Writer.
	TermWidth int
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:     os.Stdout,
		Format:     config.FormatShort,
		Color:      config.ColorAuto,
		RuleFormat: config.RuleFormatID,
	}
}

// ParseFormat parses a format string, returning an error for unknown formats.
// The empty string selects the short format.
func ParseFormat(formatStr string) (config.OutputFormat, error) {
	if formatStr == "" {
		return config.FormatShort, nil
	}
	format := config.OutputFormat(formatStr)
	if !format.IsValid() {
		return "", fmt.Errorf("unknown format %q; valid formats: short, full, json, jsonl, sarif", formatStr)
	}
	return format, nil
}
