// Package config defines core configuration types for changelint.
// These types are pure data structures; loading and precedence live in internal/configloader.
package config

// Severity represents the severity level of a lint diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// IsValid returns true if the severity is known.
func (s Severity) IsValid() bool {
	return s == SeverityError || s == SeverityWarning
}

// RuleConfig holds per-rule configuration options.
type RuleConfig struct {
	Severity *string `json:"severity,omitempty" yaml:"severity,omitempty"`
}

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatShort OutputFormat = "short"
	FormatFull  OutputFormat = "full"
	FormatJSON  OutputFormat = "json"
	FormatJSONL OutputFormat = "jsonl"
	FormatSARIF OutputFormat = "sarif"
)

// OutputFormats returns every supported output format.
func OutputFormats() []OutputFormat {
	return []OutputFormat{FormatShort, FormatFull, FormatJSON, FormatJSONL, FormatSARIF}
}

// IsValid returns true if the format is supported.
func (f OutputFormat) IsValid() bool {
	for _, known := range OutputFormats() {
		if f == known {
			return true
		}
	}
	return false
}

// RuleFormat controls how rule identifiers appear in output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // "missing-title"
	RuleFormatID       RuleFormat = "id"       // "E001"
	RuleFormatCombined RuleFormat = "combined" // "E001/missing-title"
)

// IsValid returns true if the rule format is known.
func (r RuleFormat) IsValid() bool {
	switch r {
	case RuleFormatName, RuleFormatID, RuleFormatCombined:
		return true
	default:
		return false
	}
}

// ColorMode controls colored terminal output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// DefaultFileName is the changelog checked when no path is given.
const DefaultFileName = "CHANGELOG.md"

// OutputConfig holds rendering options.
type OutputConfig struct {
	// Format is the diagnostic output format.
	Format OutputFormat `json:"format,omitempty" yaml:"format,omitempty"`

	// RuleFormat controls how rule identifiers are printed.
	RuleFormat RuleFormat `json:"rule_format,omitempty" yaml:"rule_format,omitempty"`

	// Color is "auto", "always" or "never".
	Color string `json:"color,omitempty" yaml:"color,omitempty"`

	// Summary prints a one-line summary after diagnostics.
	Summary bool `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// Config is the root configuration structure for changelint.
type Config struct {
	// Select lists rule codes or names to run. Empty means the catalog defaults.
	Select []string `json:"select,omitempty" yaml:"select,omitempty"`

	// Ignore lists rule codes or names never to run.
	Ignore []string `json:"ignore,omitempty" yaml:"ignore,omitempty"`

	// Rules contains per-rule configuration keyed by rule code.
	Rules map[string]RuleConfig `json:"rules,omitempty" yaml:"rules,omitempty"`

	// Files lists the file names picked up when a directory is checked.
	Files []string `json:"files,omitempty" yaml:"files,omitempty"`

	// Exclude contains glob patterns for paths to skip.
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty"`

	// Jobs is the number of parallel workers. 0 means GOMAXPROCS.
	Jobs int `json:"jobs,omitempty" yaml:"jobs,omitempty"`

	// Strict makes warnings fail the run.
	Strict bool `json:"strict,omitempty" yaml:"strict,omitempty"`

	// Output configures rendering.
	Output OutputConfig `json:"output" yaml:"output"`

	// CLI-level options (not persisted to config files).

	// Paths are the files or directories to check.
	Paths []string `json:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Rules: make(map[string]RuleConfig),
		Files: []string{DefaultFileName},
		Jobs:  0,
		Output: OutputConfig{
			Format:     FormatShort,
			RuleFormat: RuleFormatID,
			Color:      ColorAuto,
		},
	}
}

// SeverityFor returns the configured severity override for a rule, if any.
func (c *Config) SeverityFor(ruleID string) (Severity, bool) {
	if c == nil {
		return "", false
	}
	rc, ok := c.Rules[ruleID]
	if !ok || rc.Severity == nil {
		return "", false
	}
	return Severity(*rc.Severity), true
}
