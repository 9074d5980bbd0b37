package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full includes all rules with their documentation.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string

	// Rules describes the rule catalog, in catalog order.
	Rules []RuleInfo
}

// RuleInfo contains rule metadata for template generation.
type RuleInfo struct {
	ID          string
	Name        string
	Description string
	Severity    Severity
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateJSON(opts)
	}
	if opts.Full {
		return generateFullTemplate(opts), nil
	}
	return generateMinimalTemplate(), nil
}

func generateMinimalTemplate() []byte {
	return []byte(DefaultTemplateHeader() + `

# Rules to run (codes or names). Omit to run every default rule.
# select:
#   - E001
#   - missing-unreleased

# Rules never to run.
# ignore:
#   - E400

# Per-rule severity overrides: error or warning.
# rules:
#   E400:
#     severity: warning

# File names checked when a directory is given.
files:
  - CHANGELOG.md

# Output format: short, full, json, jsonl or sarif.
output:
  format: short
`)
}

func generateFullTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`
#
# Full template. Every rule is listed with its default severity.
# Uncomment and modify settings as needed.

# Rules to run (codes or names). Omit to run every default rule.
# select: []

# Rules never to run.
# ignore: []

# File names checked when a directory is given.
files:
  - CHANGELOG.md

# Glob patterns for paths to skip.
exclude:
  - "node_modules/**"
  - "vendor/**"

# Number of parallel workers (0 = auto based on CPU cores).
jobs: 0

# Treat warnings as failures.
strict: false

output:
  # short, full, json, jsonl or sarif
  format: short
  # id, name or combined
  rule_format: id
  # auto, always or never
  color: auto
  summary: false

rules:
`)

	for _, rule := range opts.Rules {
		fmt.Fprintf(&buf, "\n  # %s: %s\n", rule.ID, rule.Name)
		fmt.Fprintf(&buf, "  # %s\n", wrapComment(rule.Description, commentWrapWidth))
		fmt.Fprintf(&buf, "  %s:\n", rule.ID)
		fmt.Fprintf(&buf, "    severity: %s\n", rule.Severity)
	}

	return buf.Bytes()
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	currentLine := ""

	for _, word := range strings.Fields(text) {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n  # ")
}

// templateJSON renders the template as a JSON document. JSON has no comments,
// so only values are emitted.
func templateJSON(opts TemplateOptions) ([]byte, error) {
	cfg := NewConfig()
	if opts.Full {
		cfg.Exclude = []string{"node_modules/**", "vendor/**"}
		for _, rule := range opts.Rules {
			severity := string(rule.Severity)
			cfg.Rules[rule.ID] = RuleConfig{Severity: &severity}
		}
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# changelint configuration
# See: https://github.com/yaklabco/changelint`
}
