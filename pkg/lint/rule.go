// Package lint provides the rule engine, diagnostics, and catalog for changelint.
package lint

import (
	"fmt"

	"github.com/yaklabco/changelint/pkg/config"
	"github.com/yaklabco/changelint/pkg/span"
)

// Diagnostic represents a single lint issue found in a changelog.
type Diagnostic struct {
	// RuleID is the stable code of the rule that produced this diagnostic (e.g., "E001").
	RuleID string

	// RuleName is the human-readable name of the rule (e.g., "missing-title").
	RuleName string

	// Message is the human-readable description of the issue.
	Message string

	// Severity indicates the importance of the diagnostic.
	Severity config.Severity

	// Span is the byte range of the issue in the original text.
	Span span.Span

	// FilePath is the path to the file containing the issue.
	FilePath string

	// Suggestion is an optional human-readable fix suggestion.
	Suggestion string
}

// Resolve converts the diagnostic's span to line and column positions.
// A span outside the text is an internal error: spans come from the parser.
func (d *Diagnostic) Resolve(locator *span.Locator) (span.Range, error) {
	rng, err := locator.ResolveSpan(d.Span)
	if err != nil {
		return span.Range{}, fmt.Errorf("%w: %s at %s: %w", ErrInternal, d.RuleID, d.Span, err)
	}
	return rng, nil
}

// Rule defines the interface that all lint rules must implement.
type Rule interface {
	// ID returns the stable code for this rule (e.g., "E001").
	ID() string

	// Name returns the human-readable name of the rule.
	Name() string

	// Description returns a one-line summary of what the rule checks.
	Description() string

	// Documentation returns the long-form explanation printed by `changelint rule`.
	Documentation() string

	// DefaultEnabled returns whether the rule is enabled by default.
	DefaultEnabled() bool

	// DefaultSeverity returns the default severity for this rule.
	DefaultSeverity() config.Severity

	// Tags returns categorization tags for this rule (e.g., ["release", "date"]).
	Tags() []string

	// Apply inspects the document and returns one diagnostic per violation.
	// Rules are total: they never fail and never modify the document.
	Apply(ctx *RuleContext) []Diagnostic
}
