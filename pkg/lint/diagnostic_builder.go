package lint

import (
	"strings"

	"github.com/yaklabco/changelint/pkg/config"
	"github.com/yaklabco/changelint/pkg/span"
)

// DiagnosticBuilder helps construct Diagnostic values.
type DiagnosticBuilder struct {
	diag Diagnostic
}

// NewDiagnostic starts building a diagnostic for the given rule at a span.
func NewDiagnostic(ruleID string, at span.Span, message string) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		diag: Diagnostic{
			RuleID:  ruleID,
			Message: message,
			Span:    at,
		},
	}
}

// FormatMessage substitutes each `{}` placeholder in template with the next argument.
// Surplus placeholders are left as-is.
func FormatMessage(template string, args ...string) string {
	var builder strings.Builder
	for _, arg := range args {
		idx := strings.Index(template, "{}")
		if idx < 0 {
			break
		}
		builder.WriteString(template[:idx])
		builder.WriteString(arg)
		template = template[idx+2:]
	}
	builder.WriteString(template)
	return builder.String()
}

// WithRuleName sets the rule name.
func (b *DiagnosticBuilder) WithRuleName(name string) *DiagnosticBuilder {
	b.diag.RuleName = name
	return b
}

// WithSeverity sets the severity.
func (b *DiagnosticBuilder) WithSeverity(s config.Severity) *DiagnosticBuilder {
	b.diag.Severity = s
	return b
}

// WithSuggestion sets a human-readable fix suggestion.
func (b *DiagnosticBuilder) WithSuggestion(s string) *DiagnosticBuilder {
	b.diag.Suggestion = s
	return b
}

// WithFilePath sets the path of the file the diagnostic belongs to.
func (b *DiagnosticBuilder) WithFilePath(path string) *DiagnosticBuilder {
	b.diag.FilePath = path
	return b
}

// Build returns the constructed Diagnostic.
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.diag
}
