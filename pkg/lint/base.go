package lint

import "github.com/yaklabco/changelint/pkg/config"

// BaseRule provides a default implementation of the Rule interface.
// Embed this in rule implementations and override Apply.
//
// Fields are unexported to avoid stutter and name collisions with interface methods.
type BaseRule struct {
	id   string   // Stable code (e.g., "E001")
	name string   // Human-readable name
	desc string   // One-line description
	doc  string   // Long-form documentation
	tags []string // Categorization tags
}

// NewBaseRule creates a BaseRule with the given properties.
func NewBaseRule(id, name, desc, doc string, tags []string) BaseRule {
	return BaseRule{
		id:   id,
		name: name,
		desc: desc,
		doc:  doc,
		tags: tags,
	}
}

// ID returns the stable code for this rule.
func (r *BaseRule) ID() string {
	return r.id
}

// Name returns the human-readable name of the rule.
func (r *BaseRule) Name() string {
	return r.name
}

// Description returns a one-line summary of what the rule checks.
func (r *BaseRule) Description() string {
	return r.desc
}

// Documentation returns the long-form explanation, falling back to the description.
func (r *BaseRule) Documentation() string {
	if r.doc == "" {
		return r.desc
	}
	return r.doc
}

// DefaultEnabled returns whether the rule is enabled by default.
func (r *BaseRule) DefaultEnabled() bool {
	return true
}

// DefaultSeverity returns the default severity for this rule.
func (r *BaseRule) DefaultSeverity() config.Severity {
	return config.SeverityError
}

// Tags returns categorization tags for this rule.
func (r *BaseRule) Tags() []string {
	return r.tags
}

// Apply must be overridden by concrete rule implementations.
// The default implementation returns no diagnostics.
func (r *BaseRule) Apply(_ *RuleContext) []Diagnostic {
	return nil
}

// Diagnostic starts building a diagnostic attributed to this rule.
func (r *BaseRule) Diagnostic(at Span, message string) *DiagnosticBuilder {
	return NewDiagnostic(r.id, at, message).WithRuleName(r.name)
}
