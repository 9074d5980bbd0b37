package lint

import (
	"github.com/yaklabco/changelint/pkg/changelog"
	"github.com/yaklabco/changelint/pkg/span"
)

// Span aliases span.Span for rule implementations.
type Span = span.Span

// RuleContext provides read-only access to the parsed document for a rule.
// The same context is shared by every rule of a run.
type RuleContext struct {
	// Document is the parsed changelog.
	Document *changelog.Document
}

// NewRuleContext creates a RuleContext for the given document.
func NewRuleContext(doc *changelog.Document) *RuleContext {
	return &RuleContext{Document: doc}
}

// Text returns the source text covered by s.
func (c *RuleContext) Text(s span.Span) string {
	return c.Document.Text(s)
}

// Sections returns every H2 section in document order.
func (c *RuleContext) Sections() []*changelog.Section {
	return c.Document.Sections
}

// Releases returns the release sections in document order.
func (c *RuleContext) Releases() []*changelog.Section {
	return c.Document.Releases
}

// DocumentStart is the zero-length span used for findings about missing structure.
func DocumentStart() span.Span {
	return span.New(0, 0)
}
