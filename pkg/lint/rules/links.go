package rules

import "github.com/yaklabco/changelint/pkg/lint"

// UndefinedLinkReferenceRule checks that reference-style links resolve.
type UndefinedLinkReferenceRule struct {
	lint.BaseRule
}

// NewUndefinedLinkReferenceRule creates a new undefined link reference rule.
func NewUndefinedLinkReferenceRule() *UndefinedLinkReferenceRule {
	return &UndefinedLinkReferenceRule{
		BaseRule: lint.NewBaseRule(
			"E500",
			"undefined-link-reference",
			"A reference-style link has no definition",
			`Every [label] or [text][label] used in the changelog needs a matching
"[label]: target" definition, usually at the bottom of the file. Labels
match case-insensitively. The bracketed version in a release heading is
not checked.`,
			[]string{"links"},
		),
	}
}

// Apply reports usages without a definition.
func (r *UndefinedLinkReferenceRule) Apply(ctx *lint.RuleContext) []lint.Diagnostic {
	doc := ctx.Document

	var diags []lint.Diagnostic
	for _, usage := range doc.LinkUsages {
		if _, ok := doc.LinkReferences[usage.Label]; ok {
			continue
		}
		diags = append(diags,
			r.Diagnostic(usage.Span, lint.FormatMessage("Undefined link reference `{}`", ctx.Text(usage.Span))).
				WithSuggestion("Add a definition \"["+usage.Label+"]: <url>\"").
				Build())
	}
	return diags
}

// DuplicateLinkReferenceRule checks that each label is defined once.
type DuplicateLinkReferenceRule struct {
	lint.BaseRule
}

// NewDuplicateLinkReferenceRule creates a new duplicate link reference rule.
func NewDuplicateLinkReferenceRule() *DuplicateLinkReferenceRule {
	return &DuplicateLinkReferenceRule{
		BaseRule: lint.NewBaseRule(
			"E501",
			"duplicate-link-reference",
			"A link label is defined more than once",
			`Only the first definition of a label is used. Later definitions are
dead and are reported.`,
			[]string{"links"},
		),
	}
}

// Apply reports every definition after the first for a label.
func (r *DuplicateLinkReferenceRule) Apply(ctx *lint.RuleContext) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, def := range ctx.Document.DuplicateReferences {
		diags = append(diags,
			r.Diagnostic(def.LabelSpan, lint.FormatMessage("Duplicate link reference `{}`", ctx.Text(def.LabelSpan))).Build())
	}
	return diags
}
