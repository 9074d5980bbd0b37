package rules

import "github.com/yaklabco/changelint/pkg/lint"

// MissingUnreleasedRule checks that an Unreleased section exists.
type MissingUnreleasedRule struct {
	lint.BaseRule
}

// NewMissingUnreleasedRule creates a new missing unreleased rule.
func NewMissingUnreleasedRule() *MissingUnreleasedRule {
	return &MissingUnreleasedRule{
		BaseRule: lint.NewBaseRule(
			"E100",
			"missing-unreleased",
			"The changelog has no Unreleased section",
			`Keep an "## [Unreleased]" section at the top so upcoming changes have a
place to go. It may be empty.`,
			[]string{"unreleased", "structure"},
		),
	}
}

// Apply reports a document without an Unreleased section.
func (r *MissingUnreleasedRule) Apply(ctx *lint.RuleContext) []lint.Diagnostic {
	if ctx.Document.Unreleased != nil {
		return nil
	}
	return []lint.Diagnostic{
		r.Diagnostic(lint.DocumentStart(), "Missing unreleased heading").
			WithSuggestion(`Add "## [Unreleased]" above the first release`).
			Build(),
	}
}

// DuplicateUnreleasedRule checks that there is at most one Unreleased section.
type DuplicateUnreleasedRule struct {
	lint.BaseRule
}

// NewDuplicateUnreleasedRule creates a new duplicate unreleased rule.
func NewDuplicateUnreleasedRule() *DuplicateUnreleasedRule {
	return &DuplicateUnreleasedRule{
		BaseRule: lint.NewBaseRule(
			"E101",
			"duplicate-unreleased",
			"More than one Unreleased section",
			`Only one Unreleased section is allowed. Merge the entries of later
ones into the first.`,
			[]string{"unreleased", "structure"},
		),
	}
}

// Apply reports every Unreleased section after the first.
func (r *DuplicateUnreleasedRule) Apply(ctx *lint.RuleContext) []lint.Diagnostic {
	sections := ctx.Document.UnreleasedSections()
	if len(sections) < 2 {
		return nil
	}

	diags := make([]lint.Diagnostic, 0, len(sections)-1)
	for _, section := range sections[1:] {
		at := headingTarget(section.Heading)
		diags = append(diags,
			r.Diagnostic(at, lint.FormatMessage("Duplicate unreleased section `{}`", ctx.Text(at))).Build())
	}
	return diags
}
