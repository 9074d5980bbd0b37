package rules

import (
	"github.com/yaklabco/changelint/pkg/changelog"
	"github.com/yaklabco/changelint/pkg/lint"
)

// MissingTitleRule checks that the changelog has a top-level heading.
type MissingTitleRule struct {
	lint.BaseRule
}

// NewMissingTitleRule creates a new missing title rule.
func NewMissingTitleRule() *MissingTitleRule {
	return &MissingTitleRule{
		BaseRule: lint.NewBaseRule(
			"E001",
			"missing-title",
			"The changelog has no top-level title",
			`A changelog starts with a single level-one heading, usually "# Changelog".

Bad:

    ## [Unreleased]

Good:

    # Changelog

    ## [Unreleased]`,
			[]string{"title", "structure"},
		),
	}
}

// Apply reports a document without an H1.
func (r *MissingTitleRule) Apply(ctx *lint.RuleContext) []lint.Diagnostic {
	if ctx.Document.Title != nil {
		return nil
	}
	return []lint.Diagnostic{
		r.Diagnostic(lint.DocumentStart(), "Missing title").
			WithSuggestion(`Add "# Changelog" as the first line`).
			Build(),
	}
}

// InvalidTitleRule checks that the title is plain text.
type InvalidTitleRule struct {
	lint.BaseRule
}

// NewInvalidTitleRule creates a new invalid title rule.
func NewInvalidTitleRule() *InvalidTitleRule {
	return &InvalidTitleRule{
		BaseRule: lint.NewBaseRule(
			"E002",
			"invalid-title",
			"The title contains links, emphasis, code or HTML",
			`The title must be plain text. Links, emphasis, code spans, images and
inline HTML are reported.

Bad:

    # [Changelog](https://example.com)

Good:

    # Changelog`,
			[]string{"title"},
		),
	}
}

// Apply reports a title containing inline markup.
func (r *InvalidTitleRule) Apply(ctx *lint.RuleContext) []lint.Diagnostic {
	title := ctx.Document.Title
	if title == nil {
		return nil
	}
	text := ctx.Text(title.Text)
	if !changelog.HasInlineMarkup(text) {
		return nil
	}
	return []lint.Diagnostic{
		r.Diagnostic(title.Text, lint.FormatMessage("Invalid title `{}`", text)).Build(),
	}
}

// DuplicateTitleRule checks that there is at most one H1 heading.
type DuplicateTitleRule struct {
	lint.BaseRule
}

// NewDuplicateTitleRule creates a new duplicate title rule.
func NewDuplicateTitleRule() *DuplicateTitleRule {
	return &DuplicateTitleRule{
		BaseRule: lint.NewBaseRule(
			"E003",
			"duplicate-title",
			"More than one top-level heading",
			`Only the first level-one heading is the title. Every later one is
reported; releases use level-two headings.`,
			[]string{"title", "structure"},
		),
	}
}

// Apply reports every H1 after the first.
func (r *DuplicateTitleRule) Apply(ctx *lint.RuleContext) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, heading := range ctx.Document.ExtraTitles {
		at := headingTarget(heading)
		diags = append(diags,
			r.Diagnostic(at, lint.FormatMessage("Duplicate title `{}`", ctx.Text(at))).
				WithSuggestion("Use a level-two heading for sections").
				Build())
	}
	return diags
}

// InvalidSectionHeadingRule checks that every level-two heading is a release or Unreleased.
type InvalidSectionHeadingRule struct {
	lint.BaseRule
}

// NewInvalidSectionHeadingRule creates a new invalid section heading rule.
func NewInvalidSectionHeadingRule() *InvalidSectionHeadingRule {
	return &InvalidSectionHeadingRule{
		BaseRule: lint.NewBaseRule(
			"E004",
			"invalid-section-heading",
			"A level-two heading is neither Unreleased nor a release",
			`Level-two headings are either "[Unreleased]" or a version, optionally
followed by a date and a [YANKED] marker.

Bad:

    ## Notes

Good:

    ## [1.2.0] - 2024-05-01`,
			[]string{"structure", "heading"},
		),
	}
}

// Apply reports Malformed sections.
func (r *InvalidSectionHeadingRule) Apply(ctx *lint.RuleContext) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, section := range ctx.Sections() {
		if section.Kind != changelog.KindMalformed {
			continue
		}
		at := headingTarget(section.Heading)
		diags = append(diags,
			r.Diagnostic(at, lint.FormatMessage("Invalid heading `{}`", ctx.Text(at))).Build())
	}
	return diags
}

// UnreleasedNotFirstRule checks that the Unreleased section precedes every release.
type UnreleasedNotFirstRule struct {
	lint.BaseRule
}

// NewUnreleasedNotFirstRule creates a new unreleased position rule.
func NewUnreleasedNotFirstRule() *UnreleasedNotFirstRule {
	return &UnreleasedNotFirstRule{
		BaseRule: lint.NewBaseRule(
			"E005",
			"unreleased-not-first",
			"The Unreleased section is not the first section",
			`Upcoming changes sit at the top of the changelog, above the latest
release.`,
			[]string{"unreleased", "order"},
		),
	}
}

// Apply reports an Unreleased section preceded by another section.
func (r *UnreleasedNotFirstRule) Apply(ctx *lint.RuleContext) []lint.Diagnostic {
	unreleased := ctx.Document.Unreleased
	sections := ctx.Sections()
	if unreleased == nil || len(sections) == 0 || sections[0] == unreleased {
		return nil
	}
	at := headingTarget(unreleased.Heading)
	return []lint.Diagnostic{
		r.Diagnostic(at, lint.FormatMessage("Unreleased section `{}` must be the first section", ctx.Text(at))).
			WithSuggestion("Move it above the latest release").
			Build(),
	}
}

// headingTarget is the span a heading diagnostic points at: the text, or the
// whole line when the text is empty.
func headingTarget(heading changelog.Heading) lint.Span {
	if heading.Text.IsEmpty() {
		return heading.Span
	}
	return heading.Text
}
