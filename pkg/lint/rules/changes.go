package rules

import (
	"strings"

	"github.com/yaklabco/changelint/pkg/changelog"
	"github.com/yaklabco/changelint/pkg/lint"
)

// InvalidChangeTypeRule checks change subsection keywords.
type InvalidChangeTypeRule struct {
	lint.BaseRule
}

// NewInvalidChangeTypeRule creates a new invalid change type rule.
func NewInvalidChangeTypeRule() *InvalidChangeTypeRule {
	return &InvalidChangeTypeRule{
		BaseRule: lint.NewBaseRule(
			"E300",
			"invalid-change-type",
			"A change subsection heading is not a known change type",
			`Level-three headings group changes by type. The allowed types are
Added, Changed, Deprecated, Removed, Fixed and Security (case-insensitive).

Bad:

    ### Improvements

Good:

    ### Changed`,
			[]string{"change-type"},
		),
	}
}

// Apply reports Unknown change types.
func (r *InvalidChangeTypeRule) Apply(ctx *lint.RuleContext) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, section := range ctx.Sections() {
		for _, change := range section.Changes {
			if change.Type != changelog.ChangeUnknown {
				continue
			}
			at := headingTarget(change.Heading)
			diags = append(diags,
				r.Diagnostic(at, lint.FormatMessage("Invalid change type `{}`", ctx.Text(at))).
					WithSuggestion("Use one of "+knownChangeTypes()).
					Build())
		}
	}
	return diags
}

// DuplicateChangeTypeRule checks that a section lists each change type once.
type DuplicateChangeTypeRule struct {
	lint.BaseRule
}

// NewDuplicateChangeTypeRule creates a new duplicate change type rule.
func NewDuplicateChangeTypeRule() *DuplicateChangeTypeRule {
	return &DuplicateChangeTypeRule{
		BaseRule: lint.NewBaseRule(
			"E301",
			"duplicate-change-type",
			"A section repeats a change type",
			`Within one release or the Unreleased section each change type appears
once. Later repeats are reported; merge their entries into the first.`,
			[]string{"change-type"},
		),
	}
}

// Apply reports the second and later subsection of each type per section.
func (r *DuplicateChangeTypeRule) Apply(ctx *lint.RuleContext) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, section := range ctx.Sections() {
		seen := make(map[changelog.ChangeType]bool)
		for _, change := range section.Changes {
			if change.Type == changelog.ChangeUnknown {
				continue
			}
			if !seen[change.Type] {
				seen[change.Type] = true
				continue
			}
			at := headingTarget(change.Heading)
			diags = append(diags,
				r.Diagnostic(at, lint.FormatMessage("Duplicate change type `{}`", ctx.Text(at))).Build())
		}
	}
	return diags
}

// EmptySectionRule checks that releases and change subsections have content.
type EmptySectionRule struct {
	lint.BaseRule
}

// NewEmptySectionRule creates a new empty section rule.
func NewEmptySectionRule() *EmptySectionRule {
	return &EmptySectionRule{
		BaseRule: lint.NewBaseRule(
			"E400",
			"empty-section",
			"A release or change subsection has no content",
			`Releases and change subsections must describe at least one change.
The Unreleased section itself may be empty, but its subsections may not.`,
			[]string{"content"},
		),
	}
}

// Apply reports empty releases and empty change subsections.
func (r *EmptySectionRule) Apply(ctx *lint.RuleContext) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, section := range ctx.Sections() {
		if section.Kind == changelog.KindMalformed {
			continue
		}
		if section.Kind == changelog.KindRelease && section.Empty {
			diags = append(diags, r.Diagnostic(headingTarget(section.Heading), "Empty section").Build())
		}
		for _, change := range section.Changes {
			if change.Empty {
				diags = append(diags, r.Diagnostic(headingTarget(change.Heading), "Empty section").Build())
			}
		}
	}
	return diags
}

func knownChangeTypes() string {
	types := changelog.ChangeTypes()
	names := make([]string, len(types))
	for i, kind := range types {
		names[i] = kind.String()
	}
	return strings.Join(names, ", ")
}
