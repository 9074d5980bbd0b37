package rules

import (
	"github.com/yaklabco/changelint/pkg/changelog"
	"github.com/yaklabco/changelint/pkg/lint"
)

// yankedToken is the only accepted yanked marker.
const yankedToken = "[YANKED]"

// InvalidDateRule checks release dates.
type InvalidDateRule struct {
	lint.BaseRule
}

// NewInvalidDateRule creates a new invalid date rule.
func NewInvalidDateRule() *InvalidDateRule {
	return &InvalidDateRule{
		BaseRule: lint.NewBaseRule(
			"E200",
			"invalid-date",
			"A release date is not a valid YYYY-MM-DD date",
			`Release dates use ISO 8601 (YYYY-MM-DD) and must exist in the calendar.

Bad:

    ## [1.0.0] - 01/02/2024
    ## [1.0.0] - 2024-02-30

Good:

    ## [1.0.0] - 2024-02-01`,
			[]string{"release", "date"},
		),
	}
}

// Apply reports malformed release dates.
func (r *InvalidDateRule) Apply(ctx *lint.RuleContext) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, release := range ctx.Releases() {
		if release.Date == nil {
			continue
		}
		text := ctx.Text(*release.Date)
		if _, ok := parseDate(text); ok {
			continue
		}
		diags = append(diags,
			r.Diagnostic(*release.Date, lint.FormatMessage("Invalid date `{}`", text)).
				WithSuggestion("Use the YYYY-MM-DD format").
				Build())
	}
	return diags
}

// InvalidYankedRule checks the yanked marker.
type InvalidYankedRule struct {
	lint.BaseRule
}

// NewInvalidYankedRule creates a new invalid yanked rule.
func NewInvalidYankedRule() *InvalidYankedRule {
	return &InvalidYankedRule{
		BaseRule: lint.NewBaseRule(
			"E201",
			"invalid-yanked",
			"Text after the release date is not exactly [YANKED]",
			`A pulled release is marked with the literal token [YANKED] after the
date. Anything else after the date is reported.

Bad:

    ## [0.9.0] - 2023-06-01 (yanked)

Good:

    ## [0.9.0] - 2023-06-01 [YANKED]`,
			[]string{"release", "yanked"},
		),
	}
}

// Apply reports a malformed yanked token.
func (r *InvalidYankedRule) Apply(ctx *lint.RuleContext) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, release := range ctx.Releases() {
		if release.Yanked == nil {
			continue
		}
		text := ctx.Text(*release.Yanked)
		if text == yankedToken {
			continue
		}
		diags = append(diags,
			r.Diagnostic(*release.Yanked, lint.FormatMessage("Invalid [YANKED] format `{}`", text)).
				WithSuggestion("Use "+yankedToken).
				Build())
	}
	return diags
}

// MissingDateRule checks that every release has a date.
type MissingDateRule struct {
	lint.BaseRule
}

// NewMissingDateRule creates a new missing date rule.
func NewMissingDateRule() *MissingDateRule {
	return &MissingDateRule{
		BaseRule: lint.NewBaseRule(
			"E202",
			"missing-date",
			"A release heading has no date",
			`Every release records the day it was published.

Bad:

    ## [1.0.0]

Good:

    ## [1.0.0] - 2024-01-01`,
			[]string{"release", "date"},
		),
	}
}

// Apply reports releases without a date.
func (r *MissingDateRule) Apply(ctx *lint.RuleContext) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, release := range ctx.Releases() {
		if release.Date != nil {
			continue
		}
		diags = append(diags,
			r.Diagnostic(release.Heading.Text, lint.FormatMessage("Missing release date for `{}`", release.Version)).
				WithSuggestion("Append \" - YYYY-MM-DD\" to the heading").
				Build())
	}
	return diags
}

// ReleaseOrderRule checks that releases are listed newest first.
type ReleaseOrderRule struct {
	lint.BaseRule
}

// NewReleaseOrderRule creates a new release order rule.
func NewReleaseOrderRule() *ReleaseOrderRule {
	return &ReleaseOrderRule{
		BaseRule: lint.NewBaseRule(
			"E203",
			"release-out-of-order",
			"Releases are not in reverse chronological order",
			`Releases are listed newest first. Each release is compared with the one
above it: a later date or a higher version is out of order. Releases with a
missing or invalid date are compared by version only.

Bad:

    ## [1.0.0] - 2025-01-01
    ## [2.0.0] - 2024-01-01

Good:

    ## [2.0.0] - 2025-01-01
    ## [1.0.0] - 2024-01-01`,
			[]string{"release", "order"},
		),
	}
}

// Apply compares each release with the one above it.
func (r *ReleaseOrderRule) Apply(ctx *lint.RuleContext) []lint.Diagnostic {
	releases := ctx.Releases()

	var diags []lint.Diagnostic
	for idx := 1; idx < len(releases); idx++ {
		previous, current := releases[idx-1], releases[idx]
		// An undated release compares by version only; missing-date flags it.
		if !outOfOrder(ctx, previous, current) {
			continue
		}
		diags = append(diags,
			r.Diagnostic(current.Heading.Text, lint.FormatMessage("Release `{}` is out of order", current.Version)).
				WithSuggestion("List releases newest first").
				Build())
	}
	return diags
}

// outOfOrder reports whether current, listed below previous, is newer.
//
// Valid, distinct dates decide first. A higher version under an older date
// is still out of order unless previous is a patch release, which is how
// maintenance releases of an older line are published after a newer line.
// Equal, invalid or missing dates leave the decision to the versions; a
// missing date is not itself an ordering problem (missing-date reports it).
func outOfOrder(ctx *lint.RuleContext, previous, current *changelog.Section) bool {
	order, ok := compareVersions(current.Version, previous.Version)
	newerVersion := ok && order > 0

	if byDate, ok := compareDates(ctx, previous, current); ok && byDate != 0 {
		if byDate > 0 {
			return true
		}
		return newerVersion && !isPatchRelease(previous.Version)
	}
	return newerVersion
}

// compareDates compares current's date with previous's when both are valid.
func compareDates(ctx *lint.RuleContext, previous, current *changelog.Section) (int, bool) {
	if previous.Date == nil || current.Date == nil {
		return 0, false
	}
	prevDate, okPrev := parseDate(ctx.Text(*previous.Date))
	currDate, okCurr := parseDate(ctx.Text(*current.Date))
	if !okPrev || !okCurr {
		return 0, false
	}
	return currDate.Compare(prevDate), true
}

// DuplicateVersionRule checks that no version is released twice.
type DuplicateVersionRule struct {
	lint.BaseRule
}

// NewDuplicateVersionRule creates a new duplicate version rule.
func NewDuplicateVersionRule() *DuplicateVersionRule {
	return &DuplicateVersionRule{
		BaseRule: lint.NewBaseRule(
			"E204",
			"duplicate-version",
			"Two releases share the same version",
			`Each version appears once. "1.0.0" and "v1.0.0" are the same version.`,
			[]string{"release"},
		),
	}
}

// Apply reports every repeated version after its first release.
func (r *DuplicateVersionRule) Apply(ctx *lint.RuleContext) []lint.Diagnostic {
	seen := make(map[string]bool)

	var diags []lint.Diagnostic
	for _, release := range ctx.Releases() {
		key := versionKey(release.Version)
		if !seen[key] {
			seen[key] = true
			continue
		}
		diags = append(diags,
			r.Diagnostic(release.Heading.Text, lint.FormatMessage("Duplicate release `{}`", release.Version)).Build())
	}
	return diags
}
