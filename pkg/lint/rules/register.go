package rules

import "github.com/yaklabco/changelint/pkg/lint"

// All returns a new instance of every built-in rule.
func All() []lint.Rule {
	return []lint.Rule{
		// Document structure
		NewMissingTitleRule(),          // E001
		NewInvalidTitleRule(),          // E002
		NewDuplicateTitleRule(),        // E003
		NewInvalidSectionHeadingRule(), // E004
		NewUnreleasedNotFirstRule(),    // E005
		NewMissingUnreleasedRule(),     // E100
		NewDuplicateUnreleasedRule(),   // E101

		// Releases
		NewInvalidDateRule(),      // E200
		NewInvalidYankedRule(),    // E201
		NewMissingDateRule(),      // E202
		NewReleaseOrderRule(),     // E203
		NewDuplicateVersionRule(), // E204

		// Change subsections
		NewInvalidChangeTypeRule(),   // E300
		NewDuplicateChangeTypeRule(), // E301
		NewEmptySectionRule(),        // E400

		// Links
		NewUndefinedLinkReferenceRule(), // E500
		NewDuplicateLinkReferenceRule(), // E501
	}
}

// DefaultCatalog is the process-wide catalog of built-in rules.
//
//nolint:gochecknoglobals // Immutable catalog built once at startup.
var DefaultCatalog = lint.MustNewCatalog(All()...)
