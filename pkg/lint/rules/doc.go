// Package rules provides the built-in lint rules for changelint.
//
// # Rule Domains
//
//   - Document structure:
//
//   - E001: missing-title - The changelog has no top-level title
//
//   - E002: invalid-title - The title contains links, emphasis, code or HTML
//
//   - E003: duplicate-title - More than one top-level heading
//
//   - E004: invalid-section-heading - A level-two heading is neither Unreleased nor a release
//
//   - E005: unreleased-not-first - The Unreleased section is not the first section
//
//   - E100: missing-unreleased - The changelog has no Unreleased section
//
//   - E101: duplicate-unreleased - More than one Unreleased section
//
//   - Releases:
//
//   - E200: invalid-date - A release date is not a valid YYYY-MM-DD date
//
//   - E201: invalid-yanked - Text after the release date is not exactly [YANKED]
//
//   - E202: missing-date - A release heading has no date
//
//   - E203: release-out-of-order - Releases are not in reverse chronological order
//
//   - E204: duplicate-version - Two releases share the same version
//
//   - Change subsections:
//
//   - E300: invalid-change-type - A change subsection heading is not a known change type
//
//   - E301: duplicate-change-type - A section repeats a change type
//
//   - E400: empty-section - A release or change subsection has no content
//
//   - Links:
//
//   - E500: undefined-link-reference - A reference-style link has no definition
//
//   - E501: duplicate-link-reference - A link label is defined more than once
//
// Every rule is a pure function of the parsed document and is enabled by
// default with error severity.
package rules
