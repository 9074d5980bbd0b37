// Package changelog parses Keep a Changelog documents into a span-annotated model.
//
// Parsing is total: any input, however malformed, yields a Document. Defects
// are represented structurally (missing fields, Malformed sections, recorded
// duplicates) so that lint rules can describe them.
package changelog

import (
	"strings"

	"github.com/yaklabco/changelint/pkg/span"
)

// ChangeType is the keyword of a change subsection.
type ChangeType int

// Change types recognized in H3 headings.
const (
	ChangeUnknown ChangeType = iota
	ChangeAdded
	ChangeChanged
	ChangeDeprecated
	ChangeRemoved
	ChangeFixed
	ChangeSecurity
)

//nolint:gochecknoglobals // Read-only lookup table.
var changeTypeNames = map[ChangeType]string{
	ChangeUnknown:    "Unknown",
	ChangeAdded:      "Added",
	ChangeChanged:    "Changed",
	ChangeDeprecated: "Deprecated",
	ChangeRemoved:    "Removed",
	ChangeFixed:      "Fixed",
	ChangeSecurity:   "Security",
}

func (c ChangeType) String() string {
	if name, ok := changeTypeNames[c]; ok {
		return name
	}
	return changeTypeNames[ChangeUnknown]
}

// ParseChangeType matches a heading keyword case-insensitively.
// Surrounding whitespace is ignored; anything else is ChangeUnknown.
func ParseChangeType(text string) ChangeType {
	text = strings.TrimSpace(text)
	for kind, name := range changeTypeNames {
		if kind != ChangeUnknown && strings.EqualFold(text, name) {
			return kind
		}
	}
	return ChangeUnknown
}

// ChangeTypes returns the known change types in canonical order.
func ChangeTypes() []ChangeType {
	return []ChangeType{ChangeAdded, ChangeChanged, ChangeDeprecated, ChangeRemoved, ChangeFixed, ChangeSecurity}
}

// SectionKind classifies an H2 section.
type SectionKind int

// Section kinds.
const (
	KindMalformed SectionKind = iota
	KindUnreleased
	KindRelease
)

func (k SectionKind) String() string {
	switch k {
	case KindUnreleased:
		return "unreleased"
	case KindRelease:
		return "release"
	default:
		return "malformed"
	}
}

// Heading is an ATX or setext heading.
type Heading struct {
	// Level is 1 through 6.
	Level int

	// Span covers the heading line without its terminator.
	Span span.Span

	// Text covers the heading text without markers or surrounding whitespace.
	Text span.Span
}

// Section is an H2 heading and the body up to the next H2.
type Section struct {
	Heading Heading
	Kind    SectionKind

	// Version is the release version text, empty unless Kind is KindRelease.
	Version     string
	VersionSpan span.Span

	// Date and Yanked are captured by position whether or not they are well formed.
	Date   *span.Span
	Yanked *span.Span

	Changes []ChangeSection

	// Empty is true when the section has no change subsections and no body content.
	Empty bool
}

// IsRelease reports whether the section is a release.
func (s *Section) IsRelease() bool {
	return s.Kind == KindRelease
}

// ChangeSection is an H3 subsection keyed by change type.
type ChangeSection struct {
	Heading Heading
	Type    ChangeType

	// Empty is true when no non-blank body line follows the heading.
	Empty bool
}

// LinkDefinition is a `[label]: target` line.
type LinkDefinition struct {
	// Label is the normalized label.
	Label string

	// Span covers the whole definition line content.
	Span span.Span

	// LabelSpan covers the label text inside the brackets.
	LabelSpan span.Span

	Target string
}

// LinkUsage is a reference-style link found in body or heading text.
type LinkUsage struct {
	// Label is the normalized label.
	Label string

	// Span covers the label text inside the brackets.
	Span span.Span
}

// Document is the parsed model of a changelog. It is never mutated after Parse
// returns and may be shared between goroutines.
type Document struct {
	// Source is the exact input text. Every span refers to it.
	Source string

	// Locator resolves spans in Source to positions.
	Locator *span.Locator

	// Title is the first H1 heading.
	Title *Heading

	// ExtraTitles holds every H1 after the first, in document order.
	ExtraTitles []Heading

	// Sections holds every H2 section in document order, whatever its kind.
	Sections []*Section

	// Unreleased is the first Unreleased section.
	Unreleased *Section

	// Releases holds the release sections in document order.
	Releases []*Section

	// LinkReferences maps a normalized label to its first definition.
	LinkReferences map[string]LinkDefinition

	// DuplicateReferences holds later definitions of already-defined labels.
	DuplicateReferences []LinkDefinition

	// LinkUsages holds reference-style usages in document order.
	LinkUsages []LinkUsage
}

// Text returns the source text covered by s.
func (d *Document) Text(s span.Span) string {
	return s.Text(d.Source)
}

// TitleSpan returns the span of the title text, if there is a title.
func (d *Document) TitleSpan() (span.Span, bool) {
	if d.Title == nil {
		return span.Span{}, false
	}
	return d.Title.Text, true
}

// UnreleasedSections returns every Unreleased-kind section in document order.
func (d *Document) UnreleasedSections() []*Section {
	var out []*Section
	for _, section := range d.Sections {
		if section.Kind == KindUnreleased {
			out = append(out, section)
		}
	}
	return out
}

// NormalizeLabel case-folds a link label and collapses inner whitespace.
func NormalizeLabel(label string) string {
	return strings.Join(strings.Fields(strings.ToLower(label)), " ")
}
