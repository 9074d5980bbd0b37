// Package span maps byte offsets in changelog text to line and column positions.
package span

import "fmt"

// Span is a half-open byte range [Start, End) into the original input text.
type Span struct {
	// Start is the byte index where the span begins (inclusive).
	Start int

	// End is the byte index where the span ends (exclusive).
	End int
}

// New returns the span [start, end).
func New(start, end int) Span {
	return Span{Start: start, End: end}
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsEmpty returns true if the span has zero length.
func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

// Contains returns true if the given offset is within this span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Text returns the slice of text covered by the span.
// Out-of-range spans are clamped rather than panicking.
func (s Span) Text(text string) string {
	start, end := max(s.Start, 0), min(s.End, len(text))
	if start >= end {
		return ""
	}
	return text[start:end]
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Position is a 1-based line and column. Columns count characters, not bytes.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// IsValid returns true if this position has valid (positive) values.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Range is a span resolved to start and end positions.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// IsSingleLine returns true if start and end are on the same line.
func (r Range) IsSingleLine() bool {
	return r.Start.Line == r.End.Line
}
