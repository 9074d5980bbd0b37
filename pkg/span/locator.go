package span

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"unicode/utf8"
)

// ErrOutOfBounds is returned when an offset lies outside the indexed text.
var ErrOutOfBounds = errors.New("offset out of bounds")

// Line describes the byte layout of a single line.
type Line struct {
	// StartOffset is the byte index of the first byte of the line.
	StartOffset int

	// ContentEnd is the byte index just past the line content, excluding
	// the line terminator (LF or CRLF).
	ContentEnd int

	// EndOffset is the byte index just past the line terminator.
	EndOffset int
}

// Span returns the span of the line content without its terminator.
func (l Line) Span() Span {
	return Span{Start: l.StartOffset, End: l.ContentEnd}
}

// Locator is an immutable index from byte offsets to positions.
// It is safe for concurrent use.
type Locator struct {
	text  string
	lines []Line
}

// NewLocator indexes text. It never fails; empty text yields a single empty line.
func NewLocator(text string) *Locator {
	return &Locator{text: text, lines: SplitLines(text)}
}

// SplitLines returns the layout of every line in text.
// It handles both LF and CRLF line endings. The final line is included even
// when empty, so the result always has at least one element.
func SplitLines(text string) []Line {
	lines := make([]Line, 0, 1+len(text)/40)
	lineStart := 0

	for idx := 0; idx < len(text); idx++ {
		if text[idx] != '\n' {
			continue
		}
		contentEnd := idx
		if idx > lineStart && text[idx-1] == '\r' {
			contentEnd = idx - 1
		}
		lines = append(lines, Line{StartOffset: lineStart, ContentEnd: contentEnd, EndOffset: idx + 1})
		lineStart = idx + 1
	}

	return append(lines, Line{StartOffset: lineStart, ContentEnd: len(text), EndOffset: len(text)})
}

// Text returns the indexed text.
func (l *Locator) Text() string {
	return l.text
}

// LineCount returns the number of lines.
func (l *Locator) LineCount() int {
	return len(l.lines)
}

// Lines returns a copy of the layout of every line.
func (l *Locator) Lines() []Line {
	return slices.Clone(l.lines)
}

// Line returns the layout of a 1-based line number.
func (l *Locator) Line(line int) (Line, bool) {
	if line < 1 || line > len(l.lines) {
		return Line{}, false
	}
	return l.lines[line-1], true
}

// LineContent returns the content of a 1-based line number, excluding the newline.
// Returns "" if the line number is out of range.
func (l *Locator) LineContent(line int) string {
	info, ok := l.Line(line)
	if !ok {
		return ""
	}
	return l.text[info.StartOffset:info.ContentEnd]
}

// Resolve converts a byte offset to a 1-based position.
// The offset equal to the text length is valid and resolves to the end of
// the last line.
func (l *Locator) Resolve(offset int) (Position, error) {
	if offset < 0 || offset > len(l.text) {
		return Position{}, fmt.Errorf("%w: %d not in [0, %d]", ErrOutOfBounds, offset, len(l.text))
	}

	lineIdx := sort.Search(len(l.lines), func(i int) bool {
		return l.lines[i].EndOffset > offset
	})
	if lineIdx >= len(l.lines) {
		lineIdx = len(l.lines) - 1
	}

	info := l.lines[lineIdx]
	column := utf8.RuneCountInString(l.text[info.StartOffset:offset]) + 1

	return Position{Line: lineIdx + 1, Column: column}, nil
}

// ResolveSpan converts both ends of a span.
func (l *Locator) ResolveSpan(s Span) (Range, error) {
	if s.Start > s.End {
		return Range{}, fmt.Errorf("%w: inverted span %s", ErrOutOfBounds, s)
	}
	start, err := l.Resolve(s.Start)
	if err != nil {
		return Range{}, err
	}
	end, err := l.Resolve(s.End)
	if err != nil {
		return Range{}, err
	}
	return Range{Start: start, End: end}, nil
}
