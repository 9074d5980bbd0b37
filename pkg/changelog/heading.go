package changelog

import (
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/changelint/pkg/span"
)

const (
	maxHeadingLevel = 6
	maxIndent       = 3
)

// parseATX recognizes an ATX heading (`## text ##`) on a single line.
func parseATX(src string, line span.Line) (Heading, bool) {
	pos, end := skipIndent(src, line.StartOffset, line.ContentEnd)
	if pos < 0 {
		return Heading{}, false
	}

	level := 0
	for pos < end && src[pos] == '#' {
		level++
		pos++
	}
	if level == 0 || level > maxHeadingLevel {
		return Heading{}, false
	}
	if pos < end && !isSpace(src[pos]) {
		return Heading{}, false
	}

	textStart, textEnd := trimBounds(src, pos, end)

	// Optional closing sequence: a run of '#' preceded by whitespace, or the whole text.
	hashes := textEnd
	for hashes > textStart && src[hashes-1] == '#' {
		hashes--
	}
	switch {
	case hashes == textStart:
		textEnd = textStart
	case hashes < textEnd && isSpace(src[hashes-1]):
		textStart, textEnd = trimBounds(src, textStart, hashes)
	}

	return Heading{
		Level: level,
		Span:  line.Span(),
		Text:  span.New(textStart, textEnd),
	}, true
}

// setextLevel returns 1 or 2 if content is a setext underline, 0 otherwise.
func setextLevel(content string) int {
	start, end := skipIndent(content, 0, len(content))
	if start < 0 {
		return 0
	}
	_, end = trimBounds(content, start, end)
	if start == end {
		return 0
	}

	marker := content[start]
	if marker != '=' && marker != '-' {
		return 0
	}
	for i := start; i < end; i++ {
		if content[i] != marker {
			return 0
		}
	}
	if marker == '=' {
		return 1
	}
	return 2
}

// startsBlock reports whether content opens a block that cannot be a setext heading's text.
func startsBlock(content string) bool {
	pos, end := skipIndent(content, 0, len(content))
	if pos < 0 || pos >= end {
		return true
	}

	switch content[pos] {
	case '>', '|':
		return true
	case '-', '*', '+':
		return pos+1 >= end || isSpace(content[pos+1])
	}

	digits := pos
	for digits < end && content[digits] >= '0' && content[digits] <= '9' {
		digits++
	}
	if digits > pos && digits < end && (content[digits] == '.' || content[digits] == ')') {
		return digits+1 >= end || isSpace(content[digits+1])
	}
	return false
}

// classifySection builds a Section from an H2 heading.
func classifySection(src string, heading Heading) *Section {
	section := &Section{Heading: heading, Kind: KindMalformed}
	start, end := heading.Text.Start, heading.Text.End
	if start >= end {
		return section
	}

	if isUnreleased(src, start, end) {
		section.Kind = KindUnreleased
		return section
	}

	version, rest, ok := scanVersion(src, start, end)
	if !ok {
		return section
	}

	section.Kind = KindRelease
	section.VersionSpan = version
	section.Version = version.Text(src)
	section.Date, section.Yanked = scanDateAndYanked(src, rest, end)
	return section
}

func isUnreleased(src string, start, end int) bool {
	if src[start] != '[' {
		return strings.EqualFold(src[start:end], "unreleased")
	}
	inner, next, ok := scanLinkText(src, start, end)
	return ok && next == end && strings.EqualFold(inner.Text(src), "unreleased")
}

// scanVersion reads `[X]`, `[X](url)`, `[X][label]` or a bare version token.
func scanVersion(src string, start, end int) (span.Span, int, bool) {
	if src[start] == '[' {
		inner, next, ok := scanLinkText(src, start, end)
		if !ok || inner.IsEmpty() {
			return span.Span{}, 0, false
		}
		return inner, next, true
	}

	tokenEnd := start
	for tokenEnd < end && !isSpace(src[tokenEnd]) {
		tokenEnd++
	}
	if !looksLikeVersion(src[start:tokenEnd]) {
		return span.Span{}, 0, false
	}
	return span.New(start, tokenEnd), tokenEnd, true
}

func looksLikeVersion(token string) bool {
	token = strings.TrimPrefix(strings.TrimPrefix(token, "v"), "V")
	return token != "" && token[0] >= '0' && token[0] <= '9'
}

// scanLinkText reads a bracketed label at start with an optional `(url)` or
// `[label]` suffix. It returns the trimmed label span and the offset after
// the whole construct.
func scanLinkText(src string, start, end int) (span.Span, int, bool) {
	closeIdx := strings.IndexByte(src[start:end], ']')
	if closeIdx < 0 {
		return span.Span{}, 0, false
	}
	closeIdx += start

	innerStart, innerEnd := trimBounds(src, start+1, closeIdx)
	next := closeIdx + 1

	if next < end {
		var closer byte
		switch src[next] {
		case '(':
			closer = ')'
		case '[':
			closer = ']'
		}
		if closer != 0 {
			suffixEnd := strings.IndexByte(src[next:end], closer)
			if suffixEnd < 0 {
				return span.Span{}, 0, false
			}
			next += suffixEnd + 1
		}
	}

	return span.New(innerStart, innerEnd), next, true
}

// scanDateAndYanked splits the text after a version into a date token and a
// yanked token. Neither is validated here.
func scanDateAndYanked(src string, pos, end int) (*span.Span, *span.Span) {
	tokens := fields(src, pos, end)
	if len(tokens) > 0 {
		first := &tokens[0]
		first.Start = skipDashes(src, first.Start, first.End)
		if first.IsEmpty() {
			tokens = tokens[1:]
		}
	}

	var date, yanked *span.Span
	if len(tokens) > 0 && src[tokens[0].Start] != '[' {
		token := tokens[0]
		date = &token
		tokens = tokens[1:]
	}
	if len(tokens) > 0 {
		token := span.New(tokens[0].Start, tokens[len(tokens)-1].End)
		yanked = &token
	}
	return date, yanked
}

// skipDashes advances past leading hyphens, en dashes and em dashes.
func skipDashes(src string, pos, end int) int {
	for pos < end {
		r, size := utf8.DecodeRuneInString(src[pos:end])
		if r != '-' && r != '–' && r != '—' {
			break
		}
		pos += size
	}
	return pos
}

// fields splits src[pos:end] on spaces and tabs, returning token spans.
func fields(src string, pos, end int) []span.Span {
	var tokens []span.Span
	for pos < end {
		for pos < end && isSpace(src[pos]) {
			pos++
		}
		start := pos
		for pos < end && !isSpace(src[pos]) {
			pos++
		}
		if start < pos {
			tokens = append(tokens, span.New(start, pos))
		}
	}
	return tokens
}

// skipIndent skips up to three leading spaces. It returns -1 when the line is
// indented further.
func skipIndent(src string, pos, end int) (int, int) {
	indent := 0
	for pos < end && src[pos] == ' ' {
		indent++
		pos++
	}
	if indent > maxIndent {
		return -1, end
	}
	return pos, end
}

func trimBounds(src string, start, end int) (int, int) {
	for start < end && isSpace(src[start]) {
		start++
	}
	for end > start && isSpace(src[end-1]) {
		end--
	}
	return start, end
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}

func isBlank(content string) bool {
	return strings.TrimSpace(content) == ""
}
