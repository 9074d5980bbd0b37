package changelog

import (
	"regexp"
	"strings"

	"github.com/yaklabco/changelint/pkg/span"
)

// Reference definition pattern: [label]: destination "optional title".
// Matches at start of line with up to three spaces of indentation.
var refDefPattern = regexp.MustCompile(
	`^ {0,3}\[([^\]]+)\]:\s*(\S+)(?:\s+"[^"]*"|\s+'[^']*'|\s+\([^)]*\))?\s*$`,
)

// parseDefinition recognizes a link reference definition line.
func parseDefinition(src string, line span.Line) (LinkDefinition, bool) {
	content := src[line.StartOffset:line.ContentEnd]
	match := refDefPattern.FindStringSubmatchIndex(content)
	if match == nil {
		return LinkDefinition{}, false
	}

	label := NormalizeLabel(content[match[2]:match[3]])
	if label == "" {
		return LinkDefinition{}, false
	}

	base := line.StartOffset
	return LinkDefinition{
		Label:     label,
		Span:      line.Span(),
		LabelSpan: span.New(base+match[2], base+match[3]),
		Target:    content[match[4]:match[5]],
	}, true
}

// scanUsages finds reference-style links in text, which starts at byte offset
// base of the source. Inline links, code spans and escaped brackets are skipped.
func scanUsages(base int, text string) []LinkUsage {
	var usages []LinkUsage
	add := func(start, end int) {
		label := NormalizeLabel(text[start:end])
		if label == "" || label == "x" || strings.HasPrefix(label, "^") {
			return
		}
		usages = append(usages, LinkUsage{Label: label, Span: span.New(base+start, base+end)})
	}

	for idx := 0; idx < len(text); {
		switch text[idx] {
		case '\\':
			idx += 2
		case '`':
			idx = skipCodeSpan(text, idx)
		case '[':
			idx = scanReference(text, idx, add)
		default:
			idx++
		}
	}
	return usages
}

// scanReference handles the bracket at open and returns where scanning resumes.
func scanReference(text string, open int, add func(start, end int)) int {
	closeIdx := matchingClose(text, open, '[', ']')
	if closeIdx < 0 {
		return open + 1
	}

	next := closeIdx + 1
	if next < len(text) {
		switch text[next] {
		case '(':
			if end := matchingClose(text, next, '(', ')'); end >= 0 {
				return end + 1
			}
			return next
		case '[':
			labelClose := matchingClose(text, next, '[', ']')
			if labelClose < 0 {
				break
			}
			if strings.TrimSpace(text[next+1:labelClose]) == "" {
				add(open+1, closeIdx)
			} else {
				add(next+1, labelClose)
			}
			return labelClose + 1
		case ':':
			if strings.TrimSpace(text[:open]) == "" {
				return next
			}
		}
	}

	add(open+1, closeIdx)
	return next
}

// matchingClose returns the index of the closer balancing the opener at open, or -1.
func matchingClose(text string, open int, opener, closer byte) int {
	depth := 0
	for idx := open; idx < len(text); idx++ {
		switch text[idx] {
		case '\\':
			idx++
		case opener:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return idx
			}
		}
	}
	return -1
}

// skipCodeSpan returns the offset after the code span starting at idx. An
// unmatched backtick run is literal text.
func skipCodeSpan(text string, idx int) int {
	run := countRun(text, idx, '`')
	for pos := idx + run; pos < len(text); {
		if text[pos] != '`' {
			pos++
			continue
		}
		n := countRun(text, pos, '`')
		if n == run {
			return pos + n
		}
		pos += n
	}
	return idx + run
}

func countRun(text string, idx int, char byte) int {
	n := 0
	for idx+n < len(text) && text[idx+n] == char {
		n++
	}
	return n
}
