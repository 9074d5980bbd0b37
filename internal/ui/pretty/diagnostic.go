package pretty

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/changelint/pkg/analysis"
	"github.com/yaklabco/changelint/pkg/config"
)

// FormatShort formats a diagnostic as a single "path:line:col: RULE message" line.
func (s *Styles) FormatShort(entry analysis.DiagnosticEntry) string {
	location := fmt.Sprintf("%s:%d:%d:",
		s.FilePath.Render(entry.FilePath),
		entry.StartLine,
		entry.StartColumn,
	)
	return fmt.Sprintf("%s %s %s\n",
		location,
		s.SeverityStyle(config.Severity(entry.Severity)).Render(entry.Rule),
		s.Message.Render(entry.Message),
	)
}

// FormatEntry formats a diagnostic with its source context for the full format.
//
//	error[E203]: release "2.0.0" is out of order
//	  --> CHANGELOG.md:4:4
//	   |
//	 4 | ## [2.0.0] - 2024-01-01
//	   |    ^^^^^^^^^^^^^^^^^^^^
//	   = help: move the release below newer ones
func (s *Styles) FormatEntry(entry analysis.DiagnosticEntry) string {
	var builder strings.Builder

	sev := config.Severity(entry.Severity)
	builder.WriteString(s.SeverityStyle(sev).Render(fmt.Sprintf("%s[%s]", sev, entry.Rule)))
	builder.WriteString(": " + s.Message.Render(entry.Message) + "\n")

	width := gutterWidth(entry)
	pad := strings.Repeat(" ", width)

	builder.WriteString(fmt.Sprintf("%s%s %s:%d:%d\n",
		pad, s.Gutter.Render("-->"),
		s.FilePath.Render(entry.FilePath), entry.StartLine, entry.StartColumn))

	if len(entry.Context) > 0 {
		builder.WriteString(pad + " " + s.Gutter.Render("|") + "\n")
		for _, line := range entry.Context {
			number := fmt.Sprintf("%*d", width, line.Number)
			builder.WriteString(s.Gutter.Render(number+" |") + " " + s.SourceLine.Render(line.Text) + "\n")
		}
		last := entry.Context[len(entry.Context)-1]
		if last.Number == entry.StartLine {
			builder.WriteString(pad + " " + s.Gutter.Render("|") + " " +
				s.FormatCaret(last.Text, entry) + "\n")
		}
	}

	if entry.Suggestion != "" {
		builder.WriteString(pad + " " + s.Gutter.Render("=") + " " +
			s.Dim.Render("help:") + " " + s.Suggestion.Render(entry.Suggestion) + "\n")
	}

	return builder.String()
}

// FormatCaret returns the marker line underlining the diagnostic on its first line.
// Multi-line spans are underlined to the end of the first line.
func (s *Styles) FormatCaret(line string, entry analysis.DiagnosticEntry) string {
	column := max(entry.StartColumn, 1)
	lineWidth := utf8.RuneCountInString(line)

	end := entry.EndColumn
	if entry.EndLine != entry.StartLine {
		end = lineWidth + 1
	}
	count := max(end-column, 1)

	return strings.Repeat(" ", column-1) + s.Caret.Render(strings.Repeat("^", count))
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError, config.SeverityWarning:
		return s.SeverityStyle(sev).Render(string(sev))
	default:
		return string(sev)
	}
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	switch {
	case issueCount == 1:
		header += s.Dim.Render(" (1 issue)")
	case issueCount > 1:
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}

// FormatFileError formats an input that could not be read.
func (s *Styles) FormatFileError(fileErr analysis.FileError) string {
	return fmt.Sprintf("%s: %s %s\n",
		s.FilePath.Render(fileErr.Path),
		s.Failure.Render("failed:"),
		fileErr.Message)
}

// gutterWidth returns the width of the widest line number shown for entry.
func gutterWidth(entry analysis.DiagnosticEntry) int {
	widest := entry.StartLine
	for _, line := range entry.Context {
		widest = max(widest, line.Number)
	}
	return len(strconv.Itoa(widest)) + 1
}
