// Package pretty renders diagnostics, rule tables and summaries for a terminal.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/yaklabco/changelint/pkg/config"
)

// ANSI palette indices.
const (
	colorRed    = lipgloss.Color("9")
	colorGreen  = lipgloss.Color("10")
	colorYellow = lipgloss.Color("11")
	colorBlue   = lipgloss.Color("12")
	colorGrey   = lipgloss.Color("8")
	colorLight  = lipgloss.Color("7")
)

// Styles holds one lipgloss style per output element.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style

	FilePath   lipgloss.Style
	Message    lipgloss.Style
	Suggestion lipgloss.Style
	SourceLine lipgloss.Style
	Gutter     lipgloss.Style
	Caret      lipgloss.Style

	Success lipgloss.Style
	Failure lipgloss.Style

	TableHeader    lipgloss.Style
	TableErrorRow  lipgloss.Style
	TableWarnRow   lipgloss.Style
	TableSeparator lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles returns the coloured styles, or plain ones when colorEnabled is false.
func NewStyles(colorEnabled bool) *Styles {
	// Without colour every element renders as plain text, bold included,
	// so golden output stays free of escape sequences.
	fg := func(c lipgloss.Color) lipgloss.Style {
		if !colorEnabled {
			return lipgloss.NewStyle()
		}
		return lipgloss.NewStyle().Foreground(c)
	}
	strong := func(s lipgloss.Style) lipgloss.Style {
		if !colorEnabled {
			return s
		}
		return s.Bold(true)
	}

	return &Styles{
		Error:   strong(fg(colorRed)),
		Warning: strong(fg(colorYellow)),

		FilePath:   strong(lipgloss.NewStyle()),
		Message:    lipgloss.NewStyle(),
		Suggestion: italic(fg(colorGreen), colorEnabled),
		SourceLine: fg(colorLight),
		Gutter:     fg(colorBlue),
		Caret:      strong(fg(colorRed)),

		Success: strong(fg(colorGreen)),
		Failure: strong(fg(colorRed)),

		TableHeader:    strong(fg(colorLight)),
		TableErrorRow:  fg(colorRed),
		TableWarnRow:   fg(colorYellow),
		TableSeparator: fg(colorGrey),

		Dim:  fg(colorGrey),
		Bold: strong(lipgloss.NewStyle()),
	}
}

func italic(s lipgloss.Style, enabled bool) lipgloss.Style {
	if !enabled {
		return s
	}
	return s.Italic(true)
}

// SeverityStyle picks Warning or Error for sev.
func (s *Styles) SeverityStyle(sev config.Severity) lipgloss.Style {
	if sev == config.SeverityWarning {
		return s.Warning
	}
	return s.Error
}

// IsColorEnabled resolves a color mode ("auto", "always" or "never") for writer.
// Auto enables colour only for a terminal and only while NO_COLOR is unset.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// TerminalWidth reports the width of writer in columns, or 0 when it is not a terminal.
func TerminalWidth(writer io.Writer) int {
	file, ok := writer.(*os.File)
	if !ok {
		return 0
	}
	if width, _, err := term.GetSize(int(file.Fd())); err == nil {
		return width
	}
	return 0
}
