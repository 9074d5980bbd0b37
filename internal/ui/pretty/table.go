package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/changelint/pkg/config"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 4 // CODE, NAME, SEVERITY, DESCRIPTION
	minCodeWidth     = 4
	minNameWidth     = 4
	minSeverityWidth = 8
	minSummaryWidth  = 20
	heavySeparator   = "="
	ellipsis         = "..."
	defaultTermWidth = 100
)

// RuleRow is one line of the rule catalog table.
type RuleRow struct {
	Code     string
	Name     string
	Severity config.Severity
	Enabled  bool
	Summary  string
}

// TableFormatter formats the rule catalog as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:    styles,
		termWidth: termWidth,
	}
}

type columnWidths struct {
	code     int
	name     int
	severity int
	summary  int
}

// FormatRules formats rule rows as a table. Descriptions are truncated
// to keep each row within the terminal width.
func (t *TableFormatter) FormatRules(rows []RuleRow) string {
	if len(rows) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder
	builder.WriteString(t.styles.TableHeader.Render(t.formatCells(widths, "CODE", "NAME", "SEVERITY", "DESCRIPTION")))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
	}

	return builder.String()
}

func (t *TableFormatter) calculateColumnWidths(rows []RuleRow) columnWidths {
	widths := columnWidths{
		code:     minCodeWidth,
		name:     minNameWidth,
		severity: minSeverityWidth,
		summary:  minSummaryWidth,
	}
	for _, row := range rows {
		widths.code = max(widths.code, len(row.Code))
		widths.name = max(widths.name, len(row.Name))
		widths.summary = max(widths.summary, len(row.Summary))
	}

	totalWidth := widths.code + widths.name + widths.severity + widths.summary + tablePadding*tableColumnCount
	if totalWidth > t.termWidth {
		widths.summary = max(minSummaryWidth, widths.summary-(totalWidth-t.termWidth))
	}
	return widths
}

func (t *TableFormatter) formatCells(widths columnWidths, code, name, severity, summary string) string {
	return strings.TrimRight(fmt.Sprintf(" %-*s  %-*s  %-*s  %s",
		widths.code, code,
		widths.name, name,
		widths.severity, severity,
		truncate(summary, widths.summary),
	), " ")
}

func (t *TableFormatter) formatRow(row RuleRow, widths columnWidths) string {
	severity := string(row.Severity)
	if !row.Enabled {
		severity = "off"
	}
	line := t.formatCells(widths, row.Code, row.Name, severity, row.Summary)

	var style lipgloss.Style
	switch {
	case !row.Enabled:
		style = t.styles.Dim
	case row.Severity == config.SeverityWarning:
		style = t.styles.TableWarnRow
	default:
		style = t.styles.TableErrorRow
	}
	return style.Render(line)
}

func (t *TableFormatter) formatSeparator(widths columnWidths) string {
	total := widths.code + widths.name + widths.severity + widths.summary + tablePadding*tableColumnCount - 1
	return t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, total))
}

// truncate shortens s to width bytes, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	if len(s) <= width || width <= len(ellipsis) {
		return s
	}
	return s[:width-len(ellipsis)] + ellipsis
}
