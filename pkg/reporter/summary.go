package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yaklabco/changelint/internal/ui/pretty"
	"github.com/yaklabco/changelint/pkg/analysis"
)

// Table layout constants for summary output.
// Both tables use the same width for visual consistency.
const (
	maxTableWidth  = 80 // Widest the tables grow on a wide terminal.
	minTableWidth  = 50
	numColWidth    = 7 // Width of numeric columns.
	warnColWidth   = 8 // Width of warnings column.
	numericColumns = numColWidth*2 + warnColWidth + 3
)

// padRight pads a string to the given width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads a string to the given width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// summaryRenderer prints per-rule and per-file tables followed by totals.
type summaryRenderer struct {
	out        io.Writer
	styles     *pretty.Styles
	tableWidth int
}

func newSummaryRenderer(w io.Writer, colorEnabled bool, termWidth int) *summaryRenderer {
	width := maxTableWidth
	if termWidth > 0 {
		width = max(minTableWidth, min(maxTableWidth, termWidth))
	}
	return &summaryRenderer{
		out:        w,
		styles:     pretty.NewStyles(colorEnabled),
		tableWidth: width,
	}
}

// Render implements Renderer.
func (r *summaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	if !report.Totals.HasIssues() {
		return nil
	}

	fmt.Fprintln(r.out)
	r.renderRuleTable(report.ByRule)
	fmt.Fprintln(r.out)
	r.renderFileTable(report.ByFile)
	fmt.Fprintln(r.out)

	_, err := io.WriteString(r.out, r.styles.Bold.Render("Total: ")+r.styles.FormatSummaryOneLine(report.Totals))
	return err
}

// nameWidth is the width left for the first column.
func (r *summaryRenderer) nameWidth() int {
	return r.tableWidth - numericColumns - 1
}

func (r *summaryRenderer) separator() string {
	return r.styles.TableSeparator.Render(strings.Repeat("─", r.tableWidth))
}

func (r *summaryRenderer) renderHeader(title, first string) {
	fmt.Fprintln(r.out, r.styles.Bold.Render(title))
	fmt.Fprintln(r.out, r.separator())
	fmt.Fprintf(r.out, "%s %s %s %s\n",
		r.styles.TableHeader.Render(padRight(first, r.nameWidth())),
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Errors", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Warnings", warnColWidth)),
	)
	fmt.Fprintln(r.out, r.separator())
}

func (r *summaryRenderer) renderRow(name string, issues, errors, warnings int) {
	// Pad first, then style
	padded := padRight(name, r.nameWidth())
	switch {
	case errors > 0:
		padded = r.styles.TableErrorRow.Render(padded)
	case warnings > 0:
		padded = r.styles.TableWarnRow.Render(padded)
	}

	fmt.Fprintf(r.out, "%s %s %s %s\n",
		padded,
		padLeft(strconv.Itoa(issues), numColWidth),
		padLeft(strconv.Itoa(errors), numColWidth),
		padLeft(strconv.Itoa(warnings), warnColWidth),
	)
}

func (r *summaryRenderer) renderRuleTable(rules []analysis.RuleAnalysis) {
	if len(rules) == 0 {
		return
	}

	r.renderHeader("Rules Summary", "Rule")
	limit := r.nameWidth() - 1
	for _, rule := range rules {
		name := rule.RuleID
		if rule.RuleName != "" {
			name = rule.RuleID + " " + rule.RuleName
		}
		if len(name) > limit {
			name = name[:limit-1] + "…"
		}
		r.renderRow(name, rule.Issues, rule.Errors, rule.Warnings)
	}
}

func (r *summaryRenderer) renderFileTable(files []analysis.FileAnalysis) {
	if len(files) == 0 {
		return
	}

	r.renderHeader("Files Summary", "File")
	limit := r.nameWidth() - 1
	for _, file := range files {
		path := file.Path
		if len(path) > limit {
			path = "…" + path[len(path)-(limit-1):]
		}
		r.renderRow(path, file.Issues, file.Errors, file.Warnings)
	}
}
