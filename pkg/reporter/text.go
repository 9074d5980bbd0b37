package reporter

import (
	"context"
	"fmt"
	"io"

	"github.com/yaklabco/changelint/internal/ui/pretty"
	"github.com/yaklabco/changelint/pkg/analysis"
)

// shortRenderer prints one "path:line:col: RULE message" line per diagnostic.
type shortRenderer struct {
	out    io.Writer
	styles *pretty.Styles
}

func newShortRenderer(w io.Writer, colorEnabled bool) *shortRenderer {
	return &shortRenderer{out: w, styles: pretty.NewStyles(colorEnabled)}
}

// Render implements Renderer.
func (r *shortRenderer) Render(_ context.Context, report *analysis.Report) error {
	for _, entry := range report.Diagnostics {
		if _, err := io.WriteString(r.out, r.styles.FormatShort(entry)); err != nil {
			return err
		}
	}
	return writeFileErrors(r.out, r.styles, report.Errors)
}

// fullRenderer groups diagnostics by file and shows source context.
type fullRenderer struct {
	out    io.Writer
	styles *pretty.Styles
}

func newFullRenderer(w io.Writer, colorEnabled bool) *fullRenderer {
	return &fullRenderer{out: w, styles: pretty.NewStyles(colorEnabled)}
}

// Render implements Renderer.
func (r *fullRenderer) Render(_ context.Context, report *analysis.Report) error {
	var currentFile string
	for idx, entry := range report.Diagnostics {
		if idx == 0 || entry.FilePath != currentFile {
			currentFile = entry.FilePath
			if idx > 0 {
				fmt.Fprintln(r.out)
			}
			fmt.Fprintln(r.out, r.styles.FormatFileHeader(currentFile, countForFile(report.Diagnostics, currentFile)))
		}
		fmt.Fprintln(r.out)
		if _, err := io.WriteString(r.out, r.styles.FormatEntry(entry)); err != nil {
			return err
		}
	}

	if len(report.Diagnostics) > 0 {
		fmt.Fprintln(r.out)
	}
	if err := writeFileErrors(r.out, r.styles, report.Errors); err != nil {
		return err
	}

	_, err := io.WriteString(r.out, r.styles.FormatSummaryOneLine(report.Totals))
	return err
}

func writeFileErrors(w io.Writer, styles *pretty.Styles, errs []analysis.FileError) error {
	for _, fileErr := range errs {
		if _, err := io.WriteString(w, styles.FormatFileError(fileErr)); err != nil {
			return err
		}
	}
	return nil
}

// countForFile counts the entries of a file; entries are grouped by file.
func countForFile(entries []analysis.DiagnosticEntry, path string) int {
	count := 0
	for _, entry := range entries {
		if entry.FilePath == path {
			count++
		}
	}
	return count
}

func colorFor(opts Options) bool {
	return pretty.IsColorEnabled(opts.Color, opts.Writer)
}

func termWidthFor(opts Options) int {
	if opts.TermWidth > 0 {
		return opts.TermWidth
	}
	return pretty.TerminalWidth(opts.Writer)
}
