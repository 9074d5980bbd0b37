// Package reporter renders lint results as text, JSON or SARIF.
package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/yaklabco/changelint/pkg/analysis"
	"github.com/yaklabco/changelint/pkg/config"
	"github.com/yaklabco/changelint/pkg/runner"
)

// Compile-time interface check for reporterFacade.
var _ Reporter = (*reporterFacade)(nil)

// Reporter formats and writes lint results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of issues reported and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// reporterFacade bridges the Reporter interface to Renderer implementations.
// Output is buffered and flushed once per report.
type reporterFacade struct {
	out          io.Writer
	build        func(w io.Writer) Renderer
	analysisOpts analysis.Options
}

// Report implements Reporter by analyzing the result and rendering it.
func (f *reporterFacade) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	report, err := analysis.Analyze(result, f.analysisOpts)
	if err != nil {
		return 0, fmt.Errorf("analyze: %w", err)
	}

	bw := bufio.NewWriterSize(f.out, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil && flushErr != nil {
			err = fmt.Errorf("flush output: %w", flushErr)
		}
	}()

	if err := f.build(bw).Render(ctx, report); err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	return report.Totals.Issues, nil
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	if opts.Format == "" {
		opts.Format = config.FormatShort
	}
	if opts.RuleFormat == "" {
		opts.RuleFormat = config.RuleFormatID
	}
	if !opts.Format.IsValid() {
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}

	analysisOpts := analysis.DefaultOptions()
	analysisOpts.RuleFormat = opts.RuleFormat
	if opts.Format == config.FormatFull {
		analysisOpts.ContextLines = fullContextLines
	}

	// Colour and width are decided against the real destination, not the buffer.
	colorEnabled := colorFor(opts)
	termWidth := termWidthFor(opts)

	build := func(w io.Writer) Renderer {
		var main Renderer
		switch opts.Format {
		case config.FormatFull:
			main = newFullRenderer(w, colorEnabled)
		case config.FormatJSON:
			main = newJSONRenderer(w, !opts.Compact)
		case config.FormatJSONL:
			main = newJSONLRenderer(w)
		case config.FormatSARIF:
			main = newSARIFRenderer(w, opts)
		default:
			main = newShortRenderer(w, colorEnabled)
		}

		if !opts.ShowSummary || !isTextFormat(opts.Format) {
			return main
		}
		return multiRenderer{main, newSummaryRenderer(w, colorEnabled, termWidth)}
	}

	return &reporterFacade{
		out:          opts.Writer,
		build:        build,
		analysisOpts: analysisOpts,
	}, nil
}

// isTextFormat reports whether summary tables may be appended to the format.
func isTextFormat(format config.OutputFormat) bool {
	return format == config.FormatShort || format == config.FormatFull
}
