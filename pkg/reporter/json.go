package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/yaklabco/changelint/pkg/analysis"
)

// jsonRenderer writes every diagnostic as one JSON array.
type jsonRenderer struct {
	out    io.Writer
	indent bool
}

func newJSONRenderer(w io.Writer, indent bool) *jsonRenderer {
	return &jsonRenderer{out: w, indent: indent}
}

// Render implements Renderer.
func (r *jsonRenderer) Render(_ context.Context, report *analysis.Report) error {
	entries := report.Diagnostics
	if entries == nil {
		entries = []analysis.DiagnosticEntry{}
	}

	encoder := json.NewEncoder(r.out)
	if r.indent {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(entries); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

// jsonlRenderer writes one JSON object per diagnostic per line.
type jsonlRenderer struct {
	out io.Writer
}

func newJSONLRenderer(w io.Writer) *jsonlRenderer {
	return &jsonlRenderer{out: w}
}

// Render implements Renderer.
func (r *jsonlRenderer) Render(ctx context.Context, report *analysis.Report) error {
	encoder := json.NewEncoder(r.out)
	for _, entry := range report.Diagnostics {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := encoder.Encode(entry); err != nil {
			return fmt.Errorf("encode JSON line: %w", err)
		}
	}
	return nil
}
