package reporter

import (
	"context"

	"github.com/yaklabco/changelint/pkg/analysis"
)

// Renderer formats an analysis.Report for output.
// Renderers are stateless and only handle presentation logic.
type Renderer interface {
	// Render writes the formatted report to the configured output.
	Render(ctx context.Context, report *analysis.Report) error
}

// multiRenderer renders the same report with each renderer in turn.
type multiRenderer []Renderer

func (m multiRenderer) Render(ctx context.Context, report *analysis.Report) error {
	for _, renderer := range m {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := renderer.Render(ctx, report); err != nil {
			return err
		}
	}
	return nil
}
