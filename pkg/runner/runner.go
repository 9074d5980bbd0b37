package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"

	"github.com/yaklabco/changelint/internal/logging"
	"github.com/yaklabco/changelint/pkg/fsutil"
	"github.com/yaklabco/changelint/pkg/lint"
)

// Runner lints many changelogs with a shared lint.Engine.
type Runner struct {
	// Engine parses and lints a single input.
	Engine *lint.Engine
}

// New creates a new Runner with the given engine.
func New(engine *lint.Engine) *Runner {
	return &Runner{Engine: engine}
}

// Run discovers inputs under opts.Paths and lints them on a bounded worker pool.
// The selection is validated before any input is read, so an unknown rule
// fails the whole run. Outcomes are ordered by path whatever order workers
// finish in.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if err := r.Engine.Linter.Catalog().Validate(opts.Selection); err != nil {
		return nil, err
	}

	targets, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx)
	logger.Debug("discovered changelogs", logging.FieldFilesDiscovered, len(targets))

	result := &Result{
		Files: make([]FileOutcome, 0, len(targets)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(targets)

	if len(targets) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(targets))

	stdin := opts.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}

	workCh := make(chan Target)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, opts.Selection, stdin)
		}()
	}

	go func() {
		defer close(workCh)
		for _, target := range targets {
			select {
			case <-ctx.Done():
				return
			case workCh <- target:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(targets))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, target := range targets {
		if outcome, ok := outcomes[target.Path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	logger.Debug("lint complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
	)

	return result, nil
}

// worker lints targets from workCh and sends outcomes to outCh.
func (r *Runner) worker(
	ctx context.Context,
	workCh <-chan Target,
	outCh chan<- FileOutcome,
	sel lint.Selection,
	stdin io.Reader,
) {
	for target := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := FileOutcome{Path: target.Path}
		fileResult, err := r.lintTarget(ctx, target, sel, stdin)
		if err != nil {
			outcome.Error = err
		} else {
			outcome.Result = fileResult
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

func (r *Runner) lintTarget(ctx context.Context, target Target, sel lint.Selection, stdin io.Reader) (*lint.FileResult, error) {
	var (
		content []byte
		err     error
	)
	if target.IsStdin() {
		content, _, err = fsutil.ReadInput(ctx, target.Path, stdin)
	} else {
		content, _, err = fsutil.ReadFile(ctx, target.Abs)
	}
	if err != nil {
		return nil, err
	}

	ctx = logging.With(ctx, logging.FieldPath, target.Path)
	logging.FromContext(ctx).Debug("linting")
	fileResult, err := r.Engine.LintContent(ctx, target.Path, content, sel)
	if err == nil {
		logging.FromContext(ctx).Debug("linted", logging.FieldDiagnosticsTotal, fileResult.IssueCount())
	}
	return fileResult, err
}
