package cli_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/changelint/internal/cli"
	"github.com/yaklabco/changelint/internal/configloader"
	"github.com/yaklabco/changelint/pkg/config"
	"github.com/yaklabco/changelint/pkg/fsutil"
	"github.com/yaklabco/changelint/pkg/lint"
	"github.com/yaklabco/changelint/pkg/runner"
)

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	result := func(errs, warns, failed int) *runner.Result {
		return &runner.Result{Stats: runner.Stats{
			FilesErrored: failed,
			DiagnosticsBySeverity: map[config.Severity]int{
				config.SeverityError:   errs,
				config.SeverityWarning: warns,
			},
		}}
	}

	tests := []struct {
		name   string
		result *runner.Result
		strict bool
		want   int
	}{
		{name: "nil", result: nil, want: cli.ExitSuccess},
		{name: "clean", result: result(0, 0, 0), want: cli.ExitSuccess},
		{name: "errors", result: result(2, 0, 0), want: cli.ExitLintErrors},
		{name: "warnings", result: result(0, 1, 0), want: cli.ExitSuccess},
		{name: "warnings strict", result: result(0, 1, 0), strict: true, want: cli.ExitLintWarnings},
		{name: "errors beat warnings", result: result(1, 1, 0), strict: true, want: cli.ExitLintErrors},
		{name: "unreadable input", result: result(1, 0, 1), want: cli.ExitIOError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCodeFromResult(tt.result, tt.strict))
		})
	}
}

func TestExitCodeFromError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: cli.ExitSuccess},
		{name: "lint issues", err: cli.ErrLintIssuesFound, want: cli.ExitLintErrors},
		{name: "usage", err: fmt.Errorf("wrapped: %w", cli.ErrUsage), want: cli.ExitInvalidUsage},
		{name: "invalid config", err: fmt.Errorf("load: %w", configloader.ErrInvalidConfig), want: cli.ExitConfigError},
		{name: "unknown rule", err: &lint.UnknownRuleError{Code: "E999"}, want: cli.ExitConfigError},
		{name: "not found", err: fmt.Errorf("%w: x", fsutil.ErrNotFound), want: cli.ExitIOError},
		{name: "exists", err: fmt.Errorf("%w: x", fsutil.ErrExists), want: cli.ExitIOError},
		{name: "internal", err: fmt.Errorf("%w: span", lint.ErrInternal), want: cli.ExitInternalError},
		{name: "cancelled", err: context.Canceled, want: cli.ExitInternalError},
		{name: "other", err: errors.New("boom"), want: cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCodeFromError(tt.err))
		})
	}
}
