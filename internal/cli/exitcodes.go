package cli

import (
	"errors"
	"fmt"

	"github.com/yaklabco/changelint/internal/configloader"
	"github.com/yaklabco/changelint/pkg/config"
	"github.com/yaklabco/changelint/pkg/fsutil"
	"github.com/yaklabco/changelint/pkg/lint"
	"github.com/yaklabco/changelint/pkg/runner"
)

// Exit codes for changelint.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitLintErrors indicates lint completed but found errors.
	ExitLintErrors = 1

	// ExitLintWarnings indicates lint completed but found warnings (when strict mode).
	ExitLintWarnings = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrLintIssuesFound is returned when lint issues are found.
	ErrLintIssuesFound = errors.New("lint issues found")

	// ErrUsage marks invalid command-line usage.
	ErrUsage = errors.New("invalid usage")

	// ErrInputFailed is returned when some inputs could not be read.
	ErrInputFailed = errors.New("some inputs could not be linted")
)

// exitError carries an exit code alongside its cause.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, args...))
}

// ExitCodeFromResult determines the exit code based on result and strict mode.
// Inputs that could not be read take precedence, since the run is incomplete.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	switch {
	case result.Stats.FilesErrored > 0:
		return ExitIOError
	case result.Stats.DiagnosticsBySeverity[config.SeverityError] > 0:
		return ExitLintErrors
	case strict && result.Stats.DiagnosticsBySeverity[config.SeverityWarning] > 0:
		return ExitLintWarnings
	default:
		return ExitSuccess
	}
}

// resultError converts a finished run into the error returned by the check command.
func resultError(result *runner.Result, strict bool) error {
	switch code := ExitCodeFromResult(result, strict); code {
	case ExitSuccess:
		return nil
	case ExitIOError:
		return &exitError{code: code, err: fmt.Errorf("%w: %d failed", ErrInputFailed, result.Stats.FilesErrored)}
	default:
		return &exitError{code: code, err: ErrLintIssuesFound}
	}
}

// ExitCodeFromError maps an error returned by a command to an exit code.
func ExitCodeFromError(err error) int {
	var exitErr *exitError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &exitErr):
		return exitErr.code
	case errors.Is(err, ErrLintIssuesFound):
		return ExitLintErrors
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, configloader.ErrInvalidConfig), errors.Is(err, lint.ErrUnknownRule):
		return ExitConfigError
	case errors.Is(err, fsutil.ErrNotFound), errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory), errors.Is(err, fsutil.ErrTooLarge),
		errors.Is(err, fsutil.ErrExists):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
