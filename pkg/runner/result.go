package runner

import (
	"github.com/yaklabco/changelint/pkg/config"
	"github.com/yaklabco/changelint/pkg/lint"
)

// FileOutcome is the result of linting one input.
type FileOutcome struct {
	// Path is the input as displayed to the user.
	Path string

	// Result contains the lint result for this input.
	// It is nil if the input could not be processed.
	Result *lint.FileResult

	// Error is set if the input could not be read or linted.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of inputs found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of inputs linted successfully.
	FilesProcessed int

	// FilesErrored is the number of inputs that could not be linted.
	FilesErrored int

	// FilesWithIssues is the number of inputs with at least one diagnostic.
	FilesWithIssues int

	// DiagnosticsTotal is the total number of diagnostics across all inputs.
	DiagnosticsTotal int

	// DiagnosticsBySeverity maps severities to counts.
	DiagnosticsBySeverity map[config.Severity]int

	// DiagnosticsByRule maps rule IDs to counts.
	DiagnosticsByRule map[string]int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each input, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasErrors reports whether any error-severity diagnostics occurred.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsBySeverity[config.SeverityError] > 0
}

// HasWarnings reports whether any warning-severity diagnostics occurred.
func (r *Result) HasWarnings() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsBySeverity[config.SeverityWarning] > 0
}

// HasIssues reports whether any diagnostics were found.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsTotal > 0
}

// Errors returns the per-file errors in file order.
func (r *Result) Errors() []error {
	if r == nil {
		return nil
	}
	var errs []error
	for _, outcome := range r.Files {
		if outcome.Error != nil {
			errs = append(errs, outcome.Error)
		}
	}
	return errs
}

// Diagnostics returns every diagnostic in file order.
func (r *Result) Diagnostics() []lint.Diagnostic {
	if r == nil {
		return nil
	}
	var diags []lint.Diagnostic
	for _, outcome := range r.Files {
		if outcome.Result != nil {
			diags = append(diags, outcome.Result.Diagnostics...)
		}
	}
	return diags
}

func newStats() Stats {
	return Stats{
		DiagnosticsBySeverity: make(map[config.Severity]int),
		DiagnosticsByRule:     make(map[string]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Result == nil {
		return
	}

	r.Stats.FilesProcessed++

	diags := outcome.Result.Diagnostics
	r.Stats.DiagnosticsTotal += len(diags)
	if len(diags) > 0 {
		r.Stats.FilesWithIssues++
	}
	for _, diag := range diags {
		severity := diag.Severity
		if severity == "" {
			severity = config.SeverityError
		}
		r.Stats.DiagnosticsBySeverity[severity]++
		r.Stats.DiagnosticsByRule[diag.RuleID]++
	}
}
