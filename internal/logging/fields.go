package logging

// Structured log keys shared across packages.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// check invocation
	FieldFormat = "format"
	FieldJobs   = "jobs"
	FieldRules  = "rules"
	FieldStrict = "strict"

	// run totals
	FieldFilesDiscovered  = "files_discovered"
	FieldFilesProcessed   = "files_processed"
	FieldFilesErrored     = "files_errored"
	FieldFilesWithIssues  = "files_with_issues"
	FieldDiagnosticsTotal = "diagnostics_total"

	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// catalog entries
	FieldCode     = "code"
	FieldName     = "name"
	FieldSeverity = "severity"
)
