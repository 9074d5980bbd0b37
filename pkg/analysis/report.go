package analysis

import "github.com/yaklabco/changelint/pkg/config"

// Report is the renderer-facing view of a run: resolved diagnostics,
// failed inputs and per-rule and per-file tallies.
type Report struct {
	Diagnostics []DiagnosticEntry // file order, then position order within a file
	Errors      []FileError
	ByFile      []FileAnalysis
	ByRule      []RuleAnalysis
	Totals      Totals
}

// DiagnosticEntry is a diagnostic with its span resolved to positions.
// The JSON tags define the json and jsonl output formats.
type DiagnosticEntry struct {
	FilePath    string `json:"file"`
	RuleID      string `json:"code"`
	RuleName    string `json:"name"`
	Rule        string `json:"rule"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	StartLine   int    `json:"line"`
	StartColumn int    `json:"column"`
	EndLine     int    `json:"endLine"`
	EndColumn   int    `json:"endColumn"`
	StartOffset int    `json:"offset"`
	EndOffset   int    `json:"endOffset"`
	Suggestion  string `json:"suggestion,omitempty"`

	// Context holds the source lines leading up to and including StartLine.
	Context []ContextLine `json:"-"`
}

type ContextLine struct {
	Number int
	Text   string
}

// FileError is an input that could not be read.
type FileError struct {
	Path    string
	Message string
}

type Totals struct {
	Files           int
	FilesWithIssues int
	FilesErrored    int
	Issues          int
	Errors          int
	Warnings        int
}

func (t Totals) HasIssues() bool { return t.Issues > 0 }

// Counts tallies diagnostics by severity.
type Counts struct {
	Issues   int
	Errors   int
	Warnings int
}

func (c *Counts) add(severity config.Severity) {
	c.Issues++
	if severity == config.SeverityWarning {
		c.Warnings++
	} else {
		c.Errors++
	}
}

func (c Counts) key() [3]int { return [3]int{c.Issues, c.Errors, c.Warnings} }

// FileAnalysis tallies one file and lists the rule codes it triggered.
type FileAnalysis struct {
	Path string
	Counts
	Rules []string
}

// RuleAnalysis tallies one rule and lists the files it fired in.
type RuleAnalysis struct {
	RuleID   string
	RuleName string
	Counts
	Files []string
}
