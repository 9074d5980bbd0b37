package lint

import (
	"context"
	"fmt"

	"github.com/yaklabco/changelint/pkg/changelog"
	"github.com/yaklabco/changelint/pkg/config"
	"github.com/yaklabco/changelint/pkg/span"
)

// FileResult contains the results of linting a single file.
type FileResult struct {
	// Path is the file path, or "-" for standard input.
	Path string

	// Document is the parsed changelog.
	Document *changelog.Document

	// Diagnostics contains all issues found, sorted by position.
	Diagnostics []Diagnostic
}

// HasIssues returns true if any diagnostics were found.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Diagnostics) > 0
}

// IssueCount returns the total number of diagnostics.
func (fr *FileResult) IssueCount() int {
	return len(fr.Diagnostics)
}

// Locator returns the position index of the parsed text.
func (fr *FileResult) Locator() *span.Locator {
	if fr.Document == nil {
		return span.NewLocator("")
	}
	return fr.Document.Locator
}

// Engine coordinates parsing and rule execution for linting.
type Engine struct {
	// Linter evaluates rules.
	Linter *Linter

	// Severities overrides rule severities by rule ID.
	Severities map[string]config.Severity
}

// NewEngine creates a new Engine. Severity overrides are read from cfg and
// keyed by rule code or name; unknown keys fail with ErrUnknownRule.
func NewEngine(linter *Linter, cfg *config.Config) (*Engine, error) {
	engine := &Engine{
		Linter:     linter,
		Severities: make(map[string]config.Severity),
	}
	if cfg == nil {
		return engine, nil
	}

	for key := range cfg.Rules {
		severity, ok := cfg.SeverityFor(key)
		if !ok {
			continue
		}
		rule, found := linter.Catalog().Get(key)
		if !found {
			return nil, &UnknownRuleError{Code: key}
		}
		if !severity.IsValid() {
			return nil, fmt.Errorf("rule %s: invalid severity %q", rule.ID(), severity)
		}
		engine.Severities[rule.ID()] = severity
	}

	return engine, nil
}

// LintContent validates the selection, parses content and runs the selected rules.
// Selection errors are returned before the content is parsed.
func (e *Engine) LintContent(
	ctx context.Context,
	path string,
	content []byte,
	sel Selection,
) (*FileResult, error) {
	rules, err := e.Linter.Catalog().Resolve(sel)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("linting cancelled: %w", err)
	}

	doc := changelog.Parse(string(content))
	diags := e.Linter.Evaluate(doc, rules)

	for idx := range diags {
		diags[idx].FilePath = path
		if severity, ok := e.Severities[diags[idx].RuleID]; ok {
			diags[idx].Severity = severity
		}
		if _, err := diags[idx].Resolve(doc.Locator); err != nil {
			return nil, err
		}
	}

	return &FileResult{
		Path:        path,
		Document:    doc,
		Diagnostics: diags,
	}, nil
}
