package analysis

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/yaklabco/changelint/pkg/config"
	"github.com/yaklabco/changelint/pkg/lint"
	"github.com/yaklabco/changelint/pkg/runner"
	"github.com/yaklabco/changelint/pkg/span"
)

// analysisContext holds temporary state during analysis.
type analysisContext struct {
	ruleMap   map[string]*RuleAnalysis
	fileMap   map[string]*FileAnalysis
	ruleFiles map[string]map[string]bool
	fileRules map[string]map[string]bool
}

func newAnalysisContext() *analysisContext {
	return &analysisContext{
		ruleMap:   make(map[string]*RuleAnalysis),
		fileMap:   make(map[string]*FileAnalysis),
		ruleFiles: make(map[string]map[string]bool),
		fileRules: make(map[string]map[string]bool),
	}
}

// normalizeSeverity returns the severity, defaulting to error.
func normalizeSeverity(sev config.Severity) config.Severity {
	if sev == "" {
		return config.SeverityError
	}
	return sev
}

func (ctx *analysisContext) fileAnalysis(path string) *FileAnalysis {
	if _, ok := ctx.fileMap[path]; !ok {
		ctx.fileMap[path] = &FileAnalysis{Path: path}
		ctx.fileRules[path] = make(map[string]bool)
	}
	return ctx.fileMap[path]
}

func (ctx *analysisContext) ruleAnalysis(ruleID, ruleName string) *RuleAnalysis {
	if _, ok := ctx.ruleMap[ruleID]; !ok {
		ctx.ruleMap[ruleID] = &RuleAnalysis{RuleID: ruleID, RuleName: ruleName}
		ctx.ruleFiles[ruleID] = make(map[string]bool)
	}
	return ctx.ruleMap[ruleID]
}

func (ctx *analysisContext) record(path string, severity config.Severity, diag *lint.Diagnostic, totals *Totals) {
	fa := ctx.fileAnalysis(path)
	ra := ctx.ruleAnalysis(diag.RuleID, diag.RuleName)

	totals.Issues++
	if severity == config.SeverityWarning {
		totals.Warnings++
	} else {
		totals.Errors++
	}
	fa.add(severity)
	ra.add(severity)

	ctx.fileRules[path][diag.RuleID] = true
	ctx.ruleFiles[diag.RuleID][path] = true
}

// newDiagnosticEntry resolves a diagnostic against the text it was found in.
func newDiagnosticEntry(
	path string,
	severity config.Severity,
	diag *lint.Diagnostic,
	locator *span.Locator,
	opts Options,
) (DiagnosticEntry, error) {
	rng, err := diag.Resolve(locator)
	if err != nil {
		return DiagnosticEntry{}, fmt.Errorf("%s: %w", path, err)
	}

	entry := DiagnosticEntry{
		FilePath:    path,
		RuleID:      diag.RuleID,
		RuleName:    diag.RuleName,
		Rule:        opts.RuleFormat.Label(diag.RuleID, diag.RuleName),
		Severity:    string(severity),
		Message:     diag.Message,
		StartLine:   rng.Start.Line,
		StartColumn: rng.Start.Column,
		EndLine:     rng.End.Line,
		EndColumn:   rng.End.Column,
		StartOffset: diag.Span.Start,
		EndOffset:   diag.Span.End,
		Suggestion:  diag.Suggestion,
	}

	if opts.ContextLines > 0 {
		first := max(1, rng.Start.Line-opts.ContextLines+1)
		for line := first; line <= rng.Start.Line; line++ {
			entry.Context = append(entry.Context, ContextLine{Number: line, Text: locator.LineContent(line)})
		}
	}
	return entry, nil
}

func (ctx *analysisContext) buildByRule(opts Options) []RuleAnalysis {
	result := make([]RuleAnalysis, 0, len(ctx.ruleMap))
	for ruleID, ra := range ctx.ruleMap {
		for f := range ctx.ruleFiles[ruleID] {
			ra.Files = append(ra.Files, f)
		}
		slices.Sort(ra.Files)
		result = append(result, *ra)
	}
	sortRuleAnalysis(result, opts)
	return result
}

func (ctx *analysisContext) buildByFile(opts Options) []FileAnalysis {
	result := make([]FileAnalysis, 0, len(ctx.fileMap))
	for path, fa := range ctx.fileMap {
		for r := range ctx.fileRules[path] {
			fa.Rules = append(fa.Rules, r)
		}
		slices.Sort(fa.Rules)
		result = append(result, *fa)
	}
	sortFileAnalysis(result, opts)
	return result
}

// Analyze transforms a runner.Result into a Report in a single pass.
// It fails with lint.ErrInternal if a diagnostic span does not resolve.
func Analyze(result *runner.Result, opts Options) (*Report, error) {
	report := &Report{}
	if result == nil {
		return report, nil
	}

	ctx := newAnalysisContext()

	for _, file := range result.Files {
		report.Totals.Files++

		if file.Error != nil {
			report.Totals.FilesErrored++
			report.Errors = append(report.Errors, FileError{Path: file.Path, Message: file.Error.Error()})
			continue
		}
		if file.Result == nil || !file.Result.HasIssues() {
			continue
		}

		report.Totals.FilesWithIssues++
		locator := file.Result.Locator()

		for idx := range file.Result.Diagnostics {
			diag := &file.Result.Diagnostics[idx]
			severity := normalizeSeverity(diag.Severity)
			ctx.record(file.Path, severity, diag, &report.Totals)

			entry, err := newDiagnosticEntry(file.Path, severity, diag, locator, opts)
			if err != nil {
				return nil, err
			}
			report.Diagnostics = append(report.Diagnostics, entry)
		}
	}

	report.ByRule = ctx.buildByRule(opts)
	report.ByFile = ctx.buildByFile(opts)

	return report, nil
}

func sortRuleAnalysis(rules []RuleAnalysis, opts Options) {
	slices.SortFunc(rules, func(left, right RuleAnalysis) int {
		return compareAnalysis(opts,
			left.key(), right.key(),
			left.RuleID, right.RuleID)
	})
}

func sortFileAnalysis(files []FileAnalysis, opts Options) {
	slices.SortFunc(files, func(left, right FileAnalysis) int {
		return compareAnalysis(opts,
			left.key(), right.key(),
			left.Path, right.Path)
	})
}

// compareAnalysis orders two rows by counts (issues, errors, warnings).
// Ties always fall back to the key so that output is stable.
func compareAnalysis(opts Options, left, right [3]int, leftKey, rightKey string) int {
	var result int
	switch opts.Order {
	case OrderKey:
	case OrderSeverity:
		result = cmp.Or(
			cmp.Compare(right[1], left[1]),
			cmp.Compare(right[2], left[2]),
			cmp.Compare(right[0], left[0]),
		)
	default:
		result = cmp.Compare(left[0], right[0])
		if opts.Descending {
			result = -result
		}
	}
	return cmp.Or(result, cmp.Compare(leftKey, rightKey))
}
