package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/changelint/pkg/analysis"
	"github.com/yaklabco/changelint/pkg/config"
	"github.com/yaklabco/changelint/pkg/lint"
	"github.com/yaklabco/changelint/pkg/lint/rules"
	"github.com/yaklabco/changelint/pkg/reporter"
	"github.com/yaklabco/changelint/pkg/runner"
)

const outOfOrder = "## [1.0.0] - 2025-01-01\n### Added\n- x\n## [2.0.0] - 2024-01-01\n### Added\n- y\n"

const clean = "# Changelog\n\n## [Unreleased]\n\n## [1.0.0] - 2024-01-01\n\n### Added\n\n- First.\n"

func createTestResult(t *testing.T, files ...[2]string) *runner.Result {
	t.Helper()

	engine, err := lint.NewEngine(lint.NewLinter(rules.DefaultCatalog), nil)
	require.NoError(t, err)

	result := &runner.Result{}
	for _, file := range files {
		fileResult, err := engine.LintContent(context.Background(), file[0], []byte(file[1]), lint.Selection{})
		require.NoError(t, err)
		result.Files = append(result.Files, runner.FileOutcome{Path: file[0], Result: fileResult})
	}
	return result
}

func render(t *testing.T, opts reporter.Options, result *runner.Result) (string, int) {
	t.Helper()

	var buf bytes.Buffer
	opts.Writer = &buf
	if opts.Color == "" {
		opts.Color = config.ColorNever
	}

	rep, err := reporter.New(opts)
	require.NoError(t, err)

	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	return buf.String(), count
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    config.OutputFormat
		wantErr bool
	}{
		{name: "empty defaults to short", input: "", want: config.FormatShort},
		{name: "short", input: "short", want: config.FormatShort},
		{name: "full", input: "full", want: config.FormatFull},
		{name: "json", input: "json", want: config.FormatJSON},
		{name: "jsonl", input: "jsonl", want: config.FormatJSONL},
		{name: "sarif", input: "sarif", want: config.FormatSARIF},
		{name: "unknown format", input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := reporter.New(reporter.Options{Writer: &bytes.Buffer{}, Format: "xml"})
	require.Error(t, err)
}

func TestShortFormat(t *testing.T) {
	t.Parallel()

	out, count := render(t, reporter.Options{}, createTestResult(t, [2]string{"CHANGELOG.md", outOfOrder}))
	assert.Equal(t, 3, count)
	assert.Equal(t, strings.Join([]string{
		"CHANGELOG.md:1:1: E001 Missing title",
		"CHANGELOG.md:1:1: E100 Missing unreleased heading",
		"CHANGELOG.md:4:4: E203 Release `2.0.0` is out of order",
		"",
	}, "\n"), out)
}

func TestShortFormatRuleNames(t *testing.T) {
	t.Parallel()

	out, _ := render(t, reporter.Options{RuleFormat: config.RuleFormatCombined},
		createTestResult(t, [2]string{"CHANGELOG.md", outOfOrder}))
	assert.Contains(t, out, "CHANGELOG.md:4:4: E203/release-out-of-order Release `2.0.0` is out of order\n")
}

func TestShortFormatCleanIsSilent(t *testing.T) {
	t.Parallel()

	out, count := render(t, reporter.Options{}, createTestResult(t, [2]string{"CHANGELOG.md", clean}))
	assert.Zero(t, count)
	assert.Empty(t, out)
}

func TestFullFormat(t *testing.T) {
	t.Parallel()

	out, count := render(t, reporter.Options{Format: config.FormatFull},
		createTestResult(t, [2]string{"CHANGELOG.md", outOfOrder}, [2]string{"docs/CHANGELOG.md", clean}))
	assert.Equal(t, 3, count)

	assert.True(t, strings.HasPrefix(out, "CHANGELOG.md (3 issues)\n\nerror[E001]: Missing title\n"))
	assert.Contains(t, out, "error[E203]: Release `2.0.0` is out of order\n  --> CHANGELOG.md:4:4\n")
	assert.Contains(t, out, " 2 | ### Added\n 3 | - x\n 4 | ## [2.0.0] - 2024-01-01\n   |    ^^^^^^^^^^^^^^^^^^^^\n")
	assert.Contains(t, out, "= help: List releases newest first\n")
	assert.NotContains(t, out, "docs/CHANGELOG.md")
	assert.True(t, strings.HasSuffix(out, "3 issues (3 errors) in 1 file\n"))
}

func TestFullFormatReportsFileErrors(t *testing.T) {
	t.Parallel()

	result := &runner.Result{Files: []runner.FileOutcome{{Path: "gone.md", Error: errors.New("file not found")}}}
	out, count := render(t, reporter.Options{Format: config.FormatFull}, result)
	assert.Zero(t, count)
	assert.Equal(t, "gone.md: failed: file not found\nNo issues found (1 file checked), 1 file failed\n", out)
}

func TestJSONFormat(t *testing.T) {
	t.Parallel()

	out, count := render(t, reporter.Options{Format: config.FormatJSON},
		createTestResult(t, [2]string{"CHANGELOG.md", outOfOrder}))
	assert.Equal(t, 3, count)

	var entries []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 3)

	last := entries[2]
	assert.Equal(t, "CHANGELOG.md", last["file"])
	assert.Equal(t, "E203", last["code"])
	assert.Equal(t, "release-out-of-order", last["name"])
	assert.Equal(t, "error", last["severity"])
	assert.InDelta(t, 4, last["line"], 0)
	assert.InDelta(t, 4, last["column"], 0)
	assert.InDelta(t, 24, last["endColumn"], 0)
	assert.NotContains(t, last, "Context")
}

func TestJSONFormatEmptyIsArray(t *testing.T) {
	t.Parallel()

	out, _ := render(t, reporter.Options{Format: config.FormatJSON, Compact: true},
		createTestResult(t, [2]string{"CHANGELOG.md", clean}))
	assert.Equal(t, "[]\n", out)
}

func TestJSONLFormat(t *testing.T) {
	t.Parallel()

	out, _ := render(t, reporter.Options{Format: config.FormatJSONL},
		createTestResult(t, [2]string{"CHANGELOG.md", outOfOrder}))

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		var entry analysis.DiagnosticEntry
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		assert.Equal(t, "CHANGELOG.md", entry.FilePath)
	}
}

func TestSARIFFormat(t *testing.T) {
	t.Parallel()

	result := createTestResult(t, [2]string{"CHANGELOG.md", outOfOrder})
	result.Files = append(result.Files, runner.FileOutcome{Path: "gone.md", Error: errors.New("file not found")})

	out, _ := render(t, reporter.Options{
		Format:      config.FormatSARIF,
		Catalog:     rules.DefaultCatalog,
		ToolVersion: "1.2.3",
	}, result)

	var doc reporter.SARIFOutput
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "2.1.0", doc.Version)
	require.Len(t, doc.Runs, 1)

	run := doc.Runs[0]
	assert.Equal(t, "changelint", run.Tool.Driver.Name)
	assert.Equal(t, "1.2.3", run.Tool.Driver.Version)
	assert.Len(t, run.Tool.Driver.Rules, rules.DefaultCatalog.Len())
	assert.Equal(t, "E001", run.Tool.Driver.Rules[0].ID)
	assert.NotEmpty(t, run.Tool.Driver.Rules[0].ShortDescription.Text)

	require.Len(t, run.Results, 3)
	last := run.Results[2]
	assert.Equal(t, "E203", last.RuleID)
	assert.Equal(t, "error", last.Level)
	region := last.Locations[0].PhysicalLocation.Region
	require.NotNil(t, region)
	assert.Equal(t, 4, region.StartLine)
	assert.Equal(t, 20, region.CharLength)

	require.Len(t, run.Invocations, 1)
	assert.False(t, run.Invocations[0].ExecutionSuccessful)
	require.Len(t, run.Invocations[0].Notifications, 1)
	assert.Equal(t, "file not found", run.Invocations[0].Notifications[0].Message.Text)
}

func TestSARIFRulesWithoutCatalog(t *testing.T) {
	t.Parallel()

	out, _ := render(t, reporter.Options{Format: config.FormatSARIF},
		createTestResult(t, [2]string{"CHANGELOG.md", outOfOrder}))

	var doc reporter.SARIFOutput
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	ids := make([]string, 0)
	for _, rule := range doc.Runs[0].Tool.Driver.Rules {
		ids = append(ids, rule.ID)
	}
	assert.Equal(t, []string{"E001", "E100", "E203"}, ids)
	assert.True(t, doc.Runs[0].Invocations[0].ExecutionSuccessful)
}

func TestSummaryTables(t *testing.T) {
	t.Parallel()

	out, _ := render(t, reporter.Options{ShowSummary: true, TermWidth: 60},
		createTestResult(t, [2]string{"CHANGELOG.md", outOfOrder}))

	rulesIdx := strings.Index(out, "Rules Summary")
	filesIdx := strings.Index(out, "Files Summary")
	require.Positive(t, rulesIdx)
	assert.Greater(t, filesIdx, rulesIdx)
	assert.Contains(t, out, "E203 release-out-of-order")
	assert.Contains(t, out, strings.Repeat("─", 60))
	assert.True(t, strings.HasSuffix(out, "Total: 3 issues (3 errors) in 1 file\n"))
}

func TestSummaryIgnoredForMachineFormats(t *testing.T) {
	t.Parallel()

	out, _ := render(t, reporter.Options{Format: config.FormatJSON, ShowSummary: true},
		createTestResult(t, [2]string{"CHANGELOG.md", outOfOrder}))
	assert.NotContains(t, out, "Summary")
	assert.True(t, json.Valid([]byte(out)))
}

func TestSummaryOmittedWhenClean(t *testing.T) {
	t.Parallel()

	out, _ := render(t, reporter.Options{ShowSummary: true},
		createTestResult(t, [2]string{"CHANGELOG.md", clean}))
	assert.Empty(t, out)
}

func TestReportCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rep, err := reporter.New(reporter.Options{Writer: &bytes.Buffer{}, Format: config.FormatJSONL})
	require.NoError(t, err)
	_, err = rep.Report(ctx, createTestResult(t, [2]string{"CHANGELOG.md", outOfOrder}))
	require.ErrorIs(t, err, context.Canceled)
}
