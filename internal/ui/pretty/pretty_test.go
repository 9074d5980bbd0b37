package pretty_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/changelint/internal/ui/pretty"
	"github.com/yaklabco/changelint/pkg/analysis"
	"github.com/yaklabco/changelint/pkg/config"
)

func outOfOrderEntry() analysis.DiagnosticEntry {
	return analysis.DiagnosticEntry{
		FilePath:    "CHANGELOG.md",
		RuleID:      "E203",
		RuleName:    "release-out-of-order",
		Rule:        "E203",
		Severity:    "error",
		Message:     `release "2.0.0" is out of order`,
		StartLine:   4,
		StartColumn: 4,
		EndLine:     4,
		EndColumn:   24,
		Suggestion:  "list releases newest first",
		Context: []analysis.ContextLine{
			{Number: 3, Text: "- x"},
			{Number: 4, Text: "## [2.0.0] - 2024-01-01"},
		},
	}
}

func TestFormatShort(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	got := styles.FormatShort(outOfOrderEntry())
	assert.Equal(t, "CHANGELOG.md:4:4: E203 release \"2.0.0\" is out of order\n", got)
}

func TestFormatEntry(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	want := strings.Join([]string{
		`error[E203]: release "2.0.0" is out of order`,
		"  --> CHANGELOG.md:4:4",
		"   |",
		" 3 | - x",
		" 4 | ## [2.0.0] - 2024-01-01",
		"   |    ^^^^^^^^^^^^^^^^^^^^",
		"   = help: list releases newest first",
		"",
	}, "\n")
	assert.Equal(t, want, styles.FormatEntry(outOfOrderEntry()))
}

func TestFormatEntryWithoutContext(t *testing.T) {
	t.Parallel()

	entry := analysis.DiagnosticEntry{
		FilePath:    "CHANGELOG.md",
		Rule:        "missing-title",
		Severity:    "warning",
		Message:     "missing title",
		StartLine:   1,
		StartColumn: 1,
		EndLine:     1,
		EndColumn:   1,
	}
	got := pretty.NewStyles(false).FormatEntry(entry)
	assert.Equal(t, "warning[missing-title]: missing title\n  --> CHANGELOG.md:1:1\n", got)
}

func TestFormatCaret(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	tests := []struct {
		name  string
		line  string
		entry analysis.DiagnosticEntry
		want  string
	}{
		{
			name:  "empty span marks one column",
			line:  "# Title",
			entry: analysis.DiagnosticEntry{StartLine: 1, StartColumn: 1, EndLine: 1, EndColumn: 1},
			want:  "^",
		},
		{
			name:  "single line span",
			line:  "### Nope",
			entry: analysis.DiagnosticEntry{StartLine: 2, StartColumn: 5, EndLine: 2, EndColumn: 9},
			want:  "    ^^^^",
		},
		{
			name:  "multi line span runs to end of line",
			line:  "abc",
			entry: analysis.DiagnosticEntry{StartLine: 1, StartColumn: 2, EndLine: 3, EndColumn: 1},
			want:  " ^^",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatCaret(tt.line, tt.entry))
		})
	}
}

func TestFormatFileHeader(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "CHANGELOG.md", styles.FormatFileHeader("CHANGELOG.md", 0))
	assert.Equal(t, "CHANGELOG.md (1 issue)", styles.FormatFileHeader("CHANGELOG.md", 1))
	assert.Equal(t, "CHANGELOG.md (3 issues)", styles.FormatFileHeader("CHANGELOG.md", 3))
}

func TestFormatSeverity(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "error", styles.FormatSeverity(config.SeverityError))
	assert.Equal(t, "warning", styles.FormatSeverity(config.SeverityWarning))
	assert.Equal(t, "fatal", styles.FormatSeverity(config.Severity("fatal")))
}

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	tests := []struct {
		name   string
		totals analysis.Totals
		want   string
	}{
		{
			name:   "clean",
			totals: analysis.Totals{Files: 1},
			want:   "No issues found (1 file checked)\n",
		},
		{
			name:   "mixed severities",
			totals: analysis.Totals{Files: 3, FilesWithIssues: 2, Issues: 3, Errors: 2, Warnings: 1},
			want:   "3 issues (2 errors, 1 warning) in 2 files\n",
		},
		{
			name:   "failed inputs",
			totals: analysis.Totals{Files: 2, FilesErrored: 1, FilesWithIssues: 1, Issues: 1, Errors: 1},
			want:   "1 issue (1 error) in 1 file, 1 file failed\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.totals))
		})
	}
}

func TestFormatRules(t *testing.T) {
	t.Parallel()

	table := pretty.NewTableFormatter(pretty.NewStyles(false), 60)
	got := table.FormatRules([]pretty.RuleRow{
		{Code: "E001", Name: "missing-title", Severity: config.SeverityError, Enabled: true, Summary: "Document has no H1 title."},
		{Code: "E400", Name: "empty-section", Severity: config.SeverityWarning, Enabled: false, Summary: "A change-type section lists no entries at all, not even one bullet."},
	})

	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], " CODE  NAME"))
	assert.Contains(t, lines[2], "E001  missing-title  error")
	assert.Contains(t, lines[3], "off")
	assert.True(t, strings.HasSuffix(lines[3], "..."))
	for _, line := range lines[2:] {
		assert.LessOrEqual(t, len(line), 60)
	}
}

func TestFormatRulesEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, pretty.NewTableFormatter(pretty.NewStyles(false), 0).FormatRules(nil))
}

func TestIsColorEnabled(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	var buf bytes.Buffer
	assert.True(t, pretty.IsColorEnabled(config.ColorAlways, &buf))
	assert.False(t, pretty.IsColorEnabled(config.ColorNever, os.Stdout))
	assert.False(t, pretty.IsColorEnabled(config.ColorAuto, &buf))

	t.Setenv("NO_COLOR", "1")
	assert.False(t, pretty.IsColorEnabled(config.ColorAuto, os.Stdout))
}

func TestTerminalWidthNonTerminal(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.Zero(t, pretty.TerminalWidth(&buf))
}
