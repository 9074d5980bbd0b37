package configloader

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/changelint/pkg/config"
	"github.com/yaklabco/changelint/pkg/lint"
	"github.com/yaklabco/changelint/pkg/lint/rules"
)

// newProject creates a temporary VCS root holding the given files.
func newProject(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func isolated(workDir string) LoadOptions {
	return LoadOptions{
		WorkingDir:       workDir,
		IgnoreUserConfig: true,
		IgnoreEnv:        true,
		Catalog:          rules.DefaultCatalog,
	}
}

func strPtr(s string) *string { return &s }

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(newProject(t, nil)))
	require.NoError(t, err)

	assert.Equal(t, config.NewConfig(), result.Config)
	assert.Empty(t, result.LoadedFrom)
	assert.Empty(t, result.Paths.Project)
}

func TestLoadProjectConfig(t *testing.T) {
	t.Parallel()

	dir := newProject(t, map[string]string{
		".changelint.yml": `
ignore:
  - empty-section
rules:
  missing-date:
    severity: warning
output:
  format: full
  summary: true
jobs: 2
`,
		"packages/app/CHANGELOG.md": "# Changelog\n",
	})

	// Discovery walks upward from a nested directory.
	result, err := Load(context.Background(), isolated(filepath.Join(dir, "packages", "app")))
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, []string{filepath.Join(dir, ".changelint.yml")}, result.LoadedFrom)
	assert.Equal(t, []string{"empty-section"}, cfg.Ignore)
	assert.Equal(t, config.FormatFull, cfg.Output.Format)
	assert.True(t, cfg.Output.Summary)
	assert.Equal(t, 2, cfg.Jobs)
	assert.Equal(t, config.RuleFormatID, cfg.Output.RuleFormat, "unset keys keep defaults")

	sev, ok := cfg.SeverityFor("E202")
	require.True(t, ok, "rule names are normalized to codes")
	assert.Equal(t, config.SeverityWarning, sev)
}

func TestLoadStopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outer, ".changelint.yml"), []byte("jobs: 9\n"), 0o644))
	inner := filepath.Join(outer, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(inner, ".git"), 0o755))

	result, err := Load(context.Background(), isolated(inner))
	require.NoError(t, err)
	assert.Zero(t, result.Config.Jobs)
}

func TestLoadPrecedence(t *testing.T) {
	t.Parallel()

	dir := newProject(t, map[string]string{
		".changelint.yml": "output:\n  format: full\njobs: 2\nstrict: true\n",
		"ci.yml":          "output:\n  format: json\n",
	})

	opts := isolated(dir)
	opts.ExplicitPath = filepath.Join(dir, "ci.yml")
	opts.CLIConfig = &config.Config{Jobs: 4}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, config.FormatJSON, result.Config.Output.Format, "explicit file beats project")
	assert.Equal(t, 4, result.Config.Jobs, "flags beat files")
	assert.True(t, result.Config.Strict)
	assert.Len(t, result.LoadedFrom, 2)
}

func TestLoadIgnoreProjectConfig(t *testing.T) {
	t.Parallel()

	dir := newProject(t, map[string]string{".changelint.yml": "jobs: 2\n"})
	opts := isolated(dir)
	opts.IgnoreProjectConfig = true

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Zero(t, result.Config.Jobs)
	assert.Equal(t, filepath.Join(dir, ".changelint.yml"), result.Paths.Project)
}

func TestLoadJSONConfig(t *testing.T) {
	t.Parallel()

	dir := newProject(t, map[string]string{".changelint.json": `{"select": ["E001", "E100"]}`})

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)
	assert.Equal(t, []string{"E001", "E100"}, result.Config.Select)
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantIs  error
		wantMsg string
	}{
		{name: "unknown rule", content: "select: [E999]\n", wantIs: lint.ErrUnknownRule, wantMsg: "select[0]"},
		{name: "unknown rule key", content: "rules:\n  nope:\n    severity: error\n", wantIs: lint.ErrUnknownRule, wantMsg: "rules.nope"},
		{name: "bad severity", content: "rules:\n  E001:\n    severity: info\n", wantIs: ErrInvalidConfig, wantMsg: "rules.E001.severity"},
		{name: "bad format", content: "output:\n  format: xml\n", wantIs: ErrInvalidConfig, wantMsg: "output.format"},
		{name: "bad color", content: "output:\n  color: sometimes\n", wantIs: ErrInvalidConfig, wantMsg: "output.color"},
		{name: "negative jobs", content: "jobs: -1\n", wantIs: ErrInvalidConfig, wantMsg: "jobs"},
		{name: "bad glob", content: "exclude: ['[']\n", wantIs: ErrInvalidConfig, wantMsg: "exclude[0]"},
		{name: "unknown key", content: "flavor: gfm\n", wantIs: ErrInvalidConfig, wantMsg: "flavor"},
		{name: "malformed yaml", content: "select: [\n", wantIs: ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := newProject(t, map[string]string{".changelint.yml": tt.content})
			_, err := Load(context.Background(), isolated(dir))
			require.Error(t, err)
			require.ErrorIs(t, err, tt.wantIs)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoadMissingExplicitConfig(t *testing.T) {
	t.Parallel()

	opts := isolated(newProject(t, nil))
	opts.ExplicitPath = "does-not-exist.yml"

	_, err := Load(context.Background(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load explicit config")
}

func TestLoadDuplicateRuleKeys(t *testing.T) {
	t.Parallel()

	dir := newProject(t, map[string]string{".changelint.yml": `
rules:
  E001:
    severity: warning
  missing-title:
    severity: error
`})

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)

	sev, ok := result.Config.SeverityFor("E001")
	require.True(t, ok)
	assert.Equal(t, config.SeverityWarning, sev)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "duplicate rule configuration")
}

func TestLoadSelectIgnoreOverlapWarns(t *testing.T) {
	t.Parallel()

	dir := newProject(t, map[string]string{".changelint.yml": "select: [E001]\nignore: [missing-title]\n"})

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "both selected and ignored")
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CHANGELINT_FORMAT", "jsonl")
	t.Setenv("CHANGELINT_STRICT", "true")
	t.Setenv("CHANGELINT_JOBS", "3")
	t.Setenv("CHANGELINT_IGNORE", "E400, E501 ,")

	opts := isolated(newProject(t, map[string]string{".changelint.yml": "jobs: 2\n"}))
	opts.IgnoreEnv = false

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, config.FormatJSONL, result.Config.Output.Format)
	assert.True(t, result.Config.Strict)
	assert.Equal(t, 3, result.Config.Jobs, "environment beats files")
	assert.Equal(t, []string{"E400", "E501"}, result.Config.Ignore)
}

func TestLoadFromEnvInvalid(t *testing.T) {
	t.Setenv("CHANGELINT_JOBS", "many")

	cfg := config.NewConfig()
	err := LoadFromEnv(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CHANGELINT_JOBS")
}

func TestEnvVarNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "CHANGELINT_FORMAT", GetEnvVarName("output.format"))
	assert.Empty(t, GetEnvVarName("nope"))
	assert.Len(t, ListEnvVars(), len(envVars))
}

func TestMerge(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	base.Rules["E001"] = config.RuleConfig{Severity: strPtr("warning")}
	base.Select = []string{"E001"}

	override := &config.Config{
		Rules:  map[string]config.RuleConfig{"E100": {Severity: strPtr("warning")}, "E001": {}},
		Ignore: []string{"E400"},
		Output: config.OutputConfig{Color: config.ColorNever},
	}

	merged := MergeAll(base, override)
	assert.Equal(t, []string{"E001"}, merged.Select, "nil slices do not override")
	assert.Equal(t, []string{"E400"}, merged.Ignore)
	assert.Equal(t, config.ColorNever, merged.Output.Color)
	assert.Equal(t, config.FormatShort, merged.Output.Format)
	assert.Equal(t, "warning", *merged.Rules["E001"].Severity, "unset severity keeps base value")
	assert.Equal(t, "warning", *merged.Rules["E100"].Severity)
	assert.Nil(t, MergeAll())
}

func TestValidationErrorFormatting(t *testing.T) {
	t.Parallel()

	result := ValidateWithFile(&config.Config{Jobs: -1, Output: config.OutputConfig{RuleFormat: "long"}}, "cfg.yml")
	require.Len(t, result.Errors, 2)
	assert.Equal(t, "cfg.yml: output.rule_format: invalid rule format \"long\"; must be one of: id, name, combined", result.Errors[0].Error())

	joined := result.Err()
	require.Error(t, joined)
	assert.True(t, errors.Is(joined, ErrInvalidConfig))
	assert.Equal(t, 2, strings.Count(joined.Error(), "cfg.yml"))
	assert.NoError(t, Validate(config.NewConfig(), rules.DefaultCatalog).Err())
}

func TestConfirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{input: "y\n", want: true},
		{input: "YES\n", want: true},
		{input: "n\n", want: false},
		{input: "\n", want: false},
		{input: "yes", want: true},
		{input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			got, err := Confirm(strings.NewReader(tt.input), &out, "Overwrite?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "Overwrite? [y/N] ", out.String())
		})
	}
}
