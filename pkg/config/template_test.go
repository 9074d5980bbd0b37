package config_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/changelint/pkg/config"
)

func sampleRules() []config.RuleInfo {
	return []config.RuleInfo{
		{ID: "E001", Name: "missing-title", Description: "The changelog has no top-level title.", Severity: config.SeverityError},
		{ID: "E400", Name: "empty-section", Description: "A release or change section has no content.", Severity: config.SeverityError},
	}
}

func TestGenerateMinimalTemplateParses(t *testing.T) {
	t.Parallel()

	content, err := config.GenerateTemplate(config.TemplateOptions{Format: "yaml"})
	require.NoError(t, err)
	assert.Contains(t, string(content), "# changelint configuration")

	cfg, err := config.FromYAML(content)
	require.NoError(t, err)
	assert.Equal(t, config.FormatShort, cfg.Output.Format)
}

func TestGenerateFullTemplateListsRules(t *testing.T) {
	t.Parallel()

	content, err := config.GenerateTemplate(config.TemplateOptions{Full: true, Format: "yaml", Rules: sampleRules()})
	require.NoError(t, err)
	assert.Contains(t, string(content), "# E001: missing-title")
	assert.Contains(t, string(content), "# E400: empty-section")

	cfg, err := config.FromYAML(content)
	require.NoError(t, err)
	severity, ok := cfg.SeverityFor("E400")
	require.True(t, ok)
	assert.Equal(t, config.SeverityError, severity)
}

func TestGenerateJSONTemplate(t *testing.T) {
	t.Parallel()

	content, err := config.GenerateTemplate(config.TemplateOptions{Full: true, Format: "json", Rules: sampleRules()})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(content, &decoded))
	assert.Contains(t, decoded, "rules")
	assert.Contains(t, decoded, "output")
}
