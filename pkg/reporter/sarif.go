package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/yaklabco/changelint/pkg/analysis"
	"github.com/yaklabco/changelint/pkg/config"
)

// SARIF version used by this reporter.
const sarifVersion = "2.1.0"

// SARIF schema URI.
const sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

const (
	toolName           = "changelint"
	toolInformationURI = "https://github.com/yaklabco/changelint"
)

// SARIFOutput represents the root SARIF document.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun represents a single analysis run.
type SARIFRun struct {
	Tool        SARIFTool         `json:"tool"`
	Invocations []SARIFInvocation `json:"invocations"`
	Results     []SARIFResult     `json:"results"`
}

// SARIFTool describes the analysis tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver contains tool metadata and rules.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule describes a rule (linter check).
type SARIFRule struct {
	ID               string                `json:"id"`
	Name             string                `json:"name,omitempty"`
	ShortDescription SARIFMultiformatText  `json:"shortDescription"`
	FullDescription  *SARIFMultiformatText `json:"fullDescription,omitempty"`
	DefaultConfig    *SARIFRuleConfig      `json:"defaultConfiguration,omitempty"`
}

// SARIFMultiformatText contains text in multiple formats.
type SARIFMultiformatText struct {
	Text string `json:"text"`
}

// SARIFRuleConfig contains rule configuration.
type SARIFRuleConfig struct {
	Level string `json:"level"`
}

// SARIFInvocation reports whether the run completed and which inputs failed.
type SARIFInvocation struct {
	ExecutionSuccessful bool                `json:"executionSuccessful"`
	Notifications       []SARIFNotification `json:"toolExecutionNotifications,omitempty"`
}

// SARIFNotification describes an input that could not be linted.
type SARIFNotification struct {
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations,omitempty"`
}

// SARIFResult represents a single diagnostic result.
type SARIFResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations"`
}

// SARIFMessage contains the result message.
type SARIFMessage struct {
	Text string `json:"text"`
}

// SARIFLocation describes a code location.
type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

// SARIFPhysicalLocation contains file path and region.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           *SARIFRegion          `json:"region,omitempty"`
}

// SARIFArtifactLocation contains the file URI.
type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion describes the affected text region.
type SARIFRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn,omitempty"`
	EndLine     int `json:"endLine,omitempty"`
	EndColumn   int `json:"endColumn,omitempty"`
	CharOffset  int `json:"charOffset"`
	CharLength  int `json:"charLength"`
}

// sarifRenderer formats results as SARIF.
type sarifRenderer struct {
	out  io.Writer
	opts Options
}

func newSARIFRenderer(w io.Writer, opts Options) *sarifRenderer {
	return &sarifRenderer{out: w, opts: opts}
}

// Render implements Renderer.
func (r *sarifRenderer) Render(_ context.Context, report *analysis.Report) error {
	encoder := json.NewEncoder(r.out)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(r.buildOutput(report)); err != nil {
		return fmt.Errorf("encode SARIF: %w", err)
	}
	return nil
}

func (r *sarifRenderer) buildOutput(report *analysis.Report) *SARIFOutput {
	run := SARIFRun{
		Tool: SARIFTool{
			Driver: SARIFDriver{
				Name:           toolName,
				Version:        r.opts.ToolVersion,
				InformationURI: toolInformationURI,
				Rules:          r.buildRules(report),
			},
		},
		Invocations: []SARIFInvocation{r.buildInvocation(report)},
		Results:     make([]SARIFResult, 0, len(report.Diagnostics)),
	}

	for _, entry := range report.Diagnostics {
		run.Results = append(run.Results, SARIFResult{
			RuleID:  entry.RuleID,
			Level:   severityToSARIFLevel(config.Severity(entry.Severity)),
			Message: SARIFMessage{Text: entry.Message},
			Locations: []SARIFLocation{{
				PhysicalLocation: SARIFPhysicalLocation{
					ArtifactLocation: SARIFArtifactLocation{URI: entry.FilePath},
					Region: &SARIFRegion{
						StartLine:   entry.StartLine,
						StartColumn: entry.StartColumn,
						EndLine:     entry.EndLine,
						EndColumn:   entry.EndColumn,
						CharOffset:  entry.StartOffset,
						CharLength:  entry.EndOffset - entry.StartOffset,
					},
				},
			}},
		})
	}

	return &SARIFOutput{
		Schema:  sarifSchemaURI,
		Version: sarifVersion,
		Runs:    []SARIFRun{run},
	}
}

// buildRules lists the whole catalog when one is configured, otherwise the
// rules that produced results, in order of first appearance.
func (r *sarifRenderer) buildRules(report *analysis.Report) []SARIFRule {
	rules := make([]SARIFRule, 0)

	if r.opts.Catalog != nil {
		for _, rule := range r.opts.Catalog.Rules() {
			sarifRule := SARIFRule{
				ID:               rule.ID(),
				Name:             rule.Name(),
				ShortDescription: SARIFMultiformatText{Text: rule.Description()},
				DefaultConfig:    &SARIFRuleConfig{Level: severityToSARIFLevel(rule.DefaultSeverity())},
			}
			if doc := rule.Documentation(); doc != "" && doc != rule.Description() {
				sarifRule.FullDescription = &SARIFMultiformatText{Text: doc}
			}
			rules = append(rules, sarifRule)
		}
		return rules
	}

	seen := make(map[string]bool)
	for _, entry := range report.Diagnostics {
		if seen[entry.RuleID] {
			continue
		}
		seen[entry.RuleID] = true
		rules = append(rules, SARIFRule{
			ID:               entry.RuleID,
			Name:             entry.RuleName,
			ShortDescription: SARIFMultiformatText{Text: entry.RuleName},
		})
	}
	return rules
}

func (r *sarifRenderer) buildInvocation(report *analysis.Report) SARIFInvocation {
	invocation := SARIFInvocation{ExecutionSuccessful: len(report.Errors) == 0}
	for _, fileErr := range report.Errors {
		invocation.Notifications = append(invocation.Notifications, SARIFNotification{
			Level:   "error",
			Message: SARIFMessage{Text: fileErr.Message},
			Locations: []SARIFLocation{{
				PhysicalLocation: SARIFPhysicalLocation{
					ArtifactLocation: SARIFArtifactLocation{URI: fileErr.Path},
				},
			}},
		})
	}
	return invocation
}

// severityToSARIFLevel converts a changelint severity to a SARIF level.
func severityToSARIFLevel(severity config.Severity) string {
	if severity == config.SeverityWarning {
		return "warning"
	}
	return "error"
}
