package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/changelint/internal/ui/pretty"
	"github.com/yaklabco/changelint/pkg/lint"
	"github.com/yaklabco/changelint/pkg/lint/rules"
)

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
	Enabled     bool     `json:"enabled"`
	Tags        []string `json:"tags,omitempty"`
}

func newRulesCommand(globals *globalFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available rules",
		Long: `List every rule in the catalog with its code, name, default
severity and a short description.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog := rules.DefaultCatalog
			out := cmd.OutOrStdout()

			if asJSON {
				return writeRulesJSON(out, catalog.Rules())
			}

			colorEnabled := pretty.IsColorEnabled(globals.color, out)
			formatter := pretty.NewTableFormatter(pretty.NewStyles(colorEnabled), pretty.TerminalWidth(out))
			if _, err := io.WriteString(out, formatter.FormatRules(ruleRows(catalog))); err != nil {
				return fmt.Errorf("write rules: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the catalog as JSON")

	return cmd
}

func ruleRows(catalog *lint.Catalog) []pretty.RuleRow {
	rows := make([]pretty.RuleRow, 0, catalog.Len())
	for _, rule := range catalog.Rules() {
		rows = append(rows, pretty.RuleRow{
			Code:     rule.ID(),
			Name:     rule.Name(),
			Severity: rule.DefaultSeverity(),
			Enabled:  rule.DefaultEnabled(),
			Summary:  rule.Description(),
		})
	}
	return rows
}

// writeRulesJSON outputs rules as a JSON array.
func writeRulesJSON(w io.Writer, catalogRules []lint.Rule) error {
	infos := make([]ruleInfo, 0, len(catalogRules))
	for _, rule := range catalogRules {
		infos = append(infos, ruleInfo{
			Code:        rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
			Severity:    string(rule.DefaultSeverity()),
			Enabled:     rule.DefaultEnabled(),
			Tags:        rule.Tags(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
