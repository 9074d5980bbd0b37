package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/changelint/pkg/lint"
	"github.com/yaklabco/changelint/pkg/lint/rules"
)

func newRuleCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "rule CODE...",
		Short: "Explain one or more rules",
		Long: `Print the documentation of the given rules. Rules may be named by
code (E203) or by name (release-out-of-order).`,
		Example: `  changelint rule E203
  changelint rule missing-title E100
  changelint rule --all`,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case all && len(args) > 0:
				return usageErrorf("--all takes no rule codes")
			case !all && len(args) == 0:
				return usageErrorf("expected at least one rule code, or --all")
			}

			selected := rules.DefaultCatalog.Rules()
			if !all {
				var err error
				if selected, err = lookupRules(rules.DefaultCatalog, args); err != nil {
					return err
				}
			}
			return writeRuleDocs(cmd.OutOrStdout(), selected)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "explain every rule")

	return cmd
}

// lookupRules resolves codes or names in the order given.
func lookupRules(catalog *lint.Catalog, keys []string) ([]lint.Rule, error) {
	found := make([]lint.Rule, 0, len(keys))
	for _, key := range keys {
		rule, ok := catalog.Get(key)
		if !ok {
			return nil, &lint.UnknownRuleError{Code: key}
		}
		found = append(found, rule)
	}
	return found, nil
}

func writeRuleDocs(w io.Writer, selected []lint.Rule) error {
	for idx, rule := range selected {
		if idx > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return fmt.Errorf("write rule docs: %w", err)
			}
		}
		if _, err := fmt.Fprintf(w, "# %s\n\n%s\n", rule.ID(), strings.TrimSpace(rule.Documentation())); err != nil {
			return fmt.Errorf("write rule docs: %w", err)
		}
	}
	return nil
}
