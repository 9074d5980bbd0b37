package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newConfigCommand(globals *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration",
		Long: `Print the configuration check would use from the current directory,
after merging user and project files, --config, and CHANGELINT_*
environment variables. The files that were read are listed first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loadResult, _, err := loadConfig(contextOf(cmd), globals, nil)
			if err != nil {
				return err
			}

			data, err := loadResult.Config.ToYAML()
			if err != nil {
				return fmt.Errorf("render config: %w", err)
			}

			var sb strings.Builder
			if len(loadResult.LoadedFrom) == 0 {
				sb.WriteString("# no config files loaded; showing defaults\n")
			}
			for _, path := range loadResult.LoadedFrom {
				sb.WriteString("# loaded from " + path + "\n")
			}
			sb.Write(data)

			if _, err := io.WriteString(cmd.OutOrStdout(), sb.String()); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			return nil
		},
	}
}
