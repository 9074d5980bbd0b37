package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/changelint/internal/configloader"
	"github.com/yaklabco/changelint/internal/logging"
	"github.com/yaklabco/changelint/pkg/config"
	"github.com/yaklabco/changelint/pkg/fsutil"
	"github.com/yaklabco/changelint/pkg/lint/rules"
)

const (
	initFormatYAML = "yaml"
	initFormatJSON = "json"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

// isInteractive reports whether init may prompt before overwriting.
//
//nolint:gochecknoglobals // replaced in tests
var isInteractive = configloader.IsInteractive

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new changelint configuration file",
		Long: `Create a .changelint.yml configuration file in the current directory.
The file can be customized to select rules, change severities and
configure output.`,
		Example: `  changelint init                      Create minimal .changelint.yml
  changelint init --full               Document every rule in the template
  changelint init --format json        Create .changelint.json instead
  changelint init -o ci/changelint.yml Write to a custom path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.force, "force", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "generate a full template with every rule documented")
	cmd.Flags().StringVar(&flags.format, "format", initFormatYAML, "template format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"output file path (default: .changelint.yml or .changelint.json)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	ctx := contextOf(cmd)
	logger := logging.NewInteractive(cmd.ErrOrStderr())

	if flags.format != initFormatYAML && flags.format != initFormatJSON {
		return usageErrorf("invalid format %q: must be yaml or json", flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".changelint.yml"
		if flags.format == initFormatJSON {
			outputPath = ".changelint.json"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	opts := config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
	}
	for _, rule := range rules.DefaultCatalog.Rules() {
		opts.Rules = append(opts.Rules, config.RuleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
			Severity:    rule.DefaultSeverity(),
		})
	}

	content, err := config.GenerateTemplate(opts)
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	err = fsutil.CreateAtomic(ctx, absPath, content, flags.force)
	if errors.Is(err, fsutil.ErrExists) && isInteractive() {
		question := fmt.Sprintf("%s already exists. Overwrite?", outputPath)
		overwrite, confirmErr := configloader.Confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), question)
		if confirmErr != nil {
			return confirmErr
		}
		if !overwrite {
			logger.Info("left existing file unchanged", logging.FieldPath, outputPath)
			return nil
		}
		err = fsutil.CreateAtomic(ctx, absPath, content, true)
	}
	if errors.Is(err, fsutil.ErrExists) {
		return fmt.Errorf("%s: %w; use --force to overwrite", outputPath, fsutil.ErrExists)
	}
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	if flags.full {
		logger.Info("the template documents every rule; delete what you do not need")
	}
	logger.Info("run 'changelint rules' to see all available rules")

	return nil
}
