package cli

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/yaklabco/changelint/internal/configloader"
	"github.com/yaklabco/changelint/internal/logging"
	"github.com/yaklabco/changelint/pkg/config"
	"github.com/yaklabco/changelint/pkg/lint"
	"github.com/yaklabco/changelint/pkg/lint/rules"
	"github.com/yaklabco/changelint/pkg/reporter"
	"github.com/yaklabco/changelint/pkg/runner"
)

// checkFlags holds the flags for the check command.
type checkFlags struct {
	format     string
	ruleFormat string
	selectList []string
	ignoreList []string
	exclude    []string
	strict     bool
	summary    bool
	compact    bool
	jobs       int
}

func newCheckCommand(info BuildInfo, globals *globalFlags) *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:     "check [PATH...]",
		Aliases: []string{"lint"},
		Short:   "Check changelog files",
		Long: `Check one or more changelogs. Directories are searched for files
named CHANGELOG.md (see "files" in the config). Use "-" to read from stdin.

With no arguments the current directory is checked.`,
		Example: `  changelint check
  changelint check CHANGELOG.md
  changelint check --format full --summary .
  changelint check --select E200,E203 --strict docs/
  cat CHANGELOG.md | changelint check --format json -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, info, globals, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "",
		"output format: short, full, json, jsonl, sarif")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "",
		"rule identifier format in output: id, name, combined")
	cmd.Flags().StringSliceVar(&flags.selectList, "select", nil,
		"rules to run, by code or name (comma-separated)")
	cmd.Flags().StringSliceVar(&flags.ignoreList, "ignore", nil,
		"rules to skip, by code or name (comma-separated)")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil,
		"glob patterns for paths to skip")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "exit non-zero on warnings")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "print per-rule and per-file summary tables")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "disable indentation in json and sarif output")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of files checked in parallel (0 = auto)")

	return cmd
}

// cliConfig turns the flags the user actually set into a config layer.
func (f *checkFlags) cliConfig(cmd *cobra.Command, globals *globalFlags) (*config.Config, error) {
	cfg := &config.Config{}
	changed := cmd.Flags().Changed

	if changed("format") {
		format, err := reporter.ParseFormat(f.format)
		if err != nil {
			return nil, usageErrorf("%v", err)
		}
		cfg.Output.Format = format
	}
	if changed("rule-format") {
		cfg.Output.RuleFormat = config.RuleFormat(f.ruleFormat)
		if !cfg.Output.RuleFormat.IsValid() {
			return nil, usageErrorf("invalid --rule-format %q: must be id, name or combined", f.ruleFormat)
		}
	}
	if changed("select") {
		cfg.Select = f.selectList
	}
	if changed("ignore") {
		cfg.Ignore = f.ignoreList
	}
	if changed("exclude") {
		cfg.Exclude = f.exclude
	}
	if changed("jobs") {
		if f.jobs < 0 {
			return nil, usageErrorf("invalid --jobs %d: must be 0 or more", f.jobs)
		}
		cfg.Jobs = f.jobs
	}
	cfg.Strict = f.strict
	cfg.Output.Summary = f.summary
	if changed("color") {
		cfg.Output.Color = globals.color
	}
	return cfg, nil
}

func runCheck(cmd *cobra.Command, args []string, info BuildInfo, globals *globalFlags, flags *checkFlags) error {
	ctx := contextOf(cmd)
	logger := logging.FromContext(ctx)

	cliConfig, err := flags.cliConfig(cmd, globals)
	if err != nil {
		return err
	}

	loadResult, workDir, err := loadConfig(ctx, globals, cliConfig)
	if err != nil {
		return err
	}

	cfg := loadResult.Config
	engine, err := lint.NewEngine(lint.NewLinter(rules.DefaultCatalog), cfg)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}
	for _, code := range slices.Sorted(maps.Keys(engine.Severities)) {
		rule, _ := rules.DefaultCatalog.Get(code)
		logger.Debug("severity override",
			logging.FieldCode, code,
			logging.FieldName, rule.Name(),
			logging.FieldSeverity, engine.Severities[code],
		)
	}

	opts := runner.OptionsFromConfig(cfg, args)
	opts.WorkingDir = workDir
	opts.Stdin = cmd.InOrStdin()

	logger.Debug("checking",
		logging.FieldWorkingDir, workDir,
		logging.FieldPaths, args,
		logging.FieldRules, cfg.Select,
		logging.FieldFormat, cfg.Output.Format,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldStrict, cfg.Strict,
	)

	result, err := runner.New(engine).Run(ctx, opts)
	if err != nil {
		return err
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      cfg.Output.Format,
		Color:       cfg.Output.Color,
		ShowSummary: cfg.Output.Summary,
		Compact:     flags.compact,
		RuleFormat:  cfg.Output.RuleFormat,
		Catalog:     rules.DefaultCatalog,
		ToolVersion: info.Version,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	// Text formats print unreadable inputs themselves; machine formats must
	// stay parseable, so those go to stderr.
	if !isTextFormat(cfg.Output.Format) {
		for _, outcome := range result.Files {
			if outcome.Error != nil {
				logger.Error("check failed", logging.FieldPath, outcome.Path, logging.FieldError, outcome.Error)
			}
		}
	}

	return resultError(result, cfg.Strict)
}

// loadConfig resolves the layered configuration for the working directory.
// Warnings are logged; the result's config is validated against the catalog.
func loadConfig(
	ctx context.Context,
	globals *globalFlags,
	cliConfig *config.Config,
) (*configloader.LoadResult, string, error) {
	workDir, err := workingDir()
	if err != nil {
		return nil, "", err
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:          workDir,
		ExplicitPath:        globals.configPath,
		IgnoreUserConfig:    globals.noConfig,
		IgnoreProjectConfig: globals.noConfig,
		CLIConfig:           cliConfig,
		Catalog:             rules.DefaultCatalog,
	})
	if err != nil {
		return nil, "", fmt.Errorf("load config: %w", err)
	}

	logger := logging.FromContext(ctx)
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	for _, path := range loadResult.LoadedFrom {
		logger.Debug("loaded config", logging.FieldConfig, path)
	}
	return loadResult, workDir, nil
}

func isTextFormat(format config.OutputFormat) bool {
	return format == config.FormatShort || format == config.FormatFull || format == ""
}
