// Package cli provides the Cobra command structure for changelint.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/changelint/internal/logging"
	"github.com/yaklabco/changelint/pkg/config"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	debug      bool
	configPath string
	noConfig   bool
	color      string
}

// NewRootCommand creates the root changelint command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	globals := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "changelint",
		Short: "A linter for Keep a Changelog files",
		Long: `changelint checks CHANGELOG.md files against the Keep a Changelog format.

It reports every structural problem in a single pass: a missing title or
Unreleased section, malformed release headings, invalid dates, releases out
of order, unknown change types, empty sections and broken link references.
Every finding carries a stable code such as E203.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch globals.color {
			case config.ColorAuto, config.ColorAlways, config.ColorNever:
			default:
				return usageErrorf("invalid --color %q: must be auto, always or never", globals.color)
			}
			level := "info"
			if globals.debug {
				level = "debug"
			}
			logger := logging.NewWithWriter(cmd.ErrOrStderr(), level)
			cmd.SetContext(logging.WithLogger(contextOf(cmd), logger))
			return nil
		},
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageErrorf("unknown command %q for %q", args[0], cmd.CommandPath())
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&globals.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&globals.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&globals.noConfig, "no-config", false,
		"ignore user and project config files")
	rootCmd.PersistentFlags().StringVar(&globals.color, "color", config.ColorAuto,
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageErrorf("%v", err)
	})

	// Add subcommands.
	rootCmd.AddCommand(newCheckCommand(info, globals))
	rootCmd.AddCommand(newRuleCommand())
	rootCmd.AddCommand(newRulesCommand(globals))
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newConfigCommand(globals))
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	NewHelpFormatter(func() string { return globals.color }).ApplyToCommand(rootCmd)

	return rootCmd
}

// Execute runs the CLI with the given arguments and streams and returns the
// process exit code. Errors other than lint findings are logged to stderr.
func Execute(ctx context.Context, info BuildInfo, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	rootCmd := NewRootCommand(info)
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	code := ExitCodeFromError(err)
	if err != nil && code != ExitLintErrors && code != ExitLintWarnings {
		logging.NewWithWriter(stderr, "info").Error("command failed", logging.FieldError, err)
	}
	return code
}

// contextOf returns the command's context, or a background context.
func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// workingDir returns the process working directory.
func workingDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return dir, nil
}
