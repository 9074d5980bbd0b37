package cli

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/changelint/internal/configloader"
	"github.com/yaklabco/changelint/internal/ui/pretty"
)

// helpStyles colours the parts of a help screen.
type helpStyles struct {
	Command, Heading, Subcommand, Flag, Description, Example, Alias, Dim lipgloss.Style
}

func newHelpStyles(colorEnabled bool) *helpStyles {
	paint := func(color string, bold bool) lipgloss.Style {
		style := lipgloss.NewStyle()
		if !colorEnabled {
			return style
		}
		if color != "" {
			style = style.Foreground(lipgloss.Color(color))
		}
		return style.Bold(bold)
	}
	grey := paint("8", false)
	return &helpStyles{
		Command:     paint("14", true),
		Heading:     paint("11", true),
		Subcommand:  paint("10", false),
		Flag:        paint("12", false),
		Description: paint("", false),
		Example:     grey,
		Alias:       grey,
		Dim:         grey,
	}
}

// HelpFormatter renders cobra help and usage screens with lipgloss.
// Colour is decided when help is printed, against the command's output,
// because the --color flag is parsed after the formatter is installed.
type HelpFormatter struct {
	colorMode func() string
}

// NewHelpFormatter creates a help formatter that reads the color mode lazily.
func NewHelpFormatter(colorMode func() string) *HelpFormatter {
	return &HelpFormatter{colorMode: colorMode}
}

func (h *HelpFormatter) stylesFor(command *cobra.Command) *helpStyles {
	return newHelpStyles(pretty.IsColorEnabled(h.colorMode(), command.OutOrStdout()))
}

func (h *HelpFormatter) templateFuncs(styles *helpStyles) template.FuncMap {
	return template.FuncMap{
		"styleCommand":            styles.Command.Render,
		"styleHeading":            styles.Heading.Render,
		"styleSubcommand":         styles.Subcommand.Render,
		"styleFlag":               styles.Flag.Render,
		"styleDescription":        styles.Description.Render,
		"styleExample":            styles.Example.Render,
		"styleAlias":              styles.Alias.Render,
		"styleDim":                styles.Dim.Render,
		"styleFlagsUsage":         func(set *pflag.FlagSet) string { return styleFlagsUsage(styles, set) },
		"envVars":                 envVarLines,
		"join":                    strings.Join,
		"rpad":                    rpad,
		"trimTrailingWhitespaces": trimTrailingWhitespaces,
	}
}

func (h *HelpFormatter) usageTemplate() string {
	return `{{ styleHeading "Usage:" }}
  {{if .Runnable}}{{ styleCommand .UseLine }}{{end}}
  {{if .HasAvailableSubCommands}}{{ styleCommand .CommandPath }} [command]{{end}}

{{- if gt (len .Aliases) 0}}

{{ styleHeading "Aliases:" }}
  {{ styleAlias (join .Aliases ", ") }}
{{- end}}

{{- if .HasExample}}

{{ styleHeading "Examples:" }}
{{ styleExample .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ styleHeading "Available Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ styleSubcommand (rpad .Name .NamePadding) }} {{ styleDescription .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ styleHeading "Flags:" }}
{{ styleFlagsUsage .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ styleHeading "Global Flags:" }}
{{ styleFlagsUsage .InheritedFlags }}
{{- end}}

{{- if .HasHelpSubCommands}}

{{ styleHeading "Additional help topics:" }}{{range .Commands}}{{if .IsAdditionalHelpTopicCommand}}
  {{ styleSubcommand (rpad .CommandPath .CommandPathPadding) }} {{ styleDescription .Short }}{{end}}{{end}}
{{- end}}

{{- if not .HasParent}}

{{ styleHeading "Environment:" }}{{range envVars}}
  {{ styleFlag (index . 0) }}   {{ styleDescription (index . 1) }}{{end}}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ styleCommand (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`
}

func (h *HelpFormatter) helpTemplate() string {
	return `{{if or .Runnable .HasSubCommands}}{{ styleCommand .CommandPath }}{{if .Version}} {{ styleDim .Version }}{{end}}

{{end}}{{with (or .Long .Short)}}{{ . | trimTrailingWhitespaces }}

{{end}}` + h.usageTemplate()
}

// flagRow is one flag in a help listing.
type flagRow struct {
	names string
	kind  string
	usage string
}

// styleFlagsUsage lists the visible flags of set with aligned descriptions.
func styleFlagsUsage(styles *helpStyles, set *pflag.FlagSet) string {
	var rows []flagRow
	width := 0
	set.VisitAll(func(flag *pflag.Flag) {
		if flag.Hidden {
			return
		}
		row := flagRow{names: "    --" + flag.Name}
		if flag.Shorthand != "" {
			row.names = "-" + flag.Shorthand + ", --" + flag.Name
		}
		row.kind, row.usage = pflag.UnquoteUsage(flag)
		if showDefault(flag) {
			row.usage += fmt.Sprintf(" (default %s)", flag.DefValue)
		}
		width = max(width, len(row.names)+len(row.kind)+1)
		rows = append(rows, row)
	})

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		plainWidth := len(row.names)
		line := "  " + styles.Flag.Render(row.names)
		if row.kind != "" {
			line += " " + styles.Dim.Render(row.kind)
			plainWidth += len(row.kind) + 1
		}
		line += strings.Repeat(" ", width-plainWidth+3) + styles.Description.Render(row.usage)
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// showDefault reports whether a flag's default is worth printing.
func showDefault(flag *pflag.Flag) bool {
	switch flag.DefValue {
	case "", "0", "false", "[]":
		return false
	default:
		return true
	}
}

// ApplyToCommand installs the formatter on cmd. Subcommands inherit it.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	cmd.SetUsageFunc(func(command *cobra.Command) error {
		return h.render(command, "usage", h.usageTemplate())
	})
	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := h.render(command, "help", h.helpTemplate()); err != nil {
			command.PrintErrln(err)
		}
	})
}

func (h *HelpFormatter) render(command *cobra.Command, name, text string) error {
	tmpl, err := template.New(name).Funcs(h.templateFuncs(h.stylesFor(command))).Parse(text)
	if err != nil {
		return fmt.Errorf("%s template: %w", name, err)
	}
	return tmpl.Execute(command.OutOrStdout(), command)
}

// envVarLines lists the supported environment variables as name/description pairs.
func envVarLines() [][2]string {
	vars := configloader.ListEnvVars()
	lines := make([][2]string, 0, len(vars))
	width := 0
	for name := range vars {
		width = max(width, len(name))
	}
	for _, name := range slices.Sorted(maps.Keys(vars)) {
		lines = append(lines, [2]string{rpad(name, width), vars[name]})
	}
	return lines
}

func rpad(str string, width int) string {
	return str + strings.Repeat(" ", max(0, width-len(str)))
}

func trimTrailingWhitespaces(text string) string {
	var out strings.Builder
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			out.WriteByte('\n')
		}
		out.WriteString(strings.TrimRight(line, " \t"))
	}
	return out.String()
}
