package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/nomxml/internal/configloader"
	"github.com/yaklabco/nomxml/internal/ui/pretty"
)

// usageTemplate mirrors cobra's default layout. The root command also lists
// the environment variables the config loader reads.
const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}

{{- if gt (len .Aliases) 0}}

{{ heading "Aliases:" }}
  {{ join .Aliases ", " }}
{{- end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ example .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}

{{- if not .HasParent}}

{{ heading "Environment:" }}
{{ environment }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ . | trimTrailingWhitespaces }}

{{end}}` + usageTemplate

// HelpFormatter renders Cobra help and usage text with pretty.Styles.
type HelpFormatter struct {
	styles *pretty.Styles
}

// NewHelpFormatter creates a help formatter for the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{
		styles: pretty.NewStyles(pretty.IsColorEnabled(colorMode, writer)),
	}
}

func (h *HelpFormatter) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"heading":                 h.styles.SummaryTitle.Render,
		"command":                 h.styles.Keyword.Render,
		"subcommand":              h.styles.TagName.Render,
		"example":                 h.styles.Dim.Render,
		"flags":                   h.flagUsages,
		"environment":             h.environment,
		"join":                    strings.Join,
		"rpad":                    rpad,
		"trimTrailingWhitespaces": trimTrailingWhitespaces,
	}
}

// ApplyToCommand installs styled help and usage output on cmd. Subcommands
// inherit it.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	usage := template.Must(template.New("usage").Funcs(h.templateFuncs()).Parse(usageTemplate))
	help := template.Must(template.New("help").Funcs(h.templateFuncs()).Parse(helpTemplate))

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		if err := usage.Execute(command.OutOrStderr(), command); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})

	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := help.Execute(command.OutOrStdout(), command); err != nil {
			command.PrintErrln(err)
		}
	})
}

// flagRow is one rendered flag: its names column and its description.
type flagRow struct {
	names string
	usage string
}

// flagUsages lays out the visible flags in two aligned columns.
func (h *HelpFormatter) flagUsages(flags *pflag.FlagSet) string {
	var rows []flagRow
	width := 0

	flags.VisitAll(func(flag *pflag.Flag) {
		if flag.Hidden {
			return
		}

		varname, usage := pflag.UnquoteUsage(flag)
		names := "    --" + flag.Name
		if flag.Shorthand != "" {
			names = "-" + flag.Shorthand + ", --" + flag.Name
		}
		if varname != "" {
			names += " " + varname
		}
		if hasDefault(flag) {
			usage += fmt.Sprintf(" (default %s)", flag.DefValue)
		}

		rows = append(rows, flagRow{names: names, usage: usage})
		width = max(width, len(names))
	})

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, "  "+h.styles.AttrName.Render(rpad(row.names, width))+"   "+row.usage)
	}
	return strings.Join(lines, "\n")
}

// hasDefault reports whether a flag's default is worth printing.
func hasDefault(flag *pflag.Flag) bool {
	switch flag.DefValue {
	case "", "false", "0", "[]":
		return false
	default:
		return true
	}
}

// environment lists the NOMDUMP_* variables.
func (h *HelpFormatter) environment() string {
	vars := configloader.ListEnvVars()

	width := 0
	for _, v := range vars {
		width = max(width, len(v.Name))
	}

	lines := make([]string, 0, len(vars))
	for _, v := range vars {
		lines = append(lines, "  "+h.styles.AttrName.Render(rpad(v.Name, width))+"   "+v.Description)
	}
	return strings.Join(lines, "\n")
}

func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
