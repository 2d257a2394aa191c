// Package cli provides the Cobra command structure for odtmerge.
package cli

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/lpenaud/odtmerge/internal/ui/pretty"
)

// helpStyles holds the Lipgloss styles the help templates draw on.
type helpStyles struct {
	Command    lipgloss.Style
	Heading    lipgloss.Style
	Subcommand lipgloss.Style
	Flag       lipgloss.Style
	Dim        lipgloss.Style
}

func newHelpStyles(colorEnabled bool) *helpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &helpStyles{
			Command:    plain,
			Heading:    plain,
			Subcommand: plain,
			Flag:       plain,
			Dim:        plain,
		}
	}

	return &helpStyles{
		Command:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Heading:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Subcommand: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Flag:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Dim:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// HelpFormatter renders styled usage and help output for Cobra commands.
type HelpFormatter struct {
	styles *helpStyles
}

// NewHelpFormatter creates a help formatter honoring the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{
		styles: newHelpStyles(pretty.IsColorEnabled(colorMode, writer)),
	}
}

func (h *HelpFormatter) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"styleCommand":            h.styles.Command.Render,
		"styleHeading":            h.styles.Heading.Render,
		"styleSubcommand":         h.styles.Subcommand.Render,
		"styleDim":                h.styles.Dim.Render,
		"styleFlagsUsage":         h.styleFlagsUsage,
		"rpad":                    rpad,
		"trimTrailingWhitespaces": trimTrailingWhitespaces,
	}
}

func (h *HelpFormatter) usageTemplate() string {
	return `{{ styleHeading "Usage:" }}
  {{if .Runnable}}{{ styleCommand .UseLine }}{{end}}
  {{if .HasAvailableSubCommands}}{{ styleCommand .CommandPath }} [command]{{end}}

{{- if .HasAvailableSubCommands}}

{{ styleHeading "Available Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ styleSubcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ styleHeading "Flags:" }}
{{ styleFlagsUsage .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ styleHeading "Global Flags:" }}
{{ styleFlagsUsage .InheritedFlags }}
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

// flagLinePattern splits a pflag usage line at the first run of two or
// more spaces separating the flag tokens from the description.
var flagLinePattern = regexp.MustCompile(`^( *)(\S.*?)  +(.*)$`)

// styleFlagsUsage re-styles the FlagUsages block of a pflag FlagSet,
// coloring the flag tokens and leaving descriptions plain.
func (h *HelpFormatter) styleFlagsUsage(flags interface{ FlagUsages() string }) string {
	usages := strings.TrimSuffix(flags.FlagUsages(), "\n")
	if usages == "" {
		return ""
	}

	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		match := flagLinePattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		lines[i] = match[1] + h.styles.Flag.Render(match[2]) + "   " + match[3]
	}

	return strings.Join(lines, "\n")
}

// ApplyToCommand installs the styled usage and help rendering on a Cobra
// command tree.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	funcs := h.templateFuncs()

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		tmpl, err := template.New("usage").Funcs(funcs).Parse(h.usageTemplate())
		if err != nil {
			return fmt.Errorf("parse usage template: %w", err)
		}
		return tmpl.Execute(command.OutOrStdout(), command)
	})

	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		tmpl, err := template.New("help").Funcs(funcs).Parse(h.helpTemplate())
		if err != nil {
			command.PrintErrln(err)
			return
		}
		if err := tmpl.Execute(command.OutOrStdout(), command); err != nil {
			command.PrintErrln(err)
		}
	})
}

// rpad pads a string to the right up to the given width.
func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

// trimTrailingWhitespaces removes trailing whitespace from every line.
func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
