// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Node components
	Element   lipgloss.Style
	AttrName  lipgloss.Style
	AttrValue lipgloss.Style
	Offset    lipgloss.Style
	Snippet   lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style
	Warning      lipgloss.Style

	// Table styles
	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style
	TableLegend    lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		// Node components
		Element:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		AttrName:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		AttrValue: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Offset:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Snippet:   lipgloss.NewStyle().Foreground(lipgloss.Color("7")),

		// Summary styles
		SummaryTitle: lipgloss.NewStyle().Bold(true),
		SummaryValue: lipgloss.NewStyle(),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),

		// Table styles
		TableHeader:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		TableSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		TableLegend:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),

		// Misc
		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Element:        plain,
		AttrName:       plain,
		AttrValue:      plain,
		Offset:         plain,
		Snippet:        plain,
		SummaryTitle:   plain,
		SummaryValue:   plain,
		Success:        plain,
		Failure:        plain,
		Warning:        plain,
		TableHeader:    plain,
		TableSeparator: plain,
		TableLegend:    plain,
		Dim:            plain,
		Bold:           plain,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// Check NO_COLOR environment variable (https://no-color.org/)
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		// Check if output is a TTY
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}

// TerminalWidth reports the column width of the writer's terminal, or
// fallback when the writer is not a terminal or the size cannot be read.
func TerminalWidth(writer io.Writer, fallback int) int {
	f, ok := writer.(*os.File)
	if !ok {
		return fallback
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}
