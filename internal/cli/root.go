package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/lpenaud/odtmerge/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// rootFlags are the persistent flags shared by all subcommands.
type rootFlags struct {
	debug      bool
	configPath string
	color      string
}

// NewRootCommand creates the root odtmerge command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "odtmerge",
		Short: "Inspect and fill LibreOffice text documents",
		Long: `odtmerge reads LibreOffice .odt documents and rewrites their content
stream in place: it locates elements by name and attributes, injects values
into text:variable-set and text:variable-get fields, and regenerates whole
tables from external data files.

Merge data may come from YAML, JSON, or TOML files, from an odtmerge config
file, or from command-line assignments.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if flags.debug {
				logging.SetLevel("debug")
			}
			cmd.SetContext(logging.WithLogger(cmd.Context(), logging.Default()))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flags.color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newFindCommand(flags))
	rootCmd.AddCommand(newSetCommand(flags))
	rootCmd.AddCommand(newMergeCommand(flags))
	rootCmd.AddCommand(newConfigCommand(flags))
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(flags.color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
