package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lpenaud/odtmerge/internal/configloader"
)

func newConfigCommand(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the merged configuration as YAML.

The output reflects every layer in precedence order: the system and user
config files, the project config discovered upward from the working
directory (or the file named by --config), and ODTMERGE_* environment
variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := configloader.Load(cmd.Context(), configloader.LoadOptions{
				ExplicitPath: root.configPath,
			})
			if err != nil {
				return fmt.Errorf("%w: %v", ErrBadData, err)
			}

			data, err := cfg.ToYAML()
			if err != nil {
				return fmt.Errorf("render config: %w", err)
			}

			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}
