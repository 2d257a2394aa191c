package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lpenaud/odtmerge/internal/configloader"
	"github.com/lpenaud/odtmerge/internal/logging"
	"github.com/lpenaud/odtmerge/pkg/config"
	"github.com/lpenaud/odtmerge/pkg/odt"
)

type setFlags struct {
	output string
	strict bool
}

func newSetCommand(root *rootFlags) *cobra.Command {
	flags := &setFlags{}

	cmd := &cobra.Command{
		Use:   "set <document.odt> <name=value>...",
		Short: "Set document variables",
		Long: `Set the values of named document variables.

Each name=value assignment rewrites every text:variable-set and
text:variable-get element whose text:name matches. Assignments on the
command line override variables from the config file and environment.

Examples:
  odtmerge set letter.odt title="Quarterly Report"
  odtmerge set letter.odt name=Alice date=2026-08-29 -o filled.odt`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(cmd, args, root, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"output path (default: overwrite the input document)")
	cmd.Flags().BoolVar(&flags.strict, "strict", false,
		"exit non-zero when no variable matches")

	return cmd
}

func runSet(cmd *cobra.Command, args []string, root *rootFlags, flags *setFlags) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	assignments, err := parseAssignments(args[1:])
	if err != nil {
		return err
	}

	cfg, err := configloader.Load(ctx, configloader.LoadOptions{
		ExplicitPath: root.configPath,
		Overrides: &config.Config{
			Output:    flags.output,
			Variables: assignments,
		},
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadData, err)
	}
	logging.SetLevel(cfg.LogLevel)

	doc, err := odt.Open(args[0], odt.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("open document: %w", err)
	}

	applied, err := doc.SetVariables(cfg.Variables)
	if err != nil {
		return fmt.Errorf("set variables: %w", err)
	}

	logger.Info("variables updated",
		logging.FieldPath, args[0],
		logging.FieldNodes, applied,
	)

	if applied == 0 {
		if flags.strict {
			return ErrNothingFound
		}
		return nil
	}

	outputPath := cfg.Output
	if outputPath == "" {
		outputPath = args[0]
	}
	if err := doc.Save(ctx, outputPath); err != nil {
		return fmt.Errorf("save document: %w", err)
	}

	logger.Info("document written", logging.FieldOutput, outputPath)
	return nil
}

// parseAssignments turns name=value arguments into a variable map.
func parseAssignments(args []string) (map[string]string, error) {
	assignments := make(map[string]string, len(args))
	for _, arg := range args {
		name, value, found := strings.Cut(arg, "=")
		if !found || name == "" {
			return nil, fmt.Errorf("invalid assignment %q, want name=value", arg)
		}
		assignments[name] = value
	}
	return assignments, nil
}
