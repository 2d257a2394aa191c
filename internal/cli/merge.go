package cli

import (
	"fmt"
	"maps"
	"sort"

	"github.com/spf13/cobra"

	"github.com/lpenaud/odtmerge/internal/configloader"
	"github.com/lpenaud/odtmerge/internal/logging"
	"github.com/lpenaud/odtmerge/internal/ui/pretty"
	"github.com/lpenaud/odtmerge/pkg/config"
	"github.com/lpenaud/odtmerge/pkg/mergedata"
	"github.com/lpenaud/odtmerge/pkg/odt"
)

type mergeFlags struct {
	data    string
	output  string
	summary bool
	strict  bool
}

func newMergeCommand(root *rootFlags) *cobra.Command {
	flags := &mergeFlags{}

	cmd := &cobra.Command{
		Use:   "merge <document.odt>",
		Short: "Fill a document from a merge data file",
		Long: `Fill a document template from a merge data file.

The data file (YAML, JSON, or TOML) provides variable assignments and
table contents. Variables rewrite text:variable-set and text:variable-get
elements; tables replace the full column and row set of the named
table:table element. Variables from the config file and environment act
as defaults under the data file's own values.

Examples:
  odtmerge merge letter.odt --data order.yaml -o order.odt
  odtmerge merge report.odt --data figures.json --summary
  odtmerge merge invoice.odt --data invoice.toml --strict`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(cmd, args, root, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.data, "data", "d", "",
		"path to the merge data file (YAML, JSON, or TOML)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"output path (default: overwrite the input document)")
	cmd.Flags().BoolVar(&flags.summary, "summary", false,
		"print a summary block instead of a single line")
	cmd.Flags().BoolVar(&flags.strict, "strict", false,
		"exit non-zero when nothing in the document matched")

	return cmd
}

func runMerge(cmd *cobra.Command, args []string, root *rootFlags, flags *mergeFlags) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	cfg, err := configloader.Load(ctx, configloader.LoadOptions{
		ExplicitPath: root.configPath,
		Overrides: &config.Config{
			Data:   flags.data,
			Output: flags.output,
		},
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadData, err)
	}
	logging.SetLevel(cfg.LogLevel)

	if cfg.Data == "" {
		return fmt.Errorf("%w: no data file given (use --data or the config file)", ErrBadData)
	}

	data, err := mergedata.LoadFile(cfg.Data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadData, err)
	}

	// Config variables are defaults; the data file's values win.
	variables := make(map[string]string, len(cfg.Variables)+len(data.Variables))
	maps.Copy(variables, cfg.Variables)
	maps.Copy(variables, data.Variables)

	doc, err := odt.Open(args[0], odt.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("open document: %w", err)
	}

	stats := pretty.MergeStats{}

	names := make([]string, 0, len(variables))
	for name := range variables {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		rewritten, err := doc.SetVariable(name, variables[name])
		if err != nil {
			return fmt.Errorf("set variable %q: %w", name, err)
		}
		if rewritten == 0 {
			stats.VariablesNotFound++
			continue
		}
		stats.VariablesSet++
	}

	for _, table := range data.Tables {
		ok, err := doc.RegenerateTable(odt.TableSpec{
			Name:    table.Name,
			Columns: table.Columns,
			Header:  table.Header,
			Rows:    table.Rows,
		})
		if err != nil {
			return fmt.Errorf("regenerate table %q: %w", table.Name, err)
		}
		if !ok {
			stats.TablesNotFound++
			continue
		}
		stats.TablesSet++
		stats.RowsWritten += len(table.Rows)
	}

	logger.Debug("merge applied",
		logging.FieldData, cfg.Data,
		logging.FieldVariablesSet, stats.VariablesSet,
		logging.FieldTablesSet, stats.TablesSet,
		logging.FieldRows, stats.RowsWritten,
	)

	if stats.VariablesSet == 0 && stats.TablesSet == 0 && flags.strict {
		return ErrNothingFound
	}

	outputPath := cfg.Output
	if outputPath == "" {
		outputPath = args[0]
	}
	if stats.VariablesSet > 0 || stats.TablesSet > 0 {
		if err := doc.Save(ctx, outputPath); err != nil {
			return fmt.Errorf("save document: %w", err)
		}
		stats.Output = outputPath
	}

	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(root.color, out))
	if flags.summary {
		fmt.Fprint(out, styles.FormatMergeSummary(stats))
	} else {
		fmt.Fprint(out, styles.FormatMergeSummaryOneLine(stats))
	}

	return nil
}
