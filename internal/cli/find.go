package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lpenaud/odtmerge/internal/logging"
	"github.com/lpenaud/odtmerge/internal/ui/pretty"
	"github.com/lpenaud/odtmerge/pkg/markup"
	"github.com/lpenaud/odtmerge/pkg/odt"
)

type findFlags struct {
	attrs     []string
	showAttrs bool
	strict    bool
}

func newFindCommand(root *rootFlags) *cobra.Command {
	flags := &findFlags{}

	cmd := &cobra.Command{
		Use:   "find <document.odt> <element>",
		Short: "Find elements in a document's content stream",
		Long: `Find every occurrence of an element in the document's content stream
and print its byte range and inner text.

Elements are matched by their qualified name (e.g. text:p, text:variable-set,
table:table) and optionally filtered by attribute values.

Examples:
  odtmerge find letter.odt text:p
  odtmerge find letter.odt text:variable-set --attr text:name=title
  odtmerge find letter.odt table:table --attr table:name=Stock --show-attrs`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFind(cmd, args, root, flags)
		},
	}

	cmd.Flags().StringArrayVar(&flags.attrs, "attr", nil,
		"attribute filter as name=value (repeatable)")
	cmd.Flags().BoolVar(&flags.showAttrs, "show-attrs", false,
		"print each node's attributes")
	cmd.Flags().BoolVar(&flags.strict, "strict", false,
		"exit non-zero when nothing matches")

	return cmd
}

func runFind(cmd *cobra.Command, args []string, root *rootFlags, flags *findFlags) error {
	logger := logging.FromContext(cmd.Context())

	filter, err := parseAttrFilters(flags.attrs)
	if err != nil {
		return err
	}

	doc, err := odt.Open(args[0], odt.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("open document: %w", err)
	}

	locator := odt.Locator{Name: args[1], Filter: filter}
	nodes := doc.FindAll(locator)

	logger.Debug("find completed",
		logging.FieldPath, args[0],
		logging.FieldElement, locator.String(),
		logging.FieldNodes, len(nodes),
	)

	if len(nodes) == 0 {
		logger.Warn("no matching elements",
			logging.FieldPath, args[0],
			logging.FieldElement, locator.String(),
		)
		if flags.strict {
			return ErrNothingFound
		}
		return nil
	}

	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(root.color, out))
	formatter := pretty.NewNodeFormatter(styles, pretty.TerminalWidth(out, 0))

	fmt.Fprint(out, formatter.FormatNodes(doc.Content(), nodes))

	if flags.showAttrs {
		for _, node := range nodes {
			fmt.Fprintf(out, "%s %s\n", styles.Element.Render(node.Name),
				styles.Offset.Render(fmt.Sprintf("%d-%d", node.Start, node.End)))
			fmt.Fprint(out, formatter.FormatAttributes(node.Attrs))
		}
	}

	return nil
}

// parseAttrFilters turns repeated name=value flags into an attribute filter.
func parseAttrFilters(pairs []string) (markup.Attributes, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	filter := make(markup.Attributes, len(pairs))
	for _, pair := range pairs {
		name, value, found := strings.Cut(pair, "=")
		if !found || name == "" {
			return nil, fmt.Errorf("invalid attribute filter %q, want name=value", pair)
		}
		filter[name] = value
	}
	return filter, nil
}
