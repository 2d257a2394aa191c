package pretty

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lpenaud/odtmerge/pkg/markup"
)

// Table formatting constants.
const (
	tablePadding     = 2
	minElementWidth  = 12
	minRangeWidth    = 11
	minSnippetWidth  = 20
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
	snippetRuneLimit = 60
)

// NodeFormatter formats matched document nodes as a styled table.
type NodeFormatter struct {
	styles    *Styles
	termWidth int
}

// NewNodeFormatter creates a new node formatter.
func NewNodeFormatter(styles *Styles, termWidth int) *NodeFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &NodeFormatter{
		styles:    styles,
		termWidth: termWidth,
	}
}

// FormatNodes formats matched nodes as a table with ELEMENT, RANGE and
// CONTENT columns. Content is the node's inner text, truncated to fit.
func (f *NodeFormatter) FormatNodes(content string, nodes []markup.Node) string {
	if len(nodes) == 0 {
		return ""
	}

	elementWidth := minElementWidth
	rangeWidth := minRangeWidth
	for _, node := range nodes {
		if len(node.Name) > elementWidth {
			elementWidth = len(node.Name)
		}
		span := formatRange(node)
		if len(span) > rangeWidth {
			rangeWidth = len(span)
		}
	}

	snippetWidth := f.termWidth - elementWidth - rangeWidth - 2*tablePadding
	if snippetWidth < minSnippetWidth {
		snippetWidth = minSnippetWidth
	}

	pad := strings.Repeat(" ", tablePadding)
	totalWidth := elementWidth + rangeWidth + snippetWidth + 2*tablePadding

	var builder strings.Builder

	header := fmt.Sprintf("%-*s%s%-*s%s%s",
		elementWidth, "ELEMENT", pad,
		rangeWidth, "RANGE", pad,
		"CONTENT")
	builder.WriteString(f.styles.TableHeader.Render(header))
	builder.WriteString("\n")
	builder.WriteString(f.styles.TableSeparator.Render(strings.Repeat(heavySeparator, totalWidth)))
	builder.WriteString("\n")

	for _, node := range nodes {
		builder.WriteString(f.styles.Element.Render(fmt.Sprintf("%-*s", elementWidth, node.Name)))
		builder.WriteString(pad)
		builder.WriteString(f.styles.Offset.Render(fmt.Sprintf("%-*s", rangeWidth, formatRange(node))))
		builder.WriteString(pad)
		builder.WriteString(f.styles.Snippet.Render(truncateSnippet(node.Text(content), snippetWidth)))
		builder.WriteString("\n")
	}

	builder.WriteString(f.styles.TableSeparator.Render(strings.Repeat(heavySeparator, totalWidth)))
	builder.WriteString("\n")
	builder.WriteString(f.styles.TableLegend.Render(
		fmt.Sprintf("%d node(s), byte offsets into %s", len(nodes), "content.xml")))
	builder.WriteString("\n")

	return builder.String()
}

// FormatAttributes renders a node's attributes one per line, sorted by name.
func (f *NodeFormatter) FormatAttributes(attrs markup.Attributes) string {
	if len(attrs) == 0 {
		return ""
	}

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	var builder strings.Builder
	for _, name := range names {
		builder.WriteString("  ")
		builder.WriteString(f.styles.AttrName.Render(name))
		builder.WriteString("=")
		builder.WriteString(f.styles.AttrValue.Render(fmt.Sprintf("%q", attrs[name])))
		builder.WriteString("\n")
	}
	return builder.String()
}

// formatRange renders a node's byte span, e.g. "120-245".
func formatRange(node markup.Node) string {
	return fmt.Sprintf("%d-%d", node.Start, node.End)
}

// truncateSnippet collapses whitespace and trims the text to limit runes.
func truncateSnippet(text string, limit int) string {
	text = strings.Join(strings.Fields(text), " ")
	if limit > snippetRuneLimit {
		limit = snippetRuneLimit
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}
