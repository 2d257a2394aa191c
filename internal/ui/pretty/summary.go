package pretty

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	summaryDividerWidth = 40
	wordTable           = "table"
	wordTables          = "tables"
)

// MergeStats holds counters for a merge run.
type MergeStats struct {
	VariablesSet      int
	VariablesNotFound int
	TablesSet         int
	TablesNotFound    int
	RowsWritten       int
	Output            string
}

// FormatMergeSummaryOneLine formats merge statistics as a single line.
// Example: "5 variables, 2 tables (14 rows) written to out.odt".
func (s *Styles) FormatMergeSummaryOneLine(stats MergeStats) string {
	var parts []string

	if stats.VariablesSet > 0 {
		word := "variables"
		if stats.VariablesSet == 1 {
			word = "variable"
		}
		parts = append(parts, fmt.Sprintf("%d %s", stats.VariablesSet, word))
	}

	if stats.TablesSet > 0 {
		word := wordTables
		if stats.TablesSet == 1 {
			word = wordTable
		}
		parts = append(parts, fmt.Sprintf("%d %s (%d rows)", stats.TablesSet, word, stats.RowsWritten))
	}

	if len(parts) == 0 {
		parts = append(parts, s.Dim.Render("nothing to merge"))
	}

	msg := strings.Join(parts, ", ")
	if stats.Output != "" {
		msg += " written to " + s.Bold.Render(stats.Output)
	}

	missed := stats.VariablesNotFound + stats.TablesNotFound
	if missed > 0 {
		msg += ", " + s.Warning.Render(fmt.Sprintf("%d not found", missed))
	}

	return msg + "\n"
}

// FormatMergeSummary formats merge statistics as a summary block.
func (s *Styles) FormatMergeSummary(stats MergeStats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat(lightSeparator, summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Variables set:       " +
		s.SummaryValue.Render(strconv.Itoa(stats.VariablesSet)) + "\n")
	if stats.VariablesNotFound > 0 {
		builder.WriteString("  Variables not found: " +
			s.Warning.Render(strconv.Itoa(stats.VariablesNotFound)) + "\n")
	}

	builder.WriteString("  Tables regenerated:  " +
		s.SummaryValue.Render(strconv.Itoa(stats.TablesSet)) + "\n")
	if stats.TablesNotFound > 0 {
		builder.WriteString("  Tables not found:    " +
			s.Warning.Render(strconv.Itoa(stats.TablesNotFound)) + "\n")
	}
	if stats.RowsWritten > 0 {
		builder.WriteString("  Rows written:        " +
			s.SummaryValue.Render(strconv.Itoa(stats.RowsWritten)) + "\n")
	}

	builder.WriteString("\n")

	switch {
	case stats.VariablesNotFound > 0 || stats.TablesNotFound > 0:
		builder.WriteString(s.Warning.Render("Merge completed with missing targets"))
	case stats.VariablesSet == 0 && stats.TablesSet == 0:
		builder.WriteString(s.Dim.Render("Nothing to merge"))
	default:
		builder.WriteString(s.Success.Render("Merge completed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
