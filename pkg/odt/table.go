package odt

import (
	"fmt"
	"strings"

	"github.com/lpenaud/odtmerge/pkg/markup"
	"github.com/lpenaud/odtmerge/pkg/splice"
)

// TableSpec describes the regenerated column and row set of a named table.
type TableSpec struct {
	// Name matches the table's table:name attribute.
	Name string

	// Columns is a compact column range specification, e.g. "A-C".
	// One table:table-column is emitted per expanded identifier.
	Columns string

	// Header holds the header row cell texts. Empty means no header block.
	Header []string

	// Rows holds the body rows, one slice of cell texts per row.
	Rows [][]string
}

// RegenerateTable replaces the whole column/row set of the named table with
// markup built from spec: the span from the table's first table:table-column
// through the last table:table-row is spliced over wholesale. A table or
// column miss is advisory (logged, applied=false); the existing buffer is
// left untouched in that case.
func (d *Document) RegenerateTable(spec TableSpec) (bool, error) {
	filter := markup.Attributes{"table:name": spec.Name}
	table, ok := markup.FirstNode(d.content, string(markup.ElemTable), filter)
	if !ok {
		d.logger.Warn("no matching element",
			"locator", Locator{Name: string(markup.ElemTable), Filter: filter}.String())
		return false, nil
	}

	firstCol, ok := markup.FirstNodeFrom(d.content, table.Start, string(markup.ElemColumn), nil)
	if !ok {
		d.logger.Warn("no matching element",
			"locator", Locator{Name: string(markup.ElemColumn)}.String())
		return false, nil
	}

	// Truncating at table.End keeps the row search inside the named table, so
	// rows of any later table never widen the splice span.
	end := firstCol.End
	if lastRow, ok := markup.LastNodeFrom(d.content[:table.End], firstCol.End, string(markup.ElemRow), nil); ok {
		end = lastRow.End
	} else {
		d.logger.Warn("no matching end element, replacing first span only",
			"locator", Locator{Name: string(markup.ElemRow)}.String())
	}

	content, err := splice.Replace(d.content, firstCol.Start, end, buildTableMarkup(spec))
	if err != nil {
		return false, fmt.Errorf("regenerate table %q: %w", spec.Name, err)
	}
	d.content = content
	return true, nil
}

// buildTableMarkup serializes the column definitions, the optional header
// block, and the body rows for one table.
func buildTableMarkup(spec TableSpec) string {
	var sb strings.Builder

	columns := ExpandColumns(spec.Columns)
	colTemplate := markup.NewElement(markup.ElemColumn)
	for _, id := range columns {
		sb.WriteString(colTemplate.
			WithAttr("table:style-name", spec.Name+"."+id).
			Markup())
	}

	if len(spec.Header) > 0 {
		header := markup.NewElement(markup.ElemHeaderRows).
			WithChildren(buildRowMarkup(spec.Name, 1, columns, spec.Header))
		sb.WriteString(header.Markup())
	}

	for i, row := range spec.Rows {
		sb.WriteString(buildRowMarkup(spec.Name, i+2, columns, row))
	}

	return sb.String()
}

// buildRowMarkup serializes one table row. Cells beyond the column set are
// dropped; missing trailing cells are padded empty so every row spans the
// full column list.
func buildRowMarkup(tableName string, rowNumber int, columns, cells []string) string {
	cellTemplate := markup.NewElement(markup.ElemCell).
		WithAttr("office:value-type", "string")

	children := make([]string, 0, len(columns))
	for i, col := range columns {
		cell := cellTemplate.
			WithAttr("table:style-name", fmt.Sprintf("%s.%s%d", tableName, col, rowNumber))
		if i < len(cells) && cells[i] != "" {
			cell = cell.WithChildren(
				markup.NewElement(markup.ElemParagraph).WithText(cells[i]).Markup())
		}
		children = append(children, cell.Markup())
	}

	return markup.NewElement(markup.ElemRow).
		WithChildren(children...).
		Markup()
}
