package odt_test

import (
	"strings"
	"testing"

	"github.com/lpenaud/odtmerge/pkg/odt"
)

const tableContent = `<office:text><table:table table:name="Stock" table:style-name="Stock">` +
	`<table:table-column table:style-name="Stock.A"/>` +
	`<table:table-column table:style-name="Stock.B"/>` +
	`<table:table-header-rows><table:table-row>` +
	`<table:table-cell><text:p>Old</text:p></table:table-cell>` +
	`</table:table-row></table:table-header-rows>` +
	`<table:table-row><table:table-cell><text:p>stale</text:p></table:table-cell></table:table-row>` +
	`</table:table></office:text>`

func TestRegenerateTable(t *testing.T) {
	t.Parallel()

	doc := newTestDocument(t, tableContent)

	applied, err := doc.RegenerateTable(odt.TableSpec{
		Name:    "Stock",
		Columns: "A-C",
		Header:  []string{"Item", "Qty", "Price"},
		Rows: [][]string{
			{"Bolt", "12", "0.30"},
			{"Nut", "7", "0.10"},
		},
	})
	if err != nil {
		t.Fatalf("RegenerateTable: %v", err)
	}
	if !applied {
		t.Fatal("expected regeneration to apply")
	}

	content := doc.Content()

	// Old column and row set is gone entirely.
	if strings.Contains(content, "Old") || strings.Contains(content, "stale") {
		t.Errorf("previous table content survived: %q", content)
	}

	// One column per expanded identifier.
	if got := strings.Count(content, "<table:table-column"); got != 3 {
		t.Errorf("column count = %d, want 3", got)
	}
	if !strings.Contains(content, `<table:table-column table:style-name="Stock.C"/>`) {
		t.Errorf("missing expanded column C: %q", content)
	}

	// Header block wraps the first row.
	if !strings.Contains(content, "<table:table-header-rows><table:table-row>") {
		t.Errorf("missing header block: %q", content)
	}
	if !strings.Contains(content, "<text:p>Item</text:p>") {
		t.Errorf("missing header cell: %q", content)
	}

	// Body rows with positional cell styles.
	if !strings.Contains(content, `table:style-name="Stock.A2"`) {
		t.Errorf("missing first body row cell style: %q", content)
	}
	if !strings.Contains(content, "<text:p>Nut</text:p>") {
		t.Errorf("missing body cell: %q", content)
	}

	// The table element itself survives.
	if !strings.Contains(content, `<table:table table:name="Stock"`) ||
		!strings.Contains(content, "</table:table>") {
		t.Errorf("table wrapper damaged: %q", content)
	}
}

func TestRegenerateTablePadsShortRows(t *testing.T) {
	t.Parallel()

	doc := newTestDocument(t, tableContent)

	applied, err := doc.RegenerateTable(odt.TableSpec{
		Name:    "Stock",
		Columns: "A-B",
		Rows:    [][]string{{"only one cell"}},
	})
	if err != nil {
		t.Fatalf("RegenerateTable: %v", err)
	}
	if !applied {
		t.Fatal("expected regeneration to apply")
	}

	// The short row still spans both columns: the second cell is empty
	// and self-closing.
	if !strings.Contains(doc.Content(), `<table:table-cell office:value-type="string" table:style-name="Stock.B2"/>`) {
		t.Errorf("missing padded empty cell: %q", doc.Content())
	}
}

func TestRegenerateTableLeavesLaterTablesIntact(t *testing.T) {
	t.Parallel()

	const twoTables = `<office:text>` +
		`<table:table table:name="First" table:style-name="First">` +
		`<table:table-column table:style-name="First.A"/>` +
		`<table:table-row><table:table-cell><text:p>old</text:p></table:table-cell></table:table-row>` +
		`</table:table>` +
		`<text:p>between</text:p>` +
		`<table:table table:name="Second" table:style-name="Second">` +
		`<table:table-column table:style-name="Second.A"/>` +
		`<table:table-row><table:table-cell><text:p>keepme</text:p></table:table-cell></table:table-row>` +
		`</table:table>` +
		`</office:text>`

	doc := newTestDocument(t, twoTables)

	applied, err := doc.RegenerateTable(odt.TableSpec{
		Name:    "First",
		Columns: "A",
		Rows:    [][]string{{"new"}},
	})
	if err != nil {
		t.Fatalf("RegenerateTable: %v", err)
	}
	if !applied {
		t.Fatal("expected regeneration to apply")
	}

	content := doc.Content()

	if !strings.Contains(content, "<text:p>new</text:p>") {
		t.Errorf("missing regenerated row: %q", content)
	}
	if strings.Contains(content, "<text:p>old</text:p>") {
		t.Errorf("previous row of the named table survived: %q", content)
	}

	// Everything past the named table is untouched.
	if !strings.Contains(content, "<text:p>between</text:p>") {
		t.Errorf("content between tables was swallowed: %q", content)
	}
	if !strings.Contains(content, `<table:table table:name="Second"`) ||
		!strings.Contains(content, "<text:p>keepme</text:p>") {
		t.Errorf("later table was swallowed: %q", content)
	}
	if got := strings.Count(content, "</table:table>"); got != 2 {
		t.Errorf("table close count = %d, want 2", got)
	}
}

func TestRegenerateTableMissingTable(t *testing.T) {
	t.Parallel()

	doc := newTestDocument(t, tableContent)

	applied, err := doc.RegenerateTable(odt.TableSpec{Name: "Nope", Columns: "A"})
	if err != nil {
		t.Fatalf("RegenerateTable: %v", err)
	}
	if applied {
		t.Error("expected no-op for unknown table name")
	}
	if doc.Content() != tableContent {
		t.Error("buffer changed on a miss")
	}
}
