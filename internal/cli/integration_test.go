package cli_test

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lpenaud/odtmerge/internal/cli"
	"github.com/lpenaud/odtmerge/pkg/odt"
)

const testContent = `<office:text>` +
	`<text:p text:style-name="P1">Dear <text:variable-get text:name="name">NAME</text:variable-get>,</text:p>` +
	`<text:variable-set text:name="title" office:value-type="string">PLACEHOLDER</text:variable-set>` +
	`<table:table table:name="Stock" table:style-name="Stock">` +
	`<table:table-column table:style-name="Stock.A"/>` +
	`<table:table-row><table:table-cell office:value-type="string"><text:p>old</text:p></table:table-cell></table:table-row>` +
	`</table:table>` +
	`</office:text>`

// writeTestODT builds a minimal ODT container on disk and returns its path.
func writeTestODT(t *testing.T, content string) string {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct{ name, data string }{
		{"mimetype", "application/vnd.oasis.opendocument.text"},
		{"content.xml", content},
		{"styles.xml", `<office:document-styles/>`},
		{"META-INF/manifest.xml", `<manifest:manifest/>`},
	}
	for _, p := range parts {
		w, err := zw.Create(p.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(p.data))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "doc.odt")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

// runCommand executes the root command with args and captures stdout.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test"})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

// readContent reopens a saved document and returns its content stream.
func readContent(t *testing.T, path string) string {
	t.Helper()

	doc, err := odt.Open(path)
	require.NoError(t, err)
	return doc.Content()
}

func TestFindCommand(t *testing.T) {
	docPath := writeTestODT(t, testContent)

	output, err := runCommand(t, "find", docPath, "text:p", "--color", "never")
	require.NoError(t, err)

	assert.Contains(t, output, "ELEMENT")
	assert.Contains(t, output, "text:p")
	assert.Contains(t, output, "2 node(s)")
}

func TestFindCommandAttrFilter(t *testing.T) {
	docPath := writeTestODT(t, testContent)

	output, err := runCommand(t, "find", docPath,
		"text:variable-set", "--attr", "text:name=title", "--show-attrs", "--color", "never")
	require.NoError(t, err)

	assert.Contains(t, output, "text:variable-set")
	assert.Contains(t, output, "PLACEHOLDER")
	assert.Contains(t, output, `text:name="title"`)
}

func TestFindCommandStrictMiss(t *testing.T) {
	docPath := writeTestODT(t, testContent)

	_, err := runCommand(t, "find", docPath, "text:nope", "--strict")
	require.Error(t, err)
	assert.Equal(t, cli.ExitNothingFound, cli.ExitCodeFromError(err))
}

func TestSetCommand(t *testing.T) {
	docPath := writeTestODT(t, testContent)
	outPath := filepath.Join(t.TempDir(), "filled.odt")

	_, err := runCommand(t, "set", docPath,
		"title=Quarterly Report", "name=Alice", "-o", outPath)
	require.NoError(t, err)

	content := readContent(t, outPath)
	assert.Contains(t, content, ">Quarterly Report</text:variable-set>")
	assert.Contains(t, content, ">Alice</text:variable-get>")
	assert.NotContains(t, content, "PLACEHOLDER")

	// Input document is untouched when -o is given.
	assert.Contains(t, readContent(t, docPath), "PLACEHOLDER")
}

func TestSetCommandInvalidAssignment(t *testing.T) {
	docPath := writeTestODT(t, testContent)

	_, err := runCommand(t, "set", docPath, "not-an-assignment")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name=value")
}

func TestMergeCommand(t *testing.T) {
	docPath := writeTestODT(t, testContent)
	outPath := filepath.Join(t.TempDir(), "merged.odt")

	dataPath := filepath.Join(t.TempDir(), "data.yaml")
	dataYAML := `variables:
  title: Stock Report
  name: Bob
tables:
  - name: Stock
    columns: A-B
    header: [Item, Count]
    rows:
      - [Bolts, "120"]
      - [Nuts, "80"]
`
	require.NoError(t, os.WriteFile(dataPath, []byte(dataYAML), 0o644))

	output, err := runCommand(t, "merge", docPath,
		"--data", dataPath, "-o", outPath, "--color", "never")
	require.NoError(t, err)

	assert.Contains(t, output, "2 variables")
	assert.Contains(t, output, "1 table (2 rows)")
	assert.Contains(t, output, "written to "+outPath)

	content := readContent(t, outPath)
	assert.Contains(t, content, ">Stock Report</text:variable-set>")
	assert.Contains(t, content, ">Bob</text:variable-get>")
	assert.Contains(t, content, `table:style-name="Stock.A"`)
	assert.Contains(t, content, `table:style-name="Stock.B"`)
	assert.Contains(t, content, ">Bolts<")
	assert.Contains(t, content, ">80<")
	assert.NotContains(t, content, ">old<")
}

func TestMergeCommandMissingTargets(t *testing.T) {
	docPath := writeTestODT(t, testContent)

	dataPath := filepath.Join(t.TempDir(), "data.yaml")
	dataYAML := `variables:
  missing: value
tables:
  - name: NoSuchTable
    columns: A
    rows: [[x]]
`
	require.NoError(t, os.WriteFile(dataPath, []byte(dataYAML), 0o644))

	output, err := runCommand(t, "merge", docPath,
		"--data", dataPath, "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, output, "2 not found")

	// Strict mode turns a complete miss into an error.
	_, err = runCommand(t, "merge", docPath, "--data", dataPath, "--strict")
	require.Error(t, err)
	assert.Equal(t, cli.ExitNothingFound, cli.ExitCodeFromError(err))
}

func TestMergeCommandNoData(t *testing.T) {
	docPath := writeTestODT(t, testContent)

	_, err := runCommand(t, "merge", docPath)
	require.Error(t, err)
	assert.Equal(t, cli.ExitDataError, cli.ExitCodeFromError(err))
}

func TestMergeCommandSummaryBlock(t *testing.T) {
	docPath := writeTestODT(t, testContent)
	outPath := filepath.Join(t.TempDir(), "merged.odt")

	dataPath := filepath.Join(t.TempDir(), "data.yaml")
	require.NoError(t, os.WriteFile(dataPath, []byte("variables:\n  title: X\n"), 0o644))

	output, err := runCommand(t, "merge", docPath,
		"--data", dataPath, "-o", outPath, "--summary", "--color", "never")
	require.NoError(t, err)

	assert.Contains(t, output, "Summary")
	assert.Contains(t, output, "Variables set:")
	assert.Contains(t, output, "Merge completed")
}
