// Package mergedata loads the values driving a merge: variable assignments
// and table data, from YAML, JSON, or TOML files.
package mergedata

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// Table holds the regenerated content of one named table.
type Table struct {
	// Name matches the table:name attribute of the target table.
	Name string `yaml:"name" toml:"name"`

	// Columns is a compact column range specification, e.g. "A-C".
	Columns string `yaml:"columns" toml:"columns"`

	// Header holds the header row cell texts. Optional.
	Header []string `yaml:"header" toml:"header"`

	// Rows holds the body rows.
	Rows [][]string `yaml:"rows" toml:"rows"`
}

// Data is the full payload of one merge.
type Data struct {
	// Variables maps variable names to the values injected for them.
	Variables map[string]string `yaml:"variables" toml:"variables"`

	// Tables lists the tables to regenerate.
	Tables []Table `yaml:"tables" toml:"tables"`
}

// LoadFile reads a merge data file, picking the codec from the extension:
// .yaml/.yml, .json, or .toml.
func LoadFile(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FromYAML(raw)
	case ".json":
		return FromJSON(raw)
	case ".toml":
		return FromTOML(raw)
	default:
		return nil, fmt.Errorf("unsupported data file extension %q (want .yaml, .json, or .toml)", ext)
	}
}

// FromYAML parses merge data from YAML bytes.
func FromYAML(raw []byte) (*Data, error) {
	data := &Data{}
	if err := yaml.Unmarshal(raw, data); err != nil {
		return nil, fmt.Errorf("parse yaml data: %w", err)
	}
	return normalize(data), nil
}

// FromTOML parses merge data from TOML bytes.
func FromTOML(raw []byte) (*Data, error) {
	data := &Data{}
	if err := toml.Unmarshal(raw, data); err != nil {
		return nil, fmt.Errorf("parse toml data: %w", err)
	}
	return normalize(data), nil
}

// FromJSON parses merge data from JSON bytes. Scalar variable values are
// accepted as-is: numbers and booleans are stringified, since injection
// always produces text content.
func FromJSON(raw []byte) (*Data, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("parse json data: invalid document")
	}

	root := gjson.ParseBytes(raw)
	data := &Data{Variables: make(map[string]string)}

	root.Get("variables").ForEach(func(key, value gjson.Result) bool {
		data.Variables[key.String()] = value.String()
		return true
	})

	for _, t := range root.Get("tables").Array() {
		table := Table{
			Name:    t.Get("name").String(),
			Columns: t.Get("columns").String(),
		}
		for _, h := range t.Get("header").Array() {
			table.Header = append(table.Header, h.String())
		}
		for _, r := range t.Get("rows").Array() {
			var row []string
			for _, cell := range r.Array() {
				row = append(row, cell.String())
			}
			table.Rows = append(table.Rows, row)
		}
		data.Tables = append(data.Tables, table)
	}

	return data, nil
}

func normalize(data *Data) *Data {
	if data.Variables == nil {
		data.Variables = make(map[string]string)
	}
	return data
}
