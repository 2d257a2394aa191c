// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// Document fields.
	FieldElement  = "element"
	FieldFilter   = "filter"
	FieldVariable = "variable"
	FieldTable    = "table"
	FieldNodes    = "nodes"
	FieldOffset   = "offset"

	// Merge fields.
	FieldData         = "data"
	FieldVariablesSet = "variables_set"
	FieldTablesSet    = "tables_set"
	FieldRows         = "rows"
	FieldColumns      = "columns"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
