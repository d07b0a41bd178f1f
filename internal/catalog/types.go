// Package catalog holds the registry of table definitions and the live
// table instances built from them. Definitions register themselves from
// init functions; import catalog/demo to register the sample tables.
package catalog

import (
	"errors"

	"github.com/JonMunkholm/itemtable/internal/source"
	"github.com/JonMunkholm/itemtable/internal/table"
)

// ErrUnknownTable is returned for a key with no registered definition.
var ErrUnknownTable = errors.New("unknown table")

// Info contains display information about a table.
type Info struct {
	Key         string // Unique identifier: "products"
	Group       string // Dashboard section: "Inventory"
	Label       string // Display name: "Products"
	Description string
}

// RowSource says where a table's rows come from. The first non-empty of
// Load, Rows, JSON, File and Query wins.
type RowSource struct {
	Load  source.Func // host-supplied loader
	Rows  []table.Row // fixed rows
	JSON  []byte      // embedded JSON document
	File  string      // JSON file, relative to the data directory
	Path  string      // gjson path to the row array for JSON and File
	Query string      // SQL query, requires a database
	Args  []any
}

// Definition is everything needed to build a table instance.
type Definition struct {
	Info      Info
	Fields    []table.FieldInput
	Actions   []table.Action
	Callbacks table.Callbacks

	// Options is applied over the configured defaults with SetOptions.
	Options map[string]any

	Source RowSource

	// columns is Fields normalized by Register.
	columns []table.Field
}

// Columns returns the normalized fields.
func (d Definition) Columns() []table.Field {
	if d.columns == nil {
		return table.Normalize(d.Fields)
	}
	return d.columns
}

// CheckboxFields returns the names of the "__checkbox" columns in field
// order.
func (d Definition) CheckboxFields() []string {
	names := []string{}
	for _, f := range d.Columns() {
		if table.KindOf(f.Name) == table.KindCheckbox {
			names = append(names, f.Name)
		}
	}
	return names
}

// HasAction reports whether the definition declares an action named name.
func (d Definition) HasAction(name string) bool {
	for _, a := range d.Actions {
		if a.Name == name {
			return true
		}
	}
	return false
}
