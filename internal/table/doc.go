// Package table is a declarative table-rendering engine.
//
// A [Table] is built from raw field inputs and data rows. It normalizes the
// fields, tracks checkbox selections, resolves cell values through named
// callbacks and derives a [View]: typed header and cell descriptors that a
// separate view layer turns into HTML or terminal output.
//
// # Fields
//
// Fields are given as bare names or partial objects and normalized with
// [Normalize]. Names starting with "__" are special:
//
//	__handle          drag handle, class "vueitems-handle"
//	__sequence        1-based row number, class "vueitems-sequence"
//	__checkbox:<id>   row checkbox keyed by the <id> column, class "vueitems-checkbox"
//	__actions         action buttons, class "vueitems-actions"
//
// Special fields never read row data.
//
// # Callbacks
//
// A field callback is "name" or "name|arg1,arg2". The name is looked up in
// the [Callbacks] registry and called with the cell value followed by the
// arguments as strings. Unknown names render an empty cell.
//
// # Events
//
// Interaction and lifecycle notifications ("vueitems:loading",
// "vueitems:row-clicked", "vueitems:action", ...) go to the configured
// [Notifier], synchronously and once per occurrence.
//
// # Errors
//
// The engine degrades instead of failing. The only error it returns is
// [ErrMissingIDColumn], for selection operations on a "__checkbox" field
// without an id column; the selection is left unchanged.
package table
