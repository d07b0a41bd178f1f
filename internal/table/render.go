package table

import (
	"sort"
	"strings"
)

// Action describes one button of the "__actions" column.
type Action struct {
	Name  string            `json:"name"`
	Label string            `json:"label"`
	Icon  string            `json:"icon"`
	Class string            `json:"class"`
	Extra map[string]string `json:"extra,omitempty"`
}

// CellKind tells a view layer how to draw a cell.
type CellKind int

const (
	CellLiteral CellKind = iota
	CellCallback
	CellHandle
	CellSequence
	CellCheckbox
	CellActions
	CellBlank
)

var cellKindNames = [...]string{
	CellLiteral:  "literal",
	CellCallback: "callback",
	CellHandle:   "handle",
	CellSequence: "sequence",
	CellCheckbox: "checkbox",
	CellActions:  "actions",
	CellBlank:    "blank",
}

func (k CellKind) String() string {
	if int(k) < len(cellKindNames) {
		return cellKindNames[k]
	}
	return "unknown"
}

// MarshalText encodes the kind by name.
func (k CellKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Attr is a rendered attribute.
type Attr struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ActionButton is an Action resolved for one row.
type ActionButton struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Class string `json:"class"`
	Attrs []Attr `json:"attrs,omitempty"`
}

// Cell is the render descriptor of one table cell.
type Cell struct {
	Kind     CellKind       `json:"kind"`
	Field    string         `json:"field"`
	Class    string         `json:"class"`
	Value    any            `json:"value,omitempty"`
	Text     string         `json:"text"`
	Sequence int            `json:"sequence,omitempty"`
	Checked  bool           `json:"checked,omitempty"`
	Icon     string         `json:"icon,omitempty"`
	Actions  []ActionButton `json:"actions,omitempty"`
}

// HeaderCell is the render descriptor of one column header.
type HeaderCell struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Title       string `json:"title"`
	Class       string `json:"class"`
	Checkbox    bool   `json:"checkbox,omitempty"`
	AllSelected bool   `json:"allSelected,omitempty"`
}

// RowView is one rendered body row. Blank rows pad the table up to
// MinRows and carry no data.
type RowView struct {
	Index    int    `json:"index"`
	Blank    bool   `json:"blank,omitempty"`
	Selected bool   `json:"selected,omitempty"`
	Row      Row    `json:"-"`
	Cells    []Cell `json:"cells"`
}

// View is the complete render description of a table.
type View struct {
	ID      string  `json:"id"`
	Options Options `json:"options"`

	// WrapperClass is Options.WrapperClass plus the loading class while
	// rows are loading.
	WrapperClass string `json:"wrapperClass"`


	Header          []HeaderCell `json:"header"`
	Rows            []RowView    `json:"rows"`
	BlankRows       int          `json:"blankRows"`
	LessThanMinRows bool         `json:"lessThanMinRows"`
}

// RenderInput is everything Render derives a View from.
type RenderInput struct {
	ID        string
	Fields    []Field
	Rows      []Row
	Actions   []Action
	Options   Options
	Callbacks Callbacks
	Selection *Selection
}

// BlankRows is the number of padding rows needed to reach minRows.
func BlankRows(rowCount, minRows int) int {
	return max(0, minRows-rowCount)
}

// LessThanMinRows reports whether rowCount falls short of minRows.
func LessThanMinRows(rowCount, minRows int) bool {
	return rowCount < minRows
}

// Render derives the view of in. It never mutates its input.
// Without any data rows the body is empty; padding only applies when at
// least one row is present.
func Render(in RenderInput) View {
	sel := in.Selection
	if sel == nil {
		sel = &Selection{}
	}

	fields := make([]Field, 0, len(in.Fields))
	for _, f := range in.Fields {
		if f.Visible {
			fields = append(fields, f)
		}
	}

	v := View{
		ID:              in.ID,
		Options:         in.Options.Clone(),
		WrapperClass:    in.Options.WrapperClass,
		Header:          make([]HeaderCell, len(fields)),
		Rows:            []RowView{},
		BlankRows:       BlankRows(len(in.Rows), in.Options.MinRows),
		LessThanMinRows: LessThanMinRows(len(in.Rows), in.Options.MinRows),
	}

	for i, f := range fields {
		v.Header[i] = renderHeader(f, in.Rows, sel)
	}

	if len(in.Rows) == 0 {
		return v
	}

	for i, row := range in.Rows {
		rv := RowView{Index: i, Row: row, Cells: make([]Cell, len(fields))}
		for j, f := range fields {
			rv.Cells[j] = renderCell(f, i, row, in, sel)
			if rv.Cells[j].Kind == CellCheckbox && rv.Cells[j].Checked {
				rv.Selected = true
			}
		}
		v.Rows = append(v.Rows, rv)
	}

	for i := 0; i < v.BlankRows; i++ {
		rv := RowView{Index: len(in.Rows) + i, Blank: true, Cells: make([]Cell, len(fields))}
		for j, f := range fields {
			rv.Cells[j] = Cell{Kind: CellBlank, Field: f.Name, Class: cellClass(f)}
		}
		v.Rows = append(v.Rows, rv)
	}

	return v
}

func renderHeader(f Field, rows []Row, sel *Selection) HeaderCell {
	h := HeaderCell{
		ID:    "_" + f.Name,
		Name:  f.Name,
		Title: f.Title,
		Class: joinClasses(ClassFor(KindOf(f.Name)), f.TitleClass),
	}
	if KindOf(f.Name) == KindCheckbox {
		h.Checkbox = true
		h.AllSelected = sel.AllSelected(f.Name, rows)
	}
	return h
}

func renderCell(f Field, index int, row Row, in RenderInput, sel *Selection) Cell {
	c := Cell{Field: f.Name, Class: cellClass(f)}

	switch KindOf(f.Name) {
	case KindHandle:
		c.Kind = CellHandle
		c.Icon = in.Options.SortHandleIcon
	case KindSequence:
		c.Kind = CellSequence
		c.Sequence = index + 1
		c.Value = c.Sequence
		c.Text = DisplayText(c.Sequence)
	case KindCheckbox:
		c.Kind = CellCheckbox
		c.Checked = sel.IsSelected(row, f.Name)
	case KindActions:
		c.Kind = CellActions
		c.Actions = renderActions(in.Actions)
	case KindUnknownSpecial:
		c.Kind = CellBlank
	default:
		value := GetObjectValue(row, f.Name)
		if f.Callback != nil {
			c.Kind = CellCallback
			// An unregistered callback renders empty.
			value, _ = in.Callbacks.Call(f, value)
		}
		c.Value = value
		c.Text = DisplayText(value)
	}
	return c
}

func renderActions(actions []Action) []ActionButton {
	buttons := make([]ActionButton, len(actions))
	for i, a := range actions {
		b := ActionButton{
			Name:  a.Name,
			Label: a.Label,
			Icon:  a.Icon,
			Class: joinClasses(ActionButtonClass, a.Class),
		}
		keys := make([]string, 0, len(a.Extra))
		for k := range a.Extra {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.Attrs = append(b.Attrs, Attr{Name: k, Value: a.Extra[k]})
		}
		buttons[i] = b
	}
	return buttons
}

func cellClass(f Field) string {
	return joinClasses(ClassFor(KindOf(f.Name)), f.DataClass)
}

func joinClasses(classes ...string) string {
	var parts []string
	for _, c := range classes {
		if c = strings.TrimSpace(c); c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, " ")
}
