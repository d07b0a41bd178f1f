// Package termview renders table views for the terminal with lipgloss.
package termview

import (
	"strconv"
	"strings"

	"github.com/JonMunkholm/itemtable/internal/table"
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
)

// HandleGlyph stands in for the sort handle icon.
const HandleGlyph = "≡"

// Styles are the lipgloss styles a rendered table uses.
type Styles struct {
	Border   lipgloss.Style
	Header   lipgloss.Style
	Cell     lipgloss.Style
	Blank    lipgloss.Style
	Selected lipgloss.Style
	Cursor   lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		Border:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Header:   lipgloss.NewStyle().Bold(true).Padding(0, 1),
		Cell:     lipgloss.NewStyle().Padding(0, 1),
		Blank:    lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("238")),
		Selected: lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("42")),
		Cursor:   lipgloss.NewStyle().Padding(0, 1).Reverse(true),
	}
}

// Options control rendering.
type Options struct {
	Styles Styles

	// Cursor highlights the body row at this index; negative disables it.
	Cursor int
}

// Render draws v as a bordered table.
func Render(v table.View, opts Options) string {
	st := opts.Styles

	headers := make([]string, len(v.Header))
	for i, h := range v.Header {
		headers[i] = HeaderText(h)
	}

	rows := make([][]string, len(v.Rows))
	for i, r := range v.Rows {
		rows[i] = make([]string, len(r.Cells))
		for j, c := range r.Cells {
			rows[i][j] = CellText(c)
		}
	}

	t := ltable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(st.Border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return st.Header
			}
			if row < 0 || row >= len(v.Rows) {
				return st.Cell
			}
			r := v.Rows[row]
			switch {
			case row == opts.Cursor:
				return st.Cursor
			case r.Blank:
				return st.Blank
			case r.Selected:
				return st.Selected
			}
			return st.Cell
		})

	return t.String()
}

// HeaderText is the terminal text of a header cell.
func HeaderText(h table.HeaderCell) string {
	if h.Checkbox {
		return checkbox(h.AllSelected)
	}
	return h.Title
}

// CellText is the terminal text of a body cell. Action buttons are
// numbered from 1 so they can be picked with a key.
func CellText(c table.Cell) string {
	switch c.Kind {
	case table.CellHandle:
		return HandleGlyph
	case table.CellCheckbox:
		return checkbox(c.Checked)
	case table.CellActions:
		labels := make([]string, len(c.Actions))
		for i, a := range c.Actions {
			label := a.Label
			if label == "" {
				label = a.Name
			}
			labels[i] = strconv.Itoa(i+1) + ":" + label
		}
		return strings.Join(labels, " ")
	case table.CellBlank:
		return ""
	default:
		return c.Text
	}
}

func checkbox(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}
