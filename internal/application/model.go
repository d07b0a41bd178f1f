// Package application is the terminal table browser: a menu of the
// registered tables and a view that drives selection, row events and
// actions on the chosen one.
package application

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/JonMunkholm/itemtable/internal/catalog"
	"github.com/JonMunkholm/itemtable/internal/table"
	"github.com/JonMunkholm/itemtable/internal/termview"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

/* ----------------------------------------
	MESSAGES
---------------------------------------- */

type openedMsg struct {
	in  *catalog.Instance
	err error
}

type reloadedMsg struct {
	err error
}

/* ----------------------------------------
	EVENTS
---------------------------------------- */

// Events collects table events for the status line.
type Events struct {
	mu   sync.Mutex
	last table.Event
	n    int
}

// Notifier returns the notifier for the table with key.
func (e *Events) Notifier(string) table.Notifier {
	return table.NotifierFunc(func(ev table.Event) {
		e.mu.Lock()
		e.last = ev
		e.n++
		e.mu.Unlock()
	})
}

// Last returns the most recent event and how many were seen in total.
func (e *Events) Last() (table.Event, int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last, e.n
}

/* ----------------------------------------
	MODEL
---------------------------------------- */

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Model is the bubbletea model of the browser.
type Model struct {
	ctx     context.Context
	tables  *catalog.Manager
	events  *Events
	styles  termview.Styles
	menu    *Menu
	choice  int
	current *catalog.Instance
	cursor  int
	status  string
	err     error
	start   string
}

// New creates the browser. When start names a table it opens directly.
func New(ctx context.Context, tables *catalog.Manager, events *Events, start string) *Model {
	m := &Model{
		ctx:    ctx,
		tables: tables,
		events: events,
		styles: termview.DefaultStyles(),
		start:  start,
	}
	m.menu = buildMenuTree(m)
	return m
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, tables *catalog.Manager, events *Events, start string) error {
	p := tea.NewProgram(New(ctx, tables, events, start), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	if m.start != "" {
		return m.open(m.start)
	}
	return nil
}

func (m *Model) open(key string) tea.Cmd {
	return func() tea.Msg {
		in, err := m.tables.Instance(m.ctx, key)
		return openedMsg{in: in, err: err}
	}
}

func (m *Model) reload() tea.Cmd {
	in := m.current
	return func() tea.Msg {
		return reloadedMsg{err: in.Reload(m.ctx)}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case openedMsg:
		m.err = msg.err
		if msg.in != nil {
			m.current = msg.in
			m.cursor = 0
			m.status = ""
		}
		return m, nil

	case reloadedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.status = "reloaded"
			m.clampCursor()
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.current != nil {
			return m.updateTable(msg)
		}
		return m.updateMenu(msg)
	}
	return m, nil
}

func (m *Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.choice > 0 {
			m.choice--
		}
	case "down", "j":
		if m.choice < len(m.menu.Items)-1 {
			m.choice++
		}
	case "esc", "backspace":
		if m.menu.Parent != nil {
			m.menu = m.menu.Parent
			m.choice = 0
		}
	case "enter":
		if len(m.menu.Items) == 0 {
			return m, nil
		}
		item := m.menu.Items[m.choice]
		if item.Submenu != nil {
			m.menu = item.Submenu
			m.choice = 0
			return m, nil
		}
		if item.Action != nil {
			return m, item.Action()
		}
	}
	return m, nil
}

func (m *Model) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	t := m.current.Table
	rows := t.Rows()
	m.err = nil

	switch key := msg.String(); key {
	case "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.current = nil
		m.status = ""
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
	case " ":
		if row, ok := m.cursorRow(rows); ok {
			if field := m.checkboxField(); field != "" {
				m.err = t.ToggleCheckbox(!t.IsSelectedRow(row, field), row, field)
			}
		}
	case "a":
		if field := m.checkboxField(); field != "" {
			all := true
			for _, row := range rows {
				if !t.IsSelectedRow(row, field) {
					all = false
					break
				}
			}
			m.err = t.ToggleAllCheckboxes(!all, field)
		}
	case "enter":
		if row, ok := m.cursorRow(rows); ok {
			t.OnRowClicked(row)
		}
	case "r":
		m.status = "loading..."
		return m, m.reload()
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			m.callAction(int(key[0]-'1'), rows)
		}
	}
	return m, nil
}

func (m *Model) callAction(i int, rows []table.Row) {
	actions := m.current.Table.Actions()
	if i >= len(actions) {
		m.status = fmt.Sprintf("no action %d", i+1)
		return
	}
	if row, ok := m.cursorRow(rows); ok {
		m.current.Table.CallAction(actions[i].Name, row)
	}
}

func (m *Model) cursorRow(rows []table.Row) (table.Row, bool) {
	if m.cursor < 0 || m.cursor >= len(rows) {
		return nil, false
	}
	return rows[m.cursor], true
}

func (m *Model) checkboxField() string {
	if names := m.current.Table.CheckboxFields(); len(names) > 0 {
		return names[0]
	}
	return ""
}

func (m *Model) clampCursor() {
	if n := len(m.current.Table.Rows()); m.cursor >= n {
		m.cursor = max(0, n-1)
	}
}

func (m *Model) View() string {
	if m.current != nil {
		return m.viewTable()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.menu.Title))
	b.WriteString("\n")
	for i, item := range m.menu.Items {
		if i == m.choice {
			b.WriteString(cursorStyle.Render("> " + item.Label))
		} else {
			b.WriteString("  " + item.Label)
		}
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n" + statusStyle.Render("enter: open  esc: back  q: quit"))
	return b.String()
}

func (m *Model) viewTable() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.current.Def.Info.Label))
	b.WriteString("\n")
	b.WriteString(termview.Render(m.current.Table.Render(), termview.Options{Styles: m.styles, Cursor: m.cursor}))
	b.WriteString("\n")

	if ev, n := m.events.Last(); n > 0 {
		b.WriteString(statusStyle.Render(fmt.Sprintf("last event: %s (%d)", ev.Name, n)))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status) + "\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()) + "\n")
	}
	b.WriteString(statusStyle.Render("↑/↓ move  space select  a all  enter click  1-9 action  r reload  esc back  q quit"))
	return b.String()
}
