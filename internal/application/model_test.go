package application

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/JonMunkholm/itemtable/internal/catalog"
	"github.com/JonMunkholm/itemtable/internal/logging"
	"github.com/JonMunkholm/itemtable/internal/table"
	tea "github.com/charmbracelet/bubbletea"
)

func TestMain(m *testing.M) {
	catalog.Register(catalog.Definition{
		Info:    catalog.Info{Key: "stock", Group: "Inventory", Label: "Stock"},
		Fields:  table.FieldNames("__checkbox:id", "code", "__actions"),
		Actions: []table.Action{{Name: "edit-item", Label: "Edit"}, {Name: "delete-item", Label: "Delete"}},
		Source: catalog.RowSource{Rows: []table.Row{
			{"id": 1, "code": "aaa"},
			{"id": 2, "code": "bbb"},
			{"id": 3, "code": "ccc"},
		}},
	})
	os.Exit(m.Run())
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newBrowser(t *testing.T, start string) (*Model, *Events) {
	t.Helper()
	events := &Events{}
	tables := catalog.NewManager(catalog.ManagerConfig{
		Defaults: table.DefaultOptions(),
		Notifier: events.Notifier,
		Logger:   logging.Discard(),
	})
	m := New(context.Background(), tables, events, start)
	if cmd := m.Init(); cmd != nil {
		m.Update(cmd())
	}
	return m, events
}

func press(m *Model, keys ...tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(k)
	}
	return cmd
}

func TestModel_OpenFromStart(t *testing.T) {
	m, _ := newBrowser(t, "stock")
	if m.current == nil {
		t.Fatal("table not opened")
	}
	if !strings.Contains(m.View(), "aaa") {
		t.Errorf("View() missing row data:\n%s", m.View())
	}
}

func TestModel_UnknownStart(t *testing.T) {
	m, _ := newBrowser(t, "nope")
	if m.current != nil {
		t.Fatal("unknown table opened")
	}
	if m.err == nil {
		t.Error("err = nil for unknown table")
	}
}

func TestModel_MenuNavigation(t *testing.T) {
	m, _ := newBrowser(t, "")

	if m.menu.Title != "Tables" {
		t.Fatalf("menu = %q, want Tables", m.menu.Title)
	}
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.menu.Title != "Inventory" {
		t.Fatalf("menu = %q, want Inventory", m.menu.Title)
	}

	cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("selecting a table returned no command")
	}
	m.Update(cmd())
	if m.current == nil || m.current.Def.Info.Key != "stock" {
		t.Fatal("stock table not opened")
	}

	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.current != nil {
		t.Error("esc did not return to the menu")
	}
}

func TestModel_Selection(t *testing.T) {
	m, _ := newBrowser(t, "stock")
	tbl := m.current.Table

	press(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeySpace})
	got := tbl.Selected("__checkbox:id")
	if len(got) != 1 || got[0] != 2 {
		t.Errorf("Selected = %v, want [2]", got)
	}

	press(m, tea.KeyMsg{Type: tea.KeySpace})
	if n := len(tbl.Selected("__checkbox:id")); n != 0 {
		t.Errorf("second space left %d selected", n)
	}

	press(m, runes("a"))
	if n := len(tbl.Selected("__checkbox:id")); n != 3 {
		t.Errorf("after select all %d selected, want 3", n)
	}
	press(m, runes("a"))
	if n := len(tbl.Selected("__checkbox:id")); n != 0 {
		t.Errorf("after deselect all %d selected, want 0", n)
	}
}

func TestModel_CursorBounds(t *testing.T) {
	m, _ := newBrowser(t, "stock")

	press(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}
	press(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.cursor)
	}
}

func TestModel_RowEventsAndActions(t *testing.T) {
	m, events := newBrowser(t, "stock")

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	ev, _ := events.Last()
	if ev.Kind() != table.EventRowClicked {
		t.Errorf("last event = %s, want row-clicked", ev.Name)
	}

	press(m, runes("2"))
	ev, _ = events.Last()
	if ev.Kind() != table.EventAction || len(ev.Payload) == 0 || ev.Payload[0] != "delete-item" {
		t.Errorf("last event = %+v, want delete-item action", ev)
	}

	press(m, runes("9"))
	if m.status != "no action 9" {
		t.Errorf("status = %q, want %q", m.status, "no action 9")
	}
}

func TestModel_Reload(t *testing.T) {
	m, events := newBrowser(t, "stock")
	_, before := events.Last()

	cmd := press(m, runes("r"))
	if cmd == nil {
		t.Fatal("reload returned no command")
	}
	m.Update(cmd())

	if m.status != "reloaded" {
		t.Errorf("status = %q, want reloaded", m.status)
	}
	ev, after := events.Last()
	if after != before+2 || ev.Kind() != table.EventLoaded {
		t.Errorf("events %d -> %d, last %s", before, after, ev.Name)
	}
}

func TestModel_Quit(t *testing.T) {
	m, _ := newBrowser(t, "stock")
	cmd := press(m, runes("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}
