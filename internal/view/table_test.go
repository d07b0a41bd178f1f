package view

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/JonMunkholm/itemtable/internal/table"
)

func render(t *testing.T, p TableProps) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Table(p).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return buf.String()
}

func viewOf(fields []table.FieldInput, rows []table.Row, actions []table.Action, patch map[string]any) table.View {
	tbl := table.New(table.Config{Fields: fields, Rows: rows, Actions: actions})
	if patch != nil {
		tbl.SetOptions(patch)
	}
	return tbl.Render()
}

func TestTable_Header(t *testing.T) {
	html := render(t, TableProps{View: viewOf(table.FieldNames("code", "description"), nil, nil, nil)})

	for _, want := range []string{
		`<th id="_code">Code</th>`,
		`<th id="_description">Description</th>`,
		`<table class="ui blue striped celled selectable single line attached table">`,
		`class="vueitems-wrapper"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %s in %s", want, html)
		}
	}
	if !strings.Contains(html, `<tbody></tbody>`) {
		t.Errorf("expected empty body: %s", html)
	}
}

func TestTable_SpecialCells(t *testing.T) {
	fields := table.FieldNames("__handle", "__sequence", "__checkbox:id", "code")
	rows := []table.Row{{"id": 1, "code": "aaa"}, {"id": 2, "code": "bbb"}}
	html := render(t, TableProps{Key: "items", View: viewOf(fields, rows, nil, nil)})

	for _, want := range []string{
		`data-table="items"`,
		`<td class="vueitems-handle"><i class="grey sidebar icon"></i></td>`,
		`<td class="vueitems-sequence">2</td>`,
		`<th id="___checkbox:id" class="vueitems-checkbox"><input type="checkbox" class="vueitems-toggle-all" data-field="__checkbox:id"></th>`,
		`<td class="vueitems-checkbox"><input type="checkbox" data-field="__checkbox:id" data-row="1"></td>`,
		`<tr data-row="0">`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %s in %s", want, html)
		}
	}
}

func TestTable_SelectedRow(t *testing.T) {
	rows := []table.Row{{"id": 1}, {"id": 2}}
	tbl := table.New(table.Config{Fields: table.FieldNames("__checkbox:id"), Rows: rows})
	if err := tbl.ToggleAllCheckboxes(true, "__checkbox:id"); err != nil {
		t.Fatal(err)
	}
	html := render(t, TableProps{View: tbl.Render()})

	if strings.Count(html, ` checked`) != 3 {
		t.Errorf("want 3 checked inputs (header + 2 rows): %s", html)
	}
	if !strings.Contains(html, `<tr class="active" data-row="0">`) {
		t.Errorf("selected row not marked: %s", html)
	}
}

func TestTable_Actions(t *testing.T) {
	actions := []table.Action{
		{Name: "edit-item", Label: "Edit", Icon: "large edit icon", Class: "ui teal basic mini button"},
		{Name: "delete-item", Icon: "large delete icon", Class: "ui red basic mini button",
			Extra: map[string]string{"title": "Tooltip text", "dummy-attr": "dummy value", "onclick": "alert(1)"}},
	}
	html := render(t, TableProps{View: viewOf(table.FieldNames("__actions", "code"), []table.Row{{"code": "a"}}, actions, nil)})

	for _, want := range []string{
		`<button type="button" class="action-button ui teal basic mini button" data-action="edit-item" data-row="0"><i class="large edit icon"></i>Edit</button>`,
		`data-action="delete-item" data-row="0" dummy-attr="dummy value" title="Tooltip text"><i class="large delete icon"></i></button>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %s in %s", want, html)
		}
	}
	if strings.Contains(html, "onclick") {
		t.Errorf("event handler attribute rendered: %s", html)
	}
}

func TestTable_BlankRowsAndOptions(t *testing.T) {
	tbl := table.New(table.Config{Fields: table.FieldNames("__sequence", "code"), Rows: []table.Row{{"code": "a"}}})
	tbl.SetOptions(map[string]any{"minRows": 3, "tableClass": "my-table", "loaderWrapper": "#seg"})
	tbl.ShowLoadingAnimation(nil)
	html := render(t, TableProps{View: tbl.Render()})

	if n := strings.Count(html, `<tr class="vueitems-blank"><td class="vueitems-sequence"></td><td></td></tr>`); n != 2 {
		t.Errorf("blank rows = %d, want 2: %s", n, html)
	}
	for _, want := range []string{`<table class="my-table">`, `class="vueitems-wrapper loading"`, `data-loader="#seg"`} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %s in %s", want, html)
		}
	}
}

func TestTable_Escapes(t *testing.T) {
	html := render(t, TableProps{View: viewOf(table.FieldNames("code"), []table.Row{{"code": `<b>"x"</b>`}}, nil, nil)})

	if strings.Contains(html, "<b>") {
		t.Errorf("cell text not escaped: %s", html)
	}
	if !strings.Contains(html, "&lt;b&gt;") {
		t.Errorf("escaped text missing: %s", html)
	}
}

func TestDashboard(t *testing.T) {
	var buf bytes.Buffer
	groups := []TableGroup{{Name: "Inventory", Tables: []TableCard{{Key: "products", Label: "Products", Description: "All products"}}}}
	if err := Dashboard(groups).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	html := buf.String()

	for _, want := range []string{"<!doctype html>", "<h2>Inventory</h2>", `<a href="/table/products">Products</a>`, "All products"} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %s in %s", want, html)
		}
	}
}

func TestTablePage(t *testing.T) {
	var buf bytes.Buffer
	card := TableCard{Key: "items", Label: "Items <all>"}
	props := TableProps{Key: "items", View: viewOf(table.FieldNames("code"), []table.Row{{"code": "a"}}, nil, nil)}
	if err := TablePage(card, props).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	html := buf.String()

	for _, want := range []string{
		"<title>Items &lt;all&gt;</title>",
		`data-reload="items"`,
		`<main class="container"><nav>`,
		`data-table="items"`,
		"</div></main></body></html>",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %s in %s", want, html)
		}
	}
	if strings.Contains(html, "<p class=\"description\">") {
		t.Errorf("empty description rendered: %s", html)
	}
}
