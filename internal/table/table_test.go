package table

import (
	"bytes"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"testing"
)

// recorder collects dispatched events.
type recorder struct {
	events []Event
}

func (r *recorder) Notify(e Event) { r.events = append(r.events, e) }

func (r *recorder) names() []string {
	names := make([]string, len(r.events))
	for i, e := range r.events {
		names[i] = e.Name
	}
	return names
}

func newTestTable(rec *recorder, rows []Row) *Table {
	return New(Config{
		Name:      "items",
		Fields:    []FieldInput{FieldName(checkboxID), FieldName("code")},
		Rows:      rows,
		Callbacks: testCallbacks(),
		Notifier:  rec,
	})
}

func TestNew_Defaults(t *testing.T) {
	tbl := New(Config{Fields: FieldNames("code")})

	if tbl.ID() == "" {
		t.Error("ID is empty")
	}
	if tbl.Name() != tbl.ID() {
		t.Errorf("Name = %q, want the id %q", tbl.Name(), tbl.ID())
	}
	if got := tbl.Options(); !reflect.DeepEqual(got, DefaultOptions()) {
		t.Errorf("Options = %+v, want defaults", got)
	}
	if len(tbl.Rows()) != 0 {
		t.Errorf("Rows = %v, want empty", tbl.Rows())
	}
}

func TestNew_OverridesOptions(t *testing.T) {
	tbl := New(Config{
		Fields: FieldNames("code"),
		Options: Options{
			WrapperClass:   "something here",
			LoaderWrapper:  "something here",
			TableClass:     "something here",
			LoadingClass:   "something here",
			SortHandleIcon: "something here",
			MinRows:        5,
		},
	})
	o := tbl.Options()

	for name, got := range map[string]string{
		"WrapperClass":   o.WrapperClass,
		"LoaderWrapper":  o.LoaderWrapper,
		"TableClass":     o.TableClass,
		"LoadingClass":   o.LoadingClass,
		"SortHandleIcon": o.SortHandleIcon,
	} {
		if got != "something here" {
			t.Errorf("%s = %q, want %q", name, got, "something here")
		}
	}
	if o.MinRows != 5 {
		t.Errorf("MinRows = %d, want 5", o.MinRows)
	}
}

func TestTable_DerivedRowCounts(t *testing.T) {
	tests := []struct {
		rows     int
		minRows  int
		blank    int
		lessThan bool
	}{
		{0, 5, 5, true},
		{2, 5, 3, true},
		{2, 2, 0, false},
		{3, 2, 0, false},
	}
	for _, tt := range tests {
		rows := make([]Row, tt.rows)
		for i := range rows {
			rows[i] = Row{"code": i}
		}
		tbl := New(Config{Fields: FieldNames("code"), Rows: rows, Options: Options{MinRows: tt.minRows}})

		if got := tbl.BlankRows(); got != tt.blank {
			t.Errorf("rows=%d min=%d: BlankRows = %d, want %d", tt.rows, tt.minRows, got, tt.blank)
		}
		if got := tbl.LessThanMinRows(); got != tt.lessThan {
			t.Errorf("rows=%d min=%d: LessThanMinRows = %v, want %v", tt.rows, tt.minRows, got, tt.lessThan)
		}
	}
}

func TestTable_SetFieldsRenormalizes(t *testing.T) {
	tbl := New(Config{Fields: FieldNames("code")})
	tbl.SetFields(FieldNames("created_at", "__sequence"))

	fields := tbl.Fields()
	if len(fields) != 2 || fields[0].Title != "Created At" || fields[1].Title != "" {
		t.Errorf("Fields = %+v", fields)
	}
}

func TestTable_Selection(t *testing.T) {
	rec := &recorder{}
	rows := sampleRows()[:2]
	tbl := newTestTable(rec, rows)

	if got := tbl.Selected(checkboxID); len(got) != 0 {
		t.Fatalf("Selected = %v, want empty", got)
	}

	tbl.ToggleAllCheckboxes(true, checkboxID)
	if got := tbl.Selected(checkboxID); !reflect.DeepEqual(got, []any{1, 2}) {
		t.Errorf("Selected = %v, want [1 2]", got)
	}
	if !tbl.IsSelectedRow(rows[0], checkboxID) || !tbl.IsSelectedRow(rows[1], checkboxID) {
		t.Error("all rows should be selected")
	}

	tbl.ToggleAllCheckboxes(true, checkboxID)
	if got := tbl.Selected(checkboxID); !reflect.DeepEqual(got, []any{1, 2}) {
		t.Errorf("Selected after repeat = %v, want [1 2]", got)
	}

	tbl.ToggleAllCheckboxes(false, checkboxID)
	tbl.ToggleCheckbox(true, rows[0], checkboxID)
	if got := tbl.Selected(checkboxID); !reflect.DeepEqual(got, []any{1}) {
		t.Errorf("Selected = %v, want [1]", got)
	}
	if tbl.IsSelectedRow(rows[1], checkboxID) {
		t.Error("row 1 should not be selected")
	}

	tbl.ToggleCheckbox(false, rows[0], checkboxID)
	if got := tbl.Selected(checkboxID); len(got) != 0 {
		t.Errorf("Selected = %v, want empty", got)
	}
}

func TestTable_ToggleWithoutIDColumnWarns(t *testing.T) {
	var buf bytes.Buffer
	tbl := New(Config{
		Fields: FieldNames("__checkbox", "code"),
		Rows:   sampleRows(),
		Logger: slog.New(slog.NewTextHandler(&buf, nil)),
	})

	err := tbl.ToggleCheckbox(true, sampleRows()[0], "__checkbox")
	if !errors.Is(err, ErrMissingIDColumn) {
		t.Fatalf("error = %v, want ErrMissingIDColumn", err)
	}
	if !strings.Contains(buf.String(), `You did not provide reference id column with`) {
		t.Errorf("warning not logged: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "level=WARN") {
		t.Errorf("diagnostic not logged at warn level: %q", buf.String())
	}
}

func TestTable_SelectionSurvivesRowChange(t *testing.T) {
	tbl := newTestTable(&recorder{}, sampleRows())
	tbl.ToggleCheckbox(true, sampleRows()[2], checkboxID)

	tbl.SetRows(sampleRows()[:1])
	if got := tbl.Selected(checkboxID); !reflect.DeepEqual(got, []any{3}) {
		t.Errorf("Selected = %v, want [3] (stale ids are kept)", got)
	}
}

func TestTable_CallCallback(t *testing.T) {
	tbl := New(Config{
		Fields:    []FieldInput{{Name: "code"}},
		Callbacks: testCallbacks(),
	})
	row := Row{"code": "aaa"}

	if got := tbl.CallCallback(Field{Name: "code"}, row); got != nil {
		t.Errorf("CallCallback without callback = %v, want nil", got)
	}
	if got := tbl.CallCallback(Field{Name: "code", Callback: strPtr("myCallback")}, row); got != "AAA" {
		t.Errorf("CallCallback = %v, want AAA", got)
	}
	if got := tbl.CallCallback(Field{Name: "code", Callback: strPtr("missing")}, row); got != "" {
		t.Errorf("CallCallback missing = %v, want empty string", got)
	}
	if !tbl.HasCallback(Field{Name: "code", Callback: strPtr("myCallback")}) {
		t.Error("HasCallback = false, want true")
	}
}

func TestTable_SetOptions(t *testing.T) {
	tbl := New(Config{Fields: FieldNames("code"), Rows: []Row{{"code": 1}}})
	tbl.SetOptions(map[string]any{"tableClass": "my-table-class", "minRows": 10})

	o := tbl.Options()
	if o.TableClass != "my-table-class" || o.MinRows != 10 {
		t.Errorf("Options = %+v", o)
	}
	if got := tbl.BlankRows(); got != 9 {
		t.Errorf("BlankRows = %d, want 9", got)
	}
	if got := len(tbl.Render().Rows); got != 10 {
		t.Errorf("rendered rows = %d, want 10", got)
	}
}

func TestTable_HandleSetOptionsEvent(t *testing.T) {
	tbl := New(Config{Fields: FieldNames("code")})

	if !tbl.HandleEvent("vueitems:set-options", map[string]any{"tableClass": "my-table-class"}) {
		t.Fatal("set-options not handled")
	}
	if got := tbl.Options().TableClass; got != "my-table-class" {
		t.Errorf("TableClass = %q, want my-table-class", got)
	}
	if tbl.HandleEvent("vueitems:other", map[string]any{}) {
		t.Error("unknown event reported as handled")
	}
	if tbl.HandleEvent("vueitems:set-options", "nope") {
		t.Error("non-map payload reported as handled")
	}
}

func TestTable_Events(t *testing.T) {
	rec := &recorder{}
	rows := []Row{{"code": "aaa"}, {"code": "bbb"}}
	tbl := New(Config{Name: "items", Fields: FieldNames("code"), Rows: rows, Notifier: rec})

	tbl.DispatchEvent(EventLoading)
	tbl.DispatchEvent(EventLoaded)
	tbl.OnRowChanged(rows[0])
	tbl.OnRowClicked(rows[0])
	tbl.OnCellDoubleClicked(rows[0])
	tbl.CallAction("delete-item", rows[1])

	want := []string{
		"vueitems:loading",
		"vueitems:loaded",
		"vueitems:row-changed",
		"vueitems:row-clicked",
		"vueitems:cell-dblclicked",
		"vueitems:action",
	}
	if got := rec.names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("events = %v, want %v", got, want)
	}

	action := rec.events[5]
	if action.Kind() != EventAction || action.Table != "items" {
		t.Errorf("action event = %+v", action)
	}
	if len(action.Payload) != 2 || action.Payload[0] != "delete-item" {
		t.Fatalf("action payload = %v", action.Payload)
	}
	if !reflect.DeepEqual(action.Payload[1], rows[1]) {
		t.Errorf("action row = %v, want %v", action.Payload[1], rows[1])
	}
	if !reflect.DeepEqual(rec.events[3].Payload, []any{rows[0]}) {
		t.Errorf("row-clicked payload = %v", rec.events[3].Payload)
	}
}

func TestTable_NilNotifier(t *testing.T) {
	tbl := New(Config{Fields: FieldNames("code")})
	tbl.DispatchEvent(EventLoading)
	tbl.ShowLoadingAnimation(nil)
}

func TestTable_NotifierMayCallBack(t *testing.T) {
	var tbl *Table
	var seen []any
	tbl = New(Config{
		Fields: FieldNames(checkboxID),
		Rows:   sampleRows(),
		Notifier: NotifierFunc(func(e Event) {
			row := e.Payload[0].(Row)
			tbl.ToggleCheckbox(true, row, checkboxID)
			seen = tbl.Selected(checkboxID)
		}),
	})

	tbl.OnRowClicked(sampleRows()[1])
	if !reflect.DeepEqual(seen, []any{2}) {
		t.Errorf("Selected inside notifier = %v, want [2]", seen)
	}
}

func TestTable_LoadingAnimation(t *testing.T) {
	rec := &recorder{}
	tbl := New(Config{Fields: FieldNames("code"), Notifier: rec})

	tbl.ShowLoadingAnimation(nil)
	tbl.HideLoadingAnimation(nil)
	if got := rec.names(); !reflect.DeepEqual(got, []string{"vueitems:loading", "vueitems:loaded"}) {
		t.Fatalf("events = %v", got)
	}

	wrapper := NewClassList("ui segment")
	tbl.ShowLoadingAnimation(wrapper)
	if !wrapper.HasClass("loading") {
		t.Errorf("wrapper class = %q, want loading added", wrapper)
	}
	tbl.HideLoadingAnimation(wrapper)
	if wrapper.HasClass("loading") {
		t.Errorf("wrapper class = %q, want loading removed", wrapper)
	}
	if wrapper.String() != "ui segment" {
		t.Errorf("wrapper class = %q, want %q", wrapper, "ui segment")
	}
	if len(rec.events) != 4 {
		t.Errorf("dispatched %d events, want 4", len(rec.events))
	}
}

func TestTable_LoadingAnimation_NilClassList(t *testing.T) {
	rec := &recorder{}
	tbl := New(Config{Fields: FieldNames("code"), Notifier: rec})

	var wrapper *ClassList
	tbl.ShowLoadingAnimation(wrapper)
	tbl.HideLoadingAnimation(wrapper)

	if got := rec.names(); !reflect.DeepEqual(got, []string{"vueitems:loading", "vueitems:loaded"}) {
		t.Errorf("events = %v", got)
	}
	if wrapper.String() != "" || wrapper.HasClass("loading") {
		t.Error("nil ClassList should read as empty")
	}
}

func TestTable_LoadingClassChangedMidLoad(t *testing.T) {
	tbl := New(Config{Fields: FieldNames("code")})
	wrapper := NewClassList("")

	tbl.ShowLoadingAnimation(wrapper)
	tbl.SetOptions(map[string]any{"loadingClass": "busy"})
	tbl.HideLoadingAnimation(wrapper)

	if wrapper.String() != "" {
		t.Errorf("wrapper class = %q, want empty after hide", wrapper)
	}
}

func TestTable_WrapperClass(t *testing.T) {
	tbl := New(Config{Fields: FieldNames("code")})

	if got := tbl.Render().WrapperClass; got != DefaultWrapperClass {
		t.Errorf("WrapperClass = %q, want %q", got, DefaultWrapperClass)
	}

	tbl.SetOptions(map[string]any{"wrapperClass": "my-wrapper", "loadingClass": "busy"})
	if got := tbl.Render().WrapperClass; got != "my-wrapper" {
		t.Errorf("WrapperClass after patch = %q, want my-wrapper", got)
	}

	tbl.ShowLoadingAnimation(nil)
	if got := tbl.WrapperClass(); got != "my-wrapper busy" {
		t.Errorf("WrapperClass while loading = %q, want %q", got, "my-wrapper busy")
	}
	if !tbl.Loading() {
		t.Error("Loading() = false between show and hide")
	}
	tbl.HideLoadingAnimation(nil)
	if got := tbl.Render().WrapperClass; got != "my-wrapper" {
		t.Errorf("WrapperClass after load = %q, want my-wrapper", got)
	}
}

func TestClassList(t *testing.T) {
	c := NewClassList("")
	c.AddClass("foo-class")
	if c.String() != "foo-class" {
		t.Errorf("class = %q, want foo-class", c)
	}

	c.AddClass("bar-class")
	c.AddClass("foo-class")
	if c.String() != "foo-class bar-class" {
		t.Errorf("class = %q, want %q", c, "foo-class bar-class")
	}

	c.RemoveClass("foo-class")
	if c.HasClass("foo-class") || !c.HasClass("bar-class") {
		t.Errorf("class = %q after remove", c)
	}

	c.AddClass("a b")
	c.RemoveClass("a bar-class")
	if c.String() != "b" {
		t.Errorf("class = %q, want b", c)
	}
}

func TestMultiNotifier(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	m := MultiNotifier{a, nil, b}
	m.Notify(Event{Name: EventName(EventLoaded)})

	if len(a.events) != 1 || len(b.events) != 1 {
		t.Errorf("fan-out = %d, %d, want 1, 1", len(a.events), len(b.events))
	}
}
