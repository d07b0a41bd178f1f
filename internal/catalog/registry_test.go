package catalog

import (
	"slices"
	"strings"
	"testing"

	"github.com/JonMunkholm/itemtable/internal/table"
)

func withRegistry(t *testing.T, defs ...Definition) {
	t.Helper()
	saved := registry
	registry = newRegistry()
	t.Cleanup(func() { registry = saved })

	for _, def := range defs {
		Register(def)
	}
}

func def(group, key string) Definition {
	return Definition{Info: Info{Key: key, Group: group}}
}

func TestRegistry_Ordering(t *testing.T) {
	withRegistry(t,
		def("Sales", "orders"),
		def("Inventory", "tags"),
		def("Inventory", "products"),
		def("Sales", "invoices"),
	)

	all := All()
	want := []string{"products", "tags", "invoices", "orders"}
	if len(all) != len(want) {
		t.Fatalf("len(All()) = %d, want %d", len(all), len(want))
	}
	for i, key := range want {
		if all[i].Info.Key != key {
			t.Errorf("All()[%d] = %s, want %s", i, all[i].Info.Key, key)
		}
	}

	groups := Groups()
	if len(groups) != 2 || groups[0] != "Inventory" || groups[1] != "Sales" {
		t.Errorf("Groups() = %v, want [Inventory Sales]", groups)
	}

	inv := ByGroup("Inventory")
	if len(inv) != 2 || inv[0].Info.Key != "products" || inv[1].Info.Key != "tags" {
		t.Errorf("ByGroup(Inventory) = %v", inv)
	}
	if Count() != 4 {
		t.Errorf("Count() = %d, want 4", Count())
	}
}

func TestRegister_DefaultLabel(t *testing.T) {
	withRegistry(t, def("G", "plain"))

	got, ok := Get("plain")
	if !ok {
		t.Fatal("Get(plain) not found")
	}
	if got.Info.Label != "plain" {
		t.Errorf("Label = %q, want plain", got.Info.Label)
	}
	if _, ok := Get("missing"); ok {
		t.Error("Get(missing) found a definition")
	}
}

func TestRegister_DuplicatePanics(t *testing.T) {
	withRegistry(t, def("G", "dup"))

	defer func() {
		if recover() == nil {
			t.Error("Register of a duplicate key did not panic")
		}
	}()
	Register(def("G", "dup"))
}

func TestClear(t *testing.T) {
	withRegistry(t, def("G", "a"), def("G", "b"))
	Clear()
	if Count() != 0 {
		t.Errorf("Count() after Clear = %d, want 0", Count())
	}
}

func TestDefinition_HasAction(t *testing.T) {
	d := Definition{}
	d.Actions = append(d.Actions, actionNamed("edit-item"))
	if !d.HasAction("edit-item") {
		t.Error("HasAction(edit-item) = false")
	}
	if d.HasAction("delete-item") {
		t.Error("HasAction(delete-item) = true")
	}
}

func TestRegister_Rejects(t *testing.T) {
	tests := []struct {
		name string
		def  Definition
		want string
	}{
		{"no key", Definition{}, "without key"},
		{
			"duplicate field",
			Definition{Info: Info{Key: "t"}, Fields: table.FieldNames("code", "__sequence", "code")},
			"duplicate field code",
		},
		{
			"empty field name",
			Definition{Info: Info{Key: "t"}, Fields: table.FieldNames("code", "")},
			"field 1 has no name",
		},
		{
			"unnamed action",
			Definition{Info: Info{Key: "t"}, Actions: []table.Action{{Label: "Edit"}}},
			"action 0 has no name",
		},
		{
			"duplicate action",
			Definition{Info: Info{Key: "t"}, Actions: []table.Action{{Name: "edit"}, {Name: "edit"}}},
			"duplicate action edit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withRegistry(t)
			defer func() {
				r := recover()
				msg, _ := r.(string)
				if !strings.Contains(msg, tt.want) {
					t.Errorf("panic = %v, want it to mention %q", r, tt.want)
				}
				if Count() != 0 {
					t.Errorf("Count() = %d after a rejected definition", Count())
				}
			}()
			Register(tt.def)
		})
	}
}

func TestRegister_NormalizesFields(t *testing.T) {
	title := "Item code"
	withRegistry(t, Definition{
		Info: Info{Key: "items", Group: "G"},
		Fields: []table.FieldInput{
			{Name: "__checkbox:id"},
			{Name: "code", Title: &title},
			{Name: "unit_price"},
			{Name: "__checkbox"},
		},
	})

	got, _ := Get("items")
	cols := got.Columns()
	if len(cols) != 4 {
		t.Fatalf("len(Columns()) = %d, want 4", len(cols))
	}
	if cols[1].Title != "Item code" || cols[2].Title != "Unit Price" || !cols[2].Visible {
		t.Errorf("Columns() = %+v", cols)
	}
	if want := []string{"__checkbox:id", "__checkbox"}; !slices.Equal(got.CheckboxFields(), want) {
		t.Errorf("CheckboxFields() = %v, want %v", got.CheckboxFields(), want)
	}
}

func TestDefinition_CheckboxFieldsNone(t *testing.T) {
	d := Definition{Fields: table.FieldNames("code")}
	if got := d.CheckboxFields(); got == nil || len(got) != 0 {
		t.Errorf("CheckboxFields() = %#v, want empty non-nil", got)
	}
}

func TestRegistry_GroupIndex(t *testing.T) {
	withRegistry(t, def("B", "z"), def("A", "m"), def("B", "c"), def("B", "k"))

	var keys []string
	for _, d := range ByGroup("B") {
		keys = append(keys, d.Info.Key)
	}
	if want := []string{"c", "k", "z"}; !slices.Equal(keys, want) {
		t.Errorf("ByGroup(B) = %v, want %v", keys, want)
	}
	if got := ByGroup("missing"); len(got) != 0 {
		t.Errorf("ByGroup(missing) = %v", got)
	}

	Clear()
	if len(Groups()) != 0 || len(All()) != 0 {
		t.Errorf("after Clear: Groups() = %v, All() = %v", Groups(), All())
	}
}
