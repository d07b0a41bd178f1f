package table

import (
	"reflect"
	"testing"
	"time"
)

func TestGetObjectValue(t *testing.T) {
	obj := Row{"code": "aaa"}

	if got := GetObjectValue(obj, "code"); got != "aaa" {
		t.Errorf("GetObjectValue(code) = %v, want aaa", got)
	}
	if got := GetObjectValue(obj, "foo"); got != nil {
		t.Errorf("GetObjectValue(foo) = %v, want nil", got)
	}
	if got := GetObjectValue(obj, "foo", "bar"); got != "bar" {
		t.Errorf("GetObjectValue(foo, bar) = %v, want bar", got)
	}
	if got := GetObjectValue(obj, ""); !reflect.DeepEqual(got, obj) {
		t.Errorf("GetObjectValue(\"\") = %v, want the object", got)
	}
	if got := GetObjectValue(obj, "", "foo"); !reflect.DeepEqual(got, obj) {
		t.Errorf("GetObjectValue(\"\", foo) = %v, want the object", got)
	}
}

func TestGetObjectValue_Nested(t *testing.T) {
	obj := Row{
		"a": map[string]any{
			"b": map[string]any{"c": 42},
		},
		"tags": map[string]string{"env": "prod"},
		"leaf": "x",
	}

	tests := []struct {
		path string
		want any
	}{
		{"a.b.c", 42},
		{"tags.env", "prod"},
		{"a.b.missing", nil},
		{"leaf.deeper", nil},
		{"a.x.c", nil},
	}
	for _, tt := range tests {
		if got := GetObjectValue(obj, tt.path); got != tt.want {
			t.Errorf("GetObjectValue(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}

	if got := GetObjectValue(obj, "a.b.missing", "dflt"); got != "dflt" {
		t.Errorf("nested default = %v, want dflt", got)
	}
}

func TestDisplayText(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"abc", "abc"},
		{42, "42"},
		{float64(1000000), "1000000"},
		{1.5, "1.5"},
		{true, "true"},
		{time.Second, "1s"},
	}
	for _, tt := range tests {
		if got := DisplayText(tt.in); got != tt.want {
			t.Errorf("DisplayText(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBlankRows(t *testing.T) {
	tests := []struct {
		rows, min, want int
	}{
		{0, 2, 2},
		{2, 2, 0},
		{3, 2, 0},
		{2, 5, 3},
		{0, 0, 0},
	}
	for _, tt := range tests {
		if got := BlankRows(tt.rows, tt.min); got != tt.want {
			t.Errorf("BlankRows(%d, %d) = %d, want %d", tt.rows, tt.min, got, tt.want)
		}
	}
}

func TestLessThanMinRows(t *testing.T) {
	tests := []struct {
		rows, min int
		want      bool
	}{
		{0, 5, true},
		{2, 5, true},
		{2, 2, false},
		{3, 2, false},
		{0, 0, false},
	}
	for _, tt := range tests {
		if got := LessThanMinRows(tt.rows, tt.min); got != tt.want {
			t.Errorf("LessThanMinRows(%d, %d) = %v, want %v", tt.rows, tt.min, got, tt.want)
		}
	}
}
