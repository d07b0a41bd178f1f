package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const itemsDoc = `{
  "meta": {"count": 2},
  "data": {
    "items": [
      {"id": 1, "code": "aaa", "price": {"amount": 12.5}},
      {"id": 2, "code": "bbb", "active": true}
    ]
  }
}`

func TestParseRows_Path(t *testing.T) {
	rows, err := ParseRows([]byte(itemsDoc), "data.items")
	if err != nil {
		t.Fatalf("ParseRows() error = %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if rows[0]["code"] != "aaa" {
		t.Errorf("rows[0][code] = %v, want aaa", rows[0]["code"])
	}
	if rows[0]["id"] != float64(1) {
		t.Errorf("rows[0][id] = %#v, want float64(1)", rows[0]["id"])
	}
	price, ok := rows[0]["price"].(map[string]any)
	if !ok || price["amount"] != 12.5 {
		t.Errorf("rows[0][price] = %#v, want nested object", rows[0]["price"])
	}
	if rows[1]["active"] != true {
		t.Errorf("rows[1][active] = %v, want true", rows[1]["active"])
	}
}

func TestParseRows_Root(t *testing.T) {
	rows, err := ParseRows([]byte(`[{"a":1},{"a":2},{"a":3}]`), "")
	if err != nil {
		t.Fatalf("ParseRows() error = %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("len(rows) = %d, want 3", len(rows))
	}
}

func TestParseRows_EmptyArray(t *testing.T) {
	rows, err := ParseRows([]byte(`{"items": []}`), "items")
	if err != nil {
		t.Fatalf("ParseRows() error = %v", err)
	}
	if rows == nil || len(rows) != 0 {
		t.Errorf("rows = %#v, want empty non-nil slice", rows)
	}
}

func TestParseRows_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		path    string
		wantErr error
		msg     string
	}{
		{"invalid json", `{"items": [`, "items", nil, "invalid JSON"},
		{"not an array", itemsDoc, "meta", ErrNotArray, ""},
		{"missing path", itemsDoc, "nope", ErrNotArray, ""},
		{"scalar element", `[{"a":1}, 2]`, "", nil, "element 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRows([]byte(tt.data), tt.path)
			if err == nil {
				t.Fatal("ParseRows() expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.msg != "" && !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("error = %v, want mention of %q", err, tt.msg)
			}
		})
	}
}

func TestJSONFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "items.json")
	if err := os.WriteFile(file, []byte(itemsDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	rows, err := JSONFile{File: file, Path: "data.items"}.Rows(context.Background())
	if err != nil {
		t.Fatalf("Rows() error = %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("len(rows) = %d, want 2", len(rows))
	}

	_, err = JSONFile{File: file, Path: "data.items", MaxSize: 10}.Rows(context.Background())
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("error = %v, want ErrTooLarge", err)
	}

	_, err = JSONFile{File: filepath.Join(dir, "missing.json")}.Rows(context.Background())
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want os.ErrNotExist", err)
	}
}

func TestJSONBytes_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := JSONBytes{Data: []byte(`[]`)}.Rows(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestParseRows_BOMAndInvalidUTF8(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("[{\"code\":\"a\xffb\"}]")...)

	rows, err := ParseRows(data, "")
	if err != nil {
		t.Fatalf("ParseRows() error = %v", err)
	}
	if len(rows) != 1 || rows[0]["code"] != "a?b" {
		t.Errorf("rows = %v, want code a?b", rows)
	}
}
