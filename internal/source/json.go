package source

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/JonMunkholm/itemtable/internal/table"
	"github.com/tidwall/gjson"
)

// DefaultMaxFileSize bounds JSONFile reads when MaxSize is unset.
const DefaultMaxFileSize int64 = 10 << 20

// JSONBytes reads rows from an in-memory JSON document.
type JSONBytes struct {
	Data []byte

	// Path is a gjson path to the row array; empty selects the root.
	Path string
}

// Rows parses the document.
func (s JSONBytes) Rows(ctx context.Context) ([]table.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ParseRows(s.Data, s.Path)
}

// JSONFile reads rows from a JSON file on disk.
type JSONFile struct {
	File    string
	Path    string
	MaxSize int64
}

// Rows reads and parses the file.
func (s JSONFile) Rows(ctx context.Context) ([]table.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	limit := s.MaxSize
	if limit <= 0 {
		limit = DefaultMaxFileSize
	}

	info, err := os.Stat(s.File)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", s.File, err)
	}
	if info.Size() > limit {
		return nil, fmt.Errorf("%s is %d bytes (limit %d): %w", s.File, info.Size(), limit, ErrTooLarge)
	}

	data, err := os.ReadFile(s.File)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.File, err)
	}

	rows, err := ParseRows(data, s.Path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.File, err)
	}
	return rows, nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// cleanText drops a leading UTF-8 BOM, as written by Windows tools, and
// replaces invalid UTF-8 so a stray byte does not reject the document.
func cleanText(data []byte) []byte {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		data = bytes.ToValidUTF8(data, []byte("?"))
	}
	return data
}

// ParseRows extracts the array at path from data. Every element must be
// a JSON object. Numbers decode as float64.
func ParseRows(data []byte, path string) ([]table.Row, error) {
	data = cleanText(data)
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("source: invalid JSON")
	}
	if path == "" {
		path = "@this"
	}

	result := gjson.GetBytes(data, path)
	if !result.IsArray() {
		return nil, fmt.Errorf("path %q is %s: %w", path, result.Type, ErrNotArray)
	}

	items := result.Array()
	rows := make([]table.Row, 0, len(items))
	for i, item := range items {
		if !item.IsObject() {
			return nil, fmt.Errorf("source: element %d at path %q is not an object", i, path)
		}
		obj, _ := item.Value().(map[string]any)
		rows = append(rows, obj)
	}
	return rows, nil
}
