package table

import (
	"fmt"
	"strconv"
	"strings"
)

// Row is a host-supplied record. The engine only reads the keys that
// field names refer to.
type Row = map[string]any

// GetObjectValue resolves a dotted path inside obj.
//
// An empty path returns obj itself, ignoring def. A path that cannot be
// resolved returns def[0] when given, nil otherwise.
func GetObjectValue(obj any, path string, def ...any) any {
	if path == "" {
		return obj
	}

	cur := obj
	for _, key := range strings.Split(path, ".") {
		next, ok := lookup(cur, key)
		if !ok {
			if len(def) > 0 {
				return def[0]
			}
			return nil
		}
		cur = next
	}
	return cur
}

func lookup(obj any, key string) (any, bool) {
	switch m := obj.(type) {
	case map[string]any:
		v, ok := m[key]
		return v, ok
	case map[string]string:
		v, ok := m[key]
		return v, ok
	default:
		return nil, false
	}
}

// DisplayText converts a cell value to the text a view shows.
func DisplayText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}
