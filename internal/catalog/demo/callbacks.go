// Package demo registers sample tables with the catalog.
// Import it for side effects.
package demo

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/JonMunkholm/itemtable/internal/table"
)

// Callbacks are the named cell formatters the sample tables use.
var Callbacks = table.Callbacks{
	"upper":  upper,
	"lower":  lower,
	"prefix": prefix,
	"money":  money,
	"yesno":  yesno,
	"date":   date,
}

func upper(v any, _ ...string) any {
	return strings.ToUpper(table.DisplayText(v))
}

func lower(v any, _ ...string) any {
	return strings.ToLower(table.DisplayText(v))
}

func prefix(v any, args ...string) any {
	return strings.Join(args, "") + table.DisplayText(v)
}

// money formats a number with two decimals, prefixed by the first
// argument. Values that are not numbers pass through as text.
func money(v any, args ...string) any {
	symbol := ""
	if len(args) > 0 {
		symbol = args[0]
	}

	var f float64
	switch x := v.(type) {
	case nil:
		return ""
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return x
		}
		f = parsed
	default:
		return table.DisplayText(v)
	}
	return symbol + strconv.FormatFloat(f, 'f', 2, 64)
}

func yesno(v any, _ ...string) any {
	switch x := v.(type) {
	case bool:
		if x {
			return "Yes"
		}
		return "No"
	case nil:
		return ""
	}
	b, err := strconv.ParseBool(table.DisplayText(v))
	if err != nil {
		return table.DisplayText(v)
	}
	return yesno(b)
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// date reformats a timestamp with the layout given as argument
// (default 2006-01-02).
func date(v any, args ...string) any {
	layout := "2006-01-02"
	if len(args) > 0 && args[0] != "" {
		layout = args[0]
	}

	switch x := v.(type) {
	case nil:
		return ""
	case time.Time:
		return x.Format(layout)
	case string:
		for _, l := range dateLayouts {
			if t, err := time.Parse(l, x); err == nil {
				return t.Format(layout)
			}
		}
		return x
	}
	return fmt.Sprint(v)
}
