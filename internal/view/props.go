// Package view renders table views as HTML components.
package view

//go:generate templ generate

import (
	"strconv"
	"strings"

	"github.com/JonMunkholm/itemtable/internal/table"
	"github.com/a-h/templ"
)

// TableProps is what the table component needs besides the view itself.
type TableProps struct {
	// Key identifies the table to the page script; it is emitted as
	// data-table on the wrapper.
	Key string

	View table.View
}

// TableCard is one entry on the dashboard.
type TableCard struct {
	Key         string
	Label       string
	Description string
}

// TableGroup is a dashboard section.
type TableGroup struct {
	Name   string
	Tables []TableCard
}

func wrapperAttrs(p TableProps) templ.OrderedAttributes {
	var attrs templ.OrderedAttributes
	if p.Key != "" {
		attrs = append(attrs, templ.KV[string, any]("data-table", p.Key))
	}
	if p.View.Options.LoaderWrapper != "" {
		attrs = append(attrs, templ.KV[string, any]("data-loader", p.View.Options.LoaderWrapper))
	}
	return attrs
}

// optional emits name only when value is set.
func optional(name, value string) templ.Attributes {
	if value == "" {
		return templ.Attributes{}
	}
	return templ.Attributes{name: value}
}

func rowAttrs(r table.RowView) templ.OrderedAttributes {
	if r.Blank {
		return templ.OrderedAttributes{templ.KV[string, any]("class", "vueitems-blank")}
	}
	var attrs templ.OrderedAttributes
	if r.Selected {
		attrs = append(attrs, templ.KV[string, any]("class", "active"))
	}
	return append(attrs, templ.KV[string, any]("data-row", strconv.Itoa(r.Index)))
}

// buttonAttrs are the action's extra attributes, minus any that could
// break out of the tag or add event handlers.
func buttonAttrs(btn table.ActionButton) templ.OrderedAttributes {
	var attrs templ.OrderedAttributes
	for _, a := range btn.Attrs {
		if validAttrName(a.Name) {
			attrs = append(attrs, templ.KV[string, any](a.Name, a.Value))
		}
	}
	return attrs
}

func validAttrName(name string) bool {
	if name == "" || strings.HasPrefix(strings.ToLower(name), "on") {
		return false
	}
	switch name {
	case "class", "type", "data-action", "data-row":
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == ':':
		default:
			return false
		}
	}
	return true
}
