package table

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
)

// Field is a normalized column definition.
// Every attribute is materialized; see Normalize.
type Field struct {
	Name       string  `json:"name"`
	Title      string  `json:"title"`
	TitleClass string  `json:"titleClass"`
	DataClass  string  `json:"dataClass"`
	Callback   *string `json:"callback"`
	Visible    bool    `json:"visible"`
}

// FieldInput is a raw column definition as supplied by the host.
// Nil pointers mean "not specified" and take defaults during Normalize.
type FieldInput struct {
	Name       string  `json:"name"`
	Title      *string `json:"title,omitempty"`
	TitleClass *string `json:"titleClass,omitempty"`
	DataClass  *string `json:"dataClass,omitempty"`
	Callback   *string `json:"callback,omitempty"`
	Visible    *bool   `json:"visible,omitempty"`
}

// FieldName is the bare-string form of a field input.
func FieldName(name string) FieldInput {
	return FieldInput{Name: name}
}

// FieldNames converts a list of bare names into field inputs.
func FieldNames(names ...string) []FieldInput {
	inputs := make([]FieldInput, len(names))
	for i, name := range names {
		inputs[i] = FieldName(name)
	}
	return inputs
}

// UnmarshalJSON accepts either a bare string or an object.
func (in *FieldInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return fmt.Errorf("field name: %w", err)
		}
		*in = FieldName(name)
		return nil
	}

	type plain FieldInput
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("field definition: %w", err)
	}
	*in = FieldInput(p)
	return nil
}

// Normalize materializes raw field inputs into complete Field records.
// Output order and length match the input.
func Normalize(inputs []FieldInput) []Field {
	fields := make([]Field, len(inputs))
	for i, in := range inputs {
		fields[i] = normalizeField(in)
	}
	return fields
}

func normalizeField(in FieldInput) Field {
	f := Field{
		Name:    in.Name,
		Title:   DefaultTitle(in.Name),
		Visible: true,
	}
	if in.Title != nil {
		f.Title = *in.Title
	}
	if in.TitleClass != nil {
		f.TitleClass = *in.TitleClass
	}
	if in.DataClass != nil {
		f.DataClass = *in.DataClass
	}
	if in.Callback != nil {
		cb := *in.Callback
		f.Callback = &cb
	}
	if in.Visible != nil {
		f.Visible = *in.Visible
	}
	return f
}

// DefaultTitle returns the title used when none is given:
// empty for special fields, the title-cased name otherwise.
func DefaultTitle(name string) string {
	if IsSpecialField(name) {
		return ""
	}
	return TitleCase(name)
}

// TitleCase splits s on non-alphanumeric boundaries and capitalizes
// the first letter of every word.
//
//	TitleCase("hello world") == "Hello World"
//	TitleCase("created_at")  == "Created At"
func TitleCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
