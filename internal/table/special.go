package table

import "strings"

// Reserved field names and the classes the view layers key on.
const (
	SpecialPrefix = "__"

	HandleField   = "__handle"
	SequenceField = "__sequence"
	CheckboxField = "__checkbox"
	ActionsField  = "__actions"

	HandleClass   = "vueitems-handle"
	SequenceClass = "vueitems-sequence"
	CheckboxClass = "vueitems-checkbox"
	ActionsClass  = "vueitems-actions"

	ActionButtonClass = "action-button"
)

// FieldKind classifies a field by the way it renders.
type FieldKind int

const (
	KindData FieldKind = iota
	KindHandle
	KindSequence
	KindCheckbox
	KindActions
	// KindUnknownSpecial is any other "__" name. It renders empty and
	// never reads row data.
	KindUnknownSpecial
)

func (k FieldKind) String() string {
	switch k {
	case KindData:
		return "data"
	case KindHandle:
		return "handle"
	case KindSequence:
		return "sequence"
	case KindCheckbox:
		return "checkbox"
	case KindActions:
		return "actions"
	default:
		return "special"
	}
}

// IsSpecialField reports whether name is reserved (starts with "__").
func IsSpecialField(name string) bool {
	return strings.HasPrefix(name, SpecialPrefix)
}

// KindOf resolves the rendering kind of a field name.
func KindOf(name string) FieldKind {
	if !IsSpecialField(name) {
		return KindData
	}
	switch {
	case name == HandleField:
		return KindHandle
	case name == SequenceField:
		return KindSequence
	case name == ActionsField:
		return KindActions
	case name == CheckboxField || strings.HasPrefix(name, CheckboxField+":"):
		return KindCheckbox
	default:
		return KindUnknownSpecial
	}
}

// CheckboxIDColumn returns the id column of a "__checkbox:<id>" field.
// ok is false for a bare "__checkbox", an empty suffix, or a non-checkbox name.
func CheckboxIDColumn(name string) (column string, ok bool) {
	rest, found := strings.CutPrefix(name, CheckboxField+":")
	if !found || rest == "" {
		return "", false
	}
	return rest, true
}

// ClassFor returns the cell class a special kind carries. Data fields use
// their DataClass instead.
func ClassFor(kind FieldKind) string {
	switch kind {
	case KindHandle:
		return HandleClass
	case KindSequence:
		return SequenceClass
	case KindCheckbox:
		return CheckboxClass
	case KindActions:
		return ActionsClass
	default:
		return ""
	}
}
