package table

import (
	"errors"
	"fmt"
)

// ErrMissingIDColumn is returned when a selection operation targets a
// "__checkbox" field without a "<id>" suffix.
var ErrMissingIDColumn = errors.New(`You did not provide reference id column with "__checkbox:<column_name>" field!`)

// Selection tracks selected row ids per checkbox id column.
// Each set keeps insertion order. The zero value is ready to use.
type Selection struct {
	sets map[string]*idSet
}

// idSet is an insertion-ordered set of row ids.
type idSet struct {
	ids   []any
	index map[string]int
}

func newIDSet() *idSet {
	return &idSet{index: make(map[string]int)}
}

// idKey folds numeric types together so an id decoded from JSON as
// float64 matches the same id given as an int.
func idKey(id any) string {
	switch id.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return "n:" + DisplayText(id)
	default:
		return fmt.Sprintf("%T:%s", id, DisplayText(id))
	}
}

func (s *idSet) add(id any) {
	k := idKey(id)
	if _, ok := s.index[k]; ok {
		return
	}
	s.index[k] = len(s.ids)
	s.ids = append(s.ids, id)
}

func (s *idSet) remove(id any) {
	k := idKey(id)
	i, ok := s.index[k]
	if !ok {
		return
	}
	s.ids = append(s.ids[:i], s.ids[i+1:]...)
	delete(s.index, k)
	for j := i; j < len(s.ids); j++ {
		s.index[idKey(s.ids[j])] = j
	}
}

func (s *idSet) has(id any) bool {
	_, ok := s.index[idKey(id)]
	return ok
}

func (s *idSet) clear() {
	s.ids = nil
	s.index = make(map[string]int)
}

// noID marks a row without a value in the id column.
type noID struct{}

// rowID returns row's id in column. Rows without one, or with a nil
// id, cannot be selected.
func rowID(row Row, column string) (any, bool) {
	id := GetObjectValue(row, column, noID{})
	if _, missing := id.(noID); missing || id == nil {
		return nil, false
	}
	return id, true
}

func (s *Selection) set(column string) *idSet {
	if s.sets == nil {
		s.sets = make(map[string]*idSet)
	}
	set, ok := s.sets[column]
	if !ok {
		set = newIDSet()
		s.sets[column] = set
	}
	return set
}

// Toggle selects (checked) or deselects the row for checkbox field name.
// A row without an id is ignored.
func (s *Selection) Toggle(checked bool, row Row, name string) error {
	column, ok := CheckboxIDColumn(name)
	if !ok {
		return ErrMissingIDColumn
	}
	id, ok := rowID(row, column)
	if !ok {
		return nil
	}
	if checked {
		s.set(column).add(id)
	} else {
		s.set(column).remove(id)
	}
	return nil
}

// ToggleAll selects every row in rows, or clears the set when unchecked.
// After selecting, the set holds exactly the ids of rows: ids that were
// already selected keep their position, the rest follow in row order.
// Rows without an id are skipped.
// Repeating the call does not change the set or its order.
func (s *Selection) ToggleAll(checked bool, name string, rows []Row) error {
	column, ok := CheckboxIDColumn(name)
	if !ok {
		return ErrMissingIDColumn
	}
	set := s.set(column)
	if !checked {
		set.clear()
		return nil
	}

	ids := make([]any, 0, len(rows))
	wanted := make(map[string]bool, len(rows))
	for _, row := range rows {
		id, ok := rowID(row, column)
		if !ok {
			continue
		}
		ids = append(ids, id)
		wanted[idKey(id)] = true
	}

	kept := newIDSet()
	for _, id := range set.ids {
		if wanted[idKey(id)] {
			kept.add(id)
		}
	}
	for _, id := range ids {
		kept.add(id)
	}
	*set = *kept
	return nil
}

// IsSelected reports whether row's id is in the set of checkbox field name.
func (s *Selection) IsSelected(row Row, name string) bool {
	column, ok := CheckboxIDColumn(name)
	if !ok || s.sets == nil {
		return false
	}
	set, ok := s.sets[column]
	if !ok {
		return false
	}
	id, ok := rowID(row, column)
	return ok && set.has(id)
}

// Selected returns the selected ids of checkbox field name in the order
// they were selected.
func (s *Selection) Selected(name string) []any {
	column, ok := CheckboxIDColumn(name)
	if !ok || s.sets == nil {
		return []any{}
	}
	set, ok := s.sets[column]
	if !ok {
		return []any{}
	}
	out := make([]any, len(set.ids))
	copy(out, set.ids)
	return out
}

// AllSelected reports whether every row with an id is selected. It is
// false when no row has one.
func (s *Selection) AllSelected(name string, rows []Row) bool {
	column, ok := CheckboxIDColumn(name)
	if !ok {
		return false
	}
	selectable := 0
	for _, row := range rows {
		if _, ok := rowID(row, column); !ok {
			continue
		}
		selectable++
		if !s.IsSelected(row, name) {
			return false
		}
	}
	return selectable > 0
}
