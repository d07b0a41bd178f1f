package catalog

import (
	"fmt"
	"slices"
	"sync"

	"github.com/JonMunkholm/itemtable/internal/table"
)

// tableRegistry indexes definitions by key and keeps each group's keys
// sorted, so listing never has to sort.
type tableRegistry struct {
	mu     sync.RWMutex
	byKey  map[string]Definition
	groups map[string][]string
}

func newRegistry() *tableRegistry {
	return &tableRegistry{
		byKey:  make(map[string]Definition),
		groups: make(map[string][]string),
	}
}

var registry = newRegistry()

// Register adds a table definition to the registry. Fields are
// normalized once here so handlers can read titles and checkbox columns
// without re-deriving them.
//
// Panics on a missing or duplicate key, a duplicate or empty field name,
// or an action without a unique name. Definitions register from init
// functions, so these are programming errors.
func Register(def Definition) {
	if err := def.prepare(); err != nil {
		panic(err.Error())
	}
	registry.add(def)
}

func (r *tableRegistry) add(def Definition) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := def.Info.Key
	if _, exists := r.byKey[key]; exists {
		panic(fmt.Sprintf("table already registered: %s", key))
	}
	r.byKey[key] = def

	keys := r.groups[def.Info.Group]
	i, _ := slices.BinarySearch(keys, key)
	r.groups[def.Info.Group] = slices.Insert(keys, i, key)
}

// prepare validates def and fills in the derived parts.
func (d *Definition) prepare() error {
	if d.Info.Key == "" {
		return fmt.Errorf("table definition without key")
	}
	if d.Info.Label == "" {
		d.Info.Label = d.Info.Key
	}

	seen := make(map[string]bool, len(d.Fields))
	for i, f := range d.Fields {
		switch {
		case f.Name == "":
			return fmt.Errorf("table %s: field %d has no name", d.Info.Key, i)
		case seen[f.Name]:
			return fmt.Errorf("table %s: duplicate field %s", d.Info.Key, f.Name)
		}
		seen[f.Name] = true
	}
	d.columns = table.Normalize(d.Fields)

	names := make(map[string]bool, len(d.Actions))
	for i, a := range d.Actions {
		switch {
		case a.Name == "":
			return fmt.Errorf("table %s: action %d has no name", d.Info.Key, i)
		case names[a.Name]:
			return fmt.Errorf("table %s: duplicate action %s", d.Info.Key, a.Name)
		}
		names[a.Name] = true
	}
	return nil
}

// Get returns a table definition by key.
func Get(key string) (Definition, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	def, ok := registry.byKey[key]
	return def, ok
}

// All returns every definition, by group then key.
func All() []Definition {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	out := make([]Definition, 0, len(registry.byKey))
	for _, group := range registry.sortedGroups() {
		for _, key := range registry.groups[group] {
			out = append(out, registry.byKey[key])
		}
	}
	return out
}

// ByGroup returns the definitions of one group, by key.
func ByGroup(group string) []Definition {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	keys := registry.groups[group]
	out := make([]Definition, len(keys))
	for i, key := range keys {
		out[i] = registry.byKey[key]
	}
	return out
}

// Groups returns the group names in alphabetical order.
func Groups() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return registry.sortedGroups()
}

func (r *tableRegistry) sortedGroups() []string {
	groups := make([]string, 0, len(r.groups))
	for g := range r.groups {
		groups = append(groups, g)
	}
	slices.Sort(groups)
	return groups
}

// Count returns the number of registered tables.
func Count() int {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return len(registry.byKey)
}

// Clear removes all registered tables.
func Clear() {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.byKey = make(map[string]Definition)
	registry.groups = make(map[string][]string)
}
