package table

import (
	"slices"
	"strings"
	"sync"
)

// ClassToggler is an element whose class list the loading animation
// toggles.
type ClassToggler interface {
	AddClass(class string)
	RemoveClass(class string)
}

// ClassList is a space separated class attribute with DOM classList
// semantics: adding an existing class is a no-op and order is kept.
// It is safe for concurrent use. A nil *ClassList is an empty list that
// ignores changes.
type ClassList struct {
	mu      sync.Mutex
	classes []string
}

// NewClassList parses a class attribute value.
func NewClassList(attr string) *ClassList {
	c := &ClassList{}
	c.AddClass(attr)
	return c
}

// AddClass adds every class in the space separated list.
func (c *ClassList) AddClass(class string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, name := range strings.Fields(class) {
		if !slices.Contains(c.classes, name) {
			c.classes = append(c.classes, name)
		}
	}
}

// RemoveClass removes every class in the space separated list.
func (c *ClassList) RemoveClass(class string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, name := range strings.Fields(class) {
		c.classes = slices.DeleteFunc(c.classes, func(s string) bool { return s == name })
	}
}

// HasClass reports whether class is present.
func (c *ClassList) HasClass(class string) bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Contains(c.classes, class)
}

// String returns the class attribute value.
func (c *ClassList) String() string {
	if c == nil {
		return ""
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return strings.Join(c.classes, " ")
}
