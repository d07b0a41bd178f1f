package table

import (
	"sort"
	"strings"
)

// CallbackFunc transforms a cell's raw value. Extra arguments from the
// callback string are passed through as plain strings.
type CallbackFunc func(value any, args ...string) any

// Callbacks is the host's named method registry. A name that is not
// registered behaves as "no callback".
type Callbacks map[string]CallbackFunc

// ExtractName returns the part of s before the first ':'.
func ExtractName(s string) string {
	name, _, _ := strings.Cut(s, ":")
	return name
}

// ExtractArgs returns the part of s after the first ':', or "".
func ExtractArgs(s string) string {
	_, args, _ := strings.Cut(s, ":")
	return args
}

// ParseCallback splits a callback string of the form "name" or
// "name|arg1,arg2" into the method name and its arguments.
func ParseCallback(s string) (name string, args []string) {
	name, rest, found := strings.Cut(s, "|")
	if !found {
		return name, nil
	}
	return name, strings.Split(rest, ",")
}

// Has reports whether f names a callback registered in c.
func (c Callbacks) Has(f Field) bool {
	if f.Callback == nil {
		return false
	}
	name, _ := ParseCallback(*f.Callback)
	fn, ok := c[name]
	return ok && fn != nil
}

// Call invokes f's callback with value. It returns (nil, false) without
// invoking anything when f has no callback, and ("", false) when the
// named method is not registered.
func (c Callbacks) Call(f Field, value any) (any, bool) {
	if f.Callback == nil {
		return nil, false
	}
	name, args := ParseCallback(*f.Callback)
	fn, ok := c[name]
	if !ok || fn == nil {
		return "", false
	}
	return fn(value, args...), true
}

// Names returns the registered callback names, sorted.
func (c Callbacks) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
