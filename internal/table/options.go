package table

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Defaults for the runtime options.
const (
	DefaultWrapperClass   = "vueitems-wrapper"
	DefaultTableClass     = "ui blue striped celled selectable single line attached table"
	DefaultLoadingClass   = "loading"
	DefaultSortHandleIcon = "grey sidebar icon"
)

// Options holds the settings a host may override at runtime.
type Options struct {
	WrapperClass   string `mapstructure:"wrapperClass" json:"wrapperClass"`
	LoaderWrapper  string `mapstructure:"loaderWrapper" json:"loaderWrapper,omitempty"`
	TableClass     string `mapstructure:"tableClass" json:"tableClass"`
	LoadingClass   string `mapstructure:"loadingClass" json:"loadingClass"`
	SortHandleIcon string `mapstructure:"sortHandleIcon" json:"sortHandleIcon"`
	MinRows        int    `mapstructure:"minRows" json:"minRows"`

	// Extra keeps patch keys that are not recognized. They have no
	// rendering effect.
	Extra map[string]any `mapstructure:"-" json:"extra,omitempty"`
}

// DefaultOptions returns the options a table starts with.
func DefaultOptions() Options {
	return Options{
		WrapperClass:   DefaultWrapperClass,
		TableClass:     DefaultTableClass,
		LoadingClass:   DefaultLoadingClass,
		SortHandleIcon: DefaultSortHandleIcon,
	}
}

// Clone returns a copy that shares no maps with o.
func (o Options) Clone() Options {
	o.Extra = maps.Clone(o.Extra)
	return o
}

// Apply merges patch into o key by key. Keys absent from patch keep their
// value. Keys may be camelCase ("tableClass") or kebab-case ("table-class").
// Unrecognized keys are stored in Extra. A recognized key whose value cannot
// be decoded is skipped and reported in the returned error; every other key
// is still applied.
//
// Keys are applied in a fixed order: kebab-case aliases first, then the
// rest by name, so "tableClass" wins over "table-class" in the same patch.
func (o *Options) Apply(patch map[string]any) error {
	var errs []error
	for _, key := range patchOrder(patch) {
		value := patch[key]
		next := o.Clone()
		var md mapstructure.Metadata
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &next,
			Metadata:         &md,
			WeaklyTypedInput: true,
		})
		if err != nil {
			return fmt.Errorf("options decoder: %w", err)
		}

		if err := dec.Decode(map[string]any{optionKey(key): value}); err != nil {
			errs = append(errs, fmt.Errorf("option %q: %w", key, err))
			continue
		}
		if len(md.Unused) > 0 {
			if o.Extra == nil {
				o.Extra = make(map[string]any)
			}
			o.Extra[key] = value
			continue
		}
		if next.MinRows < 0 {
			errs = append(errs, fmt.Errorf("option %q: must be non-negative, got %d", key, next.MinRows))
			continue
		}
		next.Extra = o.Extra
		*o = next
	}
	return errors.Join(errs...)
}

func patchOrder(patch map[string]any) []string {
	keys := slices.Collect(maps.Keys(patch))
	slices.SortFunc(keys, func(a, b string) int {
		aliasA, aliasB := strings.Contains(a, "-"), strings.Contains(b, "-")
		switch {
		case aliasA && !aliasB:
			return -1
		case aliasB && !aliasA:
			return 1
		}
		return strings.Compare(a, b)
	})
	return keys
}

// optionKey maps kebab-case keys onto the struct tags. mapstructure
// matches names case-insensitively, so dropping the dashes is enough.
func optionKey(key string) string {
	return strings.ReplaceAll(key, "-", "")
}
