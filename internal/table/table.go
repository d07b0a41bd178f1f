package table

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Config is the construction-time configuration of a Table.
// Zero-valued option fields take their defaults.
type Config struct {
	Fields    []FieldInput
	Rows      []Row
	Actions   []Action
	Options   Options
	Callbacks Callbacks
	Notifier  Notifier
	Logger    *slog.Logger

	// Name labels emitted events; it defaults to the table id.
	Name string
}

// Table is one table instance: its fields, rows, selection and options.
// It is safe for concurrent use. Events are delivered after internal locks
// are released, so a Notifier may call back into the table.
type Table struct {
	id        string
	name      string
	callbacks Callbacks
	notifier  Notifier
	logger    *slog.Logger

	mu        sync.RWMutex
	fields    []Field
	rows      []Row
	actions   []Action
	options   Options
	selection Selection

	// loadingShown is the class the last ShowLoadingAnimation added, so
	// Hide removes it even if LoadingClass changed in between.
	loadingShown string
	loading      bool
}

// New creates a table from cfg.
func New(cfg Config) *Table {
	id := uuid.NewString()
	name := cfg.Name
	if name == "" {
		name = id
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	t := &Table{
		id:        id,
		name:      name,
		callbacks: cfg.Callbacks,
		notifier:  cfg.Notifier,
		logger:    logger.With("table", name),
		rows:      cfg.Rows,
		actions:   cfg.Actions,
		options:   mergeDefaults(cfg.Options),
	}
	t.setFieldsLocked(cfg.Fields)
	return t
}

func mergeDefaults(o Options) Options {
	d := DefaultOptions()
	if o.WrapperClass != "" {
		d.WrapperClass = o.WrapperClass
	}
	if o.TableClass != "" {
		d.TableClass = o.TableClass
	}
	if o.LoadingClass != "" {
		d.LoadingClass = o.LoadingClass
	}
	if o.SortHandleIcon != "" {
		d.SortHandleIcon = o.SortHandleIcon
	}
	d.LoaderWrapper = o.LoaderWrapper
	d.MinRows = max(0, o.MinRows)
	d.Extra = o.Clone().Extra
	return d
}

// ID returns the unique instance id.
func (t *Table) ID() string { return t.id }

// Name returns the label events carry.
func (t *Table) Name() string { return t.name }

// Fields returns the normalized fields.
func (t *Table) Fields() []Field {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.fields)
}

// SetFields replaces the raw field input and renormalizes it.
func (t *Table) SetFields(inputs []FieldInput) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.setFieldsLocked(inputs)
}

func (t *Table) setFieldsLocked(inputs []FieldInput) {
	t.fields = Normalize(inputs)
}

// Rows returns the current data rows.
func (t *Table) Rows() []Row {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.rows)
}

// Row returns the data row at index.
func (t *Table) Row(index int) (Row, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if index < 0 || index >= len(t.rows) {
		return nil, false
	}
	return t.rows[index], true
}

// SetRows replaces the data rows. Selections are kept, including ids that
// no longer appear in rows.
func (t *Table) SetRows(rows []Row) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = rows
}

// Actions returns the action descriptors.
func (t *Table) Actions() []Action {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.actions)
}

// SetActions replaces the action descriptors.
func (t *Table) SetActions(actions []Action) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.actions = actions
}

// Options returns a copy of the current options.
func (t *Table) Options() Options {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.options.Clone()
}

// SetOptions merges patch into the current options. Values that cannot be
// decoded are logged and skipped.
func (t *Table) SetOptions(patch map[string]any) {
	t.mu.Lock()
	err := t.options.Apply(patch)
	t.mu.Unlock()

	if err != nil {
		t.logger.Warn("ignored invalid options", "error", err)
	}
}

// BlankRows returns the number of padding rows the next render adds.
func (t *Table) BlankRows() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return BlankRows(len(t.rows), t.options.MinRows)
}

// LessThanMinRows reports whether there are fewer rows than MinRows.
func (t *Table) LessThanMinRows() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return LessThanMinRows(len(t.rows), t.options.MinRows)
}

// HasCallback reports whether f has a registered callback.
func (t *Table) HasCallback(f Field) bool {
	return t.callbacks.Has(f)
}

// CallCallback runs f's callback on the value f names in row. It returns
// nil when f has no callback and "" when the callback is not registered.
func (t *Table) CallCallback(f Field, row Row) any {
	if f.Callback == nil {
		return nil
	}
	v, _ := t.callbacks.Call(f, GetObjectValue(row, f.Name))
	return v
}

// ToggleCheckbox selects or deselects row for checkbox field name.
// A field without an id column is rejected with ErrMissingIDColumn and
// leaves the selection unchanged.
func (t *Table) ToggleCheckbox(checked bool, row Row, name string) error {
	t.mu.Lock()
	err := t.selection.Toggle(checked, row, name)
	t.mu.Unlock()

	if err != nil {
		t.logger.Warn(err.Error(), "field", name)
	}
	return err
}

// ToggleAllCheckboxes selects all current rows, or clears the selection,
// for checkbox field name.
func (t *Table) ToggleAllCheckboxes(checked bool, name string) error {
	t.mu.Lock()
	err := t.selection.ToggleAll(checked, name, t.rows)
	t.mu.Unlock()

	if err != nil {
		t.logger.Warn(err.Error(), "field", name)
	}
	return err
}

// IsSelectedRow reports whether row is selected for checkbox field name.
func (t *Table) IsSelectedRow(row Row, name string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.selection.IsSelected(row, name)
}

// Selected returns the ids selected for checkbox field name in the order
// they were selected.
func (t *Table) Selected(name string) []any {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.selection.Selected(name)
}

// CheckboxFields returns the names of all checkbox fields.
func (t *Table) CheckboxFields() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var names []string
	for _, f := range t.fields {
		if KindOf(f.Name) == KindCheckbox {
			names = append(names, f.Name)
		}
	}
	return names
}

// Render derives the current view.
func (t *Table) Render() View {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v := Render(RenderInput{
		ID:        t.id,
		Fields:    t.fields,
		Rows:      t.rows,
		Actions:   t.actions,
		Options:   t.options,
		Callbacks: t.callbacks,
		Selection: &t.selection,
	})
	v.WrapperClass = t.wrapperClassLocked()
	return v
}

// DispatchEvent notifies the host of kind with payload, exactly once.
func (t *Table) DispatchEvent(kind string, payload ...any) {
	if t.notifier == nil {
		return
	}
	t.notifier.Notify(Event{
		Name:    EventName(kind),
		Table:   t.name,
		Payload: payload,
		At:      time.Now(),
	})
}

// HandleEvent processes an inbound event. Only "vueitems:set-options"
// with a map payload is understood; it reports whether name was handled.
func (t *Table) HandleEvent(name string, payload ...any) bool {
	if name != EventName(EventSetOptions) || len(payload) == 0 {
		return false
	}
	patch, ok := payload[0].(map[string]any)
	if !ok {
		t.logger.Warn("set-options payload is not an object")
		return false
	}
	t.SetOptions(patch)
	return true
}

// OnRowChanged reports a changed row.
func (t *Table) OnRowChanged(row Row) {
	t.DispatchEvent(EventRowChanged, row)
}

// OnRowClicked reports a clicked row.
func (t *Table) OnRowClicked(row Row) {
	t.DispatchEvent(EventRowClicked, row)
}

// OnCellDoubleClicked reports a double-clicked cell's row.
func (t *Table) OnCellDoubleClicked(row Row) {
	t.DispatchEvent(EventCellDblClicked, row)
}

// CallAction reports that action was invoked on row.
func (t *Table) CallAction(action string, row Row) {
	t.DispatchEvent(EventAction, action, row)
}

// ShowLoadingAnimation adds the loading class to wrapper, when given, and
// dispatches "loading".
func (t *Table) ShowLoadingAnimation(wrapper ClassToggler) {
	t.mu.Lock()
	class := t.options.LoadingClass
	t.loadingShown = class
	t.loading = true
	t.mu.Unlock()

	if wrapper != nil {
		wrapper.AddClass(class)
	}
	t.DispatchEvent(EventLoading)
}

// HideLoadingAnimation removes the loading class from wrapper, when given,
// and dispatches "loaded".
func (t *Table) HideLoadingAnimation(wrapper ClassToggler) {
	t.mu.Lock()
	class := t.loadingShown
	if class == "" {
		class = t.options.LoadingClass
	}
	t.loadingShown = ""
	t.loading = false
	t.mu.Unlock()

	if wrapper != nil {
		wrapper.RemoveClass(class)
	}
	t.DispatchEvent(EventLoaded)
}

// Loading reports whether a load is between Show and HideLoadingAnimation.
func (t *Table) Loading() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.loading
}

// WrapperClass is the wrapper's class attribute for the current options,
// with the loading class while a load is in progress.
func (t *Table) WrapperClass() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.wrapperClassLocked()
}

func (t *Table) wrapperClassLocked() string {
	if t.loading {
		return joinClasses(t.options.WrapperClass, t.loadingShown)
	}
	return t.options.WrapperClass
}
