package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/JonMunkholm/itemtable/internal/catalog"
	"github.com/JonMunkholm/itemtable/internal/table"
	"github.com/go-chi/chi/v5"
)

// maxBodySize bounds JSON request bodies.
const maxBodySize = 1 << 20

// defaultEventLimit is how many events the events API returns by default.
const defaultEventLimit = 50

type tableSummary struct {
	Key            string   `json:"key"`
	Group          string   `json:"group"`
	Label          string   `json:"label"`
	Description    string   `json:"description,omitempty"`
	Actions        []string `json:"actions"`
	CheckboxFields []string `json:"checkboxFields"`
}

type selectRequest struct {
	Field   string `json:"field"`
	Row     *int   `json:"row"`
	Checked bool   `json:"checked"`
}

type actionRequest struct {
	Row *int `json:"row"`
}

type selectionResponse struct {
	Field       string `json:"field"`
	Selected    []any  `json:"selected"`
	AllSelected bool   `json:"allSelected"`
}

type eventResponse struct {
	Event string `json:"event"`
	Row   int    `json:"row"`
}

// handleListTables returns every registered definition.
func (s *Server) handleListTables(w http.ResponseWriter, r *http.Request) {
	defs := catalog.All()
	out := make([]tableSummary, len(defs))
	for i, def := range defs {
		sum := tableSummary{
			Key:            def.Info.Key,
			Group:          def.Info.Group,
			Label:          def.Info.Label,
			Description:    def.Info.Description,
			Actions:        []string{},
			CheckboxFields: def.CheckboxFields(),
		}
		for _, a := range def.Actions {
			sum.Actions = append(sum.Actions, a.Name)
		}
		out[i] = sum
	}
	writeJSON(w, http.StatusOK, out)
}

// handleGetTable returns the current view.
func (s *Server) handleGetTable(w http.ResponseWriter, r *http.Request) {
	in, ok := s.instance(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, in.Table.Render())
}

// handleReload re-reads rows from the table's source.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	in, ok := s.instance(w, r)
	if !ok {
		return
	}

	start := time.Now()
	if err := in.Reload(r.Context()); err != nil {
		s.respondError(w, r, fmt.Errorf("%w: %w", errSourceFailed, err))
		return
	}
	requestLogger(r, in.Def.Info.Key).Info("table reloaded",
		"rows", len(in.Table.Rows()),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	writeJSON(w, http.StatusOK, in.Table.Render())
}

// handleSelect toggles one row's checkbox.
func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	in, ok := s.instance(w, r)
	if !ok {
		return
	}

	var req selectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	if req.Row == nil {
		s.respondError(w, r, fmt.Errorf("%w: row is required", errBadRequest))
		return
	}
	if err := checkboxField(in, req.Field); err != nil {
		s.respondError(w, r, err)
		return
	}
	row, ok := in.Table.Row(*req.Row)
	if !ok {
		s.respondError(w, r, fmt.Errorf("%w: %d", errRowOutOfRange, *req.Row))
		return
	}

	if err := in.Table.ToggleCheckbox(req.Checked, row, req.Field); err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, selection(in, req.Field))
}

// handleSelectAll toggles every row's checkbox.
func (s *Server) handleSelectAll(w http.ResponseWriter, r *http.Request) {
	in, ok := s.instance(w, r)
	if !ok {
		return
	}

	var req selectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := checkboxField(in, req.Field); err != nil {
		s.respondError(w, r, err)
		return
	}

	if err := in.Table.ToggleAllCheckboxes(req.Checked, req.Field); err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, selection(in, req.Field))
}

// handleSelection returns the selected ids of a checkbox field. The field
// defaults to the table's first checkbox field.
func (s *Server) handleSelection(w http.ResponseWriter, r *http.Request) {
	in, ok := s.instance(w, r)
	if !ok {
		return
	}

	field := r.URL.Query().Get("field")
	if field == "" {
		if names := in.Table.CheckboxFields(); len(names) > 0 {
			field = names[0]
		}
	}
	if err := checkboxField(in, field); err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, selection(in, field))
}

// handleOptions applies an options patch as an inbound set-options event.
func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	in, ok := s.instance(w, r)
	if !ok {
		return
	}

	var patch map[string]any
	if err := decodeJSON(w, r, &patch); err != nil {
		s.respondError(w, r, err)
		return
	}

	name := table.EventName(table.EventSetOptions)
	in.Table.HandleEvent(name, patch)
	s.events.Record(in.Def.Info.Key, table.Event{Name: name, Table: in.Table.Name(), Payload: []any{patch}})

	writeJSON(w, http.StatusOK, in.Table.Options())
}

var rowEvents = map[string]func(*table.Table, table.Row){
	"clicked":    (*table.Table).OnRowClicked,
	"changed":    (*table.Table).OnRowChanged,
	"dblclicked": (*table.Table).OnCellDoubleClicked,
}

// handleRowEvent reports a row interaction to the table.
func (s *Server) handleRowEvent(w http.ResponseWriter, r *http.Request) {
	in, ok := s.instance(w, r)
	if !ok {
		return
	}

	event := chi.URLParam(r, "event")
	fire, known := rowEvents[event]
	if !known {
		s.respondError(w, r, fmt.Errorf("%w: unknown row event %q", errBadRequest, event))
		return
	}
	index, row, err := rowParam(in, chi.URLParam(r, "row"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	fire(in.Table, row)
	writeJSON(w, http.StatusAccepted, eventResponse{Event: event, Row: index})
}

// handleAction invokes a declared action on a row.
func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	in, ok := s.instance(w, r)
	if !ok {
		return
	}

	action := chi.URLParam(r, "action")
	if !in.Def.HasAction(action) {
		s.respondError(w, r, fmt.Errorf("%w: %q", errUnknownAction, action))
		return
	}

	var req actionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	if req.Row == nil {
		s.respondError(w, r, fmt.Errorf("%w: row is required", errBadRequest))
		return
	}
	row, ok := in.Table.Row(*req.Row)
	if !ok {
		s.respondError(w, r, fmt.Errorf("%w: %d", errRowOutOfRange, *req.Row))
		return
	}

	in.Table.CallAction(action, row)
	requestLogger(r, in.Def.Info.Key).Info("action dispatched", "action", action, "row", *req.Row)
	writeJSON(w, http.StatusAccepted, eventResponse{Event: action, Row: *req.Row})
}

// handleEvents returns the most recent events, newest last.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "tableKey")
	if _, found := catalog.Get(key); !found {
		s.respondError(w, r, fmt.Errorf("%s: %w", key, catalog.ErrUnknownTable))
		return
	}

	limit := defaultEventLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.respondError(w, r, fmt.Errorf("%w: invalid limit %q", errBadRequest, raw))
			return
		}
		limit = n
	}
	writeJSON(w, http.StatusOK, s.events.Recent(key, limit))
}

// instance resolves the tableKey parameter, writing the error response
// when no instance is available.
func (s *Server) instance(w http.ResponseWriter, r *http.Request) (*catalog.Instance, bool) {
	key := chi.URLParam(r, "tableKey")
	in, err := s.tables.Instance(r.Context(), key)
	if in == nil {
		s.respondError(w, r, err)
		return nil, false
	}
	if err != nil {
		requestLogger(r, key).Warn("table has no fresh rows", "error", err)
	}
	return in, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

func checkboxField(in *catalog.Instance, field string) error {
	for _, name := range in.Table.CheckboxFields() {
		if name == field {
			return nil
		}
	}
	if field == table.CheckboxField {
		return fmt.Errorf("%q: %w", field, table.ErrMissingIDColumn)
	}
	return fmt.Errorf("%w: %q is not a checkbox field of this table", errBadRequest, field)
}

func rowParam(in *catalog.Instance, raw string) (int, table.Row, error) {
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: invalid row %q", errBadRequest, raw)
	}
	row, ok := in.Table.Row(index)
	if !ok {
		return 0, nil, fmt.Errorf("%w: %d", errRowOutOfRange, index)
	}
	return index, row, nil
}

func selection(in *catalog.Instance, field string) selectionResponse {
	resp := selectionResponse{Field: field, Selected: in.Table.Selected(field)}
	for _, h := range in.Table.Render().Header {
		if h.Name == field {
			resp.AllSelected = h.AllSelected
			break
		}
	}
	return resp
}
