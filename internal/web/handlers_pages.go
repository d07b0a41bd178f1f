package web

import (
	"net/http"

	"github.com/JonMunkholm/itemtable/internal/catalog"
	"github.com/JonMunkholm/itemtable/internal/view"
	"github.com/go-chi/chi/v5"
)

// handleDashboard renders the list of registered tables by group.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	var groups []view.TableGroup
	for _, group := range catalog.Groups() {
		defs := catalog.ByGroup(group)
		cards := make([]view.TableCard, len(defs))
		for i, def := range defs {
			cards[i] = cardOf(def)
		}
		groups = append(groups, view.TableGroup{Name: group, Tables: cards})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := view.Dashboard(groups).Render(r.Context(), w); err != nil {
		requestLogger(r, "").Error("render dashboard", "error", err)
	}
}

// handleTablePage renders one table. With ?partial=1 or an HX-Request
// header only the table wrapper is returned, for in-place refresh.
func (s *Server) handleTablePage(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "tableKey")

	in, err := s.tables.Instance(r.Context(), key)
	if in == nil {
		s.respondError(w, r, err)
		return
	}
	if err != nil {
		requestLogger(r, key).Warn("rendering table without fresh rows", "error", err)
	}

	props := view.TableProps{
		Key:  key,
		View: in.Table.Render(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	var renderErr error
	if r.URL.Query().Get("partial") == "1" || r.Header.Get("HX-Request") == "true" {
		renderErr = view.Table(props).Render(r.Context(), w)
	} else {
		renderErr = view.TablePage(cardOf(in.Def), props).Render(r.Context(), w)
	}
	if renderErr != nil {
		requestLogger(r, key).Error("render table", "error", renderErr)
	}
}

// handleHealth reports liveness and the registered table count.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"tables": catalog.Count(),
		"loaded": len(s.tables.Loaded()),
	})
}

func cardOf(def catalog.Definition) view.TableCard {
	return view.TableCard{
		Key:         def.Info.Key,
		Label:       def.Info.Label,
		Description: def.Info.Description,
	}
}
