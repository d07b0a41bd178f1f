package web

// errors.go maps handler errors to user-facing messages with support codes.
//
// Codes:
//
//	TBL001 - Unknown table: no definition is registered under the key
//	TBL002 - Bad request: malformed body, unknown field or event
//	TBL003 - Row out of range: the row index does not address a data row
//	TBL004 - Missing id column: a __checkbox field without ":<column>"
//	TBL005 - Source failure: rows could not be loaded
//	TBL006 - Unknown action: the table declares no action with that name
//	TBL007 - Busy: no load slot was free, or the first load outlasted the request
//
// Handlers call respondError; the technical error is logged with the
// request id and the client gets the mapped message as JSON (API) or
// plain text (pages).

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JonMunkholm/itemtable/internal/catalog"
	"github.com/JonMunkholm/itemtable/internal/logging"
	"github.com/JonMunkholm/itemtable/internal/source"
	"github.com/JonMunkholm/itemtable/internal/table"
)

var (
	errBadRequest    = errors.New("bad request")
	errRowOutOfRange = errors.New("row out of range")
	errUnknownAction = errors.New("unknown action")
	errSourceFailed  = errors.New("source failed")
)

// UserMessage is the client-facing description of an error.
type UserMessage struct {
	Message string
	Action  string
	Code    string
	Status  int
}

// ErrorResponse is the JSON body of API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

var errorMappings = []struct {
	target error
	msg    UserMessage
}{
	{catalog.ErrUnknownTable, UserMessage{"Table not found", "Check the table key", "TBL001", http.StatusNotFound}},
	{errBadRequest, UserMessage{"The request could not be understood", "Check the request body and parameters", "TBL002", http.StatusBadRequest}},
	{errRowOutOfRange, UserMessage{"Row does not exist", "Reload the table and try again", "TBL003", http.StatusNotFound}},
	{table.ErrMissingIDColumn, UserMessage{"Checkbox field has no id column", `Name the field "__checkbox:<column_name>"`, "TBL004", http.StatusUnprocessableEntity}},
	{source.ErrNoDatabase, UserMessage{"This table needs a database connection", "Set DATABASE_URL and restart", "TBL005", http.StatusServiceUnavailable}},
	{catalog.ErrTooManyLoads, UserMessage{"Too many tables are loading", "Wait a moment and reload", "TBL007", http.StatusServiceUnavailable}},
	{errSourceFailed, UserMessage{"Rows could not be loaded", "Check the table source and reload", "TBL005", http.StatusBadGateway}},
	{errUnknownAction, UserMessage{"Action is not defined for this table", "Use one of the table's actions", "TBL006", http.StatusBadRequest}},
	{context.DeadlineExceeded, UserMessage{"Table is still loading", "Wait a moment and reload", "TBL007", http.StatusServiceUnavailable}},
}

var unknownError = UserMessage{"An unexpected error occurred", "Please try again", "ERR000", http.StatusInternalServerError}

// MapError returns the user message for err.
func MapError(err error) UserMessage {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.msg
		}
	}
	return unknownError
}

// respondError logs err and writes the mapped response.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	msg := MapError(err)

	level := slog.LevelWarn
	if msg.Status >= 500 {
		level = slog.LevelError
	}
	logging.FromContext(r.Context()).Log(r.Context(), level, "request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", msg.Status,
		"error", err.Error(),
		"code", msg.Code,
	)

	if wantsJSON(r) {
		respondErrorJSON(w, msg)
	} else {
		http.Error(w, msg.Message+" ("+msg.Code+")", msg.Status)
	}
}

func respondErrorJSON(w http.ResponseWriter, msg UserMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(msg.Status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}

// wantsJSON checks if the client prefers a JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return true
	}
	return strings.HasPrefix(r.URL.Path, "/api/")
}
