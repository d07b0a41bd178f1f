package web

import (
	"log/slog"
	"net/http"

	"github.com/JonMunkholm/itemtable/internal/logging"
)

// requestLogger returns the request logger scoped to a table, carrying the
// client address the RealIP middleware settled on.
func requestLogger(r *http.Request, tableKey string) *slog.Logger {
	return logging.WithFields(r.Context(),
		"table", tableKey,
		"ip", r.RemoteAddr,
	)
}
