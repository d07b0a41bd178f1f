package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/JonMunkholm/itemtable/internal/catalog"
	"github.com/JonMunkholm/itemtable/internal/source"
	"github.com/JonMunkholm/itemtable/internal/table"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"unknown table", fmt.Errorf("x: %w", catalog.ErrUnknownTable), "TBL001", http.StatusNotFound},
		{"missing id column", table.ErrMissingIDColumn, "TBL004", http.StatusUnprocessableEntity},
		{"no database", fmt.Errorf("%w: %w", errSourceFailed, source.ErrNoDatabase), "TBL005", http.StatusServiceUnavailable},
		{"load slots busy", fmt.Errorf("%w: %w", errSourceFailed, catalog.ErrTooManyLoads), "TBL007", http.StatusServiceUnavailable},
		{"source failed", fmt.Errorf("%w: %w", errSourceFailed, source.ErrNotArray), "TBL005", http.StatusBadGateway},
		{"unknown action", errUnknownAction, "TBL006", http.StatusBadRequest},
		{"first load outlasted request", fmt.Errorf("wait for items: %w", context.DeadlineExceeded), "TBL007", http.StatusServiceUnavailable},
		{"unmapped", errors.New("boom"), "ERR000", http.StatusInternalServerError},
		{"nil", nil, "ERR000", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := MapError(tt.err)
			if msg.Code != tt.code || msg.Status != tt.status {
				t.Errorf("MapError() = %s/%d, want %s/%d", msg.Code, msg.Status, tt.code, tt.status)
			}
		})
	}
}
