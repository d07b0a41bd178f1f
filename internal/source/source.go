// Package source loads table rows from JSON documents and Postgres.
package source

import (
	"context"
	"errors"

	"github.com/JonMunkholm/itemtable/internal/table"
)

var (
	// ErrNotArray is returned when the selected JSON value is not an array.
	ErrNotArray = errors.New("source: value at path is not an array")

	// ErrTooLarge is returned when a JSON file exceeds the size limit.
	ErrTooLarge = errors.New("source: file exceeds size limit")

	// ErrNoDatabase is returned by a query source without a connection.
	ErrNoDatabase = errors.New("source: no database configured")
)

// Source produces the rows of a table.
type Source interface {
	Rows(ctx context.Context) ([]table.Row, error)
}

// Func adapts a function to Source.
type Func func(ctx context.Context) ([]table.Row, error)

// Rows calls f(ctx).
func (f Func) Rows(ctx context.Context) ([]table.Row, error) { return f(ctx) }

// Static serves a fixed set of rows.
type Static []table.Row

// Rows returns a copy of the row slice; the rows themselves are shared.
func (s Static) Rows(ctx context.Context) ([]table.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]table.Row, len(s))
	copy(out, s)
	return out, nil
}
