package source

import (
	"context"
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/JonMunkholm/itemtable/internal/table"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Querier is the query surface rows are read through.
// Satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Postgres reads rows with a SQL query. Column names become row keys.
type Postgres struct {
	DB      Querier
	Query   string
	Args    []any
	Timeout time.Duration
}

// Rows runs the query and collects every row.
func (s Postgres) Rows(ctx context.Context) ([]table.Row, error) {
	if s.DB == nil {
		return nil, ErrNoDatabase
	}
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	rows, err := s.DB.Query(ctx, s.Query, s.Args...)
	if err != nil {
		return nil, fmt.Errorf("query rows: %w", err)
	}

	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, fmt.Errorf("collect rows: %w", err)
	}

	out := make([]table.Row, len(maps))
	for i, m := range maps {
		for k, v := range m {
			m[k] = normalizeValue(v)
		}
		out[i] = m
	}
	return out, nil
}

// normalizeValue turns driver-specific values into plain Go values so they
// display and compare like JSON-sourced rows.
func normalizeValue(v any) any {
	switch x := v.(type) {
	case [16]byte:
		return uuid.UUID(x).String()
	case time.Time, string, bool, int64, int32, int16, float64, float32, nil:
		return v
	case driver.Valuer:
		dv, err := x.Value()
		if err != nil {
			return v
		}
		return dv
	}
	return v
}
