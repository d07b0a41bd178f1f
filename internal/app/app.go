// Package app wires configuration into the pieces both commands share:
// the optional Postgres pool and the table manager.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/JonMunkholm/itemtable/internal/catalog"
	"github.com/JonMunkholm/itemtable/internal/config"
	"github.com/JonMunkholm/itemtable/internal/table"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OpenPool connects to Postgres when a database URL is configured.
// It returns a nil pool and no error otherwise.
func OpenPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if u, err := url.Parse(cfg.URL); err == nil {
		slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
	} else {
		slog.Info("connected to database")
	}
	return pool, nil
}

// Env returns the source environment for cfg. pool may be nil.
func Env(cfg *config.Config, pool *pgxpool.Pool) catalog.Env {
	env := catalog.Env{
		DataDir:      cfg.Source.DataDir,
		MaxFileSize:  cfg.Source.MaxFileSize,
		QueryTimeout: cfg.Database.QueryTimeout,
	}
	if pool != nil {
		env.DB = pool
	}
	return env
}

// Defaults returns the table options configured for every instance.
func Defaults(cfg config.TableConfig) table.Options {
	o := table.DefaultOptions()
	if cfg.WrapperClass != "" {
		o.WrapperClass = cfg.WrapperClass
	}
	if cfg.TableClass != "" {
		o.TableClass = cfg.TableClass
	}
	if cfg.LoadingClass != "" {
		o.LoadingClass = cfg.LoadingClass
	}
	if cfg.SortHandleIcon != "" {
		o.SortHandleIcon = cfg.SortHandleIcon
	}
	o.MinRows = cfg.MinRows
	return o
}

// NewManager builds the table manager for cfg.
func NewManager(cfg *config.Config, pool *pgxpool.Pool, notifier func(key string) table.Notifier, logger *slog.Logger) *catalog.Manager {
	m := catalog.NewManager(catalog.ManagerConfig{
		Env:      Env(cfg, pool),
		Defaults: Defaults(cfg.Table),
		Notifier: notifier,
		Limiter:  catalog.NewLoadLimiter(cfg.Source.MaxConcurrentLoads, cfg.Source.LoadWait),
		Logger:   logger,
	})

	logger.Info("tables registered", "count", catalog.Count(), "groups", len(catalog.Groups()))
	for _, group := range catalog.Groups() {
		logger.Debug("table group", "group", group, "tables", len(catalog.ByGroup(group)))
	}
	return m
}
