package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/JonMunkholm/itemtable/internal/source"
	"github.com/JonMunkholm/itemtable/internal/table"
)

// Env carries what sources need from the host.
type Env struct {
	DataDir      string
	MaxFileSize  int64
	DB           source.Querier
	QueryTimeout time.Duration
}

// NewSource builds the row source the definition describes.
func (d Definition) NewSource(env Env) (source.Source, error) {
	s := d.Source
	switch {
	case s.Load != nil:
		return s.Load, nil
	case s.Rows != nil:
		return source.Static(s.Rows), nil
	case len(s.JSON) > 0:
		return source.JSONBytes{Data: s.JSON, Path: s.Path}, nil
	case s.File != "":
		file := s.File
		if !filepath.IsAbs(file) {
			file = filepath.Join(env.DataDir, file)
		}
		return source.JSONFile{File: file, Path: s.Path, MaxSize: env.MaxFileSize}, nil
	case s.Query != "":
		if env.DB == nil {
			return nil, source.ErrNoDatabase
		}
		return source.Postgres{DB: env.DB, Query: s.Query, Args: s.Args, Timeout: env.QueryTimeout}, nil
	default:
		return source.Static(nil), nil
	}
}

// Instance is a live table built from a definition.
type Instance struct {
	Def    Definition
	Table  *table.Table
	Source source.Source

	limiter  *LoadLimiter
	loadMu   sync.Mutex
	loadedAt time.Time

	// ready is closed once the first load has finished, failed or not.
	ready chan struct{}
}

// Ready is closed when the first load has finished.
func (in *Instance) Ready() <-chan struct{} {
	return in.ready
}

// Reload re-reads rows from the source. The table reports the loading
// class in its wrapper class for the duration and the loading/loaded
// events bracket the read.
// On failure the previous rows are kept.
func (in *Instance) Reload(ctx context.Context) error {
	in.loadMu.Lock()
	defer in.loadMu.Unlock()

	if in.limiter != nil {
		if err := in.limiter.Acquire(ctx); err != nil {
			return fmt.Errorf("load %s: %w", in.Def.Info.Key, err)
		}
		defer in.limiter.Release()
	}

	in.Table.ShowLoadingAnimation(nil)
	defer in.Table.HideLoadingAnimation(nil)

	rows, err := in.Source.Rows(ctx)
	if err != nil {
		return fmt.Errorf("load %s: %w", in.Def.Info.Key, err)
	}
	in.Table.SetRows(rows)
	in.loadedAt = time.Now()
	return nil
}

// LoadedAt returns when rows were last loaded successfully.
func (in *Instance) LoadedAt() time.Time {
	in.loadMu.Lock()
	defer in.loadMu.Unlock()
	return in.loadedAt
}

// ManagerConfig configures a Manager.
type ManagerConfig struct {
	Env Env

	// Defaults are the option values every table starts with.
	Defaults table.Options

	// Notifier, when set, returns the notifier for the table with key.
	Notifier func(key string) table.Notifier

	// Limiter, when set, bounds concurrent source reads.
	Limiter *LoadLimiter

	Logger *slog.Logger
}

// Manager owns one live instance per registered table, built on first use.
type Manager struct {
	cfg    ManagerConfig
	logger *slog.Logger

	mu        sync.Mutex
	instances map[string]*Instance
}

// NewManager creates a manager.
func NewManager(cfg ManagerConfig) *Manager {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		cfg:       cfg,
		logger:    logger,
		instances: make(map[string]*Instance),
	}
}

// Instance returns the live table for key, building and loading it on
// first use. A failed initial load still yields the instance, with the
// error, so it can be reloaded later.
//
// Concurrent callers for a table whose first load is still running wait
// for it to finish, or for ctx to be done.
func (m *Manager) Instance(ctx context.Context, key string) (*Instance, error) {
	m.mu.Lock()
	in, ok := m.instances[key]
	if ok {
		m.mu.Unlock()
		select {
		case <-in.ready:
			return in, nil
		case <-ctx.Done():
			return nil, fmt.Errorf("wait for %s: %w", key, ctx.Err())
		}
	}

	def, found := Get(key)
	if !found {
		m.mu.Unlock()
		return nil, fmt.Errorf("%s: %w", key, ErrUnknownTable)
	}

	in, err := m.build(def)
	if err != nil {
		m.mu.Unlock()
		return nil, err
	}
	m.instances[key] = in
	m.mu.Unlock()
	defer close(in.ready)

	if err := in.Reload(ctx); err != nil {
		m.logger.Warn("initial load failed", "table", key, "error", err)
		return in, err
	}
	return in, nil
}

func (m *Manager) build(def Definition) (*Instance, error) {
	src, err := def.NewSource(m.cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("source for %s: %w", def.Info.Key, err)
	}

	var notifier table.Notifier
	if m.cfg.Notifier != nil {
		notifier = m.cfg.Notifier(def.Info.Key)
	}

	t := table.New(table.Config{
		Name:      def.Info.Key,
		Fields:    def.Fields,
		Actions:   def.Actions,
		Options:   m.cfg.Defaults,
		Callbacks: def.Callbacks,
		Notifier:  notifier,
		Logger:    m.logger,
	})
	if len(def.Options) > 0 {
		t.SetOptions(def.Options)
	}

	m.logger.Debug("table instance created",
		"table", def.Info.Key,
		"id", t.ID(),
		"callbacks", def.Callbacks.Names(),
	)

	return &Instance{
		Def:     def,
		Table:   t,
		Source:  src,
		limiter: m.cfg.Limiter,
		ready:   make(chan struct{}),
	}, nil
}

// Loaded returns the keys of instances built so far, sorted.
func (m *Manager) Loaded() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys := make([]string, 0, len(m.instances))
	for k := range m.instances {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Drain waits for in-flight loads to finish.
func (m *Manager) Drain(ctx context.Context) error {
	if m.cfg.Limiter == nil {
		return nil
	}
	return m.cfg.Limiter.WaitForDrain(ctx)
}

// Reset drops every live instance. The next Instance call rebuilds it.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.instances = make(map[string]*Instance)
}
