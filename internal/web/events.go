package web

import (
	"log/slog"
	"sync"
	"time"

	"github.com/JonMunkholm/itemtable/internal/table"
	"github.com/google/uuid"
)

// EventRecord is a table event as kept by the event log.
type EventRecord struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Table   string    `json:"table"`
	Payload []any     `json:"payload"`
	At      time.Time `json:"at"`
}

// EventLog keeps the most recent events of every table.
type EventLog struct {
	size   int
	logger *slog.Logger

	mu      sync.Mutex
	byTable map[string][]EventRecord
}

// NewEventLog creates a log keeping up to size events per table.
func NewEventLog(size int, logger *slog.Logger) *EventLog {
	if size <= 0 {
		size = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &EventLog{size: size, logger: logger, byTable: make(map[string][]EventRecord)}
}

// Notifier returns the notifier to give the table with key.
func (l *EventLog) Notifier(key string) table.Notifier {
	return table.NotifierFunc(func(e table.Event) {
		l.Record(key, e)
	})
}

// Record appends e to the log of key, evicting the oldest entry when full.
func (l *EventLog) Record(key string, e table.Event) EventRecord {
	rec := EventRecord{
		ID:      uuid.NewString(),
		Name:    e.Name,
		Table:   key,
		Payload: e.Payload,
		At:      e.At,
	}
	if rec.At.IsZero() {
		rec.At = time.Now()
	}

	l.mu.Lock()
	events := append(l.byTable[key], rec)
	if len(events) > l.size {
		events = events[len(events)-l.size:]
	}
	l.byTable[key] = events
	l.mu.Unlock()

	l.logger.Debug("table event", "table", key, "event", rec.Name, "id", rec.ID)
	return rec
}

// Recent returns up to limit events of key, newest last. A limit of zero
// or less returns everything kept.
func (l *EventLog) Recent(key string, limit int) []EventRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	events := l.byTable[key]
	if limit > 0 && len(events) > limit {
		events = events[len(events)-limit:]
	}
	out := make([]EventRecord, len(events))
	copy(out, events)
	return out
}
