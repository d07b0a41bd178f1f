package table

import (
	"strings"
	"time"
)

// EventNamespace prefixes every event name a table emits or accepts.
const EventNamespace = "vueitems"

// Event kinds.
const (
	EventLoading        = "loading"
	EventLoaded         = "loaded"
	EventRowChanged     = "row-changed"
	EventRowClicked     = "row-clicked"
	EventCellDblClicked = "cell-dblclicked"
	EventAction         = "action"
	EventSetOptions     = "set-options"
)

// EventName returns the namespaced name of kind, e.g. "vueitems:loading".
func EventName(kind string) string {
	return EventNamespace + ":" + kind
}

// Event is a notification sent to the host.
type Event struct {
	Name    string    `json:"name"`
	Table   string    `json:"table"`
	Payload []any     `json:"payload"`
	At      time.Time `json:"at"`
}

// Kind returns the event name without its namespace.
func (e Event) Kind() string {
	return strings.TrimPrefix(e.Name, EventNamespace+":")
}

// Notifier receives table events. Notify is called synchronously, once per
// occurrence, without any table lock held.
type Notifier interface {
	Notify(Event)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Event)

// Notify calls f(e).
func (f NotifierFunc) Notify(e Event) { f(e) }

// MultiNotifier fans an event out to several notifiers in order.
type MultiNotifier []Notifier

// Notify forwards e to every non-nil notifier.
func (m MultiNotifier) Notify(e Event) {
	for _, n := range m {
		if n != nil {
			n.Notify(e)
		}
	}
}
