package weave

import (
	"context"
	"fmt"
)

// Event is a record of a state change, published for the consumers of the
// engine. Events are informational only and no code path relies on their
// delivery.
type Event struct {
	Type       string      `json:"type"`
	Attributes []Attribute `json:"attributes,omitempty"`
}

// Attribute is a single key value pair describing an event.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// NewEvent returns an event of given type. Attributes are declared as a flat
// list of key value pairs and are formatted using their default format.
func NewEvent(typ string, keyvals ...interface{}) Event {
	ev := Event{Type: typ}
	for i := 0; i+1 < len(keyvals); i += 2 {
		ev.Attributes = append(ev.Attributes, Attribute{
			Key:   fmt.Sprint(keyvals[i]),
			Value: fmt.Sprint(keyvals[i+1]),
		})
	}
	return ev
}

// Attr returns the value of the first attribute with given key.
func (e Event) Attr(key string) (string, bool) {
	for _, a := range e.Attributes {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// EventSink consumes emitted events.
type EventSink interface {
	Emit(Event)
}

// EventLog is an EventSink that keeps all events in memory, in the order they
// were emitted.
type EventLog struct {
	events []Event
}

var _ EventSink = (*EventLog)(nil)

// Emit appends the event to the log.
func (l *EventLog) Emit(e Event) {
	l.events = append(l.events, e)
}

// Events returns all collected events.
func (l *EventLog) Events() []Event {
	return l.events
}

// WithEventSink returns a context that routes all emitted events to the given
// sink.
func WithEventSink(ctx Context, sink EventSink) Context {
	return context.WithValue(ctx, contextKeyEvents, sink)
}

// EmitEvent publishes an event to the sink carried by the context. Without a
// sink the event is only logged.
func EmitEvent(ctx Context, e Event) {
	if sink, ok := ctx.Value(contextKeyEvents).(EventSink); ok {
		sink.Emit(e)
		return
	}
	kv := make([]interface{}, 0, 2+2*len(e.Attributes))
	kv = append(kv, "event", e.Type)
	for _, a := range e.Attributes {
		kv = append(kv, a.Key, a.Value)
	}
	GetLogger(ctx).Debug("event", kv...)
}
