package deepsearch

import "context"

// EventType identifies the kind of event delivered to a Sink.
type EventType string

const (
	// EventStatus carries a human-readable progress update.
	EventStatus EventType = "status"
	// EventStream carries one parsed fragment of the streamed answer.
	EventStream EventType = "stream"
)

// StatusData is the payload of a status event. Done marks the terminal
// status of a call; exactly one done=true status is attempted per call.
type StatusData struct {
	Description string `json:"description"`
	Done        bool   `json:"done"`
}

// Event is a single notification delivered to a Sink. For status events
// Data is a StatusData; for stream events it is the parsed fragment
// (any JSON value, or a {"raw": line} wrapper for unparseable lines).
type Event struct {
	Type EventType `json:"type"`
	Data any       `json:"data"`
}

// Sink receives progress and stream events from an in-flight call. Events
// arrive strictly in production order and never concurrently. A Sink is
// owned by the caller; the client treats delivery as fire-and-forget and
// an Emit error never affects the call's outcome.
type Sink interface {
	Emit(ctx context.Context, evt Event) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, evt Event) error

func (f SinkFunc) Emit(ctx context.Context, evt Event) error {
	return f(ctx, evt)
}

func statusEvent(description string, done bool) Event {
	return Event{Type: EventStatus, Data: StatusData{Description: description, Done: done}}
}

func streamEvent(parsed any) Event {
	return Event{Type: EventStream, Data: parsed}
}
