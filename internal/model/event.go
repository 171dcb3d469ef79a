package model

import "errors"

// Validation errors, detected before any external call is made.
var (
	ErrNoClaim            = errors.New("No claim provided")
	ErrInvalidSourceCount = errors.New("Invalid number of sources")
)

// EventKind enumerates the closed set of progress-protocol variants.
type EventKind int

const (
	EventStatus EventKind = iota
	EventError
	EventResult
	EventComplete
)

func (k EventKind) String() string {
	switch k {
	case EventStatus:
		return "status"
	case EventError:
		return "error"
	case EventResult:
		return "result"
	case EventComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Event is one unit of the server-to-client progress protocol. The union is
// tagged by Kind; only the fields for that kind are meaningful. Error and
// Complete are terminal: no further events follow either of them.
type Event struct {
	Kind    EventKind
	Message string      // EventStatus, EventError
	Result  string      // EventResult: accumulated verdict text so far
	Sources []SourceRef // EventResult
}

// StatusEvent reports an advisory progress marker.
func StatusEvent(message string) Event {
	return Event{Kind: EventStatus, Message: message}
}

// ErrorEvent reports a fatal condition and terminates the stream.
func ErrorEvent(message string) Event {
	return Event{Kind: EventError, Message: message}
}

// ResultEvent carries the verdict accumulated so far together with the
// selected sources. Each ResultEvent replaces the client's previous view.
func ResultEvent(accumulated string, sources []SourceRef) Event {
	return Event{Kind: EventResult, Result: accumulated, Sources: sources}
}

// CompleteEvent is the final event of every successful request.
func CompleteEvent() Event {
	return Event{Kind: EventComplete}
}

// Terminal reports whether no further events may follow this one.
func (e Event) Terminal() bool {
	return e.Kind == EventError || e.Kind == EventComplete
}
