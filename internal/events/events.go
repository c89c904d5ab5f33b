package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lexsuggest/internal/domain"
)

// Event types
const (
	// TypeSearchStarted is emitted when a request for a stabilized query begins.
	TypeSearchStarted = "search_started"

	// TypeSearchCompleted is emitted when the current request's result is applied.
	TypeSearchCompleted = "search_completed"

	// TypeSearchCleared is emitted when a short query clears the suggestions.
	TypeSearchCleared = "search_cleared"
)

// StateChangedEvent carries the visible state of a suggestion session right
// after a change. Events for one session are emitted in the order the state
// changed.
type StateChangedEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Type* constants
	Type string `json:"type"`

	// SessionID identifies the session that changed
	SessionID uuid.UUID `json:"session_id"`

	// Generation is the search the state belongs to
	Generation uint64 `json:"generation"`

	// Query is the stabilized query being searched
	Query domain.Query `json:"query"`

	// Loading reports whether a request is in flight
	Loading bool `json:"loading"`

	// Suggestions is the list currently visible
	Suggestions domain.SuggestionList `json:"suggestions"`

	// Status names the outcome of the last search
	Status string `json:"status"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// NewStateChangedEvent creates an event of the given type for a session.
func NewStateChangedEvent(eventType string, sessionID uuid.UUID) *StateChangedEvent {
	return &StateChangedEvent{
		ID:        uuid.New(),
		Type:      eventType,
		SessionID: sessionID,
		CreatedAt: time.Now(),
	}
}

// EventHandler defines an interface for components that can handle events.
// Handlers run synchronously on the emitting goroutine and must not call back
// into the emitting session.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *StateChangedEvent) error
}

// EventHandlerFunc adapts an ordinary function to the EventHandler interface.
type EventHandlerFunc func(ctx context.Context, event *StateChangedEvent) error

// HandleEvent calls f(ctx, event).
func (f EventHandlerFunc) HandleEvent(ctx context.Context, event *StateChangedEvent) error {
	return f(ctx, event)
}

// EventEmitter defines an interface for components that can emit events.
// This allows sessions to publish state changes without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *StateChangedEvent) error
}
