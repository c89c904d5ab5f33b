package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lexsuggest/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStateChangedEvent(t *testing.T) {
	sessionID := uuid.New()

	event := NewStateChangedEvent(TypeSearchStarted, sessionID)

	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, TypeSearchStarted, event.Type)
	assert.Equal(t, sessionID, event.SessionID)
	assert.WithinDuration(t, time.Now(), event.CreatedAt, 2*time.Second)

	other := NewStateChangedEvent(TypeSearchStarted, sessionID)
	assert.NotEqual(t, event.ID, other.ID, "every event should get its own ID")
}

func TestStateChangedEventJSON(t *testing.T) {
	event := NewStateChangedEvent(TypeSearchCompleted, uuid.New())
	event.Generation = 3
	event.Query = "contract"
	event.Status = "ok"
	event.Suggestions = domain.NewSuggestionList("contract", []domain.Suggestion{
		{Title: "Carlill v Carbolic Smoke Ball Co", Year: "1893"},
	})

	data, err := json.Marshal(event)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "search_completed", decoded["type"])
	assert.Equal(t, "contract", decoded["query"])
	assert.Equal(t, false, decoded["loading"])

	list, ok := decoded["suggestions"].(map[string]interface{})
	require.True(t, ok)
	items, ok := list["suggestions"].([]interface{})
	require.True(t, ok)
	assert.Len(t, items, 1)
}

// MockEventHandler implements the EventHandler interface for testing
type MockEventHandler struct {
	// The last event received by this handler
	LastEvent *StateChangedEvent
	// Error to return from HandleEvent
	HandlerError error
	// Count of events handled
	HandledCount int
}

// HandleEvent implements the EventHandler interface
func (h *MockEventHandler) HandleEvent(ctx context.Context, event *StateChangedEvent) error {
	h.LastEvent = event
	h.HandledCount++
	return h.HandlerError
}

func TestEventHandlerFunc(t *testing.T) {
	var got *StateChangedEvent
	handler := EventHandlerFunc(func(ctx context.Context, event *StateChangedEvent) error {
		got = event
		return nil
	})

	event := NewStateChangedEvent(TypeSearchCleared, uuid.New())
	require.NoError(t, handler.HandleEvent(context.Background(), event))
	assert.Same(t, event, got)

	expectedErr := errors.New("handler error")
	failing := EventHandlerFunc(func(ctx context.Context, event *StateChangedEvent) error {
		return expectedErr
	})
	assert.Equal(t, expectedErr, failing.HandleEvent(context.Background(), event))
}
