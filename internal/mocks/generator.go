package mocks

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/phrazzld/lexsuggest/internal/domain"
	"github.com/phrazzld/lexsuggest/internal/generation"
)

// MockTextGenerator implements generation.TextGenerator for testing
type MockTextGenerator struct {
	// GenerateTextFn allows test cases to mock the GenerateText behavior
	GenerateTextFn func(ctx context.Context, prompt string) (string, error)

	// Default response values
	Response string
	Err      error

	// Delay is waited before responding. A context that ends first makes the
	// call return the context's error.
	Delay time.Duration

	// Call tracking for verification
	GenerateTextCalls struct {
		// mu protects the call tracking state for concurrent test cases
		mu sync.Mutex

		// Count tracks how many times GenerateText was called
		Count int

		// Prompts contains all prompts passed to GenerateText calls
		Prompts []string

		// Contexts contains all contexts passed to GenerateText calls
		Contexts []context.Context
	}
}

var _ generation.TextGenerator = (*MockTextGenerator)(nil)

// GenerateText implements the generation.TextGenerator interface
func (m *MockTextGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	// Track call details for verification
	m.GenerateTextCalls.mu.Lock()
	m.GenerateTextCalls.Count++
	m.GenerateTextCalls.Prompts = append(m.GenerateTextCalls.Prompts, prompt)
	m.GenerateTextCalls.Contexts = append(m.GenerateTextCalls.Contexts, ctx)
	m.GenerateTextCalls.mu.Unlock()

	if m.Delay > 0 {
		timer := time.NewTimer(m.Delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	// Use custom function if provided
	if m.GenerateTextFn != nil {
		return m.GenerateTextFn(ctx, prompt)
	}

	// Return default values
	return m.Response, m.Err
}

// CallCount returns the number of GenerateText calls so far
func (m *MockTextGenerator) CallCount() int {
	m.GenerateTextCalls.mu.Lock()
	defer m.GenerateTextCalls.mu.Unlock()
	return m.GenerateTextCalls.Count
}

// Prompts returns a copy of the prompts received so far
func (m *MockTextGenerator) Prompts() []string {
	m.GenerateTextCalls.mu.Lock()
	defer m.GenerateTextCalls.mu.Unlock()
	prompts := make([]string, len(m.GenerateTextCalls.Prompts))
	copy(prompts, m.GenerateTextCalls.Prompts)
	return prompts
}

// Reset resets the call tracking state
func (m *MockTextGenerator) Reset() {
	m.GenerateTextCalls.mu.Lock()
	defer m.GenerateTextCalls.mu.Unlock()

	m.GenerateTextCalls.Count = 0
	m.GenerateTextCalls.Prompts = nil
	m.GenerateTextCalls.Contexts = nil
}

// NewMockTextGeneratorWithResponse creates a MockTextGenerator that returns text
func NewMockTextGeneratorWithResponse(text string) *MockTextGenerator {
	return &MockTextGenerator{
		Response: text,
	}
}

// NewMockTextGeneratorWithError creates a MockTextGenerator that returns the specified error
func NewMockTextGeneratorWithError(err error) *MockTextGenerator {
	return &MockTextGenerator{
		Err: err,
	}
}

// NewMockTextGeneratorWithSuggestions creates a MockTextGenerator whose
// response is the JSON document for the given suggestions
func NewMockTextGeneratorWithSuggestions(items []domain.Suggestion) *MockTextGenerator {
	return NewMockTextGeneratorWithResponse(SuggestionsJSON(items))
}

// MockTextGeneratorThatFails creates a MockTextGenerator that simulates a network failure
func MockTextGeneratorThatFails() *MockTextGenerator {
	return &MockTextGenerator{
		Err: generation.ErrTransport,
	}
}

// MockTextGeneratorWithContentBlocked creates a MockTextGenerator that simulates content being blocked
func MockTextGeneratorWithContentBlocked() *MockTextGenerator {
	return &MockTextGenerator{
		Err: generation.ErrContentBlocked,
	}
}

// SuggestionsJSON renders items in the document shape the prompt asks for.
func SuggestionsJSON(items []domain.Suggestion) string {
	if items == nil {
		items = []domain.Suggestion{}
	}
	data, err := json.Marshal(struct {
		Suggestions []domain.Suggestion `json:"suggestions"`
	}{Suggestions: items})
	if err != nil {
		panic(err)
	}
	return string(data)
}

// DefaultSuggestions returns five well-known Indian constitutional cases.
func DefaultSuggestions() []domain.Suggestion {
	return []domain.Suggestion{
		{
			Title: "Kesavananda Bharati v. State of Kerala",
			Year:  "1973",
			Court: "Supreme Court of India",
			Brief: "Established the basic structure doctrine of the Constitution.",
		},
		{
			Title: "Minerva Mills Ltd. v. Union of India",
			Year:  "1980",
			Court: "Supreme Court of India",
			Brief: "Struck down clauses of the 42nd Amendment that curtailed judicial review.",
		},
		{
			Title: "Indira Nehru Gandhi v. Raj Narain",
			Year:  "1975",
			Court: "Supreme Court of India",
			Brief: "Applied the basic structure doctrine to an election law amendment.",
		},
		{
			Title: "Golaknath v. State of Punjab",
			Year:  "1967",
			Court: "Supreme Court of India",
			Brief: "Held that Parliament could not amend fundamental rights.",
		},
		{
			Title: "I.R. Coelho v. State of Tamil Nadu",
			Year:  "2007",
			Court: "Supreme Court of India",
			Brief: "Ninth Schedule laws remain subject to basic structure review.",
		},
	}
}
