package suggest_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/phrazzld/lexsuggest/internal/debounce/debouncetest"
	"github.com/phrazzld/lexsuggest/internal/domain"
	"github.com/phrazzld/lexsuggest/internal/events"
	"github.com/phrazzld/lexsuggest/internal/mocks"
	"github.com/phrazzld/lexsuggest/internal/suggest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const testInterval = 500 * time.Millisecond

// gatedSearcher blocks each Fetch until the test releases the query's gate.
type gatedSearcher struct {
	gates map[string]chan suggest.Result

	// honorCancel makes Fetch return as soon as its context ends
	honorCancel bool

	mu       sync.Mutex
	started  []string
	finished []string
}

func newGatedSearcher(queries ...string) *gatedSearcher {
	g := &gatedSearcher{gates: make(map[string]chan suggest.Result)}
	for _, q := range queries {
		g.gates[q] = make(chan suggest.Result, 1)
	}
	return g
}

func (g *gatedSearcher) Fetch(ctx context.Context, query string) suggest.Result {
	g.mu.Lock()
	g.started = append(g.started, query)
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		g.finished = append(g.finished, query)
		g.mu.Unlock()
	}()

	if g.honorCancel {
		select {
		case res := <-g.gates[query]:
			return res
		case <-ctx.Done():
			return suggest.Result{
				Kind:        suggest.KindTransport,
				Suggestions: domain.EmptySuggestionList(domain.NewQuery(query)),
				Err:         ctx.Err(),
			}
		}
	}
	return <-g.gates[query]
}

func (g *gatedSearcher) release(query string, titles ...string) {
	items := make([]domain.Suggestion, len(titles))
	for i, title := range titles {
		items[i] = domain.Suggestion{Title: title}
	}
	g.gates[query] <- suggest.Result{
		Kind:        suggest.KindOK,
		Suggestions: domain.NewSuggestionList(domain.NewQuery(query), items),
	}
}

func (g *gatedSearcher) startedQueries() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.started...)
}

func (g *gatedSearcher) hasFinished(query string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, q := range g.finished {
		if q == query {
			return true
		}
	}
	return false
}

// eventRecorder collects emitted events.
type eventRecorder struct {
	mu     sync.Mutex
	events []*events.StateChangedEvent
}

func (r *eventRecorder) HandleEvent(ctx context.Context, event *events.StateChangedEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *eventRecorder) all() []*events.StateChangedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*events.StateChangedEvent(nil), r.events...)
}

func (r *eventRecorder) types() []string {
	var types []string
	for _, e := range r.all() {
		types = append(types, e.Type)
	}
	return types
}

func newTestSession(t *testing.T, searcher suggest.Searcher) (*suggest.Session, *debouncetest.FakeClock, *eventRecorder) {
	t.Helper()

	clock := debouncetest.NewFakeClock()
	recorder := &eventRecorder{}
	emitter := events.NewInMemoryEventEmitter(discardLogger())
	emitter.RegisterHandler(recorder)

	s, err := suggest.NewSession(searcher, emitter, discardLogger(), suggest.SessionConfig{
		DebounceInterval: testInterval,
		Clock:            clock,
	})
	require.NoError(t, err)
	return s, clock, recorder
}

func waitForIdle(t *testing.T, s *suggest.Session) suggest.State {
	t.Helper()
	require.Eventually(t, func() bool {
		return !s.State().Loading
	}, 2*time.Second, time.Millisecond)
	return s.State()
}

func TestNewSession_Validation(t *testing.T) {
	_, err := suggest.NewSession(nil, nil, discardLogger(), suggest.SessionConfig{})
	assert.EqualError(t, err, "searcher cannot be nil")

	_, err = suggest.NewSession(newGatedSearcher(), nil, nil, suggest.SessionConfig{})
	assert.EqualError(t, err, "logger cannot be nil")
}

func TestSession_InitialState(t *testing.T) {
	s, _, _ := newTestSession(t, newGatedSearcher())
	defer s.Close()

	state := s.State()
	assert.Equal(t, domain.Query(""), state.Query)
	assert.False(t, state.Loading)
	assert.NotNil(t, state.Suggestions.Items)
	assert.True(t, state.Suggestions.IsEmpty())
}

func TestSession_EndToEnd(t *testing.T) {
	defer goleak.VerifyNone(t)

	gen := mocks.NewMockTextGeneratorWithSuggestions(mocks.DefaultSuggestions())
	fetcher := newFetcher(t, gen)
	s, clock, recorder := newTestSession(t, fetcher)

	// Typed one character every 80ms
	typed := "Kesavananda"
	for i := 1; i <= len(typed); i++ {
		s.Input(typed[:i])
		assert.Equal(t, domain.Query(typed[:i]), s.State().Query, "query should be visible immediately")
		clock.Advance(80 * time.Millisecond)
	}
	assert.Equal(t, 0, gen.CallCount(), "nothing should be fetched while typing")

	clock.Advance(testInterval)
	state := waitForIdle(t, s)
	s.Close()

	require.Equal(t, 1, gen.CallCount(), "exactly one request per stabilized query")
	assert.Contains(t, gen.Prompts()[0], `"Kesavananda"`)

	assert.False(t, state.Loading)
	assert.Equal(t, suggest.KindOK, state.LastKind)
	assert.Equal(t, domain.Query("Kesavananda"), state.Suggestions.Query)
	assert.Equal(t, uint64(1), state.Suggestions.Generation)
	require.Equal(t, 5, state.Suggestions.Len())
	assert.Equal(t, "Kesavananda Bharati v. State of Kerala", state.Suggestions.Titles()[0])
	assert.Equal(t, "I.R. Coelho v. State of Tamil Nadu", state.Suggestions.Titles()[4])

	assert.Equal(t, []string{events.TypeSearchStarted, events.TypeSearchCompleted}, recorder.types())
	started := recorder.all()[0]
	assert.True(t, started.Loading)
	assert.Equal(t, suggest.StatusLoading, started.Status)
	completed := recorder.all()[1]
	assert.False(t, completed.Loading)
	assert.Equal(t, "ok", completed.Status)
	assert.Equal(t, s.ID(), completed.SessionID)
}

func TestSession_ShortQueryClearsWithoutRequest(t *testing.T) {
	gen := mocks.NewMockTextGeneratorWithSuggestions(mocks.DefaultSuggestions())
	s, clock, recorder := newTestSession(t, newFetcher(t, gen))
	defer s.Close()

	s.Input("contract")
	clock.Advance(testInterval)
	state := waitForIdle(t, s)
	require.Equal(t, 5, state.Suggestions.Len())

	s.Input("c")
	clock.Advance(testInterval)

	state = s.State()
	assert.False(t, state.Loading)
	assert.Equal(t, suggest.KindTooShort, state.LastKind)
	assert.True(t, state.Suggestions.IsEmpty())
	assert.Equal(t, 1, gen.CallCount(), "short query must not reach the provider")

	types := recorder.types()
	assert.Equal(t, events.TypeSearchCleared, types[len(types)-1])
}

func TestSession_StaleResultIsDiscarded(t *testing.T) {
	defer goleak.VerifyNone(t)

	searcher := newGatedSearcher("contract", "contract law")
	s, clock, recorder := newTestSession(t, searcher)

	s.Input("contract")
	clock.Advance(testInterval)
	require.Eventually(t, func() bool { return len(searcher.startedQueries()) == 1 }, time.Second, time.Millisecond)
	assert.True(t, s.State().Loading)

	s.Input("contract law")
	clock.Advance(testInterval)
	require.Eventually(t, func() bool { return len(searcher.startedQueries()) == 2 }, time.Second, time.Millisecond)

	// B resolves first
	searcher.release("contract law", "B1", "B2")
	require.Eventually(t, func() bool {
		st := s.State()
		return !st.Loading && st.Suggestions.Query == "contract law"
	}, time.Second, time.Millisecond)

	// A resolves late and must not overwrite B
	searcher.release("contract", "A1", "A2", "A3")
	require.Eventually(t, func() bool { return searcher.hasFinished("contract") }, time.Second, time.Millisecond)
	time.Sleep(50 * time.Millisecond)

	s.Close()

	state := s.State()
	assert.Equal(t, []string{"B1", "B2"}, state.Suggestions.Titles())
	assert.Equal(t, domain.Query("contract law"), state.Suggestions.Query)
	assert.Equal(t, uint64(2), state.Suggestions.Generation)
	assert.False(t, state.Loading)

	for _, e := range recorder.all() {
		assert.NotEqual(t, []string{"A1", "A2", "A3"}, e.Suggestions.Titles(), "stale result must never be published")
	}
}

func TestSession_StaleResultWhileNewerIsPending(t *testing.T) {
	searcher := newGatedSearcher("contract", "contract law")
	s, clock, _ := newTestSession(t, searcher)
	defer func() {
		searcher.release("contract law")
		s.Close()
	}()

	s.Input("contract")
	clock.Advance(testInterval)
	s.Input("contract law")
	clock.Advance(testInterval)
	require.Eventually(t, func() bool { return len(searcher.startedQueries()) == 2 }, time.Second, time.Millisecond)

	// A resolves while B is still in flight
	searcher.release("contract", "A1")
	require.Eventually(t, func() bool { return searcher.hasFinished("contract") }, time.Second, time.Millisecond)

	// Allow a wrongly applied result to surface
	time.Sleep(50 * time.Millisecond)

	state := s.State()
	assert.True(t, state.Loading, "B is still loading")
	assert.True(t, state.Suggestions.IsEmpty(), "A's result must not become visible")
}

func TestSession_NewSearchCancelsPreviousRequest(t *testing.T) {
	searcher := newGatedSearcher("contract", "contract law")
	searcher.honorCancel = true
	s, clock, _ := newTestSession(t, searcher)
	defer s.Close()

	s.Input("contract")
	clock.Advance(testInterval)
	require.Eventually(t, func() bool { return len(searcher.startedQueries()) == 1 }, time.Second, time.Millisecond)

	s.Input("contract law")
	clock.Advance(testInterval)

	// A returns on cancellation without being released
	require.Eventually(t, func() bool { return searcher.hasFinished("contract") }, time.Second, time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.True(t, s.State().Loading, "cancelled result must not end B's loading state")

	searcher.release("contract law", "B1")
	state := waitForIdle(t, s)
	assert.Equal(t, []string{"B1"}, state.Suggestions.Titles())
}

func TestSession_Submit(t *testing.T) {
	gen := mocks.NewMockTextGeneratorWithSuggestions(mocks.DefaultSuggestions())
	s, _, _ := newTestSession(t, newFetcher(t, gen))
	defer s.Close()

	// Nothing pending
	s.Submit()
	assert.Equal(t, 0, gen.CallCount())

	s.Input("basic structure")
	s.Submit()

	state := waitForIdle(t, s)
	assert.Equal(t, 1, gen.CallCount())
	assert.Equal(t, 5, state.Suggestions.Len())
}

func TestSession_FailureShowsNoResults(t *testing.T) {
	gen := mocks.NewMockTextGeneratorWithResponse("Sorry, I cannot help with that.")
	s, clock, recorder := newTestSession(t, newFetcher(t, gen))
	defer s.Close()

	s.Input("contract")
	clock.Advance(testInterval)
	state := waitForIdle(t, s)

	assert.Equal(t, suggest.KindMalformed, state.LastKind)
	assert.True(t, state.Suggestions.IsEmpty())
	got := recorder.all()
	require.NotEmpty(t, got)
	assert.Equal(t, "malformed_response", got[len(got)-1].Status)
}

func TestSession_CloseWithPendingDebounce(t *testing.T) {
	defer goleak.VerifyNone(t)

	gen := mocks.NewMockTextGeneratorWithResponse("{}")
	s, clock, recorder := newTestSession(t, newFetcher(t, gen))

	s.Input("contract")
	s.Close()
	clock.Advance(time.Second)

	assert.Equal(t, 0, gen.CallCount())
	assert.Empty(t, recorder.all())

	// Closed sessions ignore input
	s.Input("contract law")
	s.Submit()
	clock.Advance(time.Second)
	assert.Equal(t, 0, gen.CallCount())
	assert.Equal(t, domain.Query("contract"), s.State().Query)

	// Close is idempotent
	s.Close()
}

func TestSession_CloseCancelsInFlightRequest(t *testing.T) {
	defer goleak.VerifyNone(t)

	searcher := newGatedSearcher("contract")
	searcher.honorCancel = true
	s, clock, recorder := newTestSession(t, searcher)

	s.Input("contract")
	clock.Advance(testInterval)
	require.Eventually(t, func() bool { return len(searcher.startedQueries()) == 1 }, time.Second, time.Millisecond)

	done := make(chan struct{})
	go func() {
		s.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not return")
	}

	assert.True(t, searcher.hasFinished("contract"))
	assert.Equal(t, []string{events.TypeSearchStarted}, recorder.types(), "no state change after close")
}

func TestSession_RealClock(t *testing.T) {
	defer goleak.VerifyNone(t)

	gen := mocks.NewMockTextGeneratorWithSuggestions(mocks.DefaultSuggestions())
	s, err := suggest.NewSession(newFetcher(t, gen), nil, discardLogger(), suggest.SessionConfig{
		DebounceInterval: 20 * time.Millisecond,
	})
	require.NoError(t, err)

	for _, q := range []string{"co", "con", "cont", "contract"} {
		s.Input(q)
	}

	require.Eventually(t, func() bool {
		st := s.State()
		return !st.Loading && st.LastKind == suggest.KindOK
	}, 2*time.Second, time.Millisecond)
	s.Close()

	assert.Equal(t, 1, gen.CallCount())
	assert.Equal(t, domain.Query("contract"), s.State().Suggestions.Query)
}
