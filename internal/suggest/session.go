package suggest

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lexsuggest/internal/debounce"
	"github.com/phrazzld/lexsuggest/internal/domain"
	"github.com/phrazzld/lexsuggest/internal/events"
	"github.com/phrazzld/lexsuggest/internal/platform/logger"
)

// StatusLoading is the event status while a request is in flight.
const StatusLoading = "loading"

// State is the visible state of a session.
type State struct {
	// Query is the latest input, updated on every keystroke
	Query domain.Query

	// Loading is true while the current search's request is in flight
	Loading bool

	// Suggestions belongs to the most recent completed search
	Suggestions domain.SuggestionList

	// LastKind is the outcome of the most recent completed search
	LastKind Kind
}

// SessionConfig configures a Session.
type SessionConfig struct {
	// DebounceInterval is the quiet period before a query is searched
	DebounceInterval time.Duration

	// Clock overrides the debouncer's clock; nil uses real time
	Clock debounce.Clock
}

// Session owns the query, loading flag and suggestion list of one search box.
//
// Each stabilized query starts a new search generation. A fetch result is
// applied only if its generation is still the current one, so results that
// complete out of order are discarded. Starting a search also cancels the
// previous search's request.
type Session struct {
	id       uuid.UUID
	searcher Searcher
	emitter  events.EventEmitter
	logger   *slog.Logger
	debounce *debounce.Debouncer[string]

	// ctx is cancelled by Close and parents every request context
	ctx      context.Context
	cancelFn context.CancelFunc

	mu         sync.Mutex
	state      State
	generation uint64
	cancelReq  context.CancelFunc
	closed     bool

	// emitMu keeps event order equal to state change order. It is acquired
	// while mu is held and released after the event is emitted.
	emitMu sync.Mutex

	wg sync.WaitGroup
}

// NewSession creates a session. The emitter may be nil when no one observes
// state changes.
func NewSession(searcher Searcher, emitter events.EventEmitter, logger *slog.Logger, cfg SessionConfig) (*Session, error) {
	if searcher == nil {
		return nil, errors.New("searcher cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	id := uuid.New()
	ctx, cancel := context.WithCancel(context.Background())

	s := &Session{
		id:       id,
		searcher: searcher,
		emitter:  emitter,
		logger:   logger.With("component", "suggestion_session", "session_id", id.String()),
		ctx:      ctx,
		cancelFn: cancel,
		state: State{
			Suggestions: domain.EmptySuggestionList(""),
			LastKind:    KindTooShort,
		},
	}

	opts := []debounce.Option{debounce.WithLogger(s.logger)}
	if cfg.Clock != nil {
		opts = append(opts, debounce.WithClock(cfg.Clock))
	}
	s.debounce = debounce.New(cfg.DebounceInterval, s.search, opts...)

	return s, nil
}

// ID returns the session identifier carried by its events.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Input records the latest query text and schedules a debounced search.
func (s *Session) Input(text string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.state.Query = domain.NewQuery(text)
	s.mu.Unlock()

	s.debounce.Set(text)
}

// Submit searches the pending query immediately instead of waiting for the
// quiet period. It does nothing when no search is pending.
func (s *Session) Submit() {
	s.debounce.Flush()
}

// State returns a snapshot of the visible state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Close tears the session down: the pending search is cancelled, the
// in-flight request is cancelled and Close waits for it to return. No state
// change or event happens after Close returns.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.debounce.Stop()
	s.cancelFn()
	s.wg.Wait()

	// Wait for an event that was already being emitted
	s.emitMu.Lock()
	s.emitMu.Unlock()

	s.logger.Debug("session closed")
}

// search starts a new generation for a stabilized query. It is called by the
// debouncer.
func (s *Session) search(text string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}

	s.generation++
	gen := s.generation
	if s.cancelReq != nil {
		s.cancelReq()
		s.cancelReq = nil
	}

	q := domain.NewQuery(text)
	if !q.IsSearchable() {
		list := domain.EmptySuggestionList(q)
		list.Generation = gen
		s.state.Loading = false
		s.state.Suggestions = list
		s.state.LastKind = KindTooShort
		s.emitLocked(events.TypeSearchCleared, gen, q)
		return
	}

	reqCtx, cancel := context.WithCancel(s.ctx)
	s.cancelReq = cancel
	s.state.Loading = true
	s.wg.Add(1)
	s.emitLocked(events.TypeSearchStarted, gen, q)

	reqLogger := s.logger.With("generation", gen)
	go func() {
		defer s.wg.Done()
		defer cancel()

		ctx := logger.WithLogger(reqCtx, reqLogger)
		res := s.searcher.Fetch(ctx, text)
		s.apply(gen, q, res)
	}()
}

// apply publishes res if gen is still the current generation.
func (s *Session) apply(gen uint64, q domain.Query, res Result) {
	s.mu.Lock()
	if s.closed || gen != s.generation {
		s.mu.Unlock()
		return
	}

	list := res.Suggestions
	list.Query = q
	list.Generation = gen
	s.state.Loading = false
	s.state.Suggestions = list
	s.state.LastKind = res.Kind
	s.cancelReq = nil
	s.emitLocked(events.TypeSearchCompleted, gen, q)
}

// emitLocked publishes the current state. It must be called with mu held and
// releases it.
func (s *Session) emitLocked(eventType string, gen uint64, q domain.Query) {
	if s.emitter == nil {
		s.mu.Unlock()
		return
	}

	event := events.NewStateChangedEvent(eventType, s.id)
	event.Generation = gen
	event.Query = q
	event.Loading = s.state.Loading
	event.Suggestions = s.state.Suggestions
	event.Status = s.state.LastKind.String()
	if event.Loading {
		event.Status = StatusLoading
	}

	s.emitMu.Lock()
	s.mu.Unlock()
	defer s.emitMu.Unlock()

	if err := s.emitter.EmitEvent(s.ctx, event); err != nil {
		s.logger.Warn("failed to emit state change",
			"event_type", eventType,
			"generation", gen,
			"error", err)
	}
}
