package suggest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"text/template"
	"time"

	"github.com/phrazzld/lexsuggest/internal/domain"
	"github.com/phrazzld/lexsuggest/internal/generation"
	"github.com/phrazzld/lexsuggest/internal/platform/logger"
	"github.com/phrazzld/lexsuggest/internal/redact"
)

// DefaultRequestTimeout bounds a provider call when no timeout is configured.
const DefaultRequestTimeout = 10 * time.Second

// Searcher produces suggestions for a stabilized query.
// Fetch must never panic and must always return a usable Result.
type Searcher interface {
	Fetch(ctx context.Context, query string) Result
}

// FetcherConfig configures a Fetcher.
type FetcherConfig struct {
	// RequestTimeout bounds each provider call
	RequestTimeout time.Duration

	// PromptTemplatePath optionally replaces the built-in prompt
	PromptTemplatePath string
}

// Fetcher turns one stabilized query into one language model request and
// parses the response. It keeps no per-query state and is safe for
// concurrent use.
type Fetcher struct {
	gen     generation.TextGenerator
	logger  *slog.Logger
	prompt  *template.Template
	timeout time.Duration
}

var _ Searcher = (*Fetcher)(nil)

// NewFetcher creates a Fetcher that sends prompts to gen.
func NewFetcher(gen generation.TextGenerator, logger *slog.Logger, cfg FetcherConfig) (*Fetcher, error) {
	if gen == nil {
		return nil, fmt.Errorf("%w: text generator cannot be nil", generation.ErrInvalidConfig)
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		logger.Warn("invalid request timeout specified, using default",
			"specified_timeout", timeout,
			"default_timeout", DefaultRequestTimeout)
		timeout = DefaultRequestTimeout
	}

	prompt, err := loadPromptTemplate(cfg.PromptTemplatePath)
	if err != nil {
		return nil, err
	}

	return &Fetcher{
		gen:     gen,
		logger:  logger.With("component", "suggestion_fetcher"),
		prompt:  prompt,
		timeout: timeout,
	}, nil
}

// Fetch returns up to domain.MaxSuggestions suggestions for query.
//
// Queries shorter than domain.MinQueryLength runes return KindTooShort
// without a request. Every other call makes exactly one request; there is no
// caching and no retry. Failures are logged and returned as an empty list.
func (f *Fetcher) Fetch(ctx context.Context, query string) (res Result) {
	q := domain.NewQuery(query)
	log := logger.FromContext(ctx, f.logger)

	if !q.IsSearchable() {
		return emptyResult(q, KindTooShort, nil)
	}
	if err := q.Validate(); err != nil {
		log.DebugContext(ctx, "query rejected", "query_length", q.Len(), "error", err)
		return emptyResult(q, KindInvalid, err)
	}

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%w: panic: %v", generation.ErrTransport, r)
			log.ErrorContext(ctx, "recovered from panic while fetching suggestions",
				"error", redact.Error(err))
			res = emptyResult(q, KindTransport, err)
		}
	}()

	prompt, err := buildPrompt(f.prompt, q)
	if err != nil {
		log.ErrorContext(ctx, "failed to build prompt", "error", err)
		return emptyResult(q, KindTransport, fmt.Errorf("%w: %w", generation.ErrInvalidConfig, err))
	}

	reqCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	start := time.Now()
	text, err := f.gen.GenerateText(reqCtx, prompt)
	elapsed := time.Since(start)

	if err != nil {
		err = classifyFetchError(reqCtx, err)
		if errors.Is(err, context.Canceled) {
			log.DebugContext(ctx, "suggestion request cancelled",
				"query_length", q.Len(),
				"duration_ms", elapsed.Milliseconds())
		} else {
			log.ErrorContext(ctx, "suggestion request failed",
				"query_length", q.Len(),
				"duration_ms", elapsed.Milliseconds(),
				"error", redact.Error(err))
		}
		return emptyResult(q, KindTransport, err)
	}

	items, kind, err := parseSuggestions(text)
	switch kind {
	case KindMalformed:
		log.WarnContext(ctx, "language model returned malformed suggestions",
			"response_length", len(text),
			"error", err)
		return emptyResult(q, KindMalformed, err)
	case KindEmpty:
		log.DebugContext(ctx, "language model response has no suggestions array",
			"response_length", len(text))
		return emptyResult(q, KindEmpty, nil)
	}

	list := domain.NewSuggestionList(q, items)
	log.DebugContext(ctx, "suggestions fetched",
		"count", list.Len(),
		"duration_ms", elapsed.Milliseconds())

	return Result{Kind: KindOK, Suggestions: list}
}

// classifyFetchError makes sure err carries a generation sentinel so the
// failure class survives for diagnostics.
func classifyFetchError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, generation.ErrTimeout) {
		return fmt.Errorf("%w: %w", generation.ErrTimeout, err)
	}
	if generation.IsTransportFailure(err) {
		return err
	}
	return fmt.Errorf("%w: %w", generation.ErrTransport, err)
}
