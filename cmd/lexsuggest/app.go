package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/lexsuggest/internal/config"
	"github.com/phrazzld/lexsuggest/internal/events"
	"github.com/phrazzld/lexsuggest/internal/generation"
	"github.com/phrazzld/lexsuggest/internal/platform/gemini"
	"github.com/phrazzld/lexsuggest/internal/suggest"
)

// application holds all the shared application dependencies.
type application struct {
	config *config.Config
	logger *slog.Logger

	// generator is the language model client
	generator generation.TextGenerator

	// fetcher is shared by the HTTP handler and the CLI commands
	fetcher *suggest.Fetcher
}

// appOption customizes newApplication.
type appOption func(*application)

// withGenerator replaces the Gemini client, for tests.
func withGenerator(gen generation.TextGenerator) appOption {
	return func(app *application) {
		app.generator = gen
	}
}

// newApplication creates a new application instance with all dependencies initialized.
func newApplication(cfg *config.Config, logger *slog.Logger, opts ...appOption) (*application, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	app := &application{
		config: cfg,
		logger: logger,
	}
	for _, opt := range opts {
		opt(app)
	}

	if app.generator == nil {
		gen, err := gemini.NewGenerator(logger, cfg.LLM, cfg.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize LLM generator: %w", err)
		}
		app.generator = gen
		logger.Info("LLM generator initialized", "model", gen.Model())
	}

	fetcher, err := suggest.NewFetcher(app.generator, logger, suggest.FetcherConfig{
		RequestTimeout:     cfg.Search.RequestTimeout,
		PromptTemplatePath: cfg.LLM.PromptTemplatePath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create suggestion fetcher: %w", err)
	}
	app.fetcher = fetcher

	return app, nil
}

// newSession creates a debounced session whose state changes are delivered
// to handler.
func (app *application) newSession(handler events.EventHandler) (*suggest.Session, error) {
	emitter := events.NewInMemoryEventEmitter(app.logger)
	emitter.RegisterHandler(handler)

	return suggest.NewSession(app.fetcher, emitter, app.logger, suggest.SessionConfig{
		DebounceInterval: app.config.Search.DebounceInterval,
	})
}
