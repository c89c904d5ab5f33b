package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/lexsuggest/internal/api"
	apiMiddleware "github.com/phrazzld/lexsuggest/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() (http.Handler, error) {
	suggestionHandler, err := api.NewSuggestionHandler(app.fetcher, app.logger)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	r.Route("/api", func(r chi.Router) {
		r.Get("/suggestions", suggestionHandler.GetSuggestions)
		r.Post("/suggestions", suggestionHandler.GetSuggestions)
	})

	r.Get("/health", suggestionHandler.Health)

	return r, nil
}
