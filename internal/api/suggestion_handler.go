package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/lexsuggest/internal/api/shared"
	"github.com/phrazzld/lexsuggest/internal/platform/logger"
	"github.com/phrazzld/lexsuggest/internal/suggest"
)

// SuggestionHandler serves search suggestions over HTTP.
type SuggestionHandler struct {
	searcher suggest.Searcher
	logger   *slog.Logger
}

// NewSuggestionHandler creates a handler backed by searcher.
func NewSuggestionHandler(searcher suggest.Searcher, logger *slog.Logger) (*SuggestionHandler, error) {
	if searcher == nil {
		return nil, errors.New("searcher cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &SuggestionHandler{
		searcher: searcher,
		logger:   logger.With("component", "suggestion_handler"),
	}, nil
}

// GetSuggestions handles GET /api/suggestions?q=... and POST /api/suggestions.
//
// Responses:
//   - 200: suggestions for the query, possibly empty
//   - 400: missing or overlong query, or a malformed body
func (h *SuggestionHandler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context(), h.logger)

	req, err := parseSuggestionsRequest(w, r)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	res := h.searcher.Fetch(r.Context(), req.Query)

	if res.Kind == suggest.KindInvalid {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(res.Err), GetSafeErrorMessage(res.Err), res.Err)
		return
	}

	log.Debug("suggestions served",
		"status", res.Kind.String(),
		"count", res.Suggestions.Len())

	shared.RespondWithJSON(w, r, http.StatusOK, SuggestionsResponse{
		Query:       res.Suggestions.Query.String(),
		Suggestions: res.Suggestions.Items,
		Status:      res.Kind.String(),
	})
}

// Health reports that the server is up. It does not call the provider.
func (h *SuggestionHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{Status: "ok"})
}
