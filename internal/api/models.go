package api

import "github.com/phrazzld/lexsuggest/internal/domain"

// SuggestionsRequest is the query of a suggestions request, taken from the
// q parameter or from a JSON body.
type SuggestionsRequest struct {
	Query string `json:"query" validate:"required,max=200"`
}

// SuggestionsResponse defines the successful response of the suggestions
// endpoint. Suggestions is never null.
type SuggestionsResponse struct {
	// Query is the normalized query the suggestions belong to
	Query string `json:"query"`

	// Suggestions holds at most five entries in provider order
	Suggestions []domain.Suggestion `json:"suggestions"`

	// Status names the outcome, for example "ok" or "malformed_response"
	Status string `json:"status"`
}

// HealthResponse is the body of the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}
