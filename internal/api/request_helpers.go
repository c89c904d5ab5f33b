package api

import (
	"fmt"
	"net/http"

	"github.com/phrazzld/lexsuggest/internal/api/shared"
	"github.com/phrazzld/lexsuggest/internal/domain"
)

// queryParam is the URL parameter carrying the search text.
const queryParam = "q"

// parseSuggestionsRequest reads the query from the q parameter of a GET
// request or the JSON body of a POST request, and validates it. The query is
// normalized before validation so the limits apply to the text that is searched.
func parseSuggestionsRequest(w http.ResponseWriter, r *http.Request) (SuggestionsRequest, error) {
	var req SuggestionsRequest

	if r.Method == http.MethodPost {
		if err := shared.DecodeJSON(w, r, &req); err != nil {
			return req, fmt.Errorf("%w: %w", ErrInvalidBody, err)
		}
	} else {
		req.Query = r.URL.Query().Get(queryParam)
	}

	req.Query = domain.NewQuery(req.Query).String()

	if err := shared.ValidateRequest(&req); err != nil {
		return req, err
	}
	return req, nil
}
