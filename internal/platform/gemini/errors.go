package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/phrazzld/lexsuggest/internal/generation"
	"google.golang.org/genai"
)

// classifyError maps an error from the genai client onto the generation
// package's error taxonomy.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", generation.ErrTimeout, err)
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: status %d: %w", generation.ErrUnauthorized, apiErr.Code, err)
		case http.StatusBadRequest:
			// Gemini reports an invalid API key as a 400 with this status
			if apiErr.Status == "INVALID_ARGUMENT" && strings.Contains(apiErr.Message, "API key") {
				return fmt.Errorf("%w: status %d: %w", generation.ErrUnauthorized, apiErr.Code, err)
			}
		}
		return fmt.Errorf("%w: status %d: %w", generation.ErrTransport, apiErr.Code, err)
	}

	return fmt.Errorf("%w: %w", generation.ErrTransport, err)
}
