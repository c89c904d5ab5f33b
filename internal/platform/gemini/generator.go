package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/lexsuggest/internal/config"
	"github.com/phrazzld/lexsuggest/internal/generation"
	"github.com/phrazzld/lexsuggest/internal/redact"
	"google.golang.org/genai"
)

// KeySource returns the current API credential. It is called once per request.
type KeySource func() string

// contentGenerator is the part of the genai Models service used here.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// clientFactory creates a content generator authenticated with apiKey.
type clientFactory func(ctx context.Context, apiKey string) (contentGenerator, error)

// newGenAIModels creates a genai client for the Gemini API backend.
func newGenAIModels(ctx context.Context, apiKey string) (contentGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return client.Models, nil
}

// Generator implements the generation.TextGenerator interface using
// Google's Gemini API.
type Generator struct {
	// logger is used for structured logging
	logger *slog.Logger

	// model is the name of the Gemini model to use
	model string

	// keys supplies the API credential at call time
	keys KeySource

	// newClient creates the Gemini client for one request
	newClient clientFactory
}

// NewGenerator creates a new Gemini-backed text generator.
//
// Parameters:
//   - logger: A structured logger for operation logging
//   - cfg: LLM configuration containing the model name
//   - keys: Source of the API credential, read on every request
//
// Returns:
//   - A properly initialized Generator or an error if the configuration is invalid
func NewGenerator(logger *slog.Logger, cfg config.LLMConfig, keys KeySource) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	if keys == nil {
		return nil, fmt.Errorf("%w: key source cannot be nil", generation.ErrInvalidConfig)
	}

	return &Generator{
		logger:    logger.With("component", "gemini_generator"),
		model:     cfg.ModelName,
		keys:      keys,
		newClient: newGenAIModels,
	}, nil
}

// Model returns the configured model name.
func (g *Generator) Model() string {
	return g.model
}

// GenerateText sends the prompt to Gemini and returns the concatenated text
// of the first candidate. JSON output is requested, but the caller must still
// treat the text as untrusted.
func (g *Generator) GenerateText(ctx context.Context, prompt string) (string, error) {
	apiKey := strings.TrimSpace(g.keys())
	if apiKey == "" {
		g.logger.WarnContext(ctx, "Gemini API key is not configured")
		return "", generation.ErrMissingCredential
	}

	client, err := g.newClient(ctx, apiKey)
	if err != nil {
		g.logger.ErrorContext(ctx, "Failed to create Gemini client",
			"error", redact.Error(err))
		return "", fmt.Errorf("%w: failed to create Gemini client: %w", generation.ErrTransport, err)
	}

	g.logger.DebugContext(ctx, "Making Gemini API call",
		"model", g.model,
		"prompt_length", len(prompt))

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}
	resp, err := client.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		classified := classifyError(err)
		g.logger.ErrorContext(ctx, "Gemini API call failed",
			"model", g.model,
			"error", redact.Error(classified))
		return "", classified
	}

	text, err := responseText(resp)
	if err != nil {
		g.logger.WarnContext(ctx, "Gemini API returned no usable text",
			"model", g.model,
			"error", err)
		return "", err
	}

	g.logger.DebugContext(ctx, "Gemini API call successful",
		"model", g.model,
		"response_length", len(text))

	return text, nil
}

// responseText extracts the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("%w: prompt blocked: %s",
				generation.ErrContentBlocked, resp.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: response blocked by safety filters", generation.ErrContentBlocked)
	}

	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}

	return b.String(), nil
}
