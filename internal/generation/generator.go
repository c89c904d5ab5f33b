package generation

import "context"

// TextGenerator defines the interface for generating text from a prompt.
// This interface serves as a boundary between the application core and
// external AI/LLM services, following the hexagonal architecture pattern.
type TextGenerator interface {
	// GenerateText sends the prompt to the language model and returns the raw
	// response text. The text is untrusted and may not follow the prompt.
	//
	// Parameters:
	//   - ctx: Context for the operation, which carries the request deadline
	//   - prompt: The complete natural-language instruction
	//
	// Returns:
	//   - The raw response text
	//   - An error wrapping one of the errors in errors.go
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// TextGeneratorFunc adapts an ordinary function to the TextGenerator interface.
type TextGeneratorFunc func(ctx context.Context, prompt string) (string, error)

// GenerateText calls f(ctx, prompt).
func (f TextGeneratorFunc) GenerateText(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
