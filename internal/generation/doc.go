// Package generation defines the boundary between the suggestion pipeline and
// external AI/LLM text generation services such as Gemini. The TextGenerator
// interface is the injectable handle the suggestion fetcher calls; the errors
// in this package classify why a generation call failed.
package generation
