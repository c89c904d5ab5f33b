package suggest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"text/template"

	"github.com/phrazzld/lexsuggest/internal/domain"
	"github.com/phrazzld/lexsuggest/internal/generation"
)

// defaultPromptTemplate asks for exactly MaxSuggestions cases as strict JSON.
// QuotedQuery is the query as a JSON string literal.
const defaultPromptTemplate = `As an Indian legal assistant, suggest relevant legal cases for the search query {{.QuotedQuery}}.
Respond strictly with a single JSON object and nothing else: no Markdown, no commentary.
The object must have exactly this shape, with exactly {{.Count}} entries:
{
  "suggestions": [
    {
      "title": "Case name",
      "year": "Year",
      "court": "Court name",
      "brief": "One line description"
    }
  ]
}
All values must be strings.`

// promptData is the data passed to the prompt template.
type promptData struct {
	Query       string
	QuotedQuery string
	Count       int
}

// loadPromptTemplate parses the template at path, or the built-in template
// when path is empty.
func loadPromptTemplate(path string) (*template.Template, error) {
	if path == "" {
		return template.Must(template.New("suggestions").Parse(defaultPromptTemplate)), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read prompt template from %s: %v",
			generation.ErrInvalidConfig, path, err)
	}

	tmpl, err := template.New("suggestions").Option("missingkey=error").Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v",
			generation.ErrInvalidConfig, err)
	}
	return tmpl, nil
}

// buildPrompt renders the prompt for q.
func buildPrompt(tmpl *template.Template, q domain.Query) (string, error) {
	quoted, err := json.Marshal(q.String())
	if err != nil {
		return "", fmt.Errorf("failed to quote query: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, promptData{
		Query:       q.String(),
		QuotedQuery: string(quoted),
		Count:       domain.MaxSuggestions,
	}); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}
