package suggest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/phrazzld/lexsuggest/internal/domain"
	"github.com/tidwall/gjson"
)

// ErrMalformedResponse is returned when the response text is not valid JSON.
var ErrMalformedResponse = errors.New("language model response is not valid JSON")

// parseSuggestions extracts suggestions from untrusted response text.
//
// Text that is not JSON yields ErrMalformedResponse. Valid JSON without a
// suggestions array yields KindEmpty. Array members that are not objects are
// skipped; scalar fields are read as strings and unknown fields are ignored.
func parseSuggestions(text string) ([]domain.Suggestion, Kind, error) {
	body := stripCodeFence(text)
	if body == "" || !gjson.Valid(body) {
		return nil, KindMalformed, fmt.Errorf("%w: %d bytes", ErrMalformedResponse, len(text))
	}

	list := gjson.Get(body, "suggestions")
	if !list.IsArray() {
		return nil, KindEmpty, nil
	}

	items := make([]domain.Suggestion, 0, domain.MaxSuggestions)
	list.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			return true
		}
		items = append(items, domain.Suggestion{
			Title: fieldString(item, "title"),
			Year:  fieldString(item, "year"),
			Court: fieldString(item, "court"),
			Brief: fieldString(item, "brief"),
		})
		return len(items) < domain.MaxSuggestions
	})

	return items, KindOK, nil
}

// fieldString returns a scalar field as a string. Numbers keep their JSON
// spelling; null and missing fields become "".
func fieldString(item gjson.Result, name string) string {
	v := item.Get(name)
	switch v.Type {
	case gjson.String:
		return v.Str
	case gjson.Number, gjson.True, gjson.False:
		return v.Raw
	case gjson.JSON:
		return v.Raw
	default:
		return ""
	}
}

// stripCodeFence removes one surrounding Markdown code fence, with or
// without a language tag.
func stripCodeFence(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}

	s = strings.TrimSuffix(s[3:], "```")
	// Drop the info string, e.g. "json"
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		if info := strings.TrimSpace(s[:nl]); !strings.ContainsAny(info, "{[") {
			s = s[nl+1:]
		}
	}
	return strings.TrimSpace(s)
}
