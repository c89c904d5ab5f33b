package suggest

import (
	"testing"

	"github.com/phrazzld/lexsuggest/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSuggestions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		text      string
		wantKind  Kind
		wantErr   error
		wantItems []domain.Suggestion
	}{
		{
			name:     "prose",
			text:     "Sorry, I cannot help with that.",
			wantKind: KindMalformed,
			wantErr:  ErrMalformedResponse,
		},
		{
			name:     "empty_text",
			text:     "   ",
			wantKind: KindMalformed,
			wantErr:  ErrMalformedResponse,
		},
		{
			name:     "truncated_json",
			text:     `{"suggestions": [{"title": "Kesavananda`,
			wantKind: KindMalformed,
			wantErr:  ErrMalformedResponse,
		},
		{
			name:     "json_with_trailing_commentary",
			text:     `{"suggestions": []} Hope this helps!`,
			wantKind: KindMalformed,
			wantErr:  ErrMalformedResponse,
		},
		{
			name:     "empty_object",
			text:     `{}`,
			wantKind: KindEmpty,
		},
		{
			name:     "suggestions_not_array",
			text:     `{"suggestions": "none"}`,
			wantKind: KindEmpty,
		},
		{
			name:     "top_level_array",
			text:     `[{"title": "A"}]`,
			wantKind: KindEmpty,
		},
		{
			name:      "empty_array",
			text:      `{"suggestions": []}`,
			wantKind:  KindOK,
			wantItems: []domain.Suggestion{},
		},
		{
			name: "full_entry",
			text: `{"suggestions": [{"title": "Maneka Gandhi v. Union of India", "year": "1978",
				"court": "Supreme Court of India", "brief": "Expanded Article 21."}]}`,
			wantKind: KindOK,
			wantItems: []domain.Suggestion{{
				Title: "Maneka Gandhi v. Union of India",
				Year:  "1978",
				Court: "Supreme Court of India",
				Brief: "Expanded Article 21.",
			}},
		},
		{
			name:     "numeric_year_missing_and_extra_fields",
			text:     `{"suggestions": [{"title": "A", "year": 1973, "citation": "AIR 1973 SC 1461", "court": null}]}`,
			wantKind: KindOK,
			wantItems: []domain.Suggestion{
				{Title: "A", Year: "1973"},
			},
		},
		{
			name:     "non_object_members_skipped",
			text:     `{"suggestions": ["A", 1, {"title": "B"}, null]}`,
			wantKind: KindOK,
			wantItems: []domain.Suggestion{
				{Title: "B"},
			},
		},
		{
			name:     "fenced_json",
			text:     "```json\n{\"suggestions\": [{\"title\": \"A\"}]}\n```",
			wantKind: KindOK,
			wantItems: []domain.Suggestion{
				{Title: "A"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, kind, err := parseSuggestions(tt.text)

			assert.Equal(t, tt.wantKind, kind)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, items)
				return
			}
			require.NoError(t, err)
			if tt.wantItems != nil {
				assert.Equal(t, tt.wantItems, items)
			}
		})
	}
}

func TestParseSuggestions_StopsAtMax(t *testing.T) {
	t.Parallel()

	text := `{"suggestions": [{"title":"1"},{"title":"2"},{"title":"3"},{"title":"4"},{"title":"5"},{"title":"6"},{"title":"7"}]}`

	items, kind, err := parseSuggestions(text)

	require.NoError(t, err)
	assert.Equal(t, KindOK, kind)
	require.Len(t, items, domain.MaxSuggestions)
	assert.Equal(t, "5", items[4].Title)
}

func TestStripCodeFence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: `  {"a":1}  `, want: `{"a":1}`},
		{name: "json_tag", in: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "no_tag", in: "```\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "single_line", in: "```{\"a\":1}```", want: `{"a":1}`},
		{name: "only_backticks", in: "```", want: "```"},
		{name: "prose_not_touched", in: "Here you go: ```json {}```", want: "Here you go: ```json {}```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripCodeFence(tt.in))
		})
	}
}

func TestKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ok", KindOK.String())
	assert.Equal(t, "too_short", KindTooShort.String())
	assert.Equal(t, "invalid", KindInvalid.String())
	assert.Equal(t, "empty", KindEmpty.String())
	assert.Equal(t, "transport_error", KindTransport.String())
	assert.Equal(t, "malformed_response", KindMalformed.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
