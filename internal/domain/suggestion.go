package domain

// MaxSuggestions is the maximum number of suggestions exposed for one query.
const MaxSuggestions = 5

// Suggestion is one candidate case reference returned for a query.
// Field content is passed through from the language model as is.
type Suggestion struct {
	Title string `json:"title"`
	Year  string `json:"year"`
	Court string `json:"court"`
	Brief string `json:"brief"`
}

// SuggestionList is an ordered sequence of suggestions bound to exactly one
// query snapshot. Lists are replaced as a whole, never edited in place.
type SuggestionList struct {
	// Query is the stabilized query the list was produced for.
	Query Query `json:"query"`

	// Generation identifies the search that produced the list within a session.
	// Zero means the list was not produced by a session search.
	Generation uint64 `json:"-"`

	// Items holds at most MaxSuggestions entries in provider order.
	Items []Suggestion `json:"suggestions"`
}

// NewSuggestionList builds a list for the query, keeping at most
// MaxSuggestions items. The input slice is copied.
func NewSuggestionList(query Query, items []Suggestion) SuggestionList {
	if len(items) > MaxSuggestions {
		items = items[:MaxSuggestions]
	}
	copied := make([]Suggestion, len(items))
	copy(copied, items)
	return SuggestionList{Query: query, Items: copied}
}

// EmptySuggestionList returns a list with no items for the query.
func EmptySuggestionList(query Query) SuggestionList {
	return SuggestionList{Query: query, Items: []Suggestion{}}
}

// Len returns the number of suggestions.
func (l SuggestionList) Len() int {
	return len(l.Items)
}

// IsEmpty reports whether the list has no suggestions.
func (l SuggestionList) IsEmpty() bool {
	return len(l.Items) == 0
}

// Titles returns suggestion titles in order.
func (l SuggestionList) Titles() []string {
	titles := make([]string, len(l.Items))
	for i, s := range l.Items {
		titles[i] = s.Title
	}
	return titles
}
