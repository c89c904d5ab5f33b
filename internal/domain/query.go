package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// MinQueryLength is the shortest query, in runes, that is sent to the
	// language model. Shorter queries short-circuit to an empty result.
	MinQueryLength = 2

	// MaxQueryLength bounds the query embedded in a prompt.
	MaxQueryLength = 200
)

// Query is the text typed by the user. It is never persisted and the latest
// value always wins.
type Query string

// NewQuery normalizes raw input by trimming surrounding whitespace.
func NewQuery(raw string) Query {
	return Query(strings.TrimSpace(raw))
}

// String returns the query text.
func (q Query) String() string {
	return string(q)
}

// Len returns the length of the query in runes.
func (q Query) Len() int {
	return utf8.RuneCountInString(string(q))
}

// IsSearchable reports whether the query is long enough to be sent to the
// language model.
func (q Query) IsSearchable() bool {
	return q.Len() >= MinQueryLength
}

// Validate checks the query against the upper length bound.
// Short queries are valid; they simply produce no suggestions.
func (q Query) Validate() error {
	if q.Len() > MaxQueryLength {
		return fmt.Errorf("%w: %w: %d runes exceeds %d",
			ErrValidation, ErrQueryTooLong, q.Len(), MaxQueryLength)
	}
	return nil
}
