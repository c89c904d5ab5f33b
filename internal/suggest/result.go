package suggest

import "github.com/phrazzld/lexsuggest/internal/domain"

// Kind classifies the outcome of a fetch.
type Kind int

const (
	// KindOK means the response parsed into a (possibly empty) list.
	KindOK Kind = iota

	// KindTooShort means the query was below the minimum length and no
	// request was made.
	KindTooShort

	// KindInvalid means the query failed validation and no request was made.
	KindInvalid

	// KindEmpty means the response was valid JSON without a suggestions array.
	KindEmpty

	// KindTransport means the provider could not be reached or refused the
	// request.
	KindTransport

	// KindMalformed means the response text was not valid JSON.
	KindMalformed
)

// String returns the status name used in logs and API responses.
func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindTooShort:
		return "too_short"
	case KindInvalid:
		return "invalid"
	case KindEmpty:
		return "empty"
	case KindTransport:
		return "transport_error"
	case KindMalformed:
		return "malformed_response"
	default:
		return "unknown"
	}
}

// Result is the typed outcome of one fetch. Suggestions is always usable;
// it is empty for every kind except KindOK.
type Result struct {
	Kind        Kind
	Suggestions domain.SuggestionList

	// Err holds the classified failure for diagnostics. It is nil for
	// KindOK, KindTooShort and KindEmpty.
	Err error
}

// Failed reports whether the fetch failed, as opposed to finding nothing.
func (r Result) Failed() bool {
	return r.Kind == KindTransport || r.Kind == KindMalformed
}

func emptyResult(q domain.Query, kind Kind, err error) Result {
	return Result{
		Kind:        kind,
		Suggestions: domain.EmptySuggestionList(q),
		Err:         err,
	}
}
