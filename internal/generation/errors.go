package generation

import "errors"

// Common errors returned by text generators
var (
	// ErrInvalidConfig is returned when the generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrMissingCredential is returned when no API credential is configured at call time
	ErrMissingCredential = errors.New("language model API credential is not configured")

	// ErrUnauthorized is returned when the provider rejects the credential
	ErrUnauthorized = errors.New("language model provider rejected the credential")

	// ErrTransport is returned for network and provider-side failures
	ErrTransport = errors.New("language model request failed")

	// ErrTimeout is returned when the request exceeds its deadline
	ErrTimeout = errors.New("language model request timed out")

	// ErrContentBlocked is returned when the LLM blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrInvalidResponse is returned when the LLM response has no usable text
	ErrInvalidResponse = errors.New("invalid response from language model")
)

// IsTransportFailure reports whether err belongs to the transport/authorization
// class of failures: anything that prevented a usable text response.
func IsTransportFailure(err error) bool {
	return errors.Is(err, ErrMissingCredential) ||
		errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrTransport) ||
		errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrContentBlocked) ||
		errors.Is(err, ErrInvalidResponse)
}
