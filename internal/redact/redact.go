// Package redact provides utilities for redacting sensitive information from strings
// before they are logged or returned in error responses. Language model provider
// errors frequently echo the request URL, which carries the API key, so every
// provider error passes through this package before it reaches a log line.
package redact

import (
	"regexp"
	"sync"
)

// Constants for redaction placeholders
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
)

// rule pairs a pattern with its replacement template. Templates may refer to
// capture groups, so a prefix such as "?key=" can be kept.
type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// Precompiled regex patterns, applied in order
var (
	// Google API keys (Gemini, Maps, ...) have a fixed prefix and length
	googleKeyRegex = regexp.MustCompile(`AIza[0-9A-Za-z_\-]{35}`)

	// API keys passed as URL query parameters
	queryKeyRegex = regexp.MustCompile(`(?i)([?&](?:key|api_key|apikey|access_token)=)[^&\s"']+`)

	// Keys sent in request headers
	headerKeyRegex = regexp.MustCompile(`(?i)(x-goog-api-key|x-api-key)(["'\s:=]+)[^"'\s,]+`)

	// Bearer tokens in Authorization headers
	bearerRegex = regexp.MustCompile(`(?i)(bearer\s+)[A-Za-z0-9_\-.~+/]{8,}=*`)

	// Credentials and tokens in key=value or key: value form
	apiKeyRegex = regexp.MustCompile(
		`(?i)(api[_-]?key|token|secret|password)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
	)

	rules = []rule{
		{pattern: googleKeyRegex, replacement: RedactedKeyPlaceholder},
		{pattern: queryKeyRegex, replacement: "${1}" + RedactedKeyPlaceholder},
		{pattern: headerKeyRegex, replacement: "${1}${2}" + RedactedKeyPlaceholder},
		{pattern: bearerRegex, replacement: "${1}" + RedactedCredentialPlaceholder},
		{pattern: apiKeyRegex, replacement: "${1}${2}" + RedactedKeyPlaceholder},
	}

	mu sync.RWMutex
)

// String redacts sensitive information from the input string
func String(input string) string {
	if input == "" {
		return input
	}

	mu.RLock()
	defer mu.RUnlock()

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}

	return result
}

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}

// Secret masks a credential for display, keeping only whether it is set.
func Secret(s string) string {
	if s == "" {
		return ""
	}
	return RedactionPlaceholder
}
