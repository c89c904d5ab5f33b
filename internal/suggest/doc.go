// Package suggest implements the debounced suggestion pipeline.
//
// A Fetcher turns one stabilized query into a single language model request
// and parses the untrusted response text into at most five suggestions. It is
// the error boundary of the pipeline: every outcome, including provider and
// parse failures, is reported as a Result with an empty list rather than an
// error.
//
// A Session owns the visible state of one search box. It debounces query
// changes, runs one fetch per stabilized query, and applies a result only when
// it belongs to the most recently issued search, so a slow response for an old
// query never replaces the suggestions of a newer one.
package suggest
