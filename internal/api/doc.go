// Package api handles incoming HTTP requests, request validation, and
// response formatting for the suggestion service. It acts as an adapter
// between browser clients, which debounce input on their side, and the
// suggestion fetcher.
//
// Provider and parse failures are not HTTP errors: the fetcher is the error
// boundary, so such requests still answer 200 with an empty list and a status
// naming the outcome. Only invalid requests produce error responses.
package api
