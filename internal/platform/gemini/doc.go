// Package gemini provides an implementation of the generation.TextGenerator
// interface that uses Google's Gemini API for producing search suggestion text.
//
// This package is an infrastructure adapter: it translates a prompt into a
// Gemini GenerateContent call and the response back into plain text, without
// exposing the details of the external service to the suggestion pipeline.
//
// The API credential is read through a KeySource on every call. A fresh
// genai client is created per request from that credential, so a key set or
// rotated in the environment takes effect on the next request without any
// caching in this package.
//
// Provider errors are classified into the generation package's sentinel
// errors: missing credentials, rejected credentials, timeouts, safety blocks,
// empty responses and general transport failures.
package gemini
