// Package domain contains the core entities of the suggestion pipeline: the
// user's query and the suggestions produced for it. It is independent of the
// language model provider and of any delivery mechanism.
package domain
