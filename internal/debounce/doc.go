// Package debounce provides a generic debouncer that suppresses rapid updates
// to a value and publishes only the latest value after a quiet period.
package debounce
