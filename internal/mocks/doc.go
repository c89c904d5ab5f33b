// Package mocks provides centralized mock implementations for testing.
//
// This package contains mock implementations of interfaces used throughout the application,
// facilitating consistent and DRY testing across the codebase. Instead of defining
// inline fakes of the language model in individual test files, these standardized
// mock implementations can be reused.
//
// Usage:
//
// Import the mocks package in your test file and create the required mock:
//
//	import "github.com/phrazzld/lexsuggest/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    gen := &mocks.MockTextGenerator{
//	        GenerateTextFn: func(ctx context.Context, prompt string) (string, error) {
//	            return `{"suggestions": []}`, nil
//	        },
//	    }
//
//	    // Use the mock in your test...
//	}
package mocks
