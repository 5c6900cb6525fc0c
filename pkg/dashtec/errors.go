package dashtec

import "errors"

// FetchError describes why a search failed.
// Error returns a human-readable reason suitable for a report cell.
type FetchError struct {
	kind   error // one of the package sentinels
	cause  error
	reason string

	// StatusCode is set when the API answered with a non-200 status
	StatusCode int
}

func newFetchError(kind error, reason string, cause error) *FetchError {
	return &FetchError{kind: kind, reason: reason, cause: cause}
}

// Error implements the error interface
func (e *FetchError) Error() string {
	return e.reason
}

// Unwrap returns the underlying cause for error unwrapping
func (e *FetchError) Unwrap() error {
	return e.cause
}

// Is matches the failure kind as well as the cause chain
func (e *FetchError) Is(target error) bool {
	if target == e.kind {
		return true
	}
	return e.cause != nil && errors.Is(e.cause, target)
}
