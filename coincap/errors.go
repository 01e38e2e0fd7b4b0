package coincap

import (
	"errors"
	"fmt"
)

// NetworkError reports an unreachable endpoint, a timeout or a non-success
// HTTP status. It is the recoverable failure class: callers keep previously
// fetched data and may retry on the next trigger.
type NetworkError struct {
	// URL is the request URL that failed
	URL string

	// StatusCode is the HTTP status, or 0 for transport-level failures
	StatusCode int

	// Err is the underlying error
	Err error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("coincap: request to %s failed with status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("coincap: request to %s failed: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsNetworkError reports whether err is or wraps a NetworkError
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}
