package tracker

import (
	"errors"
	"fmt"
)

var (
	// ErrThrottled indicates the retry budget was exhausted under sustained
	// upstream rate limiting.
	ErrThrottled = errors.New("rate limit retries exhausted")

	// ErrUpstream indicates a non-2xx, non-429 upstream response.
	ErrUpstream = errors.New("upstream error")

	// ErrTransport indicates a network-level failure.
	ErrTransport = errors.New("transport error")
)

// APIError wraps a failed upstream call with the endpoint and subject it was
// issued for. Use errors.Is against the sentinel errors above to classify it.
type APIError struct {
	Endpoint Endpoint
	Subject  string
	Status   int
	Err      error
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s %s: status %d: %v", e.Endpoint, e.Subject, e.Status, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Endpoint, e.Subject, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}
