package chat

import (
	"fmt"
)

// MalformedInputError the inbound request body is not a JSON object
type MalformedInputError struct {
	Err error
}

func (e *MalformedInputError) Error() string { return e.Err.Error() }
func (e *MalformedInputError) Unwrap() error { return e.Err }

// UpstreamError the upstream API answered with a non-2xx status.
// Body is the upstream response text, relayed to the caller as is.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream responded with status %d: %s", e.StatusCode, e.Body)
}

// TransportError the upstream call failed or returned an unreadable body
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }
