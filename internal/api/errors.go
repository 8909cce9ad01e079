package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMalformed indicates a response body that does not have the expected shape.
var ErrMalformed = errors.New("malformed response")

// TransportError reports a request that received no response.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError reports a non-2xx response. Message is the body's message
// field when present.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d %s", e.Code, http.StatusText(e.Code))
	}
	return fmt.Sprintf("server returned %d: %s", e.Code, e.Message)
}

// NoResponseMessage is shown when a request got no response.
const NoResponseMessage = "No response from server. Please try again."

// UserMessage renders err as the inline text shown after a create attempt.
// Errors outside the HTTP taxonomy render as fallback.
func UserMessage(err error, fallback string) string {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		msg := statusErr.Message
		if msg == "" {
			msg = "Unknown server error"
		}
		return "Error: " + msg
	}
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return NoResponseMessage
	}
	return fallback
}
