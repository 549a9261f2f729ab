package botapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
)

// ErrorKind classifies a failed backend call.
type ErrorKind int

const (
	// ErrKindConfig means the client itself is unusable (no base URL).
	ErrKindConfig ErrorKind = iota
	// ErrKindConnection means the backend could not be reached at all.
	ErrKindConnection
	// ErrKindTimeout means the request exceeded its deadline.
	ErrKindTimeout
	// ErrKindHTTP means the backend answered with a non-2xx status.
	ErrKindHTTP
	// ErrKindDecode means the response body was not valid JSON.
	ErrKindDecode
	// ErrKindSchema means valid JSON was missing an expected top-level key.
	ErrKindSchema
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrKindConfig:
		return "config"
	case ErrKindConnection:
		return "connection"
	case ErrKindTimeout:
		return "timeout"
	case ErrKindHTTP:
		return "http"
	case ErrKindDecode:
		return "decode"
	case ErrKindSchema:
		return "schema"
	default:
		return "unknown"
	}
}

// Error is the typed failure every client call returns. Status is set only
// for ErrKindHTTP; Message carries the backend's own error text when the
// body had the {error: ...} shape.
type Error struct {
	Kind     ErrorKind
	Endpoint string
	Status   int
	Message  string
	Err      error
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrKindHTTP:
		if e.Message != "" {
			return fmt.Sprintf("%s: HTTP %d: %s", e.Endpoint, e.Status, e.Message)
		}
		return fmt.Sprintf("%s: HTTP %d", e.Endpoint, e.Status)
	default:
		return fmt.Sprintf("%s: %s error: %s", e.Endpoint, e.Kind, e.Message)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Recoverable reports whether the failure clears on a later poll. Only
// configuration errors are fatal.
func (e *Error) Recoverable() bool {
	return e.Kind != ErrKindConfig
}

// classifyTransport sorts a transport-level failure into timeout or
// connection.
func classifyTransport(endpoint string, err error) *Error {
	kind := ErrKindConnection

	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = ErrKindTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		kind = ErrKindTimeout
	}

	msg := err.Error()
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		msg = urlErr.Err.Error()
	}

	return &Error{Kind: kind, Endpoint: endpoint, Message: msg, Err: err}
}

// AsError extracts a typed client error, when present.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
