package transport

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors matched by *ProtocolError via errors.Is.
var (
	ErrBadRequest         = errors.New("gatefi: bad request (400)")
	ErrUnauthorized       = errors.New("gatefi: unauthorized (401)")
	ErrInternalServer     = errors.New("gatefi: internal server error (500)")
	ErrServiceUnavailable = errors.New("gatefi: service unavailable (503)")
)

// TransportError is a connection or I/O failure. The request may or may not
// have reached the gateway.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("gatefi: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError means a success response did not match the expected schema.
// Body holds the raw response for diagnostics.
type DecodeError struct {
	URL  string
	Body string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("gatefi: decoding response from %s: %v: %s", e.URL, e.Err, e.Body)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ProtocolError is a non-success status returned by the gateway.
type ProtocolError struct {
	StatusCode int
	Method     string
	URL        string
	// Request echoes the query or JSON body sent; set for 400 responses.
	Request string
	Body    string
}

func (e *ProtocolError) Error() string {
	switch e.StatusCode {
	case http.StatusBadRequest:
		return fmt.Sprintf("gatefi: %s %s returned 400: request: %q response: %q", e.Method, e.URL, e.Request, e.Body)
	case http.StatusUnauthorized, http.StatusInternalServerError, http.StatusServiceUnavailable:
		return fmt.Sprintf("gatefi: %s %s returned %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("gatefi: %s %s returned %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// Is matches the status sentinels.
func (e *ProtocolError) Is(target error) bool {
	switch target {
	case ErrBadRequest:
		return e.StatusCode == http.StatusBadRequest
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrInternalServer:
		return e.StatusCode == http.StatusInternalServerError
	case ErrServiceUnavailable:
		return e.StatusCode == http.StatusServiceUnavailable
	}
	return false
}
