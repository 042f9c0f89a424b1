package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/lubluniky/gatefi-client-go/internal/transport"
)

// TransportError is a connection or I/O failure; it is never retried.
type TransportError = transport.TransportError

// DecodeError means a success response did not decode into the expected
// type. Body holds the raw response.
type DecodeError = transport.DecodeError

// ProtocolError is a non-success status from the gateway.
type ProtocolError = transport.ProtocolError

// Sentinel errors for the statuses the gateway documents. A *ProtocolError
// matches them through errors.Is.
var (
	ErrBadRequest         = transport.ErrBadRequest
	ErrUnauthorized       = transport.ErrUnauthorized
	ErrInternalServer     = transport.ErrInternalServer
	ErrServiceUnavailable = transport.ErrServiceUnavailable
)

// ValidationError indicates invalid input parameters.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("gatefi validation: %s: %s", e.Field, e.Message)
}

// IsRetryable reports whether err looks transient: a transport failure, or
// a 5xx / 429 status. The client itself never retries.
func IsRetryable(err error) bool {
	var pe *ProtocolError
	if errors.As(err, &pe) {
		return pe.StatusCode >= 500 || pe.StatusCode == http.StatusTooManyRequests
	}
	var te *TransportError
	return errors.As(err, &te) && !errors.Is(err, context.Canceled)
}
