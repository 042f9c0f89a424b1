package client

import "github.com/lubluniky/gatefi-client-go/internal/signing"

// RequestSigner produces the per-call signature header. It holds only the
// shared secret and is safe for concurrent use.
type RequestSigner struct {
	secret []byte
}

// NewRequestSigner returns a signer for the given secret key.
func NewRequestSigner(secret string) *RequestSigner {
	return &RequestSigner{secret: []byte(secret)}
}

// Sign returns the hex HMAC-SHA256 of e's method followed by its path.
// Query strings and bodies never affect the result.
func (s *RequestSigner) Sign(e Endpoint) string {
	return s.sign(e.Method(), e.Path())
}

func (s *RequestSigner) sign(method, path string) string {
	return signing.SignRequest(s.secret, method, path)
}

// Sign returns the hex HMAC-SHA256 of message keyed by secret.
func Sign(secret, message string) string {
	return signing.Sign([]byte(secret), []byte(message))
}
