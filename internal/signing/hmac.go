package signing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Sign creates an HMAC-SHA256 signature of message keyed by key.
//
// The result is the 32-byte digest encoded as 64 lowercase hex characters.
// Sign is total: empty keys and empty messages are valid input.
func Sign(key, message []byte) string {
	mac := hmac.New(sha256.New, key)
	mac.Write(message)
	return hex.EncodeToString(mac.Sum(nil))
}

// SignRequest signs an API call. The message is the uppercase HTTP method
// immediately followed by the endpoint path, e.g. "GET/onramp/v1/quotes".
//
// Query parameters and request bodies are not part of the message, so every
// call to the same endpoint carries the same signature.
func SignRequest(key []byte, method, path string) string {
	return Sign(key, []byte(method+path))
}

// Verify reports whether signature is the hex HMAC-SHA256 of message under
// key. Hex case is ignored; the comparison is constant time.
func Verify(key, message []byte, signature string) bool {
	given, err := hex.DecodeString(strings.TrimSpace(signature))
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, key)
	mac.Write(message)
	return hmac.Equal(given, mac.Sum(nil))
}
