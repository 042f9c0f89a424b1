// Package callback receives order status notifications pushed by the
// gateway. Each delivery carries a `signature` header holding the hex
// HMAC-SHA256 of the raw body under the partner's secret key.
package callback

import (
	"errors"

	"github.com/lubluniky/gatefi-client-go/internal/signing"
)

// HeaderSignature carries the body signature of a delivery.
const HeaderSignature = signing.HeaderSignature

// ErrInvalidSignature is returned when a body does not match its signature.
var ErrInvalidSignature = errors.New("gatefi callback: invalid signature")

// Payload is the body of an order status callback.
type Payload struct {
	CryptoAmount      string   `json:"cryptoAmount"`
	CryptoCurrency    string   `json:"cryptoCurrency"`
	CustomOrderID     string   `json:"customOrderId"`
	DestinationWallet string   `json:"destinationWallet"`
	FiatAmount        string   `json:"fiatAmount"`
	FiatCurrency      string   `json:"fiatCurrency"`
	Status            string   `json:"status"`
	TapOnFeeAmount    *string  `json:"tapOnFeeAmount"`
	TapOnFeeCurrency  *string  `json:"tapOnFeeCurrency"`
	TransactionHashes []string `json:"transactionHashes"`
	TransactionID     string   `json:"transactionId"`
}

// Key identifies one state transition of one transaction.
func (p *Payload) Key() string {
	return p.TransactionID + ":" + p.Status
}

// Verify checks signature against body. The body must be the exact bytes
// received; re-encoding a decoded Payload changes the signature. An empty
// secret never verifies.
func Verify(secret string, body []byte, signature string) error {
	if secret == "" || signature == "" || !signing.Verify([]byte(secret), body, signature) {
		return ErrInvalidSignature
	}
	return nil
}

// Sign returns the signature the gateway would attach to body.
func Sign(secret string, body []byte) string {
	return signing.Sign([]byte(secret), body)
}
