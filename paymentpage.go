package client

import (
	"fmt"

	"github.com/google/go-querystring/query"
)

// PaymentPageConfig pre-fills the hosted payment page. The *Lock fields stop
// the end user from editing the matching value.
type PaymentPageConfig struct {
	Wallet           string `url:"wallet"`
	WalletLock       bool   `url:"walletLock"`
	FiatCurrency     string `url:"fiatCurrency"`
	FiatCurrencyLock bool   `url:"fiatCurrencyLock"`
	FiatAmount       string `url:"fiatAmount"`
	FiatAmountLock   bool   `url:"fiatAmountLock"`
	CryptoCurrency   string `url:"cryptoCurrency"`
	ExternalID       string `url:"externalId"`
	PartnerAccountID string `url:"partnerAccountId"`
}

// PaymentPage builds links to the embeddable payment page.
type PaymentPage struct {
	host   string
	config PaymentPageConfig
}

// NewPaymentPage returns a page on env's payment page host.
func NewPaymentPage(env Environment, config PaymentPageConfig) *PaymentPage {
	return &PaymentPage{host: env.PaymentPageHost(), config: config}
}

// Host returns the page's base URL.
func (p *PaymentPage) Host() string { return p.host }

// URL returns host + "?" + the encoded configuration.
func (p *PaymentPage) URL() (string, error) {
	v, err := query.Values(p.config)
	if err != nil {
		return "", fmt.Errorf("gatefi: encoding payment page config: %w", err)
	}
	return p.host + "?" + v.Encode(), nil
}
