package client

import (
	"github.com/shopspring/decimal"
)

// The models below are pinned to the /onramp/v1 and /api/v1 revision of
// the gateway. Amounts use decimal.Decimal, which accepts both the quoted
// strings of the onramp API and the bare numbers of the payments API.

// ---------------------------------------------------------------------------
// Platform configuration
// ---------------------------------------------------------------------------

// PlatformConfig is the onramp configuration published for the partner.
type PlatformConfig struct {
	Version   string            `json:"version"`
	UpdatedAt string            `json:"updatedAt"`
	Features  PlatformFeatures  `json:"features"`
	Countries []PlatformCountry `json:"countries"`
	Payments  []PlatformPayment `json:"payments"`
	Fiat      []PlatformAsset   `json:"fiat"`
	Crypto    []PlatformAsset   `json:"crypto"`
}

// PlatformFeatures reports which onramp features are enabled.
type PlatformFeatures struct {
	Quotes         Feature `json:"quotes"`
	Buy            Feature `json:"buy"`
	OrderTracking  Feature `json:"orderTracking"`
	OrderAnalytics Feature `json:"orderAnalytics"`
}

// Feature is a single on/off switch.
type Feature struct {
	Enabled bool `json:"enabled"`
}

type PlatformCountry struct {
	ID string `json:"id"`
}

type PlatformPayment struct {
	ID string `json:"id"`
}

// PlatformAsset is a fiat or crypto asset with optional per-payment limits.
type PlatformAsset struct {
	ID            string         `json:"id"`
	PaymentLimits []PaymentLimit `json:"paymentLimits,omitempty"`
}

// PaymentLimit bounds the amount accepted for one payment method.
type PaymentLimit struct {
	ID  string          `json:"id"`
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// Limit returns the limit for paymentID, if the asset declares one.
func (a PlatformAsset) Limit(paymentID string) (PaymentLimit, bool) {
	for _, l := range a.PaymentLimits {
		if l.ID == paymentID {
			return l, true
		}
	}
	return PaymentLimit{}, false
}

// Contains reports whether amount lies within [Min, Max].
func (l PaymentLimit) Contains(amount decimal.Decimal) bool {
	return amount.GreaterThanOrEqual(l.Min) && amount.LessThanOrEqual(l.Max)
}

// FiatAsset returns the fiat asset with the given id.
func (p *PlatformConfig) FiatAsset(id string) (PlatformAsset, bool) {
	return findAsset(p.Fiat, id)
}

// CryptoAsset returns the crypto asset with the given id.
func (p *PlatformConfig) CryptoAsset(id string) (PlatformAsset, bool) {
	return findAsset(p.Crypto, id)
}

func findAsset(assets []PlatformAsset, id string) (PlatformAsset, bool) {
	for _, a := range assets {
		if a.ID == id {
			return a, true
		}
	}
	return PlatformAsset{}, false
}

// ---------------------------------------------------------------------------
// Quotes & buy
// ---------------------------------------------------------------------------

// QuoteParams are the caller-supplied inputs of GetQuote. Payment is a
// payment id from PlatformConfig.Payments.
type QuoteParams struct {
	Amount  decimal.Decimal
	Crypto  string
	Fiat    string
	Payment string
	Region  string
}

type quoteRequest struct {
	Amount           string `url:"amount"`
	Crypto           string `url:"crypto"`
	Fiat             string `url:"fiat"`
	PartnerAccountID string `url:"partnerAccountId"`
	Payment          string `url:"payment"`
	Region           string `url:"region"`
}

// Quote is the price offered for a fiat amount.
type Quote struct {
	ProcessingFee decimal.Decimal `json:"processingFee"`
	NetworkFee    decimal.Decimal `json:"networkFee"`
	AmountOut     decimal.Decimal `json:"amountOut"`
}

// BuyAssetParams are the caller-supplied inputs of BuyAsset. An empty
// OrderCustomID is replaced with a random UUID.
type BuyAssetParams struct {
	Amount        decimal.Decimal
	Crypto        string
	Fiat          string
	OrderCustomID string
	Payment       string
	RedirectURL   string
	Region        string
	WalletAddress string
}

type buyAssetRequest struct {
	Amount           string `url:"amount"`
	Crypto           string `url:"crypto"`
	Fiat             string `url:"fiat"`
	OrderCustomID    string `url:"orderCustomId"`
	PartnerAccountID string `url:"partnerAccountId"`
	Payment          string `url:"payment"`
	RedirectURL      string `url:"redirectUrl"`
	Region           string `url:"region"`
	WalletAddress    string `url:"walletAddress"`
}

// BuyAssetResult carries the checkout URL the end user must be sent to.
type BuyAssetResult struct {
	RedirectURL string `json:"redirect_url"`
	// OrderCustomID is the id the order was created with.
	OrderCustomID string `json:"-"`
}

// ---------------------------------------------------------------------------
// Rates & payment configuration
// ---------------------------------------------------------------------------

// Rates maps a base currency to its conversion table.
type Rates struct {
	List map[string]RateTable `json:"list"`
}

// RateTable maps a quote currency to its rate.
type RateTable struct {
	Rates map[string]decimal.Decimal `json:"rates"`
}

// Rate returns the rate from base to quote.
func (r *Rates) Rate(base, quote string) (decimal.Decimal, bool) {
	table, ok := r.List[base]
	if !ok {
		return decimal.Zero, false
	}
	rate, ok := table.Rates[quote]
	return rate, ok
}

// PaymentConfig is the merchant payment configuration.
type PaymentConfig struct {
	AvailableNationalities []string               `json:"availableNationalities"`
	AvailableCountries     []string               `json:"availableCountries"`
	Fiat                   map[string]FiatAsset   `json:"fiat"`
	Crypto                 map[string]CryptoAsset `json:"crypto"`
}

// FiatAsset lists the payment methods available for one fiat currency.
type FiatAsset struct {
	Methods map[string]PaymentMethodInfo `json:"methods"`
}

// PaymentMethodInfo describes limits and fees of a payment method.
// ProcessingFee is a percentage.
type PaymentMethodInfo struct {
	Min              decimal.Decimal `json:"min"`
	Max              decimal.Decimal `json:"max"`
	ProcessingFee    decimal.Decimal `json:"processingFee"`
	Precision        int             `json:"precision"`
	ProcessingFeeFix decimal.Decimal `json:"processingFeeFix"`
	ProcessingFeeMin decimal.Decimal `json:"processingFeeMin"`
	OpenMode         string          `json:"openMode"`
}

// Fee returns the processing fee charged on amount: the percentage part
// plus the fixed part, floored at ProcessingFeeMin and rounded to Precision.
func (m PaymentMethodInfo) Fee(amount decimal.Decimal) decimal.Decimal {
	fee := amount.Mul(m.ProcessingFee).Div(decimal.NewFromInt(100)).Add(m.ProcessingFeeFix)
	if fee.LessThan(m.ProcessingFeeMin) {
		fee = m.ProcessingFeeMin
	}
	return fee.Round(int32(m.Precision))
}

// CryptoAsset describes a purchasable crypto asset.
type CryptoAsset struct {
	Title      string          `json:"title"`
	Chain      string          `json:"type"`
	Symbol     string          `json:"symbol"`
	ChainID    string          `json:"chainId"`
	NetworkFee decimal.Decimal `json:"networkFee"`
	Precision  int             `json:"precision"`
	Min        decimal.Decimal `json:"min"`
	Max        decimal.Decimal `json:"max"`
}

// PaymentMethods maps a payment method id to its details.
type PaymentMethods map[string]PaymentMethodInfo

type paymentMethodsRequest struct {
	CurrencyISO string `url:"currency_iso"`
	CountryCode string `url:"country_code"`
}
