package client

import (
	"context"
)

// GetRates returns the current conversion rates.
func (c *Client) GetRates(ctx context.Context) (*Rates, error) {
	rates, err := call[Rates](ctx, c, EndpointRates, nil)
	if err != nil {
		return nil, err
	}
	return &rates, nil
}

// GetPaymentConfig returns nationalities, countries and per-asset payment
// settings available to the merchant.
func (c *Client) GetPaymentConfig(ctx context.Context) (*PaymentConfig, error) {
	cfg, err := call[PaymentConfig](ctx, c, EndpointPaymentConfig, nil)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// GetPaymentMethods returns the payment methods available for a fiat
// currency (ISO 4217) in a country (ISO 3166 alpha-2).
func (c *Client) GetPaymentMethods(ctx context.Context, currencyISO, countryCode string) (PaymentMethods, error) {
	if currencyISO == "" {
		return nil, &ValidationError{Field: "currency_iso", Message: "is required"}
	}
	req := paymentMethodsRequest{CurrencyISO: currencyISO, CountryCode: countryCode}
	return call[PaymentMethods](ctx, c, EndpointPaymentMethods, req)
}
