package client

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/lubluniky/gatefi-client-go/internal/transport"
)

// GetPlatformConfig returns the onramp configuration: enabled features,
// countries, payment methods and asset limits.
func (c *Client) GetPlatformConfig(ctx context.Context) (*PlatformConfig, error) {
	cfg, err := call[PlatformConfig](ctx, c, EndpointPlatformConfig, nil)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// GetQuote prices a fiat-to-crypto purchase. The partner account id is
// taken from the client credentials.
func (c *Client) GetQuote(ctx context.Context, params QuoteParams) (*Quote, error) {
	if err := validateOrder(params.Amount.IsPositive(), params.Crypto, params.Fiat); err != nil {
		return nil, err
	}
	req := quoteRequest{
		Amount:           params.Amount.String(),
		Crypto:           params.Crypto,
		Fiat:             params.Fiat,
		PartnerAccountID: c.creds.PartnerID,
		Payment:          params.Payment,
		Region:           params.Region,
	}
	q, err := call[Quote](ctx, c, EndpointQuotes, req)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// BuyAsset creates an order. The gateway answers with a redirect to its
// hosted checkout; the final URL after redirects is returned so the caller
// can forward the end user there.
func (c *Client) BuyAsset(ctx context.Context, params BuyAssetParams) (*BuyAssetResult, error) {
	if err := validateOrder(params.Amount.IsPositive(), params.Crypto, params.Fiat); err != nil {
		return nil, err
	}
	if params.WalletAddress == "" {
		return nil, &ValidationError{Field: "walletAddress", Message: "is required"}
	}
	orderID := params.OrderCustomID
	if orderID == "" {
		orderID = NewOrderCustomID()
	}

	req := buyAssetRequest{
		Amount:           params.Amount.String(),
		Crypto:           params.Crypto,
		Fiat:             params.Fiat,
		OrderCustomID:    orderID,
		PartnerAccountID: c.creds.PartnerID,
		Payment:          params.Payment,
		RedirectURL:      params.RedirectURL,
		Region:           params.Region,
		WalletAddress:    params.WalletAddress,
	}
	treq, resp, err := c.exchange(ctx, EndpointBuyAsset, req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusOK {
		return &BuyAssetResult{RedirectURL: resp.URL, OrderCustomID: orderID}, nil
	}
	result, err := transport.DecodeJSON[BuyAssetResult](treq, c.http.URL(treq), resp)
	if err != nil {
		return nil, err
	}
	result.OrderCustomID = orderID
	return &result, nil
}

// NewOrderCustomID returns a random order id suitable for BuyAssetParams.
func NewOrderCustomID() string {
	return uuid.NewString()
}

func validateOrder(positiveAmount bool, crypto, fiat string) error {
	if !positiveAmount {
		return &ValidationError{Field: "amount", Message: "must be positive"}
	}
	if crypto == "" {
		return &ValidationError{Field: "crypto", Message: "is required"}
	}
	if fiat == "" {
		return &ValidationError{Field: "fiat", Message: "is required"}
	}
	return nil
}
