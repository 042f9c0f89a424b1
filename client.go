package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/go-querystring/query"

	"github.com/lubluniky/gatefi-client-go/internal/signing"
	"github.com/lubluniky/gatefi-client-go/internal/transport"
)

// Credentials identify the partner to the gateway. SecretKey signs requests
// and is never sent or logged.
type Credentials struct {
	PartnerID string
	AccessKey string
	SecretKey string
}

// LogValue keeps the secret out of structured logs.
func (c Credentials) LogValue() slog.Value {
	secret := ""
	if c.SecretKey != "" {
		secret = "[REDACTED]"
	}
	return slog.GroupValue(
		slog.String("partner_id", c.PartnerID),
		slog.String("access_key", c.AccessKey),
		slog.String("secret_key", secret),
	)
}

// Client is a GateFi REST API client. All fields are read-only after
// NewClient, so one Client may serve concurrent calls.
type Client struct {
	http   *transport.HTTPClient
	signer *RequestSigner
	creds  Credentials
	env    Environment
	logger *slog.Logger
}

type options struct {
	env        Environment
	baseURL    string
	creds      Credentials
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*options)

// WithEnvironment selects sandbox or production hosts. Default: Sandbox.
func WithEnvironment(env Environment) Option {
	return func(o *options) { o.env = env }
}

// WithBaseURL overrides the REST host derived from the environment.
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = u }
}

// WithCredentials sets the partner id, access key and secret key.
func WithCredentials(creds Credentials) Option {
	return func(o *options) { o.creds = creds }
}

// WithHTTPClient supplies the *http.Client used for every exchange.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithTimeout sets the per-request timeout. When combined with
// WithHTTPClient, the timeout applies to a copy of that client.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithLogger sets the structured logger. Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// NewClient creates a Client.
func NewClient(opts ...Option) *Client {
	o := options{env: Sandbox}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	baseURL := o.baseURL
	if baseURL == "" {
		baseURL = o.env.RESTHost()
	}

	topts := []transport.Option{transport.WithLogger(o.logger)}
	if o.httpClient != nil {
		topts = append(topts, transport.WithHTTPClient(o.httpClient))
	}
	if o.timeout > 0 {
		topts = append(topts, transport.WithTimeout(o.timeout))
	}

	c := &Client{
		http:   transport.NewHTTPClient(baseURL, topts...),
		signer: NewRequestSigner(o.creds.SecretKey),
		creds:  o.creds,
		env:    o.env,
		logger: o.logger,
	}
	c.logger.Debug("gatefi client created",
		slog.String("base_url", c.http.BaseURL()),
		slog.String("partner_id", c.creds.PartnerID))
	return c
}

// Environment returns the environment the client was built for.
func (c *Client) Environment() Environment { return c.env }

// PartnerID returns the configured partner account id.
func (c *Client) PartnerID() string { return c.creds.PartnerID }

// BaseURL returns the REST host requests are sent to.
func (c *Client) BaseURL() string { return c.http.BaseURL() }

// newRequest builds a signed request. GET params are encoded into the
// query string through their `url` tags; other methods send params as JSON.
func (c *Client) newRequest(method, path string, params any) (transport.Request, error) {
	req := transport.Request{
		Method: method,
		Path:   path,
		Header: signing.BuildHeaders(signing.Identity{
			PartnerID: c.creds.PartnerID,
			AccessKey: c.creds.AccessKey,
		}, c.signer.sign(method, path)),
	}
	if params == nil {
		return req, nil
	}

	if method == http.MethodGet {
		v, err := query.Values(params)
		if err != nil {
			return transport.Request{}, fmt.Errorf("gatefi: encoding query: %w", err)
		}
		req.RawQuery = v.Encode()
		return req, nil
	}

	body, err := json.Marshal(params)
	if err != nil {
		return transport.Request{}, fmt.Errorf("gatefi: marshalling request body: %w", err)
	}
	req.Body = body
	return req, nil
}

// exchange performs one signed call to e.
func (c *Client) exchange(ctx context.Context, e Endpoint, params any) (transport.Request, *transport.Response, error) {
	req, err := c.newRequest(e.Method(), e.Path(), params)
	if err != nil {
		return req, nil, err
	}
	resp, err := c.http.Do(ctx, req)
	return req, resp, err
}

// call performs one signed call to e and decodes a 200/201 body into T.
func call[T any](ctx context.Context, c *Client, e Endpoint, params any) (T, error) {
	var zero T
	req, resp, err := c.exchange(ctx, e, params)
	if err != nil {
		return zero, err
	}
	return transport.DecodeJSON[T](req, c.http.URL(req), resp)
}
