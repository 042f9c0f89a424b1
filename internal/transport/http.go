package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// HTTPClient performs single, unretried exchanges with the GateFi REST API.
// Retry policy belongs to the caller.
type HTTPClient struct {
	client  *http.Client
	baseURL string
	logger  *slog.Logger
}

// Option is a functional option for configuring HTTPClient.
type Option func(*HTTPClient)

// WithTimeout sets the HTTP client timeout. A client supplied through
// WithHTTPClient is copied first and left untouched.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		cp := *c.client
		cp.Timeout = d
		c.client = &cp
	}
}

// WithHTTPClient replaces the underlying *http.Client. Its timeout,
// transport and redirect policy are used as-is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		if hc != nil {
			c.client = hc
		}
	}
}

// WithLogger sets the logger used for per-exchange debug records.
func WithLogger(l *slog.Logger) Option {
	return func(c *HTTPClient) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewHTTPClient creates a new HTTPClient with the given base URL and options.
// Default configuration: timeout=10s, logs discarded.
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the host every request path is appended to.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// Request describes one outgoing call.
type Request struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     []byte
}

// URL returns host + path [+ "?" + query] for r.
func (c *HTTPClient) URL(r Request) string {
	path := r.Path
	if path != "" && path[0] != '/' {
		path = "/" + path
	}
	u := c.baseURL + path
	if r.RawQuery != "" {
		u += "?" + r.RawQuery
	}
	return u
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Body       []byte
	// URL is the final URL after redirects.
	URL string
}

// Do sends r and reads the whole response body. Connection and I/O
// failures come back as *TransportError; any status code is a successful
// exchange at this layer.
func (c *HTTPClient) Do(ctx context.Context, r Request) (*Response, error) {
	url := c.URL(r)

	var bodyReader io.Reader
	if r.Body != nil {
		bodyReader = bytes.NewReader(r.Body)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, url, bodyReader)
	if err != nil {
		return nil, &TransportError{Method: r.Method, URL: url, Err: err}
	}

	// Copy all provided headers into the request first, so caller values
	// take precedence over defaults.
	for key, vals := range r.Header {
		for _, val := range vals {
			req.Header.Add(key, val)
		}
	}
	if r.Body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.DebugContext(ctx, "gatefi request failed",
			slog.String("method", r.Method),
			slog.String("path", r.Path),
			slog.Any("error", err))
		return nil, &TransportError{Method: r.Method, URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: r.Method, URL: url, Err: fmt.Errorf("reading response body: %w", err)}
	}

	c.logger.DebugContext(ctx, "gatefi request",
		slog.String("method", r.Method),
		slog.String("path", r.Path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)))

	final := url
	if resp.Request != nil && resp.Request.URL != nil {
		final = resp.Request.URL.String()
	}
	return &Response{StatusCode: resp.StatusCode, Body: body, URL: final}, nil
}

// Check maps non-success statuses to a *ProtocolError. 200 and 201 pass.
func Check(req Request, url string, resp *Response) error {
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		return nil
	}

	pe := &ProtocolError{
		StatusCode: resp.StatusCode,
		Method:     req.Method,
		URL:        url,
		Body:       strings.TrimSpace(string(resp.Body)),
	}
	if resp.StatusCode == http.StatusBadRequest {
		pe.Request = requestEcho(req)
	}
	return pe
}

// DecodeJSON checks resp and unmarshals its body into a value of type T.
func DecodeJSON[T any](req Request, url string, resp *Response) (T, error) {
	var zero T
	if err := Check(req, url, resp); err != nil {
		return zero, err
	}

	var result T
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return zero, &DecodeError{URL: url, Body: string(resp.Body), Err: err}
	}
	return result, nil
}

func requestEcho(req Request) string {
	if len(req.Body) > 0 {
		return string(req.Body)
	}
	return req.RawQuery
}
