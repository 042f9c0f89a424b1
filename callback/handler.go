package callback

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
)

// ProcessFunc handles one verified, non-duplicate callback. Returning an
// error replies 500 so the gateway redelivers.
type ProcessFunc func(ctx context.Context, p *Payload) error

// Handler is an http.Handler for gateway callbacks.
type Handler struct {
	secret   string
	process  ProcessFunc
	deduper  Deduper
	logger   *slog.Logger
	maxBytes int64
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithDeduper sets the store used to drop redeliveries. Default: a
// MemoryDeduper with DefaultTTL.
func WithDeduper(d Deduper) HandlerOption {
	return func(h *Handler) { h.deduper = d }
}

// WithLogger sets the handler's logger. Default: discard.
func WithLogger(l *slog.Logger) HandlerOption {
	return func(h *Handler) { h.logger = l }
}

// WithMaxBodyBytes caps the accepted body size. Default: 1 MiB.
func WithMaxBodyBytes(n int64) HandlerOption {
	return func(h *Handler) { h.maxBytes = n }
}

// NewHandler returns a Handler that verifies deliveries with secret and
// passes them to process. Both are required.
func NewHandler(secret string, process ProcessFunc, opts ...HandlerOption) (*Handler, error) {
	if secret == "" {
		return nil, errors.New("gatefi callback: secret is required")
	}
	if process == nil {
		return nil, errors.New("gatefi callback: process func is required")
	}
	h := &Handler{
		secret:   secret,
		process:  process,
		maxBytes: 1 << 20,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.deduper == nil {
		h.deduper = NewMemoryDeduper(DefaultTTL)
	}
	if h.logger == nil {
		h.logger = slog.New(slog.DiscardHandler)
	}
	return h, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "body too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "reading body", http.StatusBadRequest)
		return
	}

	if err := Verify(h.secret, body, r.Header.Get(HeaderSignature)); err != nil {
		h.logger.WarnContext(ctx, "gatefi callback rejected", slog.Any("error", err))
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	var p Payload
	if err := json.Unmarshal(body, &p); err != nil {
		h.logger.WarnContext(ctx, "gatefi callback malformed", slog.Any("error", err))
		http.Error(w, "malformed payload", http.StatusBadRequest)
		return
	}
	if p.TransactionID == "" {
		http.Error(w, "missing transactionId", http.StatusBadRequest)
		return
	}

	first, err := h.deduper.Claim(ctx, p.Key())
	if err != nil {
		h.logger.ErrorContext(ctx, "gatefi callback dedup failed", slog.Any("error", err))
		http.Error(w, "dedup unavailable", http.StatusInternalServerError)
		return
	}
	if !first {
		h.logger.InfoContext(ctx, "gatefi callback duplicate",
			slog.String("transaction_id", p.TransactionID),
			slog.String("status", p.Status))
		w.WriteHeader(http.StatusOK)
		return
	}

	if err := h.process(ctx, &p); err != nil {
		// Release so the redelivery is processed.
		if rerr := h.deduper.Release(ctx, p.Key()); rerr != nil {
			h.logger.ErrorContext(ctx, "gatefi callback release failed", slog.Any("error", rerr))
		}
		h.logger.ErrorContext(ctx, "gatefi callback processing failed",
			slog.String("transaction_id", p.TransactionID),
			slog.Any("error", err))
		http.Error(w, "processing failed", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "gatefi callback processed",
		slog.String("transaction_id", p.TransactionID),
		slog.String("custom_order_id", p.CustomOrderID),
		slog.String("status", p.Status))
	w.WriteHeader(http.StatusOK)
}
