package callback

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	fixtureSecret    = "JHDOFKyrhlonPfoXrXiMeFqKRhWYdXTv"
	fixtureSignature = "a3c0624fdf21d89e4d35614874b3ac0ef1ed723606c39ab761c75d86e7be0047"
	fixtureBody      = `{"cryptoAmount":"0.00163967","cryptoCurrency":"BTC","customOrderId":"","destinationWallet":"mjEcj2LA3vj1nDi8ZD3QMCs9kNqVk7Dpee","fiatAmount":"50","fiatCurrency":"USD","status":"created","tapOnFeeAmount":"","tapOnFeeCurrency":"","transactionHashes":null,"transactionId":"cbd38c1b-721a-4fa5-948d-8a628073084b"}`
)

func deliver(t *testing.T, h http.Handler, body, sig string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/gatefi/callback", strings.NewReader(body))
	if sig != "" {
		req.Header.Set(HeaderSignature, sig)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func newHandler(t *testing.T, secret string, process ProcessFunc, opts ...HandlerOption) *Handler {
	t.Helper()
	h, err := NewHandler(secret, process, opts...)
	require.NoError(t, err)
	return h
}

func TestVerifyFixture(t *testing.T) {
	require.NoError(t, Verify(fixtureSecret, []byte(fixtureBody), fixtureSignature))
	assert.Equal(t, fixtureSignature, Sign(fixtureSecret, []byte(fixtureBody)))

	assert.ErrorIs(t, Verify(fixtureSecret, []byte(fixtureBody), ""), ErrInvalidSignature)
	assert.ErrorIs(t, Verify("wrong", []byte(fixtureBody), fixtureSignature), ErrInvalidSignature)
}

func TestVerifyRejectsEmptySecret(t *testing.T) {
	body := []byte(`{"transactionId":"forged","status":"completed"}`)
	assert.ErrorIs(t, Verify("", body, Sign("", body)), ErrInvalidSignature)
}

func TestNewHandlerRequiresSecretAndProcess(t *testing.T) {
	noop := func(context.Context, *Payload) error { return nil }

	h, err := NewHandler("", noop)
	assert.Error(t, err)
	assert.Nil(t, h)

	h, err = NewHandler(fixtureSecret, nil)
	assert.Error(t, err)
	assert.Nil(t, h)
}

func TestHandlerProcessesVerifiedPayload(t *testing.T) {
	var got *Payload
	h := newHandler(t, fixtureSecret, func(_ context.Context, p *Payload) error {
		got = p
		return nil
	})

	rec := deliver(t, h, fixtureBody, fixtureSignature)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, "cbd38c1b-721a-4fa5-948d-8a628073084b", got.TransactionID)
	assert.Equal(t, "created", got.Status)
	assert.Equal(t, "0.00163967", got.CryptoAmount)
	assert.Equal(t, "mjEcj2LA3vj1nDi8ZD3QMCs9kNqVk7Dpee", got.DestinationWallet)
	assert.Nil(t, got.TransactionHashes)
	require.NotNil(t, got.TapOnFeeAmount)
	assert.Equal(t, "", *got.TapOnFeeAmount)
}

func TestHandlerRejects(t *testing.T) {
	var calls atomic.Int32
	h := newHandler(t, fixtureSecret, func(context.Context, *Payload) error {
		calls.Add(1)
		return nil
	}, WithMaxBodyBytes(2048))

	assert.Equal(t, http.StatusUnauthorized, deliver(t, h, fixtureBody, "").Code)
	assert.Equal(t, http.StatusUnauthorized, deliver(t, h, fixtureBody+" ", fixtureSignature).Code)

	bad := `{"transactionId":`
	assert.Equal(t, http.StatusBadRequest, deliver(t, h, bad, Sign(fixtureSecret, []byte(bad))).Code)

	noID := `{"status":"created"}`
	assert.Equal(t, http.StatusBadRequest, deliver(t, h, noID, Sign(fixtureSecret, []byte(noID))).Code)

	big := `{"x":"` + strings.Repeat("a", 4096) + `"}`
	assert.Equal(t, http.StatusRequestEntityTooLarge, deliver(t, h, big, Sign(fixtureSecret, []byte(big))).Code)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/gatefi/callback", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	assert.Zero(t, calls.Load())
}

func TestHandlerDeduplicates(t *testing.T) {
	var calls atomic.Int32
	h := newHandler(t, fixtureSecret, func(context.Context, *Payload) error {
		calls.Add(1)
		return nil
	})

	assert.Equal(t, http.StatusOK, deliver(t, h, fixtureBody, fixtureSignature).Code)
	assert.Equal(t, http.StatusOK, deliver(t, h, fixtureBody, fixtureSignature).Code)
	assert.EqualValues(t, 1, calls.Load())

	// A new status for the same transaction is a distinct event.
	var p map[string]any
	require.NoError(t, json.Unmarshal([]byte(fixtureBody), &p))
	p["status"] = "completed"
	next, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, deliver(t, h, string(next), Sign(fixtureSecret, next)).Code)
	assert.EqualValues(t, 2, calls.Load())
}

func TestHandlerReleasesOnFailure(t *testing.T) {
	var calls atomic.Int32
	h := newHandler(t, fixtureSecret, func(context.Context, *Payload) error {
		if calls.Add(1) == 1 {
			return errors.New("db down")
		}
		return nil
	})

	assert.Equal(t, http.StatusInternalServerError, deliver(t, h, fixtureBody, fixtureSignature).Code)
	assert.Equal(t, http.StatusOK, deliver(t, h, fixtureBody, fixtureSignature).Code)
	assert.EqualValues(t, 2, calls.Load())
}

func TestHandlerDedupStoreUnavailable(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	d, err := NewRedisDeduper(rdb, "", 0)
	require.NoError(t, err)

	var calls atomic.Int32
	h := newHandler(t, fixtureSecret, func(context.Context, *Payload) error {
		calls.Add(1)
		return nil
	}, WithDeduper(d))

	assert.Equal(t, http.StatusInternalServerError, deliver(t, h, fixtureBody, fixtureSignature).Code)
	assert.Zero(t, calls.Load())
}

func TestRedisDeduperClaimAndRelease(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	d, err := NewRedisDeduper(rdb, "test:", time.Hour)
	require.NoError(t, err)
	ctx := context.Background()

	first, err := d.Claim(ctx, "tx-1:created")
	require.NoError(t, err)
	assert.True(t, first)
	assert.True(t, mr.Exists("test:tx-1:created"))
	assert.Equal(t, time.Hour, mr.TTL("test:tx-1:created"))

	again, err := d.Claim(ctx, "tx-1:created")
	require.NoError(t, err)
	assert.False(t, again)

	other, err := d.Claim(ctx, "tx-1:completed")
	require.NoError(t, err)
	assert.True(t, other)

	require.NoError(t, d.Release(ctx, "tx-1:created"))
	assert.False(t, mr.Exists("test:tx-1:created"))

	reclaimed, err := d.Claim(ctx, "tx-1:created")
	require.NoError(t, err)
	assert.True(t, reclaimed)

	mr.FastForward(2 * time.Hour)
	expired, err := d.Claim(ctx, "tx-1:completed")
	require.NoError(t, err)
	assert.True(t, expired)
}

func TestRedisDeduperDefaults(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	d, err := NewRedisDeduper(rdb, "", 0)
	require.NoError(t, err)

	first, err := d.Claim(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, first)
	assert.Equal(t, DefaultTTL, mr.TTL("gatefi:callback:k"))
}

func TestHandlerDeduplicatesAcrossReplicas(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	var calls atomic.Int32
	process := func(context.Context, *Payload) error {
		calls.Add(1)
		return nil
	}
	replica := func() *Handler {
		d, err := NewRedisDeduper(rdb, "", 0)
		require.NoError(t, err)
		return newHandler(t, fixtureSecret, process, WithDeduper(d))
	}
	a, b := replica(), replica()

	assert.Equal(t, http.StatusOK, deliver(t, a, fixtureBody, fixtureSignature).Code)
	assert.Equal(t, http.StatusOK, deliver(t, b, fixtureBody, fixtureSignature).Code)
	assert.EqualValues(t, 1, calls.Load())
}

func TestNewRedisDeduperRequiresClient(t *testing.T) {
	_, err := NewRedisDeduper(nil, "", time.Minute)
	assert.Error(t, err)
}

func TestMemoryDeduperExpires(t *testing.T) {
	d := NewMemoryDeduper(time.Minute)
	now := time.Unix(1700000000, 0)
	d.now = func() time.Time { return now }
	ctx := context.Background()

	first, err := d.Claim(ctx, "k")
	require.NoError(t, err)
	assert.True(t, first)

	again, _ := d.Claim(ctx, "k")
	assert.False(t, again)

	now = now.Add(2 * time.Minute)
	afterTTL, _ := d.Claim(ctx, "k")
	assert.True(t, afterTTL)

	require.NoError(t, d.Release(ctx, "k"))
	released, _ := d.Claim(ctx, "k")
	assert.True(t, released)
}

func TestGinAdapter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var calls atomic.Int32
	r := gin.New()
	r.POST("/gatefi/callback", Gin(newHandler(t, fixtureSecret, func(context.Context, *Payload) error {
		calls.Add(1)
		return nil
	})))

	assert.Equal(t, http.StatusOK, deliver(t, r, fixtureBody, fixtureSignature).Code)
	assert.Equal(t, http.StatusUnauthorized, deliver(t, r, fixtureBody, "00").Code)
	assert.EqualValues(t, 1, calls.Load())
}
