package provider

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"payment-webhook-bridge/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopSleep(time.Duration) {}

func newTestClient(t *testing.T, serverURL string, cfg Config) *Client {
	t.Helper()
	cfg.BaseURL = serverURL
	if cfg.APIKey == "" {
		cfg.APIKey = "sk_test_123"
	}
	if cfg.Retry == (RetryPolicy{}) {
		cfg.Retry = RetryPolicy{MaxRetries: 2, MinWait: time.Millisecond, MaxWait: 5 * time.Millisecond}
	}
	return New(cfg, zerolog.New(io.Discard), WithSleepFunc(noopSleep))
}

func TestClient_SetsHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		w.Write([]byte(`{"product_id":"pdt_1"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, Config{})
	p, err := client.GetProduct(context.Background(), "pdt_1")
	require.NoError(t, err)
	assert.Equal(t, "pdt_1", p.ProductID)
}

func TestClient_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"code":"NOT_FOUND","message":"product does not exist"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, Config{})
	_, err := client.GetProduct(context.Background(), "pdt_missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
	assert.Equal(t, "product does not exist", apiErr.Message)
}

func TestClient_BadRequestNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte("price must be positive"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, Config{})
	err := client.UpdateProduct(context.Background(), "pdt_1", portsProductRequest())
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
	assert.False(t, errors.Is(err, ErrNotFound))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "price must be positive", apiErr.Message)
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.NotEmpty(t, body, "body must be replayed on every attempt")
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"payment_id":"pay_1","payment_link":"https://pay.example/1"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, Config{})
	resp, err := client.CreatePayment(context.Background(), portsPaymentRequest())
	require.NoError(t, err)
	assert.Equal(t, "pay_1", resp.PaymentID)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_RetriesExhausted(t *testing.T) {
	tests := []struct {
		name   string
		status int
		code   string
	}{
		{"rate limited", http.StatusTooManyRequests, "PRV_002"},
		{"unavailable", http.StatusServiceUnavailable, "PRV_003"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := newTestClient(t, server.URL, Config{BreakerFailures: 100})
			_, err := client.GetSubscription(context.Background(), "sub_1")
			assert.True(t, apperror.HasCode(err, tt.code), err)
			assert.Equal(t, int32(3), calls.Load())
		})
	}
}

func TestClient_HonorsRetryAfter(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "2")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	var waits []time.Duration
	client := New(Config{
		BaseURL: server.URL,
		Retry:   RetryPolicy{MaxRetries: 2, MinWait: time.Millisecond, MaxWait: time.Minute},
	}, zerolog.New(io.Discard), WithSleepFunc(func(d time.Duration) { waits = append(waits, d) }))

	require.NoError(t, client.PauseSubscription(context.Background(), "sub_1"))
	assert.Equal(t, []time.Duration{2 * time.Second}, waits)
}

func TestClient_CircuitBreakerOpens(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, Config{
		BreakerFailures: 2,
		BreakerTimeout:  time.Hour,
		Retry:           RetryPolicy{MaxRetries: 0, MinWait: time.Millisecond, MaxWait: time.Millisecond},
	})

	for i := 0; i < 2; i++ {
		err := client.CancelSubscription(context.Background(), "sub_1")
		assert.True(t, apperror.HasCode(err, "PRV_003"))
	}
	require.Equal(t, int32(2), calls.Load())

	err := client.CancelSubscription(context.Background(), "sub_1")
	assert.True(t, apperror.HasCode(err, "PRV_003"))
	assert.Equal(t, int32(2), calls.Load(), "open breaker must not reach the server")
}

func TestClient_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := newTestClient(t, url, Config{BreakerFailures: 100})
	_, err := client.GetDiscount(context.Background(), "dsc_1")
	assert.True(t, apperror.HasCode(err, apperror.CodeProviderError))
}

func TestClient_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, Config{})
	_, err := client.CreateCheckoutSession(context.Background(), portsCheckoutRequest())
	assert.True(t, apperror.HasCode(err, apperror.CodeProviderError))
}

func TestClient_Backoff(t *testing.T) {
	c := New(Config{Retry: RetryPolicy{MaxRetries: 3, MinWait: 100 * time.Millisecond, MaxWait: time.Second}}, zerolog.New(io.Discard))

	for attempt := 0; attempt < 6; attempt++ {
		wait := c.backoff(attempt, nil)
		assert.GreaterOrEqual(t, wait, 100*time.Millisecond)
		assert.LessOrEqual(t, wait, time.Second)
	}

	resp := &http.Response{Header: http.Header{"Retry-After": []string{"120"}}}
	assert.Equal(t, time.Second, c.backoff(0, resp), "Retry-After is clamped to MaxWait")
}
