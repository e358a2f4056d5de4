package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"payment-webhook-bridge/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func portsProductRequest() ports.ProductRequest {
	return ports.ProductRequest{
		Name:  "Ebook",
		Price: ports.Price{Type: ports.PriceTypeOneTime, Currency: "USD", Price: 1999},
	}
}

func portsPaymentRequest() ports.PaymentRequest {
	return ports.PaymentRequest{
		Customer:    ports.Customer{Email: "ada@example.com", Name: "Ada"},
		ProductCart: []ports.CartItem{{ProductID: "pdt_1", Quantity: 1}},
		PaymentLink: true,
		ReturnURL:   "https://shop.example/thanks",
	}
}

func portsCheckoutRequest() ports.CheckoutSessionRequest {
	return ports.CheckoutSessionRequest{
		ProductCart:  []ports.CartItem{{ProductID: "pdt_1", Quantity: 1}},
		FeatureFlags: ports.FeatureFlags{AllowPhoneNumberCollection: true, AllowTaxID: true},
	}
}

type recordedRequest struct {
	Method string
	Path   string
	Body   map[string]any
}

// recordingServer answers every request with reply and records what it received.
func recordingServer(t *testing.T, reply string) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var got []recordedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{Method: r.Method, Path: r.URL.EscapedPath()}
		if r.ContentLength > 0 {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&rec.Body))
		}
		got = append(got, rec)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(reply))
	}))
	t.Cleanup(server.Close)
	return server, &got
}

func TestClient_SubscriptionPatches(t *testing.T) {
	tests := []struct {
		name string
		call func(c *Client) error
		body map[string]any
	}{
		{
			name: "cancel",
			call: func(c *Client) error { return c.CancelSubscription(context.Background(), "sub_1") },
			body: map[string]any{"status": "cancelled"},
		},
		{
			name: "cancel at next billing date",
			call: func(c *Client) error { return c.CancelSubscriptionAtNextBillingDate(context.Background(), "sub_1") },
			body: map[string]any{"cancel_at_next_billing_date": true},
		},
		{
			name: "pause",
			call: func(c *Client) error { return c.PauseSubscription(context.Background(), "sub_1") },
			body: map[string]any{"status": "on_hold"},
		},
		{
			name: "resume",
			call: func(c *Client) error { return c.ResumeSubscription(context.Background(), "sub_1") },
			body: map[string]any{"status": "active", "cancel_at_next_billing_date": false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, got := recordingServer(t, `{}`)
			require.NoError(t, tt.call(newTestClient(t, server.URL, Config{})))

			require.Len(t, *got, 1)
			assert.Equal(t, http.MethodPatch, (*got)[0].Method)
			assert.Equal(t, "/subscriptions/sub_1", (*got)[0].Path)
			assert.Equal(t, tt.body, (*got)[0].Body)
		})
	}
}

func TestClient_Routes(t *testing.T) {
	tests := []struct {
		name   string
		call   func(c *Client) error
		method string
		path   string
	}{
		{"get product", func(c *Client) error { _, err := c.GetProduct(context.Background(), "pdt 1"); return err }, http.MethodGet, "/products/pdt%201"},
		{"create product", func(c *Client) error { _, err := c.CreateProduct(context.Background(), portsProductRequest()); return err }, http.MethodPost, "/products"},
		{"update product", func(c *Client) error { return c.UpdateProduct(context.Background(), "pdt_1", portsProductRequest()) }, http.MethodPatch, "/products/pdt_1"},
		{"get discount", func(c *Client) error { _, err := c.GetDiscount(context.Background(), "dsc_1"); return err }, http.MethodGet, "/discounts/dsc_1"},
		{"create discount", func(c *Client) error { _, err := c.CreateDiscount(context.Background(), ports.DiscountRequest{Code: "X"}); return err }, http.MethodPost, "/discounts"},
		{"update discount", func(c *Client) error {
			_, err := c.UpdateDiscount(context.Background(), "dsc_1", ports.DiscountRequest{Code: "X"})
			return err
		}, http.MethodPatch, "/discounts/dsc_1"},
		{"create payment", func(c *Client) error { _, err := c.CreatePayment(context.Background(), portsPaymentRequest()); return err }, http.MethodPost, "/payments"},
		{"create subscription", func(c *Client) error {
			_, err := c.CreateSubscription(context.Background(), ports.SubscriptionRequest{ProductID: "pdt_1", Quantity: 1})
			return err
		}, http.MethodPost, "/subscriptions"},
		{"create checkout session", func(c *Client) error {
			_, err := c.CreateCheckoutSession(context.Background(), portsCheckoutRequest())
			return err
		}, http.MethodPost, "/checkouts"},
		{"get subscription", func(c *Client) error { _, err := c.GetSubscription(context.Background(), "sub_1"); return err }, http.MethodGet, "/subscriptions/sub_1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, got := recordingServer(t, `{}`)
			require.NoError(t, tt.call(newTestClient(t, server.URL, Config{})))

			require.Len(t, *got, 1)
			assert.Equal(t, tt.method, (*got)[0].Method)
			assert.Equal(t, tt.path, (*got)[0].Path)
		})
	}
}

func TestClient_DiscountBodyNulls(t *testing.T) {
	server, got := recordingServer(t, `{"discount_id":"dsc_1","code":"SAVE10"}`)
	client := newTestClient(t, server.URL, Config{})

	d, err := client.CreateDiscount(context.Background(), ports.DiscountRequest{Type: "percentage", Code: "SAVE10", Amount: 1000})
	require.NoError(t, err)
	assert.Equal(t, "dsc_1", d.DiscountID)

	body := (*got)[0].Body
	assert.Contains(t, body, "expires_at")
	assert.Nil(t, body["expires_at"])
	assert.Nil(t, body["usage_limit"])
	assert.Nil(t, body["restricted_to"])
	assert.Equal(t, float64(1000), body["amount"])
}

func TestClient_DecodesSubscription(t *testing.T) {
	server, _ := recordingServer(t, `{"subscription_id":"sub_1","status":"active","product_id":"pdt_1","cancel_at_next_billing_date":true}`)
	client := newTestClient(t, server.URL, Config{})

	sub, err := client.GetSubscription(context.Background(), "sub_1")
	require.NoError(t, err)
	assert.Equal(t, &ports.RemoteSubscription{
		SubscriptionID:          "sub_1",
		Status:                  "active",
		ProductID:               "pdt_1",
		CancelAtNextBillingDate: true,
	}, sub)
}
