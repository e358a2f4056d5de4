package provider

import (
	"context"
	"net/http"
	"net/url"

	"payment-webhook-bridge/internal/core/ports"
)

var _ ports.PaymentsProvider = (*Client)(nil)

type subscriptionPatch struct {
	Status                  string `json:"status,omitempty"`
	CancelAtNextBillingDate *bool  `json:"cancel_at_next_billing_date,omitempty"`
}

func (c *Client) GetProduct(ctx context.Context, productID string) (*ports.RemoteProduct, error) {
	var out ports.RemoteProduct
	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(productID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateProduct(ctx context.Context, req ports.ProductRequest) (*ports.RemoteProduct, error) {
	var out ports.RemoteProduct
	if err := c.do(ctx, http.MethodPost, "/products", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, productID string, req ports.ProductRequest) error {
	return c.do(ctx, http.MethodPatch, "/products/"+url.PathEscape(productID), req, nil)
}

func (c *Client) GetDiscount(ctx context.Context, discountID string) (*ports.RemoteDiscount, error) {
	var out ports.RemoteDiscount
	if err := c.do(ctx, http.MethodGet, "/discounts/"+url.PathEscape(discountID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateDiscount(ctx context.Context, req ports.DiscountRequest) (*ports.RemoteDiscount, error) {
	var out ports.RemoteDiscount
	if err := c.do(ctx, http.MethodPost, "/discounts", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateDiscount(ctx context.Context, discountID string, req ports.DiscountRequest) (*ports.RemoteDiscount, error) {
	var out ports.RemoteDiscount
	if err := c.do(ctx, http.MethodPatch, "/discounts/"+url.PathEscape(discountID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreatePayment(ctx context.Context, req ports.PaymentRequest) (*ports.PaymentResponse, error) {
	var out ports.PaymentResponse
	if err := c.do(ctx, http.MethodPost, "/payments", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateSubscription(ctx context.Context, req ports.SubscriptionRequest) (*ports.SubscriptionResponse, error) {
	var out ports.SubscriptionResponse
	if err := c.do(ctx, http.MethodPost, "/subscriptions", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCheckoutSession(ctx context.Context, req ports.CheckoutSessionRequest) (*ports.CheckoutSessionResponse, error) {
	var out ports.CheckoutSessionResponse
	if err := c.do(ctx, http.MethodPost, "/checkouts", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetSubscription(ctx context.Context, subscriptionID string) (*ports.RemoteSubscription, error) {
	var out ports.RemoteSubscription
	if err := c.do(ctx, http.MethodGet, "/subscriptions/"+url.PathEscape(subscriptionID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelSubscription cancels immediately.
func (c *Client) CancelSubscription(ctx context.Context, subscriptionID string) error {
	return c.patchSubscription(ctx, subscriptionID, subscriptionPatch{Status: "cancelled"})
}

// CancelSubscriptionAtNextBillingDate lets the current period run out.
func (c *Client) CancelSubscriptionAtNextBillingDate(ctx context.Context, subscriptionID string) error {
	cancel := true
	return c.patchSubscription(ctx, subscriptionID, subscriptionPatch{CancelAtNextBillingDate: &cancel})
}

func (c *Client) PauseSubscription(ctx context.Context, subscriptionID string) error {
	return c.patchSubscription(ctx, subscriptionID, subscriptionPatch{Status: "on_hold"})
}

// ResumeSubscription reactivates a paused subscription and clears a pending cancellation.
func (c *Client) ResumeSubscription(ctx context.Context, subscriptionID string) error {
	cancel := false
	return c.patchSubscription(ctx, subscriptionID, subscriptionPatch{Status: "active", CancelAtNextBillingDate: &cancel})
}

func (c *Client) patchSubscription(ctx context.Context, subscriptionID string, patch subscriptionPatch) error {
	return c.do(ctx, http.MethodPatch, "/subscriptions/"+url.PathEscape(subscriptionID), patch, nil)
}
