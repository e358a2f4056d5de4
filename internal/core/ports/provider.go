package ports

import (
	"context"
	"errors"
)

// ErrRemoteNotFound is returned by PaymentsProvider when the provider answers 404.
var ErrRemoteNotFound = errors.New("remote entity not found")

// PaymentsProvider is the outbound API of the payments provider.
type PaymentsProvider interface {
	GetProduct(ctx context.Context, productID string) (*RemoteProduct, error)
	CreateProduct(ctx context.Context, req ProductRequest) (*RemoteProduct, error)
	UpdateProduct(ctx context.Context, productID string, req ProductRequest) error

	GetDiscount(ctx context.Context, discountID string) (*RemoteDiscount, error)
	CreateDiscount(ctx context.Context, req DiscountRequest) (*RemoteDiscount, error)
	UpdateDiscount(ctx context.Context, discountID string, req DiscountRequest) (*RemoteDiscount, error)

	CreatePayment(ctx context.Context, req PaymentRequest) (*PaymentResponse, error)
	CreateSubscription(ctx context.Context, req SubscriptionRequest) (*SubscriptionResponse, error)
	CreateCheckoutSession(ctx context.Context, req CheckoutSessionRequest) (*CheckoutSessionResponse, error)

	GetSubscription(ctx context.Context, subscriptionID string) (*RemoteSubscription, error)
	CancelSubscription(ctx context.Context, subscriptionID string) error
	CancelSubscriptionAtNextBillingDate(ctx context.Context, subscriptionID string) error
	PauseSubscription(ctx context.Context, subscriptionID string) error
	ResumeSubscription(ctx context.Context, subscriptionID string) error
}

// Price types understood by the provider.
const (
	PriceTypeOneTime   = "one_time_price"
	PriceTypeRecurring = "recurring_price"
)

// Price is the provider pricing block. Amounts are in minor units.
type Price struct {
	Type                       string `json:"type"`
	Currency                   string `json:"currency"`
	Price                      int64  `json:"price"`
	Discount                   int64  `json:"discount"`
	PurchasingPowerParity      bool   `json:"purchasing_power_parity"`
	TaxInclusive               bool   `json:"tax_inclusive"`
	PaymentFrequencyCount      int    `json:"payment_frequency_count,omitempty"`
	PaymentFrequencyInterval   string `json:"payment_frequency_interval,omitempty"`
	SubscriptionPeriodCount    int    `json:"subscription_period_count,omitempty"`
	SubscriptionPeriodInterval string `json:"subscription_period_interval,omitempty"`
	TrialPeriodDays            int    `json:"trial_period_days,omitempty"`
}

// ProductRequest creates or updates a provider product.
type ProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       Price  `json:"price"`
	TaxCategory string `json:"tax_category"`
}

// RemoteProduct is the provider view of a product.
type RemoteProduct struct {
	ProductID   string `json:"product_id"`
	Name        string `json:"name"`
	Price       Price  `json:"price"`
	TaxCategory string `json:"tax_category"`
}

// DiscountRequest creates or updates a provider discount code.
type DiscountRequest struct {
	Type         string   `json:"type"`
	Code         string   `json:"code"`
	Amount       int64    `json:"amount"`
	ExpiresAt    *string  `json:"expires_at"`
	UsageLimit   *int     `json:"usage_limit"`
	RestrictedTo []string `json:"restricted_to"`
}

// RemoteDiscount is the provider view of a discount code.
type RemoteDiscount struct {
	DiscountID string `json:"discount_id"`
	Code       string `json:"code"`
	Type       string `json:"type"`
	Amount     int64  `json:"amount"`
}

// CartItem is one synced product line sent with a payment request.
type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Amount    int64  `json:"amount,omitempty"`
}

// Customer identifies the payer.
type Customer struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// BillingAddress is the payer address block.
type BillingAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	Zipcode string `json:"zipcode"`
}

// PaymentRequest creates a one-off payment link.
type PaymentRequest struct {
	Billing      BillingAddress    `json:"billing"`
	Customer     Customer          `json:"customer"`
	ProductCart  []CartItem        `json:"product_cart"`
	DiscountCode *string           `json:"discount_code"`
	PaymentLink  bool              `json:"payment_link"`
	ReturnURL    string            `json:"return_url"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// PaymentResponse is returned by CreatePayment.
type PaymentResponse struct {
	PaymentID   string `json:"payment_id"`
	PaymentLink string `json:"payment_link"`
}

// SubscriptionRequest creates a recurring subscription with a payment link.
type SubscriptionRequest struct {
	Billing      BillingAddress    `json:"billing"`
	Customer     Customer          `json:"customer"`
	ProductID    string            `json:"product_id"`
	Quantity     int               `json:"quantity"`
	DiscountCode *string           `json:"discount_code,omitempty"`
	PaymentLink  bool              `json:"payment_link"`
	ReturnURL    string            `json:"return_url"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// SubscriptionResponse is returned by CreateSubscription.
type SubscriptionResponse struct {
	SubscriptionID string `json:"subscription_id"`
	PaymentID      string `json:"payment_id"`
	PaymentLink    string `json:"payment_link"`
}

// FeatureFlags toggles optional checkout-session fields.
type FeatureFlags struct {
	AllowPhoneNumberCollection bool `json:"allow_phone_number_collection"`
	AllowTaxID                 bool `json:"allow_tax_id,omitempty"`
}

// CheckoutSessionRequest creates a hosted checkout session.
type CheckoutSessionRequest struct {
	ProductCart    []CartItem        `json:"product_cart"`
	Customer       Customer          `json:"customer"`
	BillingAddress BillingAddress    `json:"billing_address"`
	ReturnURL      string            `json:"return_url"`
	DiscountCode   *string           `json:"discount_code,omitempty"`
	FeatureFlags   FeatureFlags      `json:"feature_flags"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

// CheckoutSessionResponse is returned by CreateCheckoutSession.
type CheckoutSessionResponse struct {
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

// RemoteSubscription is the provider view of a subscription.
type RemoteSubscription struct {
	SubscriptionID          string `json:"subscription_id"`
	Status                  string `json:"status"`
	ProductID               string `json:"product_id"`
	NextBillingDate         string `json:"next_billing_date,omitempty"`
	CancelAtNextBillingDate bool   `json:"cancel_at_next_billing_date"`
}
