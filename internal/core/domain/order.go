package domain

import "time"

// Status is the lifecycle state shared by orders and subscriptions.
type Status string

const (
	StatusPendingPayment Status = "pending-payment"
	StatusProcessing     Status = "processing"
	StatusCompleted      Status = "completed"
	StatusFailed         Status = "failed"
	StatusCancelled      Status = "cancelled"
	StatusRefunded       Status = "refunded"
	StatusOnHold         Status = "on-hold"
	StatusPendingCancel  Status = "pending-cancel"
	StatusExpired        Status = "expired"
	StatusActive         Status = "active"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPendingPayment, StatusProcessing, StatusCompleted, StatusFailed,
		StatusCancelled, StatusRefunded, StatusOnHold, StatusPendingCancel,
		StatusExpired, StatusActive:
		return true
	}
	return false
}

// ReleasesStock reports whether an order in this status has already
// returned its reserved inventory.
func (s Status) ReleasesStock() bool {
	return s == StatusFailed || s == StatusCancelled
}

// MetaCheckoutSessionID is the order meta key holding the provider checkout session ID.
const MetaCheckoutSessionID = "_dodo_checkout_session_id"

// EntityType names the kind of record a note is attached to.
type EntityType string

const (
	EntityOrder        EntityType = "order"
	EntitySubscription EntityType = "subscription"
)

// Billing is the customer contact and address captured on an order.
type Billing struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone,omitempty"`
	Address1  string `json:"address_1"`
	Address2  string `json:"address_2,omitempty"`
	City      string `json:"city"`
	State     string `json:"state"`
	Country   string `json:"country"`
	Postcode  string `json:"postcode"`
}

// FullName joins first and last name.
func (b Billing) FullName() string {
	switch {
	case b.FirstName == "":
		return b.LastName
	case b.LastName == "":
		return b.FirstName
	}
	return b.FirstName + " " + b.LastName
}

// Street joins both address lines.
func (b Billing) Street() string {
	if b.Address2 == "" {
		return b.Address1
	}
	return b.Address1 + " " + b.Address2
}

// OrderItem is one product line on an order.
type OrderItem struct {
	ProductID  int64 `json:"product_id"`
	Quantity   int   `json:"quantity"`
	PriceCents int64 `json:"price_cents"`
}

// Order is the local order aggregate. It is owned by the order-management
// side; the bridge only transitions its status, appends notes and sets meta.
type Order struct {
	ID             int64             `json:"id"`
	Status         Status            `json:"status"`
	PaymentMethod  string            `json:"payment_method"`
	TransactionID  string            `json:"transaction_id,omitempty"`
	PaidAt         *time.Time        `json:"paid_at,omitempty"`
	StockReduced   bool              `json:"stock_reduced"`
	Currency       string            `json:"currency"`
	TotalCents     int64             `json:"total_cents"`
	Billing        Billing           `json:"billing"`
	CouponCodes    []string          `json:"coupon_codes,omitempty"`
	Items          []OrderItem       `json:"items,omitempty"`
	SubscriptionID *int64            `json:"subscription_id,omitempty"` // set on renewal orders
	Meta           map[string]string `json:"meta,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// IsPaid reports whether payment has been recorded for the order.
func (o *Order) IsPaid() bool {
	return o.PaidAt != nil
}

// MetaValue returns a meta entry or "".
func (o *Order) MetaValue(key string) string {
	if o.Meta == nil {
		return ""
	}
	return o.Meta[key]
}

// Subscription is the local recurring agreement created from a parent order.
type Subscription struct {
	ID            int64     `json:"id"`
	ParentOrderID int64     `json:"parent_order_id"`
	Status        Status    `json:"status"`
	PaymentMethod string    `json:"payment_method"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Note is an append-only audit entry on an order or subscription.
type Note struct {
	ID         int64      `json:"id"`
	EntityType EntityType `json:"entity_type"`
	EntityID   int64      `json:"entity_id"`
	Body       string     `json:"body"`
	CreatedAt  time.Time  `json:"created_at"`
}
