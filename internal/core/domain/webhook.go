package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Standard Webhooks header names. Lookups are case-insensitive.
const (
	HeaderWebhookID        = "webhook-id"
	HeaderWebhookTimestamp = "webhook-timestamp"
	HeaderWebhookSignature = "webhook-signature"
)

// MetadataOrderIDKey is the checkout metadata key carrying the local order ID.
const MetadataOrderIDKey = "wc_order_id"

// WebhookEnvelope is the unverified inbound request. It lives for one request
// and is never persisted. Timestamp is the raw header value (unix seconds).
type WebhookEnvelope struct {
	EventID   string
	Timestamp string
	Signature string
	RawBody   []byte
}

// EventKind is the first segment of a webhook type.
type EventKind string

const (
	EventKindPayment      EventKind = "payment"
	EventKindRefund       EventKind = "refund"
	EventKindSubscription EventKind = "subscription"
)

// Handled reports whether the bridge reacts to events of this kind.
func (k EventKind) Handled() bool {
	switch k {
	case EventKindPayment, EventKindRefund, EventKindSubscription:
		return true
	}
	return false
}

// EventType is a parsed "<kind>.<status>" webhook type.
type EventType struct {
	Kind   EventKind
	Status string
}

func (t EventType) String() string {
	return string(t.Kind) + "." + t.Status
}

// ParseEventType splits a webhook type into kind and status.
// Exactly two non-empty dot-separated segments are accepted.
func ParseEventType(raw string) (EventType, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return EventType{}, fmt.Errorf("event type %q is not <kind>.<status>", raw)
	}
	return EventType{Kind: EventKind(parts[0]), Status: parts[1]}, nil
}

// WebhookPayload is the decoded body of a verified webhook.
type WebhookPayload struct {
	BusinessID string      `json:"business_id,omitempty"`
	Type       string      `json:"type"`
	Timestamp  string      `json:"timestamp,omitempty"`
	Data       WebhookData `json:"data"`
}

// WebhookData holds the identifiers the bridge reads from an event.
type WebhookData struct {
	PayloadType       string         `json:"payload_type,omitempty"`
	PaymentID         string         `json:"payment_id,omitempty"`
	SubscriptionID    string         `json:"subscription_id,omitempty"`
	RefundID          string         `json:"refund_id,omitempty"`
	CheckoutSessionID string         `json:"checkout_session_id,omitempty"`
	Status            string         `json:"status,omitempty"`
	Metadata          map[string]any `json:"metadata,omitempty"`
}

// MetadataOrderID returns the local order ID embedded at checkout, accepting
// both numeric and string encodings.
func (d WebhookData) MetadataOrderID() (int64, bool) {
	raw, ok := d.Metadata[MetadataOrderIDKey]
	if !ok || raw == nil {
		return 0, false
	}

	var id int64
	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		id = int64(v)
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		id = n
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, false
		}
		id = n
	case int:
		id = int64(v)
	case int64:
		id = v
	default:
		return 0, false
	}

	if id <= 0 {
		return 0, false
	}
	return id, true
}
