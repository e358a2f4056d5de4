package service

import (
	"strings"

	"payment-webhook-bridge/internal/core/domain"
)

// Transition is one cell of the kind × status table. Notes may reference
// {type}, {payment_id}, {subscription_id} and {refund_id}.
type Transition struct {
	// To is the target status. Empty means the record keeps its status and
	// Note, if any, is appended on its own.
	To   domain.Status
	Note string
	// Detail is an extra note appended after the status step.
	Detail   string
	MarkPaid bool
	Restock  bool
	Renew    bool
}

type kindTransitions struct {
	// Receipt is noted before the row runs.
	Receipt  string
	Rows     map[string]Transition
	Fallback Transition
}

var transitions = map[domain.EventKind]kindTransitions{
	domain.EventKindPayment: {
		Rows: map[string]Transition{
			"succeeded":  {To: domain.StatusCompleted, Note: "Payment completed by provider", MarkPaid: true, Renew: true},
			"failed":     {To: domain.StatusFailed, Note: "Payment failed by provider", Restock: true},
			"cancelled":  {To: domain.StatusCancelled, Note: "Payment cancelled by provider", Restock: true},
			"processing": {To: domain.StatusProcessing, Note: "Payment processing by provider"},
		},
		Fallback: Transition{To: domain.StatusProcessing, Note: "Payment processing by provider"},
	},
	domain.EventKindRefund: {
		Receipt: "Refund webhook received: {type}",
		Rows: map[string]Transition{
			"succeeded": {
				To:     domain.StatusRefunded,
				Note:   "Payment refunded by provider",
				Detail: "Refunded payment. Payment ID: {payment_id}, Refund ID: {refund_id}",
			},
			"failed": {Detail: "Refund failed. Payment ID: {payment_id}, Refund ID: {refund_id}"},
		},
	},
	domain.EventKindSubscription: {
		Rows: map[string]Transition{
			"active":    {To: domain.StatusActive, Note: "Subscription activated by provider: {subscription_id}"},
			"renewed":   {Note: "Subscription renewed by provider"},
			"on_hold":   {To: domain.StatusOnHold, Note: "Subscription paused by provider"},
			"paused":    {To: domain.StatusOnHold, Note: "Subscription paused by provider"},
			"cancelled": {To: domain.StatusCancelled, Note: "Subscription cancelled by provider"},
			"failed":    {To: domain.StatusOnHold, Note: "Subscription payment failed at provider"},
			"expired":   {To: domain.StatusExpired, Note: "Subscription expired at provider"},
		},
		Fallback: Transition{Note: "Subscription webhook received: {type}"},
	},
}

// lookupTransition returns the row for t and the receipt note of its kind.
// ok is false for kinds the bridge does not handle.
func lookupTransition(t domain.EventType) (row Transition, receipt string, ok bool) {
	kt, ok := transitions[t.Kind]
	if !ok {
		return Transition{}, "", false
	}
	if row, found := kt.Rows[t.Status]; found {
		return row, kt.Receipt, true
	}
	return kt.Fallback, kt.Receipt, true
}

func renderNote(note string, t domain.EventType, data domain.WebhookData) string {
	if note == "" {
		return ""
	}
	return strings.NewReplacer(
		"{type}", t.String(),
		"{payment_id}", data.PaymentID,
		"{subscription_id}", data.SubscriptionID,
		"{refund_id}", data.RefundID,
	).Replace(note)
}
