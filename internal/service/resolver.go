package service

import (
	"context"
	"errors"
	"fmt"

	"payment-webhook-bridge/internal/core/domain"
	"payment-webhook-bridge/internal/core/ports"
	"payment-webhook-bridge/pkg/logger"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// Payment resolution strategy names, in default priority order.
const (
	StrategyMetadata = "metadata"
	StrategyMapping  = "mapping"
	StrategySession  = "session"
)

// PaymentStrategy maps a payment event to a local order. A strategy that cannot
// decide returns (nil, nil) so the next one is tried.
type PaymentStrategy struct {
	Name    string
	Resolve func(ctx context.Context, data domain.WebhookData) (*domain.Order, error)
}

// EventResolver finds the local order or subscription a webhook refers to.
type EventResolver struct {
	mappings   ports.MappingRepository
	orders     ports.OrderRepository
	subs       ports.SubscriptionRepository
	gatewayID  string
	strategies []PaymentStrategy
	sessions   singleflight.Group
	log        zerolog.Logger
}

// NewEventResolver builds a resolver with the metadata, mapping and session
// strategies in that order.
func NewEventResolver(
	mappings ports.MappingRepository,
	orders ports.OrderRepository,
	subs ports.SubscriptionRepository,
	gatewayID string,
	log zerolog.Logger,
) *EventResolver {
	r := &EventResolver{
		mappings:  mappings,
		orders:    orders,
		subs:      subs,
		gatewayID: gatewayID,
		log:       logger.Component(log, "resolver"),
	}
	r.strategies = []PaymentStrategy{
		{Name: StrategyMetadata, Resolve: r.byMetadata},
		{Name: StrategyMapping, Resolve: r.byMapping},
		{Name: StrategySession, Resolve: r.bySession},
	}
	return r
}

// Strategies returns the payment strategies in the order they are tried.
func (r *EventResolver) Strategies() []PaymentStrategy {
	return append([]PaymentStrategy(nil), r.strategies...)
}

// ResolvePayment tries each strategy until one yields an order. It returns the
// order and the winning strategy name, or (nil, "", nil) when nothing matched.
// A storage error from one strategy does not stop the others; it is returned
// only when no strategy succeeded.
func (r *EventResolver) ResolvePayment(ctx context.Context, data domain.WebhookData) (*domain.Order, string, error) {
	var errs []error
	for _, s := range r.strategies {
		order, err := s.Resolve(ctx, data)
		if err != nil {
			r.log.Warn().Err(err).Str("strategy", s.Name).Str("payment_id", data.PaymentID).Msg("payment strategy failed")
			errs = append(errs, fmt.Errorf("%s strategy: %w", s.Name, err))
			continue
		}
		if order != nil {
			return order, s.Name, nil
		}
	}
	return nil, "", errors.Join(errs...)
}

// ResolveRefund looks the refunded payment up in the payment mapping table only.
func (r *EventResolver) ResolveRefund(ctx context.Context, data domain.WebhookData) (*domain.Order, error) {
	return r.byMapping(ctx, data)
}

// ResolveSubscription looks the subscription up in the subscription mapping table only.
func (r *EventResolver) ResolveSubscription(ctx context.Context, remoteID string) (*domain.Subscription, error) {
	if remoteID == "" {
		return nil, nil
	}
	localID, ok, err := r.mappings.GetLocalID(ctx, domain.MappingKindSubscription, remoteID)
	if err != nil {
		return nil, fmt.Errorf("subscription mapping lookup: %w", err)
	}
	if !ok {
		return nil, nil
	}
	sub, err := r.subs.GetByID(ctx, localID)
	if err != nil {
		return nil, fmt.Errorf("get subscription %d: %w", localID, err)
	}
	return sub, nil
}

func (r *EventResolver) byMetadata(ctx context.Context, data domain.WebhookData) (*domain.Order, error) {
	orderID, ok := data.MetadataOrderID()
	if !ok {
		return nil, nil
	}
	order, err := r.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order %d: %w", orderID, err)
	}
	if order == nil {
		return nil, nil
	}
	if order.PaymentMethod != r.gatewayID {
		r.log.Debug().Int64("order_id", orderID).Str("payment_method", order.PaymentMethod).Msg("metadata order belongs to another gateway")
		return nil, nil
	}

	if data.PaymentID != "" && !paidByOther(order, data.PaymentID) {
		r.rememberPayment(ctx, order.ID, data.PaymentID, true)
	}
	return order, nil
}

// paidByOther reports whether the order was already paid by a different
// payment. Renewal payments reference the parent order in their metadata and
// must not take over its payment mapping.
func paidByOther(order *domain.Order, paymentID string) bool {
	return order.TransactionID != "" && order.TransactionID != paymentID
}

func (r *EventResolver) byMapping(ctx context.Context, data domain.WebhookData) (*domain.Order, error) {
	if data.PaymentID == "" {
		return nil, nil
	}
	localID, ok, err := r.mappings.GetLocalID(ctx, domain.MappingKindPayment, data.PaymentID)
	if err != nil {
		return nil, fmt.Errorf("payment mapping lookup: %w", err)
	}
	if !ok {
		return nil, nil
	}
	order, err := r.orders.GetByID(ctx, localID)
	if err != nil {
		return nil, fmt.Errorf("get order %d: %w", localID, err)
	}
	return order, nil
}

func (r *EventResolver) bySession(ctx context.Context, data domain.WebhookData) (*domain.Order, error) {
	if data.CheckoutSessionID == "" {
		return nil, nil
	}

	v, err, shared := r.sessions.Do(data.CheckoutSessionID, func() (any, error) {
		return r.orders.FindBySessionID(ctx, data.CheckoutSessionID)
	})
	if err != nil {
		return nil, fmt.Errorf("find order by session %s: %w", data.CheckoutSessionID, err)
	}
	order, _ := v.(*domain.Order)
	if order == nil {
		return nil, nil
	}

	r.log.Info().
		Int64("order_id", order.ID).
		Str("checkout_session_id", data.CheckoutSessionID).
		Bool("shared", shared).
		Msg("order found via checkout session")

	if data.PaymentID != "" && !paidByOther(order, data.PaymentID) {
		r.rememberPayment(ctx, order.ID, data.PaymentID, false)
	}
	return order, nil
}

// rememberPayment stores the payment mapping for later events. With onlyIfAbsent
// an existing mapping for the remote id is left alone. Failures are logged only:
// the order is already resolved.
func (r *EventResolver) rememberPayment(ctx context.Context, orderID int64, paymentID string, onlyIfAbsent bool) {
	if onlyIfAbsent {
		_, exists, err := r.mappings.GetLocalID(ctx, domain.MappingKindPayment, paymentID)
		if err != nil {
			r.log.Warn().Err(err).Str("payment_id", paymentID).Msg("payment mapping lookup failed")
			return
		}
		if exists {
			return
		}
	}
	if err := r.mappings.Save(ctx, domain.MappingKindPayment, orderID, paymentID); err != nil {
		r.log.Warn().Err(err).Int64("order_id", orderID).Str("payment_id", paymentID).Msg("failed to save payment mapping")
	}
}

// BindPayment records that paymentID paid orderID, replacing any earlier
// mapping for either side.
func (r *EventResolver) BindPayment(ctx context.Context, orderID int64, paymentID string) error {
	return r.mappings.Save(ctx, domain.MappingKindPayment, orderID, paymentID)
}
