package service

import (
	"context"
	"fmt"

	"payment-webhook-bridge/internal/core/domain"
	"payment-webhook-bridge/internal/core/ports"
	"payment-webhook-bridge/pkg/apperror"
	"payment-webhook-bridge/pkg/logger"

	"github.com/rs/zerolog"
)

// Reasons a return visit wrote nothing.
const (
	SkipOrderNotFound   = "order not found"
	SkipOtherGateway    = "order uses another payment method"
	SkipNoSession       = "order has no checkout session"
	SkipNoPaymentID     = "return URL carries no payment id"
	SkipAlreadyCaptured = "identifiers already mapped"
)

// ReturnCaptureServiceImpl implements ports.ReturnCaptureService. It is the fast
// path writer of payment and subscription mappings for checkout sessions.
type ReturnCaptureServiceImpl struct {
	mappings  ports.MappingRepository
	orders    ports.OrderRepository
	subs      ports.SubscriptionRepository
	gatewayID string
	log       zerolog.Logger
}

// NewReturnCaptureService creates a new ReturnCaptureServiceImpl.
func NewReturnCaptureService(
	mappings ports.MappingRepository,
	orders ports.OrderRepository,
	subs ports.SubscriptionRepository,
	gatewayID string,
	log zerolog.Logger,
) *ReturnCaptureServiceImpl {
	return &ReturnCaptureServiceImpl{
		mappings:  mappings,
		orders:    orders,
		subs:      subs,
		gatewayID: gatewayID,
		log:       logger.Component(log, "return_capture"),
	}
}

// Capture saves the payment mapping, and the subscription mapping when present,
// unless they already exist.
func (s *ReturnCaptureServiceImpl) Capture(ctx context.Context, req ports.ReturnCaptureRequest) (*ports.ReturnCaptureResult, error) {
	result := &ports.ReturnCaptureResult{OrderID: req.OrderID}

	order, err := s.orders.GetByID(ctx, req.OrderID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get order: %w", err))
	}
	switch {
	case order == nil:
		result.Skipped = SkipOrderNotFound
	case order.PaymentMethod != s.gatewayID:
		result.Skipped = SkipOtherGateway
	case order.MetaValue(domain.MetaCheckoutSessionID) == "":
		result.Skipped = SkipNoSession
	case req.PaymentID == "":
		result.Skipped = SkipNoPaymentID
	}
	if result.Skipped != "" {
		return result, nil
	}

	log := s.log.With().Int64("order_id", order.ID).Str("payment_id", req.PaymentID).Logger()

	if result.PaymentMapped, err = s.capturePayment(ctx, order.ID, req.PaymentID); err != nil {
		return nil, err
	}
	if req.SubscriptionID != "" {
		if result.SubscriptionMapped, err = s.captureSubscription(ctx, order.ID, req.SubscriptionID); err != nil {
			return nil, err
		}
	}

	if !result.PaymentMapped && !result.SubscriptionMapped {
		result.Skipped = SkipAlreadyCaptured
	}
	log.Info().
		Bool("payment_mapped", result.PaymentMapped).
		Bool("subscription_mapped", result.SubscriptionMapped).
		Msg("checkout return captured")
	return result, nil
}

func (s *ReturnCaptureServiceImpl) capturePayment(ctx context.Context, orderID int64, paymentID string) (bool, error) {
	_, exists, err := s.mappings.GetLocalID(ctx, domain.MappingKindPayment, paymentID)
	if err != nil {
		return false, apperror.ErrDatabaseError(fmt.Errorf("payment mapping lookup: %w", err))
	}
	if exists {
		return false, nil
	}
	if err := s.mappings.Save(ctx, domain.MappingKindPayment, orderID, paymentID); err != nil {
		return false, apperror.ErrDatabaseError(fmt.Errorf("save payment mapping: %w", err))
	}
	s.note(ctx, orderID, "Payment ID captured from checkout session return: "+paymentID)
	return true, nil
}

func (s *ReturnCaptureServiceImpl) captureSubscription(ctx context.Context, orderID int64, remoteID string) (bool, error) {
	sub, err := s.subs.FindByParentOrder(ctx, orderID)
	if err != nil {
		return false, apperror.ErrDatabaseError(fmt.Errorf("find subscription for order: %w", err))
	}
	if sub == nil {
		return false, nil
	}

	_, exists, err := s.mappings.GetLocalID(ctx, domain.MappingKindSubscription, remoteID)
	if err != nil {
		return false, apperror.ErrDatabaseError(fmt.Errorf("subscription mapping lookup: %w", err))
	}
	if exists {
		return false, nil
	}
	if err := s.mappings.Save(ctx, domain.MappingKindSubscription, sub.ID, remoteID); err != nil {
		return false, apperror.ErrDatabaseError(fmt.Errorf("save subscription mapping: %w", err))
	}
	s.note(ctx, orderID, "Subscription ID captured from checkout session return: "+remoteID)
	return true, nil
}

func (s *ReturnCaptureServiceImpl) note(ctx context.Context, orderID int64, body string) {
	if err := s.orders.AddNote(ctx, orderID, body); err != nil {
		s.log.Warn().Err(err).Int64("order_id", orderID).Msg("failed to add order note")
	}
}
