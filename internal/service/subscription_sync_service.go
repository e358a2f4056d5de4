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

type syncOp struct {
	purpose string // used in the missing-mapping note
	verb    string // used in the failure note
	success string
	call    func(p ports.PaymentsProvider, ctx context.Context, remoteID string) error
}

var syncOps = map[ports.SubscriptionSyncAction]syncOp{
	ports.SyncActionPause: {
		purpose: "suspension",
		verb:    "pause",
		success: "Subscription paused at provider: %s",
		call:    ports.PaymentsProvider.PauseSubscription,
	},
	ports.SyncActionCancelAtNextBilling: {
		purpose: "cancellation",
		verb:    "cancel",
		success: "Subscription scheduled for cancellation at next billing date at provider: %s",
		call:    ports.PaymentsProvider.CancelSubscriptionAtNextBillingDate,
	},
	ports.SyncActionCancel: {
		purpose: "cancellation",
		verb:    "cancel",
		success: "Subscription cancelled at provider: %s",
		call:    ports.PaymentsProvider.CancelSubscription,
	},
	ports.SyncActionResume: {
		purpose: "reactivation",
		verb:    "resume",
		success: "Subscription resumed at provider: %s",
		call:    ports.PaymentsProvider.ResumeSubscription,
	},
}

// SubscriptionSyncServiceImpl implements ports.SubscriptionSyncService.
type SubscriptionSyncServiceImpl struct {
	subs      ports.SubscriptionRepository
	mappings  ports.MappingRepository
	provider  ports.PaymentsProvider
	gatewayID string
	log       zerolog.Logger
}

// NewSubscriptionSyncService creates a new SubscriptionSyncServiceImpl.
func NewSubscriptionSyncService(
	subs ports.SubscriptionRepository,
	mappings ports.MappingRepository,
	provider ports.PaymentsProvider,
	gatewayID string,
	log zerolog.Logger,
) *SubscriptionSyncServiceImpl {
	return &SubscriptionSyncServiceImpl{
		subs:      subs,
		mappings:  mappings,
		provider:  provider,
		gatewayID: gatewayID,
		log:       logger.Component(log, "subscription_sync"),
	}
}

// SyncAction maps a local status change to the provider call that mirrors it.
func SyncAction(newStatus, oldStatus domain.Status) ports.SubscriptionSyncAction {
	switch newStatus {
	case domain.StatusOnHold:
		return ports.SyncActionPause
	case domain.StatusPendingCancel:
		return ports.SyncActionCancelAtNextBilling
	case domain.StatusCancelled, domain.StatusExpired:
		return ports.SyncActionCancel
	case domain.StatusActive:
		if oldStatus == domain.StatusOnHold {
			return ports.SyncActionResume
		}
	}
	return ports.SyncActionNone
}

// OnStatusChanged mirrors a local subscription status change to the provider.
// The outcome is always noted on the subscription.
func (s *SubscriptionSyncServiceImpl) OnStatusChanged(ctx context.Context, subscriptionID int64, newStatus, oldStatus domain.Status) (ports.SubscriptionSyncAction, error) {
	sub, err := s.subs.GetByID(ctx, subscriptionID)
	if err != nil {
		return ports.SyncActionNone, apperror.ErrDatabaseError(fmt.Errorf("get subscription: %w", err))
	}
	if sub == nil {
		return ports.SyncActionNone, apperror.ErrNotFound("Subscription")
	}
	if sub.PaymentMethod != s.gatewayID {
		return ports.SyncActionNone, nil
	}

	action := SyncAction(newStatus, oldStatus)
	op, ok := syncOps[action]
	if !ok {
		return ports.SyncActionNone, nil
	}

	log := s.log.With().
		Int64("subscription_id", sub.ID).
		Str("action", string(action)).
		Str("new_status", string(newStatus)).
		Logger()

	remoteID, mapped, err := s.mappings.GetRemoteID(ctx, domain.MappingKindSubscription, sub.ID)
	if err != nil {
		return action, apperror.ErrDatabaseError(fmt.Errorf("subscription mapping lookup: %w", err))
	}
	if !mapped {
		log.Warn().Msg("subscription sync skipped: no remote subscription mapped")
		s.note(ctx, sub.ID, fmt.Sprintf("No provider subscription ID found for %s.", op.purpose))
		return action, nil
	}

	if err := op.call(s.provider, ctx, remoteID); err != nil {
		log.Error().Err(err).Str("remote_subscription_id", remoteID).Msg("subscription sync failed")
		s.note(ctx, sub.ID, fmt.Sprintf("Failed to %s subscription at provider: %v", op.verb, err))
		return action, providerError(op.verb+" subscription", err)
	}

	s.note(ctx, sub.ID, fmt.Sprintf(op.success, remoteID))
	log.Info().Str("remote_subscription_id", remoteID).Msg("subscription synced to provider")
	return action, nil
}

func (s *SubscriptionSyncServiceImpl) note(ctx context.Context, subscriptionID int64, body string) {
	if err := s.subs.AddNote(ctx, subscriptionID, body); err != nil {
		s.log.Warn().Err(err).Int64("subscription_id", subscriptionID).Msg("failed to add subscription note")
	}
}
