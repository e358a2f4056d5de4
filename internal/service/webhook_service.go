package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"payment-webhook-bridge/internal/core/domain"
	"payment-webhook-bridge/internal/core/ports"
	"payment-webhook-bridge/pkg/apperror"
	"payment-webhook-bridge/pkg/logger"

	"github.com/rs/zerolog"
)

// Outcomes recorded per webhook event.
const (
	OutcomeProcessed  = "processed"
	OutcomeIgnored    = "ignored"
	OutcomeUnresolved = "unresolved"
	OutcomeMalformed  = "malformed"
	OutcomeDuplicate  = "duplicate"
	OutcomeError      = "error"
)

const (
	defaultReplayTTL         = 24 * time.Hour
	defaultProcessingTimeout = 20 * time.Second
)

// DispatcherConfig holds the runtime knobs of the webhook pipeline.
type DispatcherConfig struct {
	// TestMode surfaces verification and malformed-type failures as 401/400.
	TestMode          bool
	ReplayTTL         time.Duration
	ProcessingTimeout time.Duration
}

// DispatcherDeps are the collaborators of the dispatcher. Verifier may be nil
// when the webhook secret is unusable; every request then fails verification.
// Guard and Provider are optional.
type DispatcherDeps struct {
	Verifier ports.WebhookVerifier
	Guard    ports.EventGuard
	Resolver *EventResolver
	Orders   ports.OrderRepository
	Subs     ports.SubscriptionRepository
	Provider ports.PaymentsProvider
	Metrics  ports.WebhookMetrics
}

// WebhookDispatcher implements ports.WebhookService.
type WebhookDispatcher struct {
	deps DispatcherDeps
	cfg  DispatcherConfig
	log  zerolog.Logger
}

// NewWebhookDispatcher creates the webhook pipeline.
func NewWebhookDispatcher(deps DispatcherDeps, cfg DispatcherConfig, log zerolog.Logger) *WebhookDispatcher {
	if deps.Metrics == nil {
		deps.Metrics = nopMetrics{}
	}
	if cfg.ReplayTTL <= 0 {
		cfg.ReplayTTL = defaultReplayTTL
	}
	if cfg.ProcessingTimeout <= 0 {
		cfg.ProcessingTimeout = defaultProcessingTimeout
	}
	return &WebhookDispatcher{deps: deps, cfg: cfg, log: logger.Component(log, "webhook")}
}

// Handle verifies, resolves and applies one webhook and returns the HTTP status
// for the provider. Processing errors never surface as 5xx.
func (d *WebhookDispatcher) Handle(ctx context.Context, env domain.WebhookEnvelope) int {
	log := d.log.With().Str("event_id", env.EventID).Logger()

	payload, err := d.verify(env)
	if err != nil {
		if apperror.HasCode(err, apperror.CodeMalformed) {
			log.Error().Err(err).Msg("malformed webhook body")
			d.deps.Metrics.EventProcessed("", "", OutcomeMalformed)
			return d.diagnostic(http.StatusBadRequest)
		}
		log.Warn().Err(err).Msg("webhook verification failed")
		d.deps.Metrics.VerificationFailed(verificationReason(err))
		return d.diagnostic(http.StatusUnauthorized)
	}

	evt, err := domain.ParseEventType(payload.Type)
	if err != nil {
		log.Error().
			Err(apperror.ErrMalformedPayload("invalid webhook event type", err)).
			Str("event_type", payload.Type).
			Msg("malformed webhook type")
		d.deps.Metrics.EventProcessed("", "", OutcomeMalformed)
		return d.diagnostic(http.StatusBadRequest)
	}

	log = log.With().
		Str("event_type", evt.String()).
		Str("payment_id", payload.Data.PaymentID).
		Str("subscription_id", payload.Data.SubscriptionID).
		Str("checkout_session_id", payload.Data.CheckoutSessionID).
		Logger()

	if !evt.Kind.Handled() {
		log.Debug().Msg("webhook kind ignored")
		d.deps.Metrics.EventProcessed(string(evt.Kind), evt.Status, OutcomeIgnored)
		return http.StatusOK
	}

	// The provider may hang up; the transition still has to finish.
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.cfg.ProcessingTimeout)
	defer cancel()

	if !d.claim(pctx, env.EventID, log) {
		log.Info().Msg("duplicate webhook delivery")
		d.deps.Metrics.EventProcessed(string(evt.Kind), evt.Status, OutcomeDuplicate)
		return http.StatusOK
	}

	outcome, err := d.process(pctx, evt, payload.Data, log)
	if err != nil {
		log.Error().Err(err).Msg("webhook processing failed")
		outcome = OutcomeError
		d.release(pctx, env.EventID, log)
	}
	d.deps.Metrics.EventProcessed(string(evt.Kind), evt.Status, outcome)
	return http.StatusOK
}

func (d *WebhookDispatcher) verify(env domain.WebhookEnvelope) (*domain.WebhookPayload, error) {
	if d.deps.Verifier == nil {
		return nil, apperror.ErrVerification("webhook secret is not configured")
	}
	return d.deps.Verifier.Verify(env)
}

// diagnostic returns status in test mode and 200 otherwise.
func (d *WebhookDispatcher) diagnostic(status int) int {
	if d.cfg.TestMode {
		return status
	}
	return http.StatusOK
}

// claim reports whether the event should be processed. Guard failures let the
// event through.
func (d *WebhookDispatcher) claim(ctx context.Context, eventID string, log zerolog.Logger) bool {
	if d.deps.Guard == nil || eventID == "" {
		return true
	}
	fresh, err := d.deps.Guard.Claim(ctx, eventID, d.cfg.ReplayTTL)
	if err != nil {
		log.Warn().Err(err).Msg("replay guard unavailable, processing anyway")
		return true
	}
	return fresh
}

func (d *WebhookDispatcher) release(ctx context.Context, eventID string, log zerolog.Logger) {
	if d.deps.Guard == nil || eventID == "" {
		return
	}
	if err := d.deps.Guard.Release(ctx, eventID); err != nil {
		log.Warn().Err(err).Msg("failed to release webhook id")
	}
}

func (d *WebhookDispatcher) process(ctx context.Context, evt domain.EventType, data domain.WebhookData, log zerolog.Logger) (string, error) {
	row, receipt, ok := lookupTransition(evt)
	if !ok {
		return OutcomeIgnored, nil
	}

	switch evt.Kind {
	case domain.EventKindPayment:
		order, strategy, err := d.deps.Resolver.ResolvePayment(ctx, data)
		if err != nil {
			return OutcomeError, err
		}
		if order == nil {
			d.unresolved(evt, log)
			return OutcomeUnresolved, nil
		}
		d.deps.Metrics.StrategyHit(strategy)
		return OutcomeProcessed, d.applyOrder(ctx, order, evt, data, row, receipt, log.With().Int64("order_id", order.ID).Str("strategy", strategy).Logger())

	case domain.EventKindRefund:
		order, err := d.deps.Resolver.ResolveRefund(ctx, data)
		if err != nil {
			return OutcomeError, err
		}
		if order == nil {
			d.unresolved(evt, log)
			return OutcomeUnresolved, nil
		}
		return OutcomeProcessed, d.applyOrder(ctx, order, evt, data, row, receipt, log.With().Int64("order_id", order.ID).Logger())

	case domain.EventKindSubscription:
		sub, err := d.deps.Resolver.ResolveSubscription(ctx, data.SubscriptionID)
		if err != nil {
			return OutcomeError, err
		}
		if sub == nil {
			d.unresolved(evt, log)
			return OutcomeUnresolved, nil
		}
		return OutcomeProcessed, d.applySubscription(ctx, sub, evt, data, row, log.With().Int64("local_subscription_id", sub.ID).Logger())
	}
	return OutcomeIgnored, nil
}

func (d *WebhookDispatcher) unresolved(evt domain.EventType, log zerolog.Logger) {
	log.Warn().
		Err(apperror.ErrUnresolved("no local record for webhook event")).
		Msg("webhook event unresolved")
	d.deps.Metrics.Unresolved(string(evt.Kind))
}

// applyOrder runs one transition row against a resolved order. A succeeded
// payment that carries a subscription_id records a renewal order only when it
// did not pay the resolved order itself and the order already holds another
// transaction id; the first payment of a subscription is never a renewal.
func (d *WebhookDispatcher) applyOrder(
	ctx context.Context,
	order *domain.Order,
	evt domain.EventType,
	data domain.WebhookData,
	row Transition,
	receipt string,
	log zerolog.Logger,
) error {
	orders := d.deps.Orders

	if receipt != "" {
		if err := orders.AddNote(ctx, order.ID, renderNote(receipt, evt, data)); err != nil {
			return err
		}
	}

	paidNow := false
	if row.MarkPaid {
		var err error
		if paidNow, err = orders.MarkPaid(ctx, order.ID, data.PaymentID); err != nil {
			return err
		}
	}

	if row.To != "" {
		prev, err := orders.TransitionStatus(ctx, order.ID, row.To, renderNote(row.Note, evt, data))
		if err != nil {
			return err
		}
		if row.Restock && !prev.ReleasesStock() {
			moved, err := orders.Restock(ctx, order.ID)
			if err != nil {
				return err
			}
			log.Debug().Bool("stock_moved", moved).Str("previous_status", string(prev)).Msg("restock evaluated")
		}
		log.Info().Str("previous_status", string(prev)).Str("status", string(row.To)).Msg("order transitioned")
	} else if row.Note != "" {
		if err := orders.AddNote(ctx, order.ID, renderNote(row.Note, evt, data)); err != nil {
			return err
		}
	}

	if row.Detail != "" {
		if err := orders.AddNote(ctx, order.ID, renderNote(row.Detail, evt, data)); err != nil {
			return err
		}
	}

	if row.Renew && data.SubscriptionID != "" && !paidNow && order.TransactionID != "" && order.TransactionID != data.PaymentID {
		d.renew(ctx, data, log)
	}
	return nil
}

// renew records a renewal order. Failures here are logged and never undo the
// payment transition that already happened.
func (d *WebhookDispatcher) renew(ctx context.Context, data domain.WebhookData, log zerolog.Logger) {
	sub, err := d.deps.Resolver.ResolveSubscription(ctx, data.SubscriptionID)
	if err != nil {
		log.Error().Err(apperror.ErrDownstreamLookup("subscription lookup failed", err)).Msg("renewal bookkeeping failed")
		return
	}
	if sub == nil {
		log.Warn().Msg("renewal dropped: subscription mapping not found")
		d.deps.Metrics.RenewalDropped()
		return
	}
	log = log.With().Int64("local_subscription_id", sub.ID).Logger()

	if d.deps.Provider != nil {
		if _, err := d.deps.Provider.GetSubscription(ctx, data.SubscriptionID); err != nil {
			log.Warn().Err(apperror.ErrDownstreamLookup("provider subscription lookup failed", err)).Msg("continuing renewal without provider data")
		}
	}

	renewal, created, err := d.deps.Subs.CreateRenewalOrder(ctx, sub.ID, data.PaymentID)
	if err != nil {
		log.Error().Err(apperror.ErrDownstreamLookup("create renewal order failed", err)).Msg("renewal bookkeeping failed")
		return
	}
	log = log.With().Int64("renewal_order_id", renewal.ID).Bool("created", created).Logger()

	if _, err := d.deps.Orders.MarkPaid(ctx, renewal.ID, data.PaymentID); err != nil {
		log.Error().Err(apperror.ErrDownstreamLookup("mark renewal paid failed", err)).Msg("renewal bookkeeping failed")
		return
	}
	if err := d.deps.Resolver.BindPayment(ctx, renewal.ID, data.PaymentID); err != nil {
		log.Error().Err(apperror.ErrDownstreamLookup("save renewal payment mapping failed", err)).Msg("renewal bookkeeping failed")
	}
	if _, err := d.deps.Orders.TransitionStatus(ctx, renewal.ID, domain.StatusCompleted, "Payment completed by provider"); err != nil {
		log.Error().Err(apperror.ErrDownstreamLookup("complete renewal order failed", err)).Msg("renewal bookkeeping failed")
		return
	}
	if created {
		if err := d.deps.Subs.AddNote(ctx, sub.ID, "Subscription renewed by provider"); err != nil {
			log.Warn().Err(err).Msg("failed to note subscription renewal")
		}
	}
	log.Info().Msg("subscription renewal recorded")
}

func (d *WebhookDispatcher) applySubscription(
	ctx context.Context,
	sub *domain.Subscription,
	evt domain.EventType,
	data domain.WebhookData,
	row Transition,
	log zerolog.Logger,
) error {
	note := renderNote(row.Note, evt, data)
	if row.To == "" {
		if note == "" {
			return nil
		}
		return d.deps.Subs.AddNote(ctx, sub.ID, note)
	}

	prev, err := d.deps.Subs.TransitionStatus(ctx, sub.ID, row.To, note)
	if err != nil {
		return err
	}
	log.Info().Str("previous_status", string(prev)).Str("status", string(row.To)).Msg("subscription transitioned")
	return nil
}

func verificationReason(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "unknown"
}

type nopMetrics struct{}

func (nopMetrics) EventProcessed(string, string, string) {}
func (nopMetrics) VerificationFailed(string)             {}
func (nopMetrics) Unresolved(string)                     {}
func (nopMetrics) RenewalDropped()                       {}
func (nopMetrics) StrategyHit(string)                    {}
