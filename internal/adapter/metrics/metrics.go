// Package metrics exposes webhook pipeline counters to Prometheus.
package metrics

import (
	"payment-webhook-bridge/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "payment_bridge"

// WebhookCollector implements ports.WebhookMetrics.
type WebhookCollector struct {
	events             *prometheus.CounterVec
	verificationFailed *prometheus.CounterVec
	unresolved         *prometheus.CounterVec
	renewalsDropped    prometheus.Counter
	strategyHits       *prometheus.CounterVec
}

var _ ports.WebhookMetrics = (*WebhookCollector)(nil)

// NewWebhookCollector registers the webhook collectors with reg.
func NewWebhookCollector(reg prometheus.Registerer) *WebhookCollector {
	factory := promauto.With(reg)
	return &WebhookCollector{
		events: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "webhook",
			Name:      "events_total",
			Help:      "Webhook events by kind, status and outcome.",
		}, []string{"kind", "status", "outcome"}),
		verificationFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "webhook",
			Name:      "verification_failures_total",
			Help:      "Webhook requests rejected by signature verification.",
		}, []string{"reason"}),
		unresolved: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "webhook",
			Name:      "unresolved_total",
			Help:      "Webhook events with no matching local record.",
		}, []string{"kind"}),
		renewalsDropped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "webhook",
			Name:      "renewals_dropped_total",
			Help:      "Renewal payments dropped because the subscription was not mapped.",
		}),
		strategyHits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "webhook",
			Name:      "resolver_strategy_hits_total",
			Help:      "Payment events resolved, by resolver strategy.",
		}, []string{"strategy"}),
	}
}

func (c *WebhookCollector) EventProcessed(kind, status, outcome string) {
	c.events.WithLabelValues(kind, status, outcome).Inc()
}

func (c *WebhookCollector) VerificationFailed(reason string) {
	c.verificationFailed.WithLabelValues(reason).Inc()
}

func (c *WebhookCollector) Unresolved(kind string) {
	c.unresolved.WithLabelValues(kind).Inc()
}

func (c *WebhookCollector) RenewalDropped() {
	c.renewalsDropped.Inc()
}

func (c *WebhookCollector) StrategyHit(strategy string) {
	c.strategyHits.WithLabelValues(strategy).Inc()
}
