package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewWebhookCollector(reg)

	c.EventProcessed("payment", "succeeded", "processed")
	c.EventProcessed("payment", "succeeded", "processed")
	c.EventProcessed("refund", "failed", "unresolved")
	c.VerificationFailed("signature mismatch")
	c.Unresolved("refund")
	c.RenewalDropped()
	c.StrategyHit("metadata")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.events.WithLabelValues("payment", "succeeded", "processed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.events.WithLabelValues("refund", "failed", "unresolved")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.verificationFailed.WithLabelValues("signature mismatch")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.unresolved.WithLabelValues("refund")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.renewalsDropped))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.strategyHits.WithLabelValues("metadata")))
}

func TestWebhookCollector_Exposition(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewWebhookCollector(reg)
	c.RenewalDropped()

	expected := `
# HELP payment_bridge_webhook_renewals_dropped_total Renewal payments dropped because the subscription was not mapped.
# TYPE payment_bridge_webhook_renewals_dropped_total counter
payment_bridge_webhook_renewals_dropped_total 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "payment_bridge_webhook_renewals_dropped_total"))
}

func TestWebhookCollector_DoubleRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewWebhookCollector(reg)
	assert.Panics(t, func() { NewWebhookCollector(reg) })
}
