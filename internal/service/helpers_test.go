package service

import (
	"io"

	"payment-webhook-bridge/internal/core/domain"

	"github.com/rs/zerolog"
)

const testGatewayID = "dodo_payments"

func newTestLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func envelope(id, ts, sig, body string) domain.WebhookEnvelope {
	return domain.WebhookEnvelope{EventID: id, Timestamp: ts, Signature: sig, RawBody: []byte(body)}
}

func metadata(orderID any) map[string]any {
	return map[string]any{domain.MetadataOrderIDKey: orderID}
}
