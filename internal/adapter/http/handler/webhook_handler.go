package handler

import (
	"errors"
	"io"
	"net/http"

	"payment-webhook-bridge/internal/core/domain"
	"payment-webhook-bridge/internal/core/ports"
	"payment-webhook-bridge/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// WebhookHandler receives provider webhooks.
type WebhookHandler struct {
	svc ports.WebhookService
	log zerolog.Logger
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(svc ports.WebhookService, log zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{svc: svc, log: log}
}

// Receive handles POST /api/v1/webhooks/provider. The raw body is passed on
// untouched since the signature covers its exact bytes. Only an oversized body
// is refused here; a truncated read goes through the pipeline and fails
// verification like any other bad delivery.
func (h *WebhookHandler) Receive(c *gin.Context) {
	eventID := c.GetHeader(domain.HeaderWebhookID)

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.log.Warn().Err(err).Str("event_id", eventID).Int64("limit", tooLarge.Limit).Msg("webhook body too large")
			response.Ack(c, http.StatusRequestEntityTooLarge)
			return
		}
		h.log.Warn().Err(err).Str("event_id", eventID).Msg("webhook body read failed")
	}

	status := h.svc.Handle(c.Request.Context(), domain.WebhookEnvelope{
		EventID:   eventID,
		Timestamp: c.GetHeader(domain.HeaderWebhookTimestamp),
		Signature: c.GetHeader(domain.HeaderWebhookSignature),
		RawBody:   body,
	})
	response.Ack(c, status)
}
