package handler

import (
	"payment-webhook-bridge/internal/adapter/http/dto"
	"payment-webhook-bridge/internal/core/ports"
	"payment-webhook-bridge/pkg/apperror"
	"payment-webhook-bridge/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CheckoutHandler serves the checkout return URL and the admin checkout trigger.
type CheckoutHandler struct {
	capture  ports.ReturnCaptureService
	checkout ports.CheckoutService
	log      zerolog.Logger
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(capture ports.ReturnCaptureService, checkout ports.CheckoutService, log zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{capture: capture, checkout: checkout, log: log}
}

// Return handles GET /api/v1/checkout/return. The shopper is always answered
// with 200; capture failures only cost the fast path, the webhook still resolves.
func (h *CheckoutHandler) Return(c *gin.Context) {
	var q dto.ReturnQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	result, err := h.capture.Capture(c.Request.Context(), ports.ReturnCaptureRequest{
		OrderID:        q.OrderID,
		PaymentID:      q.PaymentID,
		SubscriptionID: q.SubscriptionID,
	})
	if err != nil {
		h.log.Error().Err(err).Int64("order_id", q.OrderID).Msg("return capture failed")
		response.OK(c, dto.ReturnCaptureResponse{OrderID: q.OrderID, Skipped: "capture failed"})
		return
	}

	response.OK(c, dto.ReturnCaptureResponse{
		OrderID:            result.OrderID,
		PaymentMapped:      result.PaymentMapped,
		SubscriptionMapped: result.SubscriptionMapped,
		Skipped:            result.Skipped,
	})
}

// StartCheckout handles POST /api/v1/admin/orders/:id/checkout.
func (h *CheckoutHandler) StartCheckout(c *gin.Context) {
	var p dto.IDParam
	if err := c.ShouldBindUri(&p); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	result, err := h.checkout.StartCheckout(c.Request.Context(), p.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Location", result.RedirectURL)
	response.Created(c, dto.CheckoutResponse{
		OrderID:        result.OrderID,
		RedirectURL:    result.RedirectURL,
		PaymentID:      result.PaymentID,
		SubscriptionID: result.SubscriptionID,
		SessionID:      result.SessionID,
	})
}
