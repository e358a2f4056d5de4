package handler

import (
	"payment-webhook-bridge/internal/adapter/http/dto"
	"payment-webhook-bridge/internal/core/domain"
	"payment-webhook-bridge/internal/core/ports"
	"payment-webhook-bridge/pkg/apperror"
	"payment-webhook-bridge/pkg/response"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes operator maintenance endpoints.
type AdminHandler struct {
	subSync  ports.SubscriptionSyncService
	mappings ports.MappingAdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(subSync ports.SubscriptionSyncService, mappings ports.MappingAdminService) *AdminHandler {
	return &AdminHandler{subSync: subSync, mappings: mappings}
}

// SubscriptionStatusChanged handles POST /api/v1/admin/subscriptions/:id/status-changed.
func (h *AdminHandler) SubscriptionStatusChanged(c *gin.Context) {
	var p dto.IDParam
	if err := c.ShouldBindUri(&p); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	var req dto.SubscriptionStatusChangedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	action, err := h.subSync.OnStatusChanged(c.Request.Context(), p.ID, domain.Status(req.NewStatus), domain.Status(req.OldStatus))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.SubscriptionSyncResponse{SubscriptionID: p.ID, Action: string(action)})
}

// ClearProductMappings handles DELETE /api/v1/admin/mappings/products.
func (h *AdminHandler) ClearProductMappings(c *gin.Context) {
	n, err := h.mappings.ClearProductMappings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ClearMappingsResponse{Kind: string(domain.MappingKindProduct), Deleted: n})
}
