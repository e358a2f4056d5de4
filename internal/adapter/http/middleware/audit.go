package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"payment-webhook-bridge/internal/core/domain"
	"payment-webhook-bridge/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditLog records successful admin write operations after the handler ran.
func AuditLog(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Status() < 200 || c.Writer.Status() >= 300 {
			return
		}
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			return
		}

		action, resourceType := mapPathToAction(c.FullPath(), c.Request.Method)
		if action == "" {
			return
		}

		details, _ := json.Marshal(map[string]interface{}{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"status": c.Writer.Status(),
		})

		auditSvc.Log(c.Request.Context(), &domain.AuditLog{
			ID:           uuid.New(),
			Actor:        c.GetString(CtxSubject),
			Action:       action,
			ResourceType: resourceType,
			ResourceID:   c.Param("id"),
			IPAddress:    c.ClientIP(),
			Details:      string(details),
			CreatedAt:    time.Now(),
		})
	}
}

// mapPathToAction matches on the route template, so :id stays literal.
func mapPathToAction(route, method string) (domain.AuditAction, string) {
	switch {
	case route == "/api/v1/admin/login" && method == http.MethodPost:
		return domain.AuditActionAdminLogin, "session"
	case route == "/api/v1/admin/orders/:id/checkout" && method == http.MethodPost:
		return domain.AuditActionStartCheckout, "order"
	case route == "/api/v1/admin/subscriptions/:id/status-changed" && method == http.MethodPost:
		return domain.AuditActionSubscriptionSync, "subscription"
	case route == "/api/v1/admin/mappings/products" && method == http.MethodDelete:
		return domain.AuditActionClearProductMapping, "mapping"
	}
	return "", ""
}
