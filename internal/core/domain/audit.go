package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of audited operator action.
type AuditAction string

const (
	AuditActionAdminLogin          AuditAction = "ADMIN_LOGIN"
	AuditActionClearProductMapping AuditAction = "CLEAR_PRODUCT_MAPPINGS"
	AuditActionStartCheckout       AuditAction = "START_CHECKOUT"
	AuditActionSubscriptionSync    AuditAction = "SUBSCRIPTION_STATUS_SYNC"
)

// AuditLog records a single audited action in the system.
type AuditLog struct {
	ID           uuid.UUID   `json:"id"`
	Actor        string      `json:"actor,omitempty"`
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id,omitempty"`
	Details      string      `json:"details,omitempty"` // JSON string
	IPAddress    string      `json:"ip_address"`
	CreatedAt    time.Time   `json:"created_at"`
}
