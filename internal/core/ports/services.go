package ports

import (
	"context"
	"time"

	"payment-webhook-bridge/internal/core/domain"
)

// WebhookVerifier authenticates an inbound webhook and decodes its body.
type WebhookVerifier interface {
	Verify(env domain.WebhookEnvelope) (*domain.WebhookPayload, error)
}

// EventGuard remembers webhook IDs that were already accepted.
type EventGuard interface {
	// Claim marks eventID as seen. It returns false when the ID was claimed before.
	Claim(ctx context.Context, eventID string, ttl time.Duration) (bool, error)
	// Release forgets eventID so a later redelivery is processed again.
	Release(ctx context.Context, eventID string) error
}

// WebhookMetrics receives webhook pipeline observations.
type WebhookMetrics interface {
	EventProcessed(kind, status, outcome string)
	VerificationFailed(reason string)
	Unresolved(kind string)
	RenewalDropped()
	StrategyHit(strategy string)
}

// HashService handles operator key hashing (Argon2id).
type HashService interface {
	Hash(secret string) (string, error)
	Verify(secret string, hash string) (bool, error)
}

// TokenService handles admin JWT operations.
type TokenService interface {
	Generate(subject string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	Subject   string
	ExpiresAt time.Time
}

// AuditService records operator actions.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}

// --- Service Ports (Business Logic) ---

// WebhookService handles one inbound webhook and decides the HTTP status.
type WebhookService interface {
	Handle(ctx context.Context, env domain.WebhookEnvelope) int
}

// ReturnCaptureRequest carries the identifiers appended to the checkout return URL.
type ReturnCaptureRequest struct {
	OrderID        int64
	PaymentID      string
	SubscriptionID string
}

// ReturnCaptureResult reports which mappings the return visit wrote.
type ReturnCaptureResult struct {
	OrderID            int64
	PaymentMapped      bool
	SubscriptionMapped bool
	Skipped            string // reason when nothing was attempted
}

// ReturnCaptureService persists mappings from the synchronous checkout return.
type ReturnCaptureService interface {
	Capture(ctx context.Context, req ReturnCaptureRequest) (*ReturnCaptureResult, error)
}

// CheckoutResult is the redirect target produced by a checkout attempt.
type CheckoutResult struct {
	OrderID        int64
	RedirectURL    string
	PaymentID      string
	SubscriptionID string
	SessionID      string
}

// CheckoutService creates the provider-side payment for a local order.
type CheckoutService interface {
	StartCheckout(ctx context.Context, orderID int64) (*CheckoutResult, error)
}

// CatalogSyncService pushes local products and coupons to the provider.
type CatalogSyncService interface {
	SyncProducts(ctx context.Context, order *domain.Order) ([]CartItem, error)
	SyncCoupon(ctx context.Context, code string) (string, error)
}

// SubscriptionSyncAction names the provider call made for a local status change.
type SubscriptionSyncAction string

const (
	SyncActionNone                SubscriptionSyncAction = "none"
	SyncActionPause               SubscriptionSyncAction = "pause"
	SyncActionCancelAtNextBilling SubscriptionSyncAction = "cancel_at_next_billing"
	SyncActionCancel              SubscriptionSyncAction = "cancel"
	SyncActionResume              SubscriptionSyncAction = "resume"
)

// SubscriptionSyncService mirrors local subscription status changes to the provider.
type SubscriptionSyncService interface {
	OnStatusChanged(ctx context.Context, subscriptionID int64, newStatus, oldStatus domain.Status) (SubscriptionSyncAction, error)
}

// MappingAdminService exposes operator maintenance of the mapping tables.
type MappingAdminService interface {
	ClearProductMappings(ctx context.Context) (int64, error)
}

// AuthService authenticates operators for the admin API.
type AuthService interface {
	Login(ctx context.Context, apiKey string) (string, time.Time, error) // token, expiry, error
}

// RateLimitResult holds the outcome of a rate limit check.
type RateLimitResult struct {
	Allowed   bool
	Limit     int64
	Remaining int64
	ResetAt   int64 // Unix timestamp
}

// RateLimiter counts requests per key in fixed windows.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (*RateLimitResult, error)
}
