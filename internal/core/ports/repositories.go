package ports

import (
	"context"

	"payment-webhook-bridge/internal/core/domain"
)

// MappingRepository persists the four local↔remote identity tables.
// Save is an upsert where the last write wins; lookups report absence with ok=false.
type MappingRepository interface {
	Save(ctx context.Context, kind domain.MappingKind, localID int64, remoteID string) error
	GetRemoteID(ctx context.Context, kind domain.MappingKind, localID int64) (string, bool, error)
	GetLocalID(ctx context.Context, kind domain.MappingKind, remoteID string) (int64, bool, error)
	// Delete removes one mapping. Only product mappings may be deleted.
	Delete(ctx context.Context, kind domain.MappingKind, localID int64) error
	// Truncate removes every mapping of a kind and returns how many rows went away.
	Truncate(ctx context.Context, kind domain.MappingKind) (int64, error)
}

// OrderRepository is the slice of the order-management system the bridge mutates.
// Lookups return (nil, nil) when the order does not exist.
type OrderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	// FindBySessionID returns at most one order whose checkout session meta matches exactly.
	FindBySessionID(ctx context.Context, sessionID string) (*domain.Order, error)
	// TransitionStatus sets the status atomically and returns the status it replaced.
	// The note is appended only when the status actually changes.
	TransitionStatus(ctx context.Context, id int64, to domain.Status, note string) (domain.Status, error)
	// MarkPaid records payment once. It reports false when the order was already paid.
	// Stock is reduced only if it is not currently reduced.
	MarkPaid(ctx context.Context, id int64, transactionID string) (bool, error)
	// Restock returns reserved inventory if it is currently held. It reports whether stock moved.
	Restock(ctx context.Context, id int64) (bool, error)
	AddNote(ctx context.Context, id int64, body string) error
	SetMeta(ctx context.Context, id int64, key, value string) error
	Notes(ctx context.Context, id int64) ([]domain.Note, error)
}

// SubscriptionRepository is the slice of the subscription system the bridge mutates.
type SubscriptionRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Subscription, error)
	FindByParentOrder(ctx context.Context, orderID int64) (*domain.Subscription, error)
	TransitionStatus(ctx context.Context, id int64, to domain.Status, note string) (domain.Status, error)
	AddNote(ctx context.Context, id int64, body string) error
	// CreateRenewalOrder creates the renewal order for a provider payment, or returns the
	// existing one for the same (subscription, payment) pair with created=false.
	CreateRenewalOrder(ctx context.Context, subscriptionID int64, paymentID string) (*domain.Order, bool, error)
	Notes(ctx context.Context, id int64) ([]domain.Note, error)
}

// CatalogRepository reads local products and coupons for synchronization.
type CatalogRepository interface {
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	GetCouponByCode(ctx context.Context, code string) (*domain.Coupon, error)
}

// AuditRepository persists operator audit entries.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
}
