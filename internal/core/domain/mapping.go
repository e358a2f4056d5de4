package domain

import (
	"fmt"
	"strings"
	"time"
)

// MappingKind identifies one of the independent local↔remote identity tables.
type MappingKind string

const (
	MappingKindProduct      MappingKind = "product"
	MappingKindPayment      MappingKind = "payment"
	MappingKindCoupon       MappingKind = "coupon"
	MappingKindSubscription MappingKind = "subscription"
)

// AllMappingKinds lists every mapping kind in table-creation order.
func AllMappingKinds() []MappingKind {
	return []MappingKind{
		MappingKindProduct,
		MappingKindPayment,
		MappingKindCoupon,
		MappingKindSubscription,
	}
}

// Valid reports whether k is a known mapping kind.
func (k MappingKind) Valid() bool {
	switch k {
	case MappingKindProduct, MappingKindPayment, MappingKindCoupon, MappingKindSubscription:
		return true
	}
	return false
}

// Deletable reports whether single mappings of this kind may be removed.
// Only product mappings are dropped, after the provider reports the product gone.
func (k MappingKind) Deletable() bool {
	return k == MappingKindProduct
}

// ParseMappingKind converts user input into a MappingKind.
func ParseMappingKind(s string) (MappingKind, error) {
	k := MappingKind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("unknown mapping kind %q", s)
	}
	return k, nil
}

// IdentityMapping associates a local integer ID with a provider ID for one kind.
type IdentityMapping struct {
	Kind      MappingKind `json:"kind"`
	LocalID   int64       `json:"local_id"`
	RemoteID  string      `json:"remote_id"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
