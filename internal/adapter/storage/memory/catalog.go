package memory

import (
	"context"
	"strings"

	"payment-webhook-bridge/internal/core/domain"
)

// CatalogStore implements ports.CatalogRepository.
type CatalogStore struct {
	s *Store
}

func (c *CatalogStore) GetProduct(_ context.Context, id int64) (*domain.Product, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()

	p, ok := c.s.products[id]
	if !ok {
		return nil, nil
	}
	return cloneProduct(p), nil
}

func (c *CatalogStore) GetCouponByCode(_ context.Context, code string) (*domain.Coupon, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()

	coupon, ok := c.s.coupons[strings.ToLower(code)]
	if !ok {
		return nil, nil
	}
	cp := *coupon
	cp.ProductIDs = append([]int64(nil), coupon.ProductIDs...)
	return &cp, nil
}

// AuditStore implements ports.AuditRepository.
type AuditStore struct {
	s *Store
}

func (a *AuditStore) Create(_ context.Context, log *domain.AuditLog) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	a.s.audit = append(a.s.audit, *log)
	return nil
}
