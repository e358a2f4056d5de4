package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"payment-webhook-bridge/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// CatalogRepo implements ports.CatalogRepository.
type CatalogRepo struct {
	pool Pool
}

// NewCatalogRepo creates a new CatalogRepo.
func NewCatalogRepo(pool Pool) *CatalogRepo {
	return &CatalogRepo{pool: pool}
}

func (r *CatalogRepo) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT id, name, description, price_cents, stock, recurring FROM products WHERE id = $1`

	p := &domain.Product{}
	var recurring []byte
	err := r.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.Stock, &recurring)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	if len(recurring) > 0 {
		p.Recurring = &domain.RecurringPlan{}
		if err := json.Unmarshal(recurring, p.Recurring); err != nil {
			return nil, fmt.Errorf("decode product %d plan: %w", id, err)
		}
	}
	return p, nil
}

// GetCouponByCode matches codes case-insensitively.
func (r *CatalogRepo) GetCouponByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	query := `SELECT id, code, type, amount, usage_limit, expires_at, product_ids
		FROM coupons WHERE LOWER(code) = LOWER($1)`

	c := &domain.Coupon{}
	var couponType string
	err := r.pool.QueryRow(ctx, query, code).Scan(
		&c.ID, &c.Code, &couponType, &c.Amount, &c.UsageLimit, &c.ExpiresAt, &c.ProductIDs,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get coupon by code: %w", err)
	}
	c.Type = domain.CouponType(couponType)
	return c, nil
}
