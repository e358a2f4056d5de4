package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"payment-webhook-bridge/internal/core/domain"
	"payment-webhook-bridge/internal/core/ports"
	"payment-webhook-bridge/pkg/apperror"
	"payment-webhook-bridge/pkg/logger"

	"github.com/rs/zerolog"
)

const maxProductDescription = 999

// CatalogConfig carries the pricing defaults applied to newly created products.
type CatalogConfig struct {
	Currency     string
	TaxInclusive bool
	TaxCategory  string
}

// CatalogSyncServiceImpl implements ports.CatalogSyncService.
type CatalogSyncServiceImpl struct {
	catalog  ports.CatalogRepository
	mappings ports.MappingRepository
	orders   ports.OrderRepository
	provider ports.PaymentsProvider
	cfg      CatalogConfig
	log      zerolog.Logger
}

// NewCatalogSyncService creates a new CatalogSyncServiceImpl.
func NewCatalogSyncService(
	catalog ports.CatalogRepository,
	mappings ports.MappingRepository,
	orders ports.OrderRepository,
	provider ports.PaymentsProvider,
	cfg CatalogConfig,
	log zerolog.Logger,
) *CatalogSyncServiceImpl {
	return &CatalogSyncServiceImpl{
		catalog:  catalog,
		mappings: mappings,
		orders:   orders,
		provider: provider,
		cfg:      cfg,
		log:      logger.Component(log, "catalog_sync"),
	}
}

// SyncProducts makes sure every order item exists at the provider and returns
// the cart lines to charge. Items that fail to sync are noted on the order and left out.
func (s *CatalogSyncServiceImpl) SyncProducts(ctx context.Context, order *domain.Order) ([]ports.CartItem, error) {
	cart := make([]ports.CartItem, 0, len(order.Items))

	for _, item := range order.Items {
		product, err := s.catalog.GetProduct(ctx, item.ProductID)
		if err != nil {
			return nil, apperror.ErrDatabaseError(fmt.Errorf("get product %d: %w", item.ProductID, err))
		}
		if product == nil {
			s.note(ctx, order.ID, fmt.Sprintf("Product %d no longer exists and was skipped", item.ProductID))
			continue
		}

		remoteID, err := s.syncProduct(ctx, order.ID, product)
		if err != nil {
			return nil, err
		}
		if remoteID == "" {
			continue
		}

		cart = append(cart, ports.CartItem{
			ProductID: remoteID,
			Quantity:  item.Quantity,
			Amount:    product.PriceCents,
		})
	}
	return cart, nil
}

// syncProduct returns the remote product id, or "" when the item was skipped.
// Only storage failures are returned as errors.
func (s *CatalogSyncServiceImpl) syncProduct(ctx context.Context, orderID int64, product *domain.Product) (string, error) {
	log := s.log.With().Int64("product_id", product.ID).Logger()

	remoteID, mapped, err := s.mappings.GetRemoteID(ctx, domain.MappingKindProduct, product.ID)
	if err != nil {
		return "", apperror.ErrDatabaseError(fmt.Errorf("product mapping lookup: %w", err))
	}

	if mapped {
		remote, err := s.provider.GetProduct(ctx, remoteID)
		switch {
		case errors.Is(err, ports.ErrRemoteNotFound):
			log.Warn().Str("remote_product_id", remoteID).Msg("product mapping stale, re-creating")
			if err := s.mappings.Delete(ctx, domain.MappingKindProduct, product.ID); err != nil {
				return "", apperror.ErrDatabaseError(fmt.Errorf("delete stale product mapping: %w", err))
			}
		case err != nil:
			s.note(ctx, orderID, fmt.Sprintf("Failed to update product at provider: %v", err))
			return "", nil
		default:
			if err := s.provider.UpdateProduct(ctx, remoteID, s.updateRequest(product, remote)); err != nil {
				s.note(ctx, orderID, fmt.Sprintf("Failed to update product at provider: %v", err))
				return "", nil
			}
			return remoteID, nil
		}
	}

	created, err := s.provider.CreateProduct(ctx, s.createRequest(product))
	if err != nil {
		s.note(ctx, orderID, fmt.Sprintf("Provider error: %v", err))
		return "", nil
	}
	if created == nil || created.ProductID == "" {
		s.note(ctx, orderID, "Provider error: product created without an id")
		return "", nil
	}
	if err := s.mappings.Save(ctx, domain.MappingKindProduct, product.ID, created.ProductID); err != nil {
		return "", apperror.ErrDatabaseError(fmt.Errorf("save product mapping: %w", err))
	}
	log.Info().Str("remote_product_id", created.ProductID).Bool("recreated", mapped).Msg("product created at provider")
	return created.ProductID, nil
}

func (s *CatalogSyncServiceImpl) createRequest(p *domain.Product) ports.ProductRequest {
	return ports.ProductRequest{
		Name:        p.Name,
		Description: truncateDescription(p.Description),
		Price:       s.price(p, ports.Price{TaxInclusive: s.cfg.TaxInclusive}),
		TaxCategory: s.cfg.TaxCategory,
	}
}

// updateRequest keeps the tax and discount settings managed at the provider.
func (s *CatalogSyncServiceImpl) updateRequest(p *domain.Product, remote *ports.RemoteProduct) ports.ProductRequest {
	base := ports.Price{TaxInclusive: s.cfg.TaxInclusive}
	taxCategory := s.cfg.TaxCategory
	if remote != nil {
		base = ports.Price{
			Discount:              remote.Price.Discount,
			PurchasingPowerParity: remote.Price.PurchasingPowerParity,
			TaxInclusive:          remote.Price.TaxInclusive,
		}
		if remote.TaxCategory != "" {
			taxCategory = remote.TaxCategory
		}
	}
	return ports.ProductRequest{
		Name:        p.Name,
		Description: truncateDescription(p.Description),
		Price:       s.price(p, base),
		TaxCategory: taxCategory,
	}
}

func (s *CatalogSyncServiceImpl) price(p *domain.Product, base ports.Price) ports.Price {
	base.Currency = s.cfg.Currency
	base.Price = p.PriceCents
	if !p.IsSubscription() {
		base.Type = ports.PriceTypeOneTime
		return base
	}

	plan := p.Recurring
	interval := ProviderInterval(plan.Period)
	base.Type = ports.PriceTypeRecurring
	base.PaymentFrequencyCount = max(plan.Interval, 1)
	base.PaymentFrequencyInterval = interval
	base.SubscriptionPeriodCount = subscriptionLength(plan)
	base.SubscriptionPeriodInterval = interval
	base.TrialPeriodDays = plan.TrialDays
	return base
}

// ProviderInterval converts a local billing period to the provider's interval name.
func ProviderInterval(p domain.BillingPeriod) string {
	switch p {
	case domain.PeriodDay:
		return "Day"
	case domain.PeriodWeek:
		return "Week"
	case domain.PeriodYear:
		return "Year"
	default:
		return "Month"
	}
}

// subscriptionLength defaults open-ended plans to ten years of cycles.
func subscriptionLength(plan *domain.RecurringPlan) int {
	if plan.Length > 0 {
		return plan.Length
	}
	switch plan.Period {
	case domain.PeriodDay:
		return 3650
	case domain.PeriodWeek:
		return 520
	case domain.PeriodYear:
		return 10
	default:
		return 120
	}
}

func truncateDescription(desc string) string {
	desc = strings.TrimSpace(desc)
	if utf8.RuneCountInString(desc) <= maxProductDescription {
		return desc
	}
	return string([]rune(desc)[:maxProductDescription])
}

// SyncCoupon mirrors a local percentage coupon as a provider discount and
// returns the code to apply at checkout.
func (s *CatalogSyncServiceImpl) SyncCoupon(ctx context.Context, code string) (string, error) {
	coupon, err := s.catalog.GetCouponByCode(ctx, code)
	if err != nil {
		return "", apperror.ErrDatabaseError(fmt.Errorf("get coupon %q: %w", code, err))
	}
	if coupon == nil {
		return "", apperror.ErrNotFound("coupon")
	}
	if coupon.Type != domain.CouponPercent {
		return "", apperror.ErrUnsupportedCoupon()
	}

	req, err := s.discountRequest(ctx, coupon)
	if err != nil {
		return "", err
	}

	remoteID, mapped, err := s.mappings.GetRemoteID(ctx, domain.MappingKindCoupon, coupon.ID)
	if err != nil {
		return "", apperror.ErrDatabaseError(fmt.Errorf("coupon mapping lookup: %w", err))
	}

	if mapped {
		_, err := s.provider.GetDiscount(ctx, remoteID)
		switch {
		case errors.Is(err, ports.ErrRemoteNotFound):
			s.log.Warn().Int64("coupon_id", coupon.ID).Str("remote_discount_id", remoteID).Msg("discount mapping stale, re-creating")
		case err != nil:
			return "", providerError("get discount", err)
		default:
			updated, err := s.provider.UpdateDiscount(ctx, remoteID, req)
			if err != nil {
				return "", providerError("update discount", err)
			}
			return updated.Code, nil
		}
	}

	created, err := s.provider.CreateDiscount(ctx, req)
	if err != nil {
		return "", providerError("create discount", err)
	}
	if created == nil || created.DiscountID == "" {
		return "", apperror.ErrInvalidProviderResponse("create discount")
	}
	if err := s.mappings.Save(ctx, domain.MappingKindCoupon, coupon.ID, created.DiscountID); err != nil {
		return "", apperror.ErrDatabaseError(fmt.Errorf("save coupon mapping: %w", err))
	}
	return created.Code, nil
}

func (s *CatalogSyncServiceImpl) discountRequest(ctx context.Context, c *domain.Coupon) (ports.DiscountRequest, error) {
	req := ports.DiscountRequest{
		Type:   "percentage",
		Code:   c.Code,
		Amount: int64(math.Round(c.Amount * 100)),
	}
	if c.UsageLimit > 0 {
		limit := c.UsageLimit
		req.UsageLimit = &limit
	}
	if c.ExpiresAt != nil {
		expires := c.ExpiresAt.UTC().Format(time.RFC3339)
		req.ExpiresAt = &expires
	}
	for _, productID := range c.ProductIDs {
		remoteID, ok, err := s.mappings.GetRemoteID(ctx, domain.MappingKindProduct, productID)
		if err != nil {
			return req, apperror.ErrDatabaseError(fmt.Errorf("product mapping lookup: %w", err))
		}
		if ok {
			req.RestrictedTo = append(req.RestrictedTo, remoteID)
		}
	}
	return req, nil
}

func (s *CatalogSyncServiceImpl) note(ctx context.Context, orderID int64, body string) {
	if err := s.orders.AddNote(ctx, orderID, body); err != nil {
		s.log.Warn().Err(err).Int64("order_id", orderID).Msg("failed to add order note")
	}
}

// providerError keeps AppErrors raised by the client and wraps anything else.
func providerError(op string, err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.ErrProvider("Payments provider request failed: "+op, err)
}
