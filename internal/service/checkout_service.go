package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"payment-webhook-bridge/internal/core/domain"
	"payment-webhook-bridge/internal/core/ports"
	"payment-webhook-bridge/pkg/apperror"
	"payment-webhook-bridge/pkg/logger"

	"github.com/rs/zerolog"
)

// CheckoutConfig selects how payments are created at the provider.
type CheckoutConfig struct {
	APIKey           string
	Mode             string // "Test" or "Live", used in operator notes
	CheckoutSessions bool
	ReturnURL        string
}

// CheckoutServiceImpl implements ports.CheckoutService.
type CheckoutServiceImpl struct {
	orders   ports.OrderRepository
	subs     ports.SubscriptionRepository
	mappings ports.MappingRepository
	catalog  ports.CatalogSyncService
	provider ports.PaymentsProvider
	cfg      CheckoutConfig
	log      zerolog.Logger
}

// NewCheckoutService creates a new CheckoutServiceImpl.
func NewCheckoutService(
	orders ports.OrderRepository,
	subs ports.SubscriptionRepository,
	mappings ports.MappingRepository,
	catalog ports.CatalogSyncService,
	provider ports.PaymentsProvider,
	cfg CheckoutConfig,
	log zerolog.Logger,
) *CheckoutServiceImpl {
	return &CheckoutServiceImpl{
		orders:   orders,
		subs:     subs,
		mappings: mappings,
		catalog:  catalog,
		provider: provider,
		cfg:      cfg,
		log:      logger.Component(log, "checkout"),
	}
}

// StartCheckout syncs the order's products and coupon, creates the payment at
// the provider and returns where the customer should be redirected.
func (s *CheckoutServiceImpl) StartCheckout(ctx context.Context, orderID int64) (*ports.CheckoutResult, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get order: %w", err))
	}
	if order == nil {
		return nil, apperror.ErrNotFound("Order")
	}

	if s.cfg.APIKey == "" {
		appErr := apperror.ErrAPIKeyMissing(s.cfg.Mode)
		s.note(ctx, order.ID, appErr.Message)
		return nil, appErr
	}

	sub, err := s.subs.FindByParentOrder(ctx, order.ID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("find subscription for order: %w", err))
	}

	cart, err := s.catalog.SyncProducts(ctx, order)
	if err != nil {
		return nil, err
	}

	discount, err := s.discountCode(ctx, order)
	if err != nil {
		return nil, err
	}

	log := s.log.With().Int64("order_id", order.ID).Bool("subscription", sub != nil).Logger()
	var result *ports.CheckoutResult
	switch {
	case s.cfg.CheckoutSessions:
		result, err = s.checkoutSession(ctx, order, cart, discount)
	case sub != nil:
		result, err = s.subscription(ctx, order, sub, cart, discount)
	default:
		result, err = s.payment(ctx, order, cart, discount)
	}
	if err != nil {
		log.Error().Err(err).Msg("checkout failed")
		return nil, err
	}

	log.Info().
		Str("payment_id", result.PaymentID).
		Str("subscription_id", result.SubscriptionID).
		Str("checkout_session_id", result.SessionID).
		Msg("checkout started")
	return result, nil
}

func (s *CheckoutServiceImpl) discountCode(ctx context.Context, order *domain.Order) (*string, error) {
	switch len(order.CouponCodes) {
	case 0:
		return nil, nil
	case 1:
	default:
		s.note(ctx, order.ID, "Multiple coupon codes are not supported.")
		return nil, apperror.ErrMultipleCoupons()
	}

	code, err := s.catalog.SyncCoupon(ctx, order.CouponCodes[0])
	if err != nil {
		if !apperror.HasCode(err, "CHK_003") {
			s.note(ctx, order.ID, fmt.Sprintf("Provider error: %v", err))
		}
		return nil, err
	}
	return &code, nil
}

func (s *CheckoutServiceImpl) checkoutSession(ctx context.Context, order *domain.Order, cart []ports.CartItem, discount *string) (*ports.CheckoutResult, error) {
	resp, err := s.provider.CreateCheckoutSession(ctx, ports.CheckoutSessionRequest{
		ProductCart:    cart,
		Customer:       customer(order.Billing),
		BillingAddress: billingAddress(order.Billing),
		ReturnURL:      s.returnURL(order.ID),
		DiscountCode:   discount,
		FeatureFlags:   ports.FeatureFlags{AllowPhoneNumberCollection: true, AllowTaxID: true},
		Metadata:       orderMetadata(order.ID),
	})
	if err != nil {
		return nil, s.providerFailure(ctx, order.ID, "create checkout session", err)
	}
	if resp == nil || resp.SessionID == "" || resp.CheckoutURL == "" {
		s.note(ctx, order.ID, "Failed to create checkout session at provider: Invalid response")
		return nil, apperror.ErrInvalidProviderResponse("checkout session")
	}

	if err := s.orders.SetMeta(ctx, order.ID, domain.MetaCheckoutSessionID, resp.SessionID); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("store checkout session id: %w", err))
	}
	s.note(ctx, order.ID, "Checkout session created at provider: "+resp.SessionID)

	return &ports.CheckoutResult{OrderID: order.ID, RedirectURL: resp.CheckoutURL, SessionID: resp.SessionID}, nil
}

func (s *CheckoutServiceImpl) subscription(ctx context.Context, order *domain.Order, sub *domain.Subscription, cart []ports.CartItem, discount *string) (*ports.CheckoutResult, error) {
	if len(cart) == 0 {
		s.note(ctx, order.ID, "Failed to create subscription at provider: no synced products")
		return nil, apperror.ErrInvalidProviderResponse("subscription")
	}

	resp, err := s.provider.CreateSubscription(ctx, ports.SubscriptionRequest{
		Billing:      billingAddress(order.Billing),
		Customer:     customer(order.Billing),
		ProductID:    cart[0].ProductID,
		Quantity:     cart[0].Quantity,
		DiscountCode: discount,
		PaymentLink:  true,
		ReturnURL:    s.returnURL(order.ID),
		Metadata:     orderMetadata(order.ID),
	})
	if err != nil {
		return nil, s.providerFailure(ctx, order.ID, "create subscription", err)
	}
	if resp == nil || resp.PaymentLink == "" {
		s.note(ctx, order.ID, "Failed to create subscription at provider: Invalid response")
		return nil, apperror.ErrInvalidProviderResponse("subscription")
	}

	if resp.SubscriptionID != "" {
		if err := s.mappings.Save(ctx, domain.MappingKindSubscription, sub.ID, resp.SubscriptionID); err != nil {
			return nil, apperror.ErrDatabaseError(fmt.Errorf("save subscription mapping: %w", err))
		}
		s.note(ctx, order.ID, "Subscription created at provider: "+resp.SubscriptionID)
	}
	if resp.PaymentID != "" {
		if err := s.mappings.Save(ctx, domain.MappingKindPayment, order.ID, resp.PaymentID); err != nil {
			return nil, apperror.ErrDatabaseError(fmt.Errorf("save payment mapping: %w", err))
		}
		s.note(ctx, order.ID, "Payment created at provider: "+resp.PaymentID)
	}

	return &ports.CheckoutResult{
		OrderID:        order.ID,
		RedirectURL:    resp.PaymentLink,
		PaymentID:      resp.PaymentID,
		SubscriptionID: resp.SubscriptionID,
	}, nil
}

func (s *CheckoutServiceImpl) payment(ctx context.Context, order *domain.Order, cart []ports.CartItem, discount *string) (*ports.CheckoutResult, error) {
	resp, err := s.provider.CreatePayment(ctx, ports.PaymentRequest{
		Billing:      billingAddress(order.Billing),
		Customer:     customer(order.Billing),
		ProductCart:  cart,
		DiscountCode: discount,
		PaymentLink:  true,
		ReturnURL:    s.returnURL(order.ID),
		Metadata:     orderMetadata(order.ID),
	})
	if err != nil {
		return nil, s.providerFailure(ctx, order.ID, "create payment", err)
	}
	if resp == nil || resp.PaymentLink == "" || resp.PaymentID == "" {
		s.note(ctx, order.ID, "Failed to create payment at provider: Invalid response")
		return nil, apperror.ErrInvalidProviderResponse("payment")
	}

	if err := s.mappings.Save(ctx, domain.MappingKindPayment, order.ID, resp.PaymentID); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("save payment mapping: %w", err))
	}
	s.note(ctx, order.ID, "Payment created at provider: "+resp.PaymentID)

	return &ports.CheckoutResult{OrderID: order.ID, RedirectURL: resp.PaymentLink, PaymentID: resp.PaymentID}, nil
}

func (s *CheckoutServiceImpl) providerFailure(ctx context.Context, orderID int64, op string, err error) error {
	s.note(ctx, orderID, fmt.Sprintf("Provider error: %v", err))
	return providerError(op, err)
}

// returnURL appends order_id so the return visit can be matched to the order.
func (s *CheckoutServiceImpl) returnURL(orderID int64) string {
	u, err := url.Parse(s.cfg.ReturnURL)
	if err != nil || s.cfg.ReturnURL == "" {
		return s.cfg.ReturnURL
	}
	q := u.Query()
	q.Set("order_id", strconv.FormatInt(orderID, 10))
	u.RawQuery = q.Encode()
	return u.String()
}

func (s *CheckoutServiceImpl) note(ctx context.Context, orderID int64, body string) {
	if err := s.orders.AddNote(ctx, orderID, body); err != nil {
		s.log.Warn().Err(err).Int64("order_id", orderID).Msg("failed to add order note")
	}
}

func customer(b domain.Billing) ports.Customer {
	return ports.Customer{Email: b.Email, Name: b.FullName(), PhoneNumber: b.Phone}
}

func billingAddress(b domain.Billing) ports.BillingAddress {
	return ports.BillingAddress{
		Street:  b.Street(),
		City:    b.City,
		State:   b.State,
		Country: b.Country,
		Zipcode: b.Postcode,
	}
}

func orderMetadata(orderID int64) map[string]string {
	return map[string]string{domain.MetadataOrderIDKey: strconv.FormatInt(orderID, 10)}
}
