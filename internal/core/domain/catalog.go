package domain

import "time"

// BillingPeriod is the local unit of a recurring plan.
type BillingPeriod string

const (
	PeriodDay   BillingPeriod = "day"
	PeriodWeek  BillingPeriod = "week"
	PeriodMonth BillingPeriod = "month"
	PeriodYear  BillingPeriod = "year"
)

// RecurringPlan describes how a subscription product bills.
type RecurringPlan struct {
	Period    BillingPeriod `json:"period"`
	Interval  int           `json:"interval"`
	Length    int           `json:"length"` // billing cycles; 0 = until cancelled
	TrialDays int           `json:"trial_days"`
}

// Product is a sellable catalog entry.
type Product struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	PriceCents  int64          `json:"price_cents"`
	Stock       *int           `json:"stock,omitempty"`
	Recurring   *RecurringPlan `json:"recurring,omitempty"`
}

// IsSubscription reports whether the product bills on a schedule.
func (p *Product) IsSubscription() bool {
	return p.Recurring != nil
}

// CouponType is the local discount type.
type CouponType string

const (
	CouponPercent      CouponType = "percent"
	CouponFixedCart    CouponType = "fixed_cart"
	CouponFixedProduct CouponType = "fixed_product"
)

// Coupon is a local discount code.
type Coupon struct {
	ID         int64      `json:"id"`
	Code       string     `json:"code"`
	Type       CouponType `json:"type"`
	Amount     float64    `json:"amount"` // percent for CouponPercent
	UsageLimit int        `json:"usage_limit"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	ProductIDs []int64    `json:"product_ids,omitempty"`
}
