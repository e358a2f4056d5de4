package postgres

import (
	"context"
	"errors"
	"fmt"

	"payment-webhook-bridge/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

const subscriptionColumns = `id, parent_order_id, status, payment_method, created_at, updated_at`

// SubscriptionRepo implements ports.SubscriptionRepository.
type SubscriptionRepo struct {
	pool Pool
	tx   *Transactor
}

// NewSubscriptionRepo creates a new SubscriptionRepo.
func NewSubscriptionRepo(pool Pool) *SubscriptionRepo {
	return &SubscriptionRepo{pool: pool, tx: NewTransactor(pool)}
}

func (r *SubscriptionRepo) GetByID(ctx context.Context, id int64) (*domain.Subscription, error) {
	return r.getOne(ctx, `SELECT `+subscriptionColumns+` FROM subscriptions WHERE id = $1`, id)
}

func (r *SubscriptionRepo) FindByParentOrder(ctx context.Context, orderID int64) (*domain.Subscription, error) {
	return r.getOne(ctx, `SELECT `+subscriptionColumns+` FROM subscriptions WHERE parent_order_id = $1 ORDER BY id LIMIT 1`, orderID)
}

func (r *SubscriptionRepo) getOne(ctx context.Context, query string, arg int64) (*domain.Subscription, error) {
	s := &domain.Subscription{}
	var status string
	err := r.pool.QueryRow(ctx, query, arg).Scan(&s.ID, &s.ParentOrderID, &status, &s.PaymentMethod, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	s.Status = domain.Status(status)
	return s, nil
}

func (r *SubscriptionRepo) TransitionStatus(ctx context.Context, id int64, to domain.Status, note string) (domain.Status, error) {
	return transitionStatus(ctx, r.tx, "subscriptions", domain.EntitySubscription, id, to, note)
}

func (r *SubscriptionRepo) AddNote(ctx context.Context, id int64, body string) error {
	return addNote(ctx, r.pool, domain.EntitySubscription, id, body)
}

func (r *SubscriptionRepo) Notes(ctx context.Context, id int64) ([]domain.Note, error) {
	return listNotes(ctx, r.pool, domain.EntitySubscription, id)
}

// CreateRenewalOrder copies the parent order into a new pending renewal order.
// The subscription row lock serializes concurrent deliveries of the same payment.
func (r *SubscriptionRepo) CreateRenewalOrder(ctx context.Context, subscriptionID int64, paymentID string) (*domain.Order, bool, error) {
	var orderID int64
	var created bool

	err := r.tx.RunInTx(ctx, func(tx pgx.Tx) error {
		var parentID int64
		if err := tx.QueryRow(ctx, `SELECT parent_order_id FROM subscriptions WHERE id = $1 FOR UPDATE`, subscriptionID).Scan(&parentID); err != nil {
			return fmt.Errorf("lock subscription %d: %w", subscriptionID, err)
		}

		err := tx.QueryRow(ctx,
			`SELECT id FROM orders WHERE subscription_id = $1 AND renewal_payment_id = $2`,
			subscriptionID, paymentID,
		).Scan(&orderID)
		switch {
		case err == nil:
			return nil
		case !errors.Is(err, pgx.ErrNoRows):
			return fmt.Errorf("find renewal order: %w", err)
		}

		insert := `INSERT INTO orders (status, payment_method, currency, total_cents, billing, coupon_codes,
				subscription_id, renewal_payment_id, stock_reduced, created_at, updated_at)
			SELECT $1, payment_method, currency, total_cents, billing, '{}', $2, $3, FALSE, NOW(), NOW()
			FROM orders WHERE id = $4
			RETURNING id`
		if err := tx.QueryRow(ctx, insert, string(domain.StatusPendingPayment), subscriptionID, paymentID, parentID).Scan(&orderID); err != nil {
			return fmt.Errorf("insert renewal order: %w", err)
		}

		copyItems := `INSERT INTO order_items (order_id, product_id, quantity, price_cents)
			SELECT $1, product_id, quantity, price_cents FROM order_items WHERE order_id = $2`
		if _, err := tx.Exec(ctx, copyItems, orderID, parentID); err != nil {
			return fmt.Errorf("copy renewal items: %w", err)
		}
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	order, err := getOrder(ctx, r.pool, orderID)
	if err != nil {
		return nil, false, err
	}
	return order, created, nil
}
