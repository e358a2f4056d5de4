package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"payment-webhook-bridge/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

const orderColumns = `id, status, payment_method, transaction_id, paid_at, stock_reduced,
	currency, total_cents, billing, coupon_codes, subscription_id, created_at, updated_at`

// OrderRepo implements ports.OrderRepository.
type OrderRepo struct {
	pool Pool
	tx   *Transactor
}

// NewOrderRepo creates a new OrderRepo.
func NewOrderRepo(pool Pool) *OrderRepo {
	return &OrderRepo{pool: pool, tx: NewTransactor(pool)}
}

func (r *OrderRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	return getOrder(ctx, r.pool, id)
}

// FindBySessionID returns the lowest-id order carrying the checkout session meta.
func (r *OrderRepo) FindBySessionID(ctx context.Context, sessionID string) (*domain.Order, error) {
	query := `SELECT order_id FROM order_meta WHERE meta_key = $1 AND meta_value = $2 ORDER BY order_id LIMIT 1`

	var id int64
	if err := r.pool.QueryRow(ctx, query, domain.MetaCheckoutSessionID, sessionID).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find order by session: %w", err)
	}
	return getOrder(ctx, r.pool, id)
}

func (r *OrderRepo) TransitionStatus(ctx context.Context, id int64, to domain.Status, note string) (domain.Status, error) {
	return transitionStatus(ctx, r.tx, "orders", domain.EntityOrder, id, to, note)
}

// MarkPaid records the payment once and reduces stock unless it is already reduced.
func (r *OrderRepo) MarkPaid(ctx context.Context, id int64, transactionID string) (bool, error) {
	var marked bool
	err := r.tx.RunInTx(ctx, func(tx pgx.Tx) error {
		var paid, reduced bool
		query := `SELECT paid_at IS NOT NULL, stock_reduced FROM orders WHERE id = $1 FOR UPDATE`
		if err := tx.QueryRow(ctx, query, id).Scan(&paid, &reduced); err != nil {
			return fmt.Errorf("lock order %d: %w", id, err)
		}
		if paid {
			return nil
		}

		if _, err := tx.Exec(ctx, `UPDATE orders SET paid_at = NOW(), transaction_id = $1, updated_at = NOW() WHERE id = $2`, transactionID, id); err != nil {
			return fmt.Errorf("mark order paid: %w", err)
		}
		if !reduced {
			if err := adjustStock(ctx, tx, id, -1); err != nil {
				return err
			}
		}
		marked = true
		return nil
	})
	return marked, err
}

// Restock returns reserved stock if the order currently holds it.
func (r *OrderRepo) Restock(ctx context.Context, id int64) (bool, error) {
	var restocked bool
	err := r.tx.RunInTx(ctx, func(tx pgx.Tx) error {
		var reduced bool
		if err := tx.QueryRow(ctx, `SELECT stock_reduced FROM orders WHERE id = $1 FOR UPDATE`, id).Scan(&reduced); err != nil {
			return fmt.Errorf("lock order %d: %w", id, err)
		}
		if !reduced {
			return nil
		}
		if err := adjustStock(ctx, tx, id, 1); err != nil {
			return err
		}
		restocked = true
		return nil
	})
	return restocked, err
}

// adjustStock moves managed stock for every item of the order. sign is -1 or 1.
func adjustStock(ctx context.Context, tx pgx.Tx, orderID int64, sign int) error {
	query := `UPDATE products p SET stock = p.stock + ($2 * i.quantity)
		FROM order_items i
		WHERE i.order_id = $1 AND p.id = i.product_id AND p.stock IS NOT NULL`
	if _, err := tx.Exec(ctx, query, orderID, sign); err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}
	if _, err := tx.Exec(ctx, `UPDATE orders SET stock_reduced = $1, updated_at = NOW() WHERE id = $2`, sign < 0, orderID); err != nil {
		return fmt.Errorf("update stock flag: %w", err)
	}
	return nil
}

func (r *OrderRepo) AddNote(ctx context.Context, id int64, body string) error {
	return addNote(ctx, r.pool, domain.EntityOrder, id, body)
}

func (r *OrderRepo) SetMeta(ctx context.Context, id int64, key, value string) error {
	query := `INSERT INTO order_meta (order_id, meta_key, meta_value) VALUES ($1, $2, $3)
		ON CONFLICT (order_id, meta_key) DO UPDATE SET meta_value = EXCLUDED.meta_value`
	if _, err := r.pool.Exec(ctx, query, id, key, value); err != nil {
		return fmt.Errorf("set order meta: %w", err)
	}
	return nil
}

func (r *OrderRepo) Notes(ctx context.Context, id int64) ([]domain.Note, error) {
	return listNotes(ctx, r.pool, domain.EntityOrder, id)
}

// getOrder loads the order row with its items and meta. (nil, nil) when absent.
func getOrder(ctx context.Context, q querier, id int64) (*domain.Order, error) {
	o := &domain.Order{}
	var status string
	var transactionID *string
	var billing []byte
	err := q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id).Scan(
		&o.ID, &status, &o.PaymentMethod, &transactionID, &o.PaidAt, &o.StockReduced,
		&o.Currency, &o.TotalCents, &billing, &o.CouponCodes, &o.SubscriptionID,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order by id: %w", err)
	}
	o.Status = domain.Status(status)
	if transactionID != nil {
		o.TransactionID = *transactionID
	}
	if len(billing) > 0 {
		if err := json.Unmarshal(billing, &o.Billing); err != nil {
			return nil, fmt.Errorf("decode order billing: %w", err)
		}
	}

	if o.Items, err = orderItems(ctx, q, id); err != nil {
		return nil, err
	}
	if o.Meta, err = orderMeta(ctx, q, id); err != nil {
		return nil, err
	}
	return o, nil
}

func orderItems(ctx context.Context, q querier, orderID int64) ([]domain.OrderItem, error) {
	rows, err := q.Query(ctx, `SELECT product_id, quantity, price_cents FROM order_items WHERE order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ProductID, &it.Quantity, &it.PriceCents); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func orderMeta(ctx context.Context, q querier, orderID int64) (map[string]string, error) {
	rows, err := q.Query(ctx, `SELECT meta_key, meta_value FROM order_meta WHERE order_id = $1`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order meta: %w", err)
	}
	defer rows.Close()

	meta := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan order meta: %w", err)
		}
		meta[k] = v
	}
	return meta, rows.Err()
}
