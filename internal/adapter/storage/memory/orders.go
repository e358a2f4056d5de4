package memory

import (
	"context"
	"fmt"
	"sort"

	"payment-webhook-bridge/internal/core/domain"
)

// OrderStore implements ports.OrderRepository.
type OrderStore struct {
	s *Store
}

func (o *OrderStore) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	o.s.mu.RLock()
	defer o.s.mu.RUnlock()

	order, ok := o.s.orders[id]
	if !ok {
		return nil, nil
	}
	return cloneOrder(order), nil
}

// FindBySessionID returns the lowest-id order whose session meta matches.
func (o *OrderStore) FindBySessionID(_ context.Context, sessionID string) (*domain.Order, error) {
	o.s.mu.RLock()
	defer o.s.mu.RUnlock()

	ids := make([]int64, 0, len(o.s.orders))
	for id := range o.s.orders {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		if order := o.s.orders[id]; order.MetaValue(domain.MetaCheckoutSessionID) == sessionID {
			return cloneOrder(order), nil
		}
	}
	return nil, nil
}

func (o *OrderStore) TransitionStatus(_ context.Context, id int64, to domain.Status, note string) (domain.Status, error) {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()

	order, ok := o.s.orders[id]
	if !ok {
		return "", fmt.Errorf("order %d not found", id)
	}
	prev := order.Status
	if prev == to {
		return prev, nil
	}
	order.Status = to
	order.UpdatedAt = o.s.now()
	if note != "" {
		o.s.addNote(domain.EntityOrder, id, note)
	}
	return prev, nil
}

func (o *OrderStore) MarkPaid(_ context.Context, id int64, transactionID string) (bool, error) {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()

	order, ok := o.s.orders[id]
	if !ok {
		return false, fmt.Errorf("order %d not found", id)
	}
	if order.IsPaid() {
		return false, nil
	}
	now := o.s.now()
	order.PaidAt = &now
	order.TransactionID = transactionID
	order.UpdatedAt = now
	if !order.StockReduced {
		o.adjustStock(order, -1)
	}
	return true, nil
}

func (o *OrderStore) Restock(_ context.Context, id int64) (bool, error) {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()

	order, ok := o.s.orders[id]
	if !ok {
		return false, fmt.Errorf("order %d not found", id)
	}
	if !order.StockReduced {
		return false, nil
	}
	o.adjustStock(order, 1)
	return true, nil
}

// adjustStock moves managed stock for the order items. Caller holds the write lock.
func (o *OrderStore) adjustStock(order *domain.Order, sign int) {
	for _, it := range order.Items {
		if p, ok := o.s.products[it.ProductID]; ok && p.Stock != nil {
			*p.Stock += sign * it.Quantity
		}
	}
	order.StockReduced = sign < 0
}

func (o *OrderStore) AddNote(_ context.Context, id int64, body string) error {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	if _, ok := o.s.orders[id]; !ok {
		return fmt.Errorf("order %d not found", id)
	}
	o.s.addNote(domain.EntityOrder, id, body)
	return nil
}

func (o *OrderStore) SetMeta(_ context.Context, id int64, key, value string) error {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()

	order, ok := o.s.orders[id]
	if !ok {
		return fmt.Errorf("order %d not found", id)
	}
	if order.Meta == nil {
		order.Meta = map[string]string{}
	}
	order.Meta[key] = value
	return nil
}

func (o *OrderStore) Notes(_ context.Context, id int64) ([]domain.Note, error) {
	return o.s.listNotes(domain.EntityOrder, id), nil
}
