package memory

import (
	"context"
	"fmt"

	"payment-webhook-bridge/internal/core/domain"
)

// SubscriptionStore implements ports.SubscriptionRepository.
type SubscriptionStore struct {
	s *Store
}

func (r *SubscriptionStore) GetByID(_ context.Context, id int64) (*domain.Subscription, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sub, ok := r.s.subs[id]
	if !ok {
		return nil, nil
	}
	c := *sub
	return &c, nil
}

func (r *SubscriptionStore) FindByParentOrder(_ context.Context, orderID int64) (*domain.Subscription, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var found *domain.Subscription
	for _, sub := range r.s.subs {
		if sub.ParentOrderID == orderID && (found == nil || sub.ID < found.ID) {
			found = sub
		}
	}
	if found == nil {
		return nil, nil
	}
	c := *found
	return &c, nil
}

func (r *SubscriptionStore) TransitionStatus(_ context.Context, id int64, to domain.Status, note string) (domain.Status, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sub, ok := r.s.subs[id]
	if !ok {
		return "", fmt.Errorf("subscription %d not found", id)
	}
	prev := sub.Status
	if prev == to {
		return prev, nil
	}
	sub.Status = to
	sub.UpdatedAt = r.s.now()
	if note != "" {
		r.s.addNote(domain.EntitySubscription, id, note)
	}
	return prev, nil
}

func (r *SubscriptionStore) AddNote(_ context.Context, id int64, body string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.subs[id]; !ok {
		return fmt.Errorf("subscription %d not found", id)
	}
	r.s.addNote(domain.EntitySubscription, id, body)
	return nil
}

// CreateRenewalOrder copies the parent order once per (subscription, payment) pair.
func (r *SubscriptionStore) CreateRenewalOrder(_ context.Context, subscriptionID int64, paymentID string) (*domain.Order, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := renewalKey{subscriptionID: subscriptionID, paymentID: paymentID}
	if id, ok := r.s.renewals[key]; ok {
		return cloneOrder(r.s.orders[id]), false, nil
	}

	sub, ok := r.s.subs[subscriptionID]
	if !ok {
		return nil, false, fmt.Errorf("subscription %d not found", subscriptionID)
	}
	parent, ok := r.s.orders[sub.ParentOrderID]
	if !ok {
		return nil, false, fmt.Errorf("parent order %d not found", sub.ParentOrderID)
	}

	now := r.s.now()
	r.s.nextOrderID++
	renewal := &domain.Order{
		ID:             r.s.nextOrderID,
		Status:         domain.StatusPendingPayment,
		PaymentMethod:  parent.PaymentMethod,
		Currency:       parent.Currency,
		TotalCents:     parent.TotalCents,
		Billing:        parent.Billing,
		Items:          append([]domain.OrderItem(nil), parent.Items...),
		SubscriptionID: &subscriptionID,
		Meta:           map[string]string{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	r.s.orders[renewal.ID] = renewal
	r.s.renewals[key] = renewal.ID
	return cloneOrder(renewal), true, nil
}

func (r *SubscriptionStore) Notes(_ context.Context, id int64) ([]domain.Note, error) {
	return r.s.listNotes(domain.EntitySubscription, id), nil
}
