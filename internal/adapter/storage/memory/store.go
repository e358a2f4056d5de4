// Package memory holds in-process implementations of every storage port.
// They back the bridge when database.driver is "memory" and drive the
// end-to-end router tests.
package memory

import (
	"strings"
	"sync"
	"time"

	"payment-webhook-bridge/internal/core/domain"
)

type mappingRow struct {
	remoteID string
	seq      uint64
}

type renewalKey struct {
	subscriptionID int64
	paymentID      string
}

// Store is the shared state behind the per-port views. Orders, subscriptions and
// products live together because payment and renewal handling touch all three.
type Store struct {
	mu sync.RWMutex

	mappings map[domain.MappingKind]map[int64]mappingRow
	seq      uint64

	orders   map[int64]*domain.Order
	subs     map[int64]*domain.Subscription
	products map[int64]*domain.Product
	coupons  map[string]*domain.Coupon
	notes    []domain.Note
	renewals map[renewalKey]int64
	audit    []domain.AuditLog

	nextOrderID int64
	nextNoteID  int64
	now         func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	s := &Store{
		mappings: make(map[domain.MappingKind]map[int64]mappingRow),
		orders:   make(map[int64]*domain.Order),
		subs:     make(map[int64]*domain.Subscription),
		products: make(map[int64]*domain.Product),
		coupons:  make(map[string]*domain.Coupon),
		renewals: make(map[renewalKey]int64),
		now:      time.Now,
	}
	for _, k := range domain.AllMappingKinds() {
		s.mappings[k] = make(map[int64]mappingRow)
	}
	return s
}

func (s *Store) Mappings() *MappingStore           { return &MappingStore{s: s} }
func (s *Store) Orders() *OrderStore               { return &OrderStore{s: s} }
func (s *Store) Subscriptions() *SubscriptionStore { return &SubscriptionStore{s: s} }
func (s *Store) Catalog() *CatalogStore            { return &CatalogStore{s: s} }
func (s *Store) Audit() *AuditStore                { return &AuditStore{s: s} }

// PutOrder inserts or replaces an order. A zero ID is assigned the next free one.
func (s *Store) PutOrder(o domain.Order) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if o.ID == 0 {
		s.nextOrderID++
		o.ID = s.nextOrderID
	} else if o.ID > s.nextOrderID {
		s.nextOrderID = o.ID
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = s.now()
		o.UpdatedAt = o.CreatedAt
	}
	s.orders[o.ID] = cloneOrder(&o)
	return o.ID
}

// PutSubscription inserts or replaces a subscription.
func (s *Store) PutSubscription(sub domain.Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = s.now()
		sub.UpdatedAt = sub.CreatedAt
	}
	s.subs[sub.ID] = &sub
}

// PutProduct inserts or replaces a catalog product.
func (s *Store) PutProduct(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = cloneProduct(&p)
}

// PutCoupon inserts or replaces a coupon; codes are matched case-insensitively.
func (s *Store) PutCoupon(c domain.Coupon) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ProductIDs = append([]int64(nil), c.ProductIDs...)
	s.coupons[strings.ToLower(c.Code)] = &c
}

// AuditEntries returns a copy of the recorded audit log.
func (s *Store) AuditEntries() []domain.AuditLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.AuditLog(nil), s.audit...)
}

// addNote appends a note. Caller holds the write lock.
func (s *Store) addNote(entity domain.EntityType, id int64, body string) {
	s.nextNoteID++
	s.notes = append(s.notes, domain.Note{
		ID:         s.nextNoteID,
		EntityType: entity,
		EntityID:   id,
		Body:       body,
		CreatedAt:  s.now(),
	})
}

func (s *Store) listNotes(entity domain.EntityType, id int64) []domain.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Note
	for _, n := range s.notes {
		if n.EntityType == entity && n.EntityID == id {
			out = append(out, n)
		}
	}
	return out
}

func cloneOrder(o *domain.Order) *domain.Order {
	c := *o
	c.CouponCodes = append([]string(nil), o.CouponCodes...)
	c.Items = append([]domain.OrderItem(nil), o.Items...)
	if o.PaidAt != nil {
		t := *o.PaidAt
		c.PaidAt = &t
	}
	if o.SubscriptionID != nil {
		id := *o.SubscriptionID
		c.SubscriptionID = &id
	}
	c.Meta = make(map[string]string, len(o.Meta))
	for k, v := range o.Meta {
		c.Meta[k] = v
	}
	return &c
}

func cloneProduct(p *domain.Product) *domain.Product {
	c := *p
	if p.Stock != nil {
		n := *p.Stock
		c.Stock = &n
	}
	if p.Recurring != nil {
		r := *p.Recurring
		c.Recurring = &r
	}
	return &c
}
