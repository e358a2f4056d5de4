package memory

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"payment-webhook-bridge/internal/core/domain"
	"payment-webhook-bridge/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func seed(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	s.PutProduct(domain.Product{ID: 11, Name: "Mug", PriceCents: 1000, Stock: intPtr(10)})
	s.PutProduct(domain.Product{ID: 12, Name: "Poster", PriceCents: 500})
	s.PutOrder(domain.Order{
		ID:            42,
		Status:        domain.StatusPendingPayment,
		PaymentMethod: "dodo_payments",
		Currency:      "USD",
		TotalCents:    2500,
		Items:         []domain.OrderItem{{ProductID: 11, Quantity: 2, PriceCents: 1000}, {ProductID: 12, Quantity: 1, PriceCents: 500}},
		Meta:          map[string]string{domain.MetaCheckoutSessionID: "cks_1"},
	})
	s.PutSubscription(domain.Subscription{ID: 7, ParentOrderID: 42, Status: domain.StatusActive, PaymentMethod: "dodo_payments"})
	return s
}

func stockOf(t *testing.T, s *Store, id int64) int {
	t.Helper()
	p, err := s.Catalog().GetProduct(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p.Stock)
	return *p.Stock
}

func TestMappingStore(t *testing.T) {
	ctx := context.Background()
	m := NewStore().Mappings()

	require.NoError(t, m.Save(ctx, domain.MappingKindPayment, 42, "pay_1"))
	remote, ok, err := m.GetRemoteID(ctx, domain.MappingKindPayment, 42)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "pay_1", remote)

	local, ok, err := m.GetLocalID(ctx, domain.MappingKindPayment, "pay_1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(42), local)

	_, ok, err = m.GetLocalID(ctx, domain.MappingKindSubscription, "pay_1")
	require.NoError(t, err)
	assert.False(t, ok, "kinds are independent")

	require.NoError(t, m.Save(ctx, domain.MappingKindPayment, 42, "pay_2"))
	remote, _, _ = m.GetRemoteID(ctx, domain.MappingKindPayment, 42)
	assert.Equal(t, "pay_2", remote, "last write wins")
	_, ok, _ = m.GetLocalID(ctx, domain.MappingKindPayment, "pay_1")
	assert.False(t, ok)
}

func TestMappingStore_NewestLocalWins(t *testing.T) {
	ctx := context.Background()
	m := NewStore().Mappings()

	require.NoError(t, m.Save(ctx, domain.MappingKindPayment, 1, "pay_x"))
	require.NoError(t, m.Save(ctx, domain.MappingKindPayment, 2, "pay_x"))

	local, ok, err := m.GetLocalID(ctx, domain.MappingKindPayment, "pay_x")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(2), local)
}

func TestMappingStore_DeleteRules(t *testing.T) {
	ctx := context.Background()
	m := NewStore().Mappings()

	require.NoError(t, m.Save(ctx, domain.MappingKindProduct, 1, "pdt_1"))
	require.NoError(t, m.Save(ctx, domain.MappingKindProduct, 2, "pdt_2"))
	require.NoError(t, m.Delete(ctx, domain.MappingKindProduct, 1))
	_, ok, _ := m.GetRemoteID(ctx, domain.MappingKindProduct, 1)
	assert.False(t, ok)

	n, err := m.Truncate(ctx, domain.MappingKindProduct)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	err = m.Delete(ctx, domain.MappingKindPayment, 1)
	assert.True(t, apperror.HasCode(err, "MAP_001"))
	_, err = m.Truncate(ctx, domain.MappingKindSubscription)
	assert.True(t, apperror.HasCode(err, "MAP_001"))
	err = m.Save(ctx, domain.MappingKind("refund"), 1, "x")
	assert.True(t, apperror.HasCode(err, "MAP_002"))
}

func TestOrderStore_PaymentAndStock(t *testing.T) {
	ctx := context.Background()
	s := seed(t)
	orders := s.Orders()

	marked, err := orders.MarkPaid(ctx, 42, "pay_1")
	require.NoError(t, err)
	assert.True(t, marked)
	assert.Equal(t, 8, stockOf(t, s, 11))

	marked, err = orders.MarkPaid(ctx, 42, "pay_1")
	require.NoError(t, err)
	assert.False(t, marked, "payment is recorded once")
	assert.Equal(t, 8, stockOf(t, s, 11))

	moved, err := orders.Restock(ctx, 42)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, 10, stockOf(t, s, 11))

	moved, err = orders.Restock(ctx, 42)
	require.NoError(t, err)
	assert.False(t, moved, "stock is returned once")
	assert.Equal(t, 10, stockOf(t, s, 11))

	o, err := orders.GetByID(ctx, 42)
	require.NoError(t, err)
	assert.True(t, o.IsPaid())
	assert.Equal(t, "pay_1", o.TransactionID)
	assert.False(t, o.StockReduced)
}

func TestOrderStore_TransitionAndNotes(t *testing.T) {
	ctx := context.Background()
	orders := seed(t).Orders()

	prev, err := orders.TransitionStatus(ctx, 42, domain.StatusProcessing, "paid")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPendingPayment, prev)

	prev, err = orders.TransitionStatus(ctx, 42, domain.StatusProcessing, "paid again")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusProcessing, prev)

	require.NoError(t, orders.AddNote(ctx, 42, "manual"))
	notes, err := orders.Notes(ctx, 42)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "paid", notes[0].Body)
	assert.Equal(t, "manual", notes[1].Body)

	_, err = orders.TransitionStatus(ctx, 99, domain.StatusFailed, "")
	assert.Error(t, err)
}

func TestOrderStore_SessionLookupAndCopies(t *testing.T) {
	ctx := context.Background()
	s := seed(t)
	orders := s.Orders()

	o, err := orders.FindBySessionID(ctx, "cks_1")
	require.NoError(t, err)
	require.NotNil(t, o)
	assert.Equal(t, int64(42), o.ID)

	o.Meta[domain.MetaCheckoutSessionID] = "tampered"
	o.Items[0].Quantity = 100

	again, _ := orders.GetByID(ctx, 42)
	assert.Equal(t, "cks_1", again.MetaValue(domain.MetaCheckoutSessionID))
	assert.Equal(t, 2, again.Items[0].Quantity)

	none, err := orders.FindBySessionID(ctx, "cks_other")
	require.NoError(t, err)
	assert.Nil(t, none)

	require.NoError(t, orders.SetMeta(ctx, 42, domain.MetaCheckoutSessionID, "cks_2"))
	o, _ = orders.FindBySessionID(ctx, "cks_2")
	require.NotNil(t, o)
}

func TestSubscriptionStore_Renewal(t *testing.T) {
	ctx := context.Background()
	s := seed(t)
	subs := s.Subscriptions()

	sub, err := subs.FindByParentOrder(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, int64(7), sub.ID)

	renewal, created, err := subs.CreateRenewalOrder(ctx, 7, "pay_r1")
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, int64(42), renewal.ID)
	assert.Equal(t, domain.StatusPendingPayment, renewal.Status)
	require.NotNil(t, renewal.SubscriptionID)
	assert.Equal(t, int64(7), *renewal.SubscriptionID)
	assert.Len(t, renewal.Items, 2)
	assert.False(t, renewal.IsPaid())

	again, created, err := subs.CreateRenewalOrder(ctx, 7, "pay_r1")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, renewal.ID, again.ID)

	_, _, err = subs.CreateRenewalOrder(ctx, 99, "pay_r1")
	assert.Error(t, err)
}

func TestSubscriptionStore_Transition(t *testing.T) {
	ctx := context.Background()
	subs := seed(t).Subscriptions()

	prev, err := subs.TransitionStatus(ctx, 7, domain.StatusOnHold, "on hold")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, prev)

	notes, err := subs.Notes(ctx, 7)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, domain.EntitySubscription, notes[0].EntityType)
}

func TestCatalogStore_CouponCaseInsensitive(t *testing.T) {
	s := NewStore()
	s.PutCoupon(domain.Coupon{ID: 4, Code: "Spring", Type: domain.CouponPercent, Amount: 10})

	c, err := s.Catalog().GetCouponByCode(context.Background(), "SPRING")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, int64(4), c.ID)

	c, err = s.Catalog().GetCouponByCode(context.Background(), "autumn")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestAuditStore(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Audit().Create(context.Background(), &domain.AuditLog{Action: domain.AuditActionAdminLogin}))
	entries := s.AuditEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, domain.AuditActionAdminLogin, entries[0].Action)
}

func TestEventGuard(t *testing.T) {
	ctx := context.Background()
	g := NewEventGuard()
	now := time.Now()
	g.now = func() time.Time { return now }

	ok, _ := g.Claim(ctx, "msg_1", time.Minute)
	assert.True(t, ok)
	ok, _ = g.Claim(ctx, "msg_1", time.Minute)
	assert.False(t, ok)

	require.NoError(t, g.Release(ctx, "msg_1"))
	ok, _ = g.Claim(ctx, "msg_1", time.Minute)
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	n, err := g.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	ok, _ = g.Claim(ctx, "msg_1", time.Minute)
	assert.True(t, ok)
}

func TestRateLimiter(t *testing.T) {
	ctx := context.Background()
	l := NewRateLimiter()
	now := time.Unix(1_700_000_000, 0)
	l.now = func() time.Time { return now }

	for i := int64(1); i <= 3; i++ {
		res, err := l.Allow(ctx, "ip", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, 3-i, res.Remaining)
	}
	res, _ := l.Allow(ctx, "ip", 3, time.Minute)
	assert.False(t, res.Allowed)

	now = now.Add(time.Minute)
	res, _ = l.Allow(ctx, "ip", 3, time.Minute)
	assert.True(t, res.Allowed)
}

func TestConcurrentClaims(t *testing.T) {
	ctx := context.Background()
	g := NewEventGuard()

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := g.Claim(ctx, "msg_race", time.Hour); ok {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins.Load())
}

func TestConcurrentMarkPaidReducesStockOnce(t *testing.T) {
	ctx := context.Background()
	s := seed(t)
	orders := s.Orders()

	var marked atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if ok, _ := orders.MarkPaid(ctx, 42, fmt.Sprintf("pay_%d", i)); ok {
				marked.Add(1)
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, int32(1), marked.Load())
	assert.Equal(t, 8, stockOf(t, s, 11))
}

func TestConcurrentRenewalCreatesOneOrder(t *testing.T) {
	ctx := context.Background()
	subs := seed(t).Subscriptions()

	ids := make(chan int64, 20)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			o, _, err := subs.CreateRenewalOrder(ctx, 7, "pay_r9")
			if err == nil {
				ids <- o.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[int64]bool{}
	for id := range ids {
		seen[id] = true
	}
	assert.Len(t, seen, 1)
}
