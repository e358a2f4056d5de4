package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"payment-webhook-bridge/internal/core/domain"
	"payment-webhook-bridge/internal/core/ports/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type resolverFixture struct {
	resolver *EventResolver
	mappings *mocks.MockMappingRepository
	orders   *mocks.MockOrderRepository
	subs     *mocks.MockSubscriptionRepository
}

func setupResolver(t *testing.T) resolverFixture {
	ctrl := gomock.NewController(t)
	f := resolverFixture{
		mappings: mocks.NewMockMappingRepository(ctrl),
		orders:   mocks.NewMockOrderRepository(ctrl),
		subs:     mocks.NewMockSubscriptionRepository(ctrl),
	}
	f.resolver = NewEventResolver(f.mappings, f.orders, f.subs, testGatewayID, newTestLogger())
	return f
}

func gatewayOrder(id int64) *domain.Order {
	return &domain.Order{ID: id, Status: domain.StatusPendingPayment, PaymentMethod: testGatewayID}
}

func TestEventResolver_StrategyOrder(t *testing.T) {
	f := setupResolver(t)
	var names []string
	for _, s := range f.resolver.Strategies() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{StrategyMetadata, StrategyMapping, StrategySession}, names)
}

func TestEventResolver_Metadata_SavesMappingWhenAbsent(t *testing.T) {
	f := setupResolver(t)
	ctx := context.Background()

	f.orders.EXPECT().GetByID(ctx, int64(42)).Return(gatewayOrder(42), nil)
	f.mappings.EXPECT().GetLocalID(ctx, domain.MappingKindPayment, "pay_1").Return(int64(0), false, nil)
	f.mappings.EXPECT().Save(ctx, domain.MappingKindPayment, int64(42), "pay_1").Return(nil)

	order, strategy, err := f.resolver.ResolvePayment(ctx, domain.WebhookData{PaymentID: "pay_1", Metadata: metadata(float64(42))})
	require.NoError(t, err)
	assert.Equal(t, int64(42), order.ID)
	assert.Equal(t, StrategyMetadata, strategy)
}

func TestEventResolver_Metadata_KeepsExistingMapping(t *testing.T) {
	f := setupResolver(t)
	ctx := context.Background()

	f.orders.EXPECT().GetByID(ctx, int64(42)).Return(gatewayOrder(42), nil)
	f.mappings.EXPECT().GetLocalID(ctx, domain.MappingKindPayment, "pay_1").Return(int64(41), true, nil)

	order, strategy, err := f.resolver.ResolvePayment(ctx, domain.WebhookData{PaymentID: "pay_1", Metadata: metadata("42")})
	require.NoError(t, err)
	assert.Equal(t, int64(42), order.ID)
	assert.Equal(t, StrategyMetadata, strategy)
}

func TestEventResolver_Metadata_MappingSaveFailureStillResolves(t *testing.T) {
	f := setupResolver(t)
	ctx := context.Background()

	f.orders.EXPECT().GetByID(ctx, int64(42)).Return(gatewayOrder(42), nil)
	f.mappings.EXPECT().GetLocalID(ctx, domain.MappingKindPayment, "pay_1").Return(int64(0), false, nil)
	f.mappings.EXPECT().Save(ctx, domain.MappingKindPayment, int64(42), "pay_1").Return(errors.New("disk full"))

	order, _, err := f.resolver.ResolvePayment(ctx, domain.WebhookData{PaymentID: "pay_1", Metadata: metadata(42)})
	require.NoError(t, err)
	assert.Equal(t, int64(42), order.ID)
}

func TestEventResolver_Metadata_OtherGatewayFallsThrough(t *testing.T) {
	f := setupResolver(t)
	ctx := context.Background()

	other := gatewayOrder(42)
	other.PaymentMethod = "stripe"
	f.orders.EXPECT().GetByID(ctx, int64(42)).Return(other, nil)
	f.mappings.EXPECT().GetLocalID(ctx, domain.MappingKindPayment, "pay_1").Return(int64(0), false, nil)

	order, strategy, err := f.resolver.ResolvePayment(ctx, domain.WebhookData{PaymentID: "pay_1", Metadata: metadata(42)})
	require.NoError(t, err)
	assert.Nil(t, order)
	assert.Empty(t, strategy)
}

func TestEventResolver_MetadataWinsOverSession(t *testing.T) {
	f := setupResolver(t)
	ctx := context.Background()

	f.orders.EXPECT().GetByID(ctx, int64(42)).Return(gatewayOrder(42), nil)
	f.mappings.EXPECT().GetLocalID(ctx, domain.MappingKindPayment, "pay_1").Return(int64(0), false, nil)
	f.mappings.EXPECT().Save(ctx, domain.MappingKindPayment, int64(42), "pay_1").Return(nil)
	f.orders.EXPECT().FindBySessionID(gomock.Any(), gomock.Any()).Times(0)

	order, strategy, err := f.resolver.ResolvePayment(ctx, domain.WebhookData{
		PaymentID:         "pay_1",
		CheckoutSessionID: "cks_other",
		Metadata:          metadata(42),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), order.ID)
	assert.Equal(t, StrategyMetadata, strategy)
}

func TestEventResolver_Metadata_OrderPaidByAnotherPayment(t *testing.T) {
	f := setupResolver(t)
	ctx := context.Background()

	parent := gatewayOrder(42)
	parent.Status = domain.StatusCompleted
	parent.TransactionID = "pay_1"
	f.orders.EXPECT().GetByID(ctx, int64(42)).Return(parent, nil)
	f.mappings.EXPECT().GetLocalID(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	f.mappings.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	order, strategy, err := f.resolver.ResolvePayment(ctx, domain.WebhookData{
		PaymentID:      "pay_2",
		SubscriptionID: "sub_9",
		Metadata:       metadata(42),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), order.ID)
	assert.Equal(t, StrategyMetadata, strategy)
}

func TestEventResolver_Session_OrderPaidByAnotherPayment(t *testing.T) {
	f := setupResolver(t)
	ctx := context.Background()

	paid := gatewayOrder(9)
	paid.TransactionID = "pay_1"
	f.mappings.EXPECT().GetLocalID(ctx, domain.MappingKindPayment, "pay_2").Return(int64(0), false, nil)
	f.orders.EXPECT().FindBySessionID(ctx, "cks_9").Return(paid, nil)
	f.mappings.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	order, strategy, err := f.resolver.ResolvePayment(ctx, domain.WebhookData{PaymentID: "pay_2", CheckoutSessionID: "cks_9"})
	require.NoError(t, err)
	assert.Equal(t, int64(9), order.ID)
	assert.Equal(t, StrategySession, strategy)
}

func TestEventResolver_BindPayment(t *testing.T) {
	f := setupResolver(t)
	ctx := context.Background()

	f.mappings.EXPECT().Save(ctx, domain.MappingKindPayment, int64(100), "pay_2").Return(nil)
	require.NoError(t, f.resolver.BindPayment(ctx, 100, "pay_2"))
}

func TestEventResolver_Mapping(t *testing.T) {
	f := setupResolver(t)
	ctx := context.Background()

	f.mappings.EXPECT().GetLocalID(ctx, domain.MappingKindPayment, "pay_2").Return(int64(7), true, nil)
	f.orders.EXPECT().GetByID(ctx, int64(7)).Return(gatewayOrder(7), nil)

	order, strategy, err := f.resolver.ResolvePayment(ctx, domain.WebhookData{PaymentID: "pay_2"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), order.ID)
	assert.Equal(t, StrategyMapping, strategy)
}

func TestEventResolver_Session_SavesMapping(t *testing.T) {
	f := setupResolver(t)
	ctx := context.Background()

	f.mappings.EXPECT().GetLocalID(ctx, domain.MappingKindPayment, "pay_3").Return(int64(0), false, nil)
	f.orders.EXPECT().FindBySessionID(ctx, "cks_3").Return(gatewayOrder(9), nil)
	f.mappings.EXPECT().Save(ctx, domain.MappingKindPayment, int64(9), "pay_3").Return(nil)

	order, strategy, err := f.resolver.ResolvePayment(ctx, domain.WebhookData{PaymentID: "pay_3", CheckoutSessionID: "cks_3"})
	require.NoError(t, err)
	assert.Equal(t, int64(9), order.ID)
	assert.Equal(t, StrategySession, strategy)
}

func TestEventResolver_Session_CoalescesConcurrentSearches(t *testing.T) {
	f := setupResolver(t)

	release := make(chan struct{})
	var searches atomic.Int32
	f.mappings.EXPECT().GetLocalID(gomock.Any(), domain.MappingKindPayment, "pay_4").Return(int64(0), false, nil).AnyTimes()
	f.orders.EXPECT().FindBySessionID(gomock.Any(), "cks_4").DoAndReturn(func(context.Context, string) (*domain.Order, error) {
		searches.Add(1)
		<-release
		return gatewayOrder(11), nil
	}).AnyTimes()
	f.mappings.EXPECT().Save(gomock.Any(), domain.MappingKindPayment, int64(11), "pay_4").Return(nil).AnyTimes()

	const callers = 8
	var wg sync.WaitGroup
	results := make(chan int64, callers)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			order, _, err := f.resolver.ResolvePayment(context.Background(), domain.WebhookData{PaymentID: "pay_4", CheckoutSessionID: "cks_4"})
			if err == nil && order != nil {
				results <- order.ID
			}
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	close(results)

	count := 0
	for id := range results {
		assert.Equal(t, int64(11), id)
		count++
	}
	assert.Equal(t, callers, count)
	assert.Less(t, searches.Load(), int32(callers))
}

func TestEventResolver_Unresolved(t *testing.T) {
	f := setupResolver(t)
	ctx := context.Background()

	f.mappings.EXPECT().GetLocalID(ctx, domain.MappingKindPayment, "pay_5").Return(int64(0), false, nil)
	f.orders.EXPECT().FindBySessionID(ctx, "cks_5").Return(nil, nil)

	order, strategy, err := f.resolver.ResolvePayment(ctx, domain.WebhookData{PaymentID: "pay_5", CheckoutSessionID: "cks_5"})
	require.NoError(t, err)
	assert.Nil(t, order)
	assert.Empty(t, strategy)
}

func TestEventResolver_StorageErrorDoesNotStopLaterStrategies(t *testing.T) {
	f := setupResolver(t)
	ctx := context.Background()

	f.mappings.EXPECT().GetLocalID(ctx, domain.MappingKindPayment, "pay_6").Return(int64(0), false, errors.New("connection reset"))
	f.orders.EXPECT().FindBySessionID(ctx, "cks_6").Return(gatewayOrder(12), nil)
	f.mappings.EXPECT().Save(ctx, domain.MappingKindPayment, int64(12), "pay_6").Return(nil)

	order, strategy, err := f.resolver.ResolvePayment(ctx, domain.WebhookData{PaymentID: "pay_6", CheckoutSessionID: "cks_6"})
	require.NoError(t, err)
	assert.Equal(t, int64(12), order.ID)
	assert.Equal(t, StrategySession, strategy)
}

func TestEventResolver_StorageErrorReturnedWhenNothingMatched(t *testing.T) {
	f := setupResolver(t)
	ctx := context.Background()

	f.mappings.EXPECT().GetLocalID(ctx, domain.MappingKindPayment, "pay_7").Return(int64(0), false, errors.New("connection reset"))

	order, _, err := f.resolver.ResolvePayment(ctx, domain.WebhookData{PaymentID: "pay_7"})
	assert.Nil(t, order)
	assert.ErrorContains(t, err, "mapping strategy")
}

func TestEventResolver_ResolveRefund_MappingOnly(t *testing.T) {
	f := setupResolver(t)
	ctx := context.Background()

	f.mappings.EXPECT().GetLocalID(ctx, domain.MappingKindPayment, "pay_8").Return(int64(0), false, nil)

	order, err := f.resolver.ResolveRefund(ctx, domain.WebhookData{
		PaymentID:         "pay_8",
		CheckoutSessionID: "cks_8",
		Metadata:          metadata(8),
	})
	require.NoError(t, err)
	assert.Nil(t, order)
}

func TestEventResolver_ResolveSubscription(t *testing.T) {
	f := setupResolver(t)
	ctx := context.Background()

	f.mappings.EXPECT().GetLocalID(ctx, domain.MappingKindSubscription, "sub_9").Return(int64(7), true, nil)
	f.subs.EXPECT().GetByID(ctx, int64(7)).Return(&domain.Subscription{ID: 7, Status: domain.StatusActive}, nil)

	sub, err := f.resolver.ResolveSubscription(ctx, "sub_9")
	require.NoError(t, err)
	assert.Equal(t, int64(7), sub.ID)

	f.mappings.EXPECT().GetLocalID(ctx, domain.MappingKindSubscription, "sub_missing").Return(int64(0), false, nil)
	sub, err = f.resolver.ResolveSubscription(ctx, "sub_missing")
	require.NoError(t, err)
	assert.Nil(t, sub)

	sub, err = f.resolver.ResolveSubscription(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, sub)
}
