package redis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"payment-webhook-bridge/internal/adapter/storage/memory"
	"payment-webhook-bridge/internal/core/domain"
	"payment-webhook-bridge/internal/core/ports/mocks"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupCache(t *testing.T) (*CachedMappingRepository, *mocks.MockMappingRepository, func()) {
	t.Helper()
	s, client := newTestClient(t)
	ctrl := gomock.NewController(t)
	backing := mocks.NewMockMappingRepository(ctrl)
	repo := NewCachedMappingRepository(backing, client, time.Minute, zerolog.New(io.Discard))
	return repo, backing, s.Close
}

func TestCachedMapping_ReadThrough(t *testing.T) {
	repo, backing, _ := setupCache(t)
	ctx := context.Background()

	backing.EXPECT().GetRemoteID(gomock.Any(), domain.MappingKindPayment, int64(42)).Return("pay_1", true, nil).Times(1)
	backing.EXPECT().GetLocalID(gomock.Any(), domain.MappingKindPayment, "pay_1").Return(int64(42), true, nil).Times(1)

	for i := 0; i < 3; i++ {
		remote, ok, err := repo.GetRemoteID(ctx, domain.MappingKindPayment, 42)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "pay_1", remote)

		local, ok, err := repo.GetLocalID(ctx, domain.MappingKindPayment, "pay_1")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int64(42), local)
	}
}

func TestCachedMapping_MissesAreNotCached(t *testing.T) {
	repo, backing, _ := setupCache(t)
	ctx := context.Background()

	gomock.InOrder(
		backing.EXPECT().GetLocalID(gomock.Any(), domain.MappingKindPayment, "pay_1").Return(int64(0), false, nil),
		backing.EXPECT().GetLocalID(gomock.Any(), domain.MappingKindPayment, "pay_1").Return(int64(42), true, nil),
	)

	_, ok, err := repo.GetLocalID(ctx, domain.MappingKindPayment, "pay_1")
	require.NoError(t, err)
	assert.False(t, ok)

	id, ok, err := repo.GetLocalID(ctx, domain.MappingKindPayment, "pay_1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
}

func TestCachedMapping_SaveInvalidates(t *testing.T) {
	repo, backing, _ := setupCache(t)
	ctx := context.Background()

	gomock.InOrder(
		backing.EXPECT().GetRemoteID(gomock.Any(), domain.MappingKindProduct, int64(5)).Return("pdt_old", true, nil),
		backing.EXPECT().GetLocalID(gomock.Any(), domain.MappingKindProduct, "pdt_old").Return(int64(5), true, nil),
		backing.EXPECT().GetRemoteID(gomock.Any(), domain.MappingKindProduct, int64(5)).Return("pdt_old", true, nil),
		backing.EXPECT().Save(gomock.Any(), domain.MappingKindProduct, int64(5), "pdt_new").Return(nil),
		backing.EXPECT().GetRemoteID(gomock.Any(), domain.MappingKindProduct, int64(5)).Return("pdt_new", true, nil),
		backing.EXPECT().GetLocalID(gomock.Any(), domain.MappingKindProduct, "pdt_old").Return(int64(0), false, nil),
	)

	_, _, err := repo.GetRemoteID(ctx, domain.MappingKindProduct, 5)
	require.NoError(t, err)
	_, _, err = repo.GetLocalID(ctx, domain.MappingKindProduct, "pdt_old")
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, domain.MappingKindProduct, 5, "pdt_new"))

	remote, _, err := repo.GetRemoteID(ctx, domain.MappingKindProduct, 5)
	require.NoError(t, err)
	assert.Equal(t, "pdt_new", remote)

	_, ok, err := repo.GetLocalID(ctx, domain.MappingKindProduct, "pdt_old")
	require.NoError(t, err)
	assert.False(t, ok, "old remote id must not resolve after re-mapping")
}

func TestCachedMapping_RemapDropsCachedReverseEntry(t *testing.T) {
	s, client := newTestClient(t)
	store := memory.NewStore().Mappings()
	repo := NewCachedMappingRepository(store, client, time.Minute, zerolog.New(io.Discard))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, domain.MappingKindPayment, 42, "pay_1"))

	// Only the reverse key gets cached.
	id, ok, err := repo.GetLocalID(ctx, domain.MappingKindPayment, "pay_1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(42), id)
	assert.True(t, s.Exists(remoteKey(domain.MappingKindPayment, "pay_1")))
	assert.False(t, s.Exists(localKey(domain.MappingKindPayment, 42)))

	require.NoError(t, repo.Save(ctx, domain.MappingKindPayment, 42, "pay_2"))

	_, ok, err = repo.GetLocalID(ctx, domain.MappingKindPayment, "pay_1")
	require.NoError(t, err)
	assert.False(t, ok, "re-mapped payment must not resolve from cache")

	id, ok, err = repo.GetLocalID(ctx, domain.MappingKindPayment, "pay_2")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
}

func TestCachedMapping_PreviousRemoteFallsBackToCache(t *testing.T) {
	repo, backing, _ := setupCache(t)
	ctx := context.Background()

	gomock.InOrder(
		backing.EXPECT().GetLocalID(gomock.Any(), domain.MappingKindPayment, "pay_1").Return(int64(42), true, nil),
		backing.EXPECT().GetRemoteID(gomock.Any(), domain.MappingKindPayment, int64(42)).Return("pay_1", true, nil),
		backing.EXPECT().GetRemoteID(gomock.Any(), domain.MappingKindPayment, int64(42)).Return("", false, errors.New("timeout")),
		backing.EXPECT().Save(gomock.Any(), domain.MappingKindPayment, int64(42), "pay_2").Return(nil),
		backing.EXPECT().GetLocalID(gomock.Any(), domain.MappingKindPayment, "pay_1").Return(int64(0), false, nil),
	)

	_, _, err := repo.GetLocalID(ctx, domain.MappingKindPayment, "pay_1")
	require.NoError(t, err)
	_, _, err = repo.GetRemoteID(ctx, domain.MappingKindPayment, 42)
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, domain.MappingKindPayment, 42, "pay_2"))

	_, ok, err := repo.GetLocalID(ctx, domain.MappingKindPayment, "pay_1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCachedMapping_SaveErrorKeepsCache(t *testing.T) {
	repo, backing, _ := setupCache(t)
	ctx := context.Background()

	backing.EXPECT().GetRemoteID(gomock.Any(), domain.MappingKindCoupon, int64(3)).Return("dsc_1", true, nil).Times(2)
	backing.EXPECT().Save(gomock.Any(), domain.MappingKindCoupon, int64(3), "dsc_2").Return(errors.New("db down"))

	_, _, err := repo.GetRemoteID(ctx, domain.MappingKindCoupon, 3)
	require.NoError(t, err)
	assert.Error(t, repo.Save(ctx, domain.MappingKindCoupon, 3, "dsc_2"))

	remote, _, err := repo.GetRemoteID(ctx, domain.MappingKindCoupon, 3)
	require.NoError(t, err)
	assert.Equal(t, "dsc_1", remote)
}

func TestCachedMapping_DeleteAndTruncate(t *testing.T) {
	repo, backing, _ := setupCache(t)
	ctx := context.Background()

	backing.EXPECT().GetRemoteID(gomock.Any(), domain.MappingKindProduct, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.MappingKind, id int64) (string, bool, error) {
			return fmt.Sprintf("pdt_%d", id), true, nil
		}).Times(5)
	backing.EXPECT().Delete(gomock.Any(), domain.MappingKindProduct, int64(1)).Return(nil)
	backing.EXPECT().Truncate(gomock.Any(), domain.MappingKindProduct).Return(int64(2), nil)

	for _, id := range []int64{1, 2} {
		_, _, err := repo.GetRemoteID(ctx, domain.MappingKindProduct, id)
		require.NoError(t, err)
	}

	require.NoError(t, repo.Delete(ctx, domain.MappingKindProduct, 1))
	_, _, err := repo.GetRemoteID(ctx, domain.MappingKindProduct, 1)
	require.NoError(t, err)

	n, err := repo.Truncate(ctx, domain.MappingKindProduct)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, _, err = repo.GetRemoteID(ctx, domain.MappingKindProduct, 2)
	require.NoError(t, err)
}

func TestCachedMapping_DegradesWhenRedisDown(t *testing.T) {
	repo, backing, stop := setupCache(t)
	ctx := context.Background()
	stop()

	backing.EXPECT().GetLocalID(gomock.Any(), domain.MappingKindSubscription, "sub_9").Return(int64(7), true, nil)
	backing.EXPECT().GetRemoteID(gomock.Any(), domain.MappingKindSubscription, int64(7)).Return("sub_9", true, nil)
	backing.EXPECT().Save(gomock.Any(), domain.MappingKindSubscription, int64(7), "sub_9").Return(nil)

	id, ok, err := repo.GetLocalID(ctx, domain.MappingKindSubscription, "sub_9")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(7), id)

	assert.NoError(t, repo.Save(ctx, domain.MappingKindSubscription, 7, "sub_9"))
}
