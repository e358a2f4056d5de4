package postgres

import (
	"context"
	"testing"
	"time"

	"payment-webhook-bridge/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionRepo_GetByID(t *testing.T) {
	mock := newMockPool(t)
	repo := NewSubscriptionRepo(mock)
	now := time.Now()

	mock.ExpectQuery("SELECT id, parent_order_id, status, payment_method, created_at, updated_at FROM subscriptions WHERE id").
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "parent_order_id", "status", "payment_method", "created_at", "updated_at"}).
			AddRow(int64(3), int64(42), "active", "dodo_payments", now, now))

	s, err := repo.GetByID(context.Background(), 3)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, int64(42), s.ParentOrderID)
	assert.Equal(t, domain.StatusActive, s.Status)

	mock.ExpectQuery("FROM subscriptions WHERE parent_order_id").
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	s, err = repo.FindByParentOrder(context.Background(), 99)
	assert.NoError(t, err)
	assert.Nil(t, s)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionRepo_CreateRenewalOrder_New(t *testing.T) {
	mock := newMockPool(t)
	repo := NewSubscriptionRepo(mock)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT parent_order_id FROM subscriptions WHERE id = .+ FOR UPDATE").
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"parent_order_id"}).AddRow(int64(42)))
	mock.ExpectQuery("SELECT id FROM orders WHERE subscription_id = .+ AND renewal_payment_id").
		WithArgs(int64(3), "pay_r1").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery("INSERT INTO orders .+ RETURNING id").
		WithArgs("pending-payment", int64(3), "pay_r1", int64(42)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(77)))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(int64(77), int64(42)).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectCommit()
	expectOrderLoad(mock, 77, domain.StatusPendingPayment)

	o, created, err := repo.CreateRenewalOrder(context.Background(), 3, "pay_r1")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(77), o.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionRepo_CreateRenewalOrder_Existing(t *testing.T) {
	mock := newMockPool(t)
	repo := NewSubscriptionRepo(mock)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT parent_order_id FROM subscriptions").
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"parent_order_id"}).AddRow(int64(42)))
	mock.ExpectQuery("SELECT id FROM orders WHERE subscription_id").
		WithArgs(int64(3), "pay_r1").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(77)))
	mock.ExpectCommit()
	expectOrderLoad(mock, 77, domain.StatusPendingPayment)

	o, created, err := repo.CreateRenewalOrder(context.Background(), 3, "pay_r1")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, int64(77), o.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionRepo_CreateRenewalOrder_MissingSubscription(t *testing.T) {
	mock := newMockPool(t)
	repo := NewSubscriptionRepo(mock)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT parent_order_id FROM subscriptions").
		WithArgs(int64(3)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	o, created, err := repo.CreateRenewalOrder(context.Background(), 3, "pay_r1")
	assert.Error(t, err)
	assert.False(t, created)
	assert.Nil(t, o)
	assert.NoError(t, mock.ExpectationsWereMet())
}
