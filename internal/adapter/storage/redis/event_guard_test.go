package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return s, client
}

func TestEventGuard_Claim(t *testing.T) {
	_, client := newTestClient(t)
	guard := NewEventGuard(client)
	ctx := context.Background()

	ok, err := guard.Claim(ctx, "msg_1", time.Hour)
	require.NoError(t, err)
	assert.True(t, ok, "first delivery should be claimed")

	ok, err = guard.Claim(ctx, "msg_1", time.Hour)
	require.NoError(t, err)
	assert.False(t, ok, "redelivery should be refused")

	ok, err = guard.Claim(ctx, "msg_2", time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEventGuard_Expiry(t *testing.T) {
	s, client := newTestClient(t)
	guard := NewEventGuard(client)
	ctx := context.Background()

	ok, err := guard.Claim(ctx, "msg_1", time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, s.Exists("webhook:event:msg_1"))

	s.FastForward(2 * time.Second)

	ok, err = guard.Claim(ctx, "msg_1", time.Second)
	require.NoError(t, err)
	assert.True(t, ok, "expired claim should be taken again")
}

func TestEventGuard_Release(t *testing.T) {
	_, client := newTestClient(t)
	guard := NewEventGuard(client)
	ctx := context.Background()

	_, err := guard.Claim(ctx, "msg_1", time.Hour)
	require.NoError(t, err)
	require.NoError(t, guard.Release(ctx, "msg_1"))

	ok, err := guard.Claim(ctx, "msg_1", time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEventGuard_ServerDown(t *testing.T) {
	s, client := newTestClient(t)
	guard := NewEventGuard(client)
	s.Close()

	ok, err := guard.Claim(context.Background(), "msg_1", time.Hour)
	assert.Error(t, err)
	assert.False(t, ok)
}
