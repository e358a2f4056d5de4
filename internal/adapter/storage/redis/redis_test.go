package redis

import (
	"context"
	"strconv"
	"testing"

	"payment-webhook-bridge/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func configFor(t *testing.T, mr *miniredis.Miniredis) config.RedisConfig {
	t.Helper()
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	return config.RedisConfig{Enabled: true, Host: mr.Host(), Port: port}
}

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(context.Background(), configFor(t, mr), zerolog.Nop())
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestNewClient_SelectsDB(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := configFor(t, mr)
	cfg.DB = 2

	client, err := NewClient(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	v, err := mr.DB(2).Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)
}

func TestNewClient_AuthRequired(t *testing.T) {
	mr := miniredis.RunT(t)
	mr.RequireAuth("s3cret")
	cfg := configFor(t, mr)

	_, err := NewClient(context.Background(), cfg, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), cfg.Addr())

	cfg.Password = "s3cret"
	client, err := NewClient(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	client.Close()
}

func TestNewClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := configFor(t, mr)
	mr.Close()

	_, err := NewClient(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)
}
