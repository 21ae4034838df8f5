package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"awards-portal/internal/common/config"
)

type fakeConn struct {
	pingErr error
	closed  int
}

func (f *fakeConn) Ping(context.Context) error { return f.pingErr }

func (f *fakeConn) Close() error {
	f.closed++
	return nil
}

func TestPingOrClose(t *testing.T) {
	healthy := &fakeConn{}
	require.NoError(t, pingOrClose(context.Background(), healthy))
	assert.Zero(t, healthy.closed)

	down := &fakeConn{pingErr: errors.New("connection refused")}
	assert.EqualError(t, pingOrClose(context.Background(), down), "connection refused")
	assert.Equal(t, 1, down.closed)
}

func TestConnectPostgres_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := ConnectPostgres(ctx, config.PostgresConfig{
		Host: "127.0.0.1", Port: 1, User: "awards", Database: "awards", SSLMode: "disable",
	})
	assert.Error(t, err)
	assert.Nil(t, client)
}

func TestConnectRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()

	client, err := ConnectRedis(context.Background(), config.RedisConfig{Address: addr})
	require.NoError(t, err)
	assert.NoError(t, client.Close())

	mr.Close()
	client, err = ConnectRedis(context.Background(), config.RedisConfig{Address: addr})
	assert.Error(t, err)
	assert.Nil(t, client)
}
