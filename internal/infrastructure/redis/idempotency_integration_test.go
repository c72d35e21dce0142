//go:build integration

package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func TestIdempotencyStore_Container(t *testing.T) {
	ctx := context.Background()
	rdC, err := tcRedis.RunContainer(ctx, testcontainers.WithImage("redis:7-alpine"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	url, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)
	client, err := NewClient(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	store := NewIdempotencyStore(client, time.Second)
	_, reserved, err := store.Reserve(ctx, "ttl")
	require.NoError(t, err)
	require.True(t, reserved)

	ttl, err := client.TTL(ctx, idempotencyKeyPrefix+"ttl").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.Eventually(t, func() bool {
		_, ok, err := store.Reserve(ctx, "ttl")
		return err == nil && ok
	}, 5*time.Second, 200*time.Millisecond, "la clave expira con el TTL")
}
