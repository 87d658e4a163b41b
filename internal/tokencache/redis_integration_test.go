//go:build integration

package tokencache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/donaldgifford/ssello-gateway/internal/tokencache"
)

func setupRedis(t *testing.T) *tokencache.Redis {
	t.Helper()
	ctx := context.Background()

	ctr, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, ctr.Terminate(ctx))
	})

	uri, err := ctr.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := tokencache.Connect(ctx, uri)
	require.NoError(t, err)

	c := tokencache.NewRedis(client, "ssello:test:")
	t.Cleanup(func() {
		_ = c.Close()
	})

	require.NoError(t, c.Ping(ctx))
	return c
}

func TestRedis_GetPut(t *testing.T) {
	c := setupRedis(t)
	ctx := context.Background()

	_, err := c.Get(ctx, "fp")
	require.ErrorIs(t, err, tokencache.ErrNotFound)

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	require.NoError(t, c.Put(ctx, "fp", tokencache.Entry{Token: "Atza|shared", ExpiresAt: exp}))

	e, err := c.Get(ctx, "fp")
	require.NoError(t, err)
	assert.Equal(t, "Atza|shared", e.Token)
	assert.True(t, e.ExpiresAt.Equal(exp))
}

func TestRedis_ExpiredEntryIsNotStored(t *testing.T) {
	c := setupRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "old", tokencache.Entry{
		Token:     "stale",
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	_, err := c.Get(ctx, "old")
	require.ErrorIs(t, err, tokencache.ErrNotFound)
}
