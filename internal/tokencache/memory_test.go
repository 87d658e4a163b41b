package tokencache_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/ssello-gateway/internal/config"
	"github.com/donaldgifford/ssello-gateway/internal/tokencache"
)

func TestMemory_GetPut(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	current := now

	c := tokencache.NewMemory(tokencache.WithNowFunc(func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return current
	}))
	ctx := context.Background()

	_, err := c.Get(ctx, "fp")
	require.ErrorIs(t, err, tokencache.ErrNotFound)

	require.NoError(t, c.Put(ctx, "fp", tokencache.Entry{
		Token:     "Atza|one",
		ExpiresAt: now.Add(time.Hour),
	}))

	e, err := c.Get(ctx, "fp")
	require.NoError(t, err)
	assert.Equal(t, "Atza|one", e.Token)

	mu.Lock()
	current = now.Add(time.Hour)
	mu.Unlock()

	_, err = c.Get(ctx, "fp")
	require.ErrorIs(t, err, tokencache.ErrNotFound)
}

func TestMemory_PutExpiredIsDropped(t *testing.T) {
	t.Parallel()

	now := time.Now()
	c := tokencache.NewMemory(tokencache.WithNowFunc(func() time.Time { return now }))
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "fp", tokencache.Entry{Token: "t", ExpiresAt: now.Add(time.Minute)}))
	require.NoError(t, c.Put(ctx, "fp", tokencache.Entry{Token: "t2", ExpiresAt: now.Add(-time.Minute)}))

	_, err := c.Get(ctx, "fp")
	require.ErrorIs(t, err, tokencache.ErrNotFound)
}

func TestMemory_KeysAreIndependent(t *testing.T) {
	t.Parallel()

	c := tokencache.NewMemory()
	ctx := context.Background()
	exp := time.Now().Add(time.Hour)

	require.NoError(t, c.Put(ctx, "a", tokencache.Entry{Token: "ta", ExpiresAt: exp}))
	require.NoError(t, c.Put(ctx, "b", tokencache.Entry{Token: "tb", ExpiresAt: exp}))

	a, err := c.Get(ctx, "a")
	require.NoError(t, err)
	b, err := c.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "ta", a.Token)
	assert.Equal(t, "tb", b.Token)
	assert.NoError(t, c.Ping(ctx))
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     config.TokenCacheConfig
		wantErr string
		wantMem bool
	}{
		{name: "default is memory", cfg: config.TokenCacheConfig{}, wantMem: true},
		{name: "memory", cfg: config.TokenCacheConfig{Backend: "memory"}, wantMem: true},
		{
			name: "redis host:port builds lazily",
			cfg:  config.TokenCacheConfig{Backend: "redis", RedisURL: "localhost:6379", KeyPrefix: "p:"},
		},
		{
			name:    "bad redis url",
			cfg:     config.TokenCacheConfig{Backend: "redis", RedisURL: "redis://:::bad"},
			wantErr: "parse redis url",
		},
		{
			name:    "unknown backend",
			cfg:     config.TokenCacheConfig{Backend: "etcd"},
			wantErr: `unknown token cache backend "etcd"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := tokencache.New(context.Background(), tt.cfg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			_, isMem := c.(*tokencache.Memory)
			assert.Equal(t, tt.wantMem, isMem)
		})
	}
}
