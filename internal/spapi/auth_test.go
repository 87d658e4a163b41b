package spapi_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/donaldgifford/ssello-gateway/internal/spapi"
	"github.com/donaldgifford/ssello-gateway/internal/tokencache"
	cachemocks "github.com/donaldgifford/ssello-gateway/internal/tokencache/mocks"
)

var testCreds = spapi.Credentials{
	RefreshToken: "Atzr|refresh",
	ClientID:     "amzn1.application-oa2-client.test",
	ClientSecret: "secret",
	SellerID:     "A13NBKN6I076SR",
}

func lwaJSON(token string, expiresIn int) []byte {
	if expiresIn == 0 {
		return []byte(fmt.Sprintf(`{"access_token":%q,"token_type":"bearer"}`, token))
	}
	return []byte(fmt.Sprintf(
		`{"access_token":%q,"token_type":"bearer","expires_in":%d}`,
		token, expiresIn,
	))
}

func TestLWATokenProvider_Token(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantToken  string
		wantStatus int
		errContain string
	}{
		{
			name: "successful exchange",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write(lwaJSON("Atza|token-1", 3600))
			},
			wantToken: "Atza|token-1",
		},
		{
			name: "server returns 400",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			},
			wantStatus: http.StatusBadRequest,
			errContain: "invalid_grant",
		},
		{
			name: "server returns 500",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantStatus: http.StatusInternalServerError,
			errContain: "status 500",
		},
		{
			name: "empty access token",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"access_token":"","expires_in":3600}`))
			},
			wantStatus: http.StatusOK,
			errContain: "token exchange failed",
		},
		{
			name: "invalid JSON",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("not json"))
			},
			wantStatus: http.StatusOK,
			errContain: "parsing token response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			provider := spapi.NewLWATokenProvider(spapi.WithTokenURL(srv.URL))
			token, err := provider.Token(context.Background(), testCreds)

			if tt.errContain != "" {
				var authErr *spapi.AuthenticationError
				require.ErrorAs(t, err, &authErr)
				assert.Equal(t, tt.wantStatus, authErr.StatusCode)
				assert.Contains(t, err.Error(), tt.errContain)
				assert.Empty(t, token)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

func TestLWATokenProvider_SendsRefreshGrant(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
		assert.Equal(t, testCreds.RefreshToken, r.PostForm.Get("refresh_token"))
		assert.Equal(t, testCreds.ClientID, r.PostForm.Get("client_id"))
		assert.Equal(t, testCreds.ClientSecret, r.PostForm.Get("client_secret"))
		_, _ = w.Write(lwaJSON("Atza|ok", 3600))
	}))
	defer srv.Close()

	provider := spapi.NewLWATokenProvider(spapi.WithTokenURL(srv.URL))
	_, err := provider.Token(context.Background(), testCreds)
	require.NoError(t, err)
}

func TestLWATokenProvider_TransportFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	provider := spapi.NewLWATokenProvider(spapi.WithTokenURL(url))
	_, err := provider.Token(context.Background(), testCreds)

	var authErr *spapi.AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Error(t, errors.Unwrap(err))
}

func TestLWATokenProvider_Caching(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		n := calls.Add(1)
		_, _ = w.Write(lwaJSON(fmt.Sprintf("Atza|token-%d", n), 3600))
	}))
	defer srv.Close()

	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	current := now
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return current
	}
	advance := func(d time.Duration) {
		mu.Lock()
		current = current.Add(d)
		mu.Unlock()
	}

	provider := spapi.NewLWATokenProvider(
		spapi.WithTokenURL(srv.URL),
		spapi.WithNowFunc(clock),
	)

	first, err := provider.Token(context.Background(), testCreds)
	require.NoError(t, err)
	second, err := provider.Token(context.Background(), testCreds)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), calls.Load())

	// Inside the refresh buffer the token is exchanged again.
	advance(3600*time.Second - 30*time.Second)
	third, err := provider.Token(context.Background(), testCreds)
	require.NoError(t, err)
	assert.NotEqual(t, first, third)
	assert.Equal(t, int32(2), calls.Load())

	// Other credentials never share a cached token.
	other := testCreds
	other.RefreshToken = "Atzr|other"
	_, err = provider.Token(context.Background(), other)
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestLWATokenProvider_NoExpiryIsNotCached(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write(lwaJSON("Atza|no-expiry", 0))
	}))
	defer srv.Close()

	provider := spapi.NewLWATokenProvider(spapi.WithTokenURL(srv.URL))
	for range 2 {
		token, err := provider.Token(context.Background(), testCreds)
		require.NoError(t, err)
		assert.Equal(t, "Atza|no-expiry", token)
	}
	assert.Equal(t, int32(2), calls.Load())
}

func TestLWATokenProvider_UsesSharedCache(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write(lwaJSON("Atza|shared", 3600))
	}))
	defer srv.Close()

	cache := tokencache.NewMemory()
	a := spapi.NewLWATokenProvider(spapi.WithTokenURL(srv.URL), spapi.WithTokenCache(cache))
	b := spapi.NewLWATokenProvider(spapi.WithTokenURL(srv.URL), spapi.WithTokenCache(cache))

	_, err := a.Token(context.Background(), testCreds)
	require.NoError(t, err)
	token, err := b.Token(context.Background(), testCreds)
	require.NoError(t, err)

	assert.Equal(t, "Atza|shared", token)
	assert.Equal(t, int32(1), calls.Load())
}

func TestLWATokenProvider_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		time.Sleep(10 * time.Millisecond)
		_, _ = w.Write(lwaJSON("Atza|concurrent", 3600))
	}))
	defer srv.Close()

	provider := spapi.NewLWATokenProvider(spapi.WithTokenURL(srv.URL))

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, err := provider.Token(context.Background(), testCreds)
			assert.NoError(t, err)
			assert.Equal(t, "Atza|concurrent", token)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestLWATokenProvider_RecordsSpan(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(lwaJSON("Atza|traced", 3600))
	}))
	defer srv.Close()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	provider := spapi.NewLWATokenProvider(
		spapi.WithTokenURL(srv.URL),
		spapi.WithAuthTracerProvider(tp),
	)
	_, err := provider.Token(context.Background(), testCreds)
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "lwa.exchange", spans[0].Name())
}

func TestLWATokenProvider_CacheFailuresFallThrough(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write(lwaJSON("Atza|uncached", 3600))
	}))
	defer srv.Close()

	cache := cachemocks.NewMockCache(t)
	cache.EXPECT().
		Get(mock.Anything, testCreds.Fingerprint()).
		Return(tokencache.Entry{}, errors.New("connection refused"))
	cache.EXPECT().
		Put(mock.Anything, testCreds.Fingerprint(), mock.MatchedBy(func(e tokencache.Entry) bool {
			return e.Token == "Atza|uncached"
		})).
		Return(errors.New("connection refused"))

	provider := spapi.NewLWATokenProvider(
		spapi.WithTokenURL(srv.URL),
		spapi.WithTokenCache(cache),
	)

	token, err := provider.Token(context.Background(), testCreds)
	require.NoError(t, err)
	assert.Equal(t, "Atza|uncached", token)
	assert.Equal(t, int32(1), calls.Load())
}

func TestLWATokenProvider_ExpiredCacheEntry(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 6, 16, 14, 30, 0, 0, time.UTC)

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write(lwaJSON("Atza|fresh", 3600))
	}))
	defer srv.Close()

	cache := cachemocks.NewMockCache(t)
	cache.EXPECT().
		Get(mock.Anything, mock.Anything).
		Return(tokencache.Entry{Token: "Atza|stale", ExpiresAt: now.Add(30 * time.Second)}, nil)
	cache.EXPECT().
		Put(mock.Anything, mock.Anything, tokencache.Entry{Token: "Atza|fresh", ExpiresAt: now.Add(time.Hour)}).
		Return(nil)

	provider := spapi.NewLWATokenProvider(
		spapi.WithTokenURL(srv.URL),
		spapi.WithTokenCache(cache),
		spapi.WithNowFunc(func() time.Time { return now }),
	)

	token, err := provider.Token(context.Background(), testCreds)
	require.NoError(t, err)
	assert.Equal(t, "Atza|fresh", token)
	assert.Equal(t, int32(1), calls.Load())
}
