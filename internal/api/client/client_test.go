package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/ssello-gateway/pkg/types"
)

func TestClient_ConnectionRefused(t *testing.T) {
	t.Parallel()

	c := New("http://127.0.0.1:1") // nothing listening
	_, err := c.Status(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API server not running")
}

func TestClient_APIError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantDetails string
		wantMissing []string
		wantText    string
	}{
		{
			name:        "gateway error body",
			status:      http.StatusInternalServerError,
			body:        `{"items":[],"error":"Configuration error","details":"missing required environment variables: AMAZON_REFRESH_TOKEN","missing":["AMAZON_REFRESH_TOKEN"]}`,
			wantMessage: "Configuration error",
			wantDetails: "missing required environment variables: AMAZON_REFRESH_TOKEN",
			wantMissing: []string{"AMAZON_REFRESH_TOKEN"},
			wantText:    "API error (HTTP 500): Configuration error",
		},
		{
			name:        "problem document",
			status:      http.StatusUnprocessableEntity,
			body:        `{"title":"Unprocessable Entity","status":422,"detail":"validation failed"}`,
			wantMessage: "Unprocessable Entity",
			wantDetails: "validation failed",
			wantText:    "API error (HTTP 422): Unprocessable Entity: validation failed",
		},
		{
			name:     "plain text body",
			status:   http.StatusBadGateway,
			body:     "bad gateway",
			wantText: "API error (HTTP 502): bad gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL).Status(context.Background())
			require.Error(t, err)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.Equal(t, tt.wantDetails, apiErr.Details)
			assert.Equal(t, tt.wantMissing, apiErr.Missing)
			assert.Contains(t, err.Error(), tt.wantText)
			assert.True(t, IsStatus(err, tt.status))
		})
	}
}

func TestClient_Search(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/catalog/search", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req domain.SearchRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "B08N5WRWNW", req.Query)
		assert.Equal(t, domain.SearchASIN, req.Type)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"asin":"B08N5WRWNW","title":"Echo Dot","brand":"Amazon","listPrice":49.99,"imageUrl":"","category":"SPEAKERS"}]}`))
	}))
	defer srv.Close()

	items, err := New(srv.URL).Search(context.Background(), "B08N5WRWNW", domain.SearchASIN)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Echo Dot", items[0].Title)
	assert.InDelta(t, 49.99, items[0].ListPrice, 0.001)
}

func TestClient_SearchEmpty(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	items, err := New(srv.URL).Search(context.Background(), "nothing", "")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestClient_Buybox(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/catalog/buybox/B08N5WRWNW", r.URL.Path)
		_, _ = w.Write([]byte(`{"buybox_price":39.99,"lowest_price":37.5,"offers_count":6}`))
	}))
	defer srv.Close()

	result, err := New(srv.URL).Buybox(context.Background(), " B08N5WRWNW ")
	require.NoError(t, err)
	assert.Equal(t, "B08N5WRWNW", result.ASIN)
	assert.InDelta(t, 39.99, result.BuyboxPrice, 0.001)
	assert.InDelta(t, 37.5, result.LowestPrice, 0.001)
	assert.Equal(t, 6, result.OffersCount)
}

func TestClient_BuyboxEmptyASIN(t *testing.T) {
	t.Parallel()

	_, err := New("http://127.0.0.1:1").Buybox(context.Background(), "  ")
	require.ErrorIs(t, err, ErrEmptyASIN)
}

func TestClient_StatusAndQuota(t *testing.T) {
	t.Parallel()

	reset := time.Date(2026, 6, 17, 14, 30, 0, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/v1/status":
			_, _ = w.Write([]byte(`{"service":"ssello-gateway","version":"v1.0.0","configured":true,` +
				`"credentials":{"has_refresh_token":true,"has_app_id":true,"has_client_secret":true,"has_seller_id":false}}`))
		case "/api/v1/quota":
			_, _ = w.Write([]byte(`{"operations":[{"operation":"pricing","daily_limit":500,"daily_used":12,` +
				`"remaining":488,"reset_at":"2026-06-17T14:30:00Z"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := New(srv.URL + "/")

	status, err := c.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v1.0.0", status.Version)
	assert.True(t, status.Configured)
	assert.True(t, status.Credentials.HasAppID)
	assert.False(t, status.Credentials.HasSellerID)

	quota, err := c.Quota(context.Background())
	require.NoError(t, err)
	require.Len(t, quota, 1)
	assert.Equal(t, "pricing", quota[0].Operation)
	assert.Equal(t, int64(488), quota[0].Remaining)
	assert.True(t, reset.Equal(quota[0].ResetAt))
}
