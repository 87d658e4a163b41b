// Package spapi provides an Amazon Selling Partner API client for catalog
// search and competitive pricing, abstracted behind interfaces for
// testability.
package spapi

import (
	"context"
	"encoding/json"

	domain "github.com/donaldgifford/ssello-gateway/pkg/types"
)

// Fixed request parameters shared by every catalog call.
const (
	catalogVersion = "2022-04-01"
	searchPageSize = 20
)

// includedData is the set of optional data facets requested for every
// catalog item.
var includedData = []string{
	"attributes",
	"images",
	"productTypes",
	"salesRanks",
	"summaries",
	"variations",
}

// TokenProvider defines the interface for obtaining LWA access tokens.
type TokenProvider interface {
	Token(ctx context.Context, creds Credentials) (string, error)
}

// CatalogClient dispatches normalized search requests to the Catalog Items
// API and returns the raw upstream items.
type CatalogClient interface {
	Dispatch(ctx context.Context, token string, req domain.SearchRequest) ([]json.RawMessage, error)
}

// PricingClient fetches competitive pricing for a single ASIN.
type PricingClient interface {
	CompetitivePricing(ctx context.Context, token, asin string) ([]byte, error)
}
