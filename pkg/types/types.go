// Package domain defines the core catalog types served by the gateway.
package domain

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// SearchType selects how a catalog query string is interpreted upstream.
type SearchType string

// Search type constants.
const (
	SearchKeyword SearchType = "keyword"
	SearchASIN    SearchType = "asin"
	SearchUPC     SearchType = "upc"
)

// SearchTypes lists the supported search types in their documented order.
var SearchTypes = []SearchType{SearchKeyword, SearchASIN, SearchUPC}

// ParseSearchType converts s to a SearchType. An empty string means keyword.
func ParseSearchType(s string) (SearchType, error) {
	if s == "" {
		return SearchKeyword, nil
	}
	st := SearchType(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(SearchTypes, st) {
		return "", fmt.Errorf("unsupported search type %q", s)
	}
	return st, nil
}

// SearchRequest is one inbound catalog lookup. It is never persisted.
type SearchRequest struct {
	Query string     `json:"query"`
	Type  SearchType `json:"type"`
}

// Placeholder values used when upstream data is missing.
const (
	UnknownTitle        = "Unknown Product"
	PlaceholderImageURL = "/placeholder.svg?height=80&width=80"
)

// CatalogItem is the normalized, structurally complete view of one upstream
// catalog item. Zero values stand in for unknown fields.
type CatalogItem struct {
	ASIN      string  `json:"asin"`
	Title     string  `json:"title"`
	Brand     string  `json:"brand"`
	ListPrice float64 `json:"listPrice"`
	ImageURL  string  `json:"imageUrl"`
	Category  string  `json:"category"`
}

// SourceAmazon tags items that came from the Amazon catalog.
const SourceAmazon = "amazon"

type catalogItemFields CatalogItem

// MarshalJSON adds the legacy dashboard aliases (ASIN, Title, price,
// OriginalMSRP, image, source) next to the normalized fields. Prices in the
// aliases are decimal strings.
func (c CatalogItem) MarshalJSON() ([]byte, error) {
	price := strconv.FormatFloat(c.ListPrice, 'f', -1, 64)
	return json.Marshal(struct {
		catalogItemFields
		LegacyASIN   string `json:"ASIN"`
		LegacyTitle  string `json:"Title"`
		Price        string `json:"price"`
		OriginalMSRP string `json:"OriginalMSRP"`
		Image        string `json:"image"`
		Source       string `json:"source"`
	}{
		catalogItemFields: catalogItemFields(c),
		LegacyASIN:        c.ASIN,
		LegacyTitle:       c.Title,
		Price:             price,
		OriginalMSRP:      price,
		Image:             c.ImageURL,
		Source:            SourceAmazon,
	})
}

// NewCatalogItem returns a CatalogItem for asin with every other field at
// its documented default.
func NewCatalogItem(asin string) CatalogItem {
	return CatalogItem{
		ASIN:     asin,
		Title:    UnknownTitle,
		ImageURL: PlaceholderImageURL,
	}
}

// BuyboxResult is the best-effort competitive pricing summary for one ASIN.
type BuyboxResult struct {
	ASIN        string  `json:"-"`
	BuyboxPrice float64 `json:"buybox_price"`
	LowestPrice float64 `json:"lowest_price"`
	OffersCount int     `json:"offers_count"`
}

// CredentialStatus reports which Amazon credentials are configured without
// exposing their values.
type CredentialStatus struct {
	HasRefreshToken bool `json:"has_refresh_token"`
	HasAppID        bool `json:"has_app_id"`
	HasClientSecret bool `json:"has_client_secret"`
	HasSellerID     bool `json:"has_seller_id"`
}

// Complete reports whether every required credential is present.
func (s CredentialStatus) Complete() bool {
	return s.HasRefreshToken && s.HasAppID && s.HasClientSecret
}
