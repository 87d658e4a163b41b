package client

import (
	"context"
	"errors"
	"net/url"
	"strings"

	domain "github.com/donaldgifford/ssello-gateway/pkg/types"
)

// ErrEmptyASIN is returned by Buybox before any request is sent.
var ErrEmptyASIN = errors.New("asin is required")

type searchResponse struct {
	Items []domain.CatalogItem `json:"items"`
}

// Search runs a catalog search. An empty searchType lets the server
// default to keyword.
func (c *Client) Search(ctx context.Context, query string, searchType domain.SearchType) ([]domain.CatalogItem, error) {
	var resp searchResponse
	req := domain.SearchRequest{Query: query, Type: searchType}
	if err := c.post(ctx, "/catalog/search", req, &resp); err != nil {
		return nil, err
	}
	if resp.Items == nil {
		resp.Items = []domain.CatalogItem{}
	}
	return resp.Items, nil
}

// Buybox returns buy-box pricing for asin. Zero values mean the gateway
// could not price the item.
func (c *Client) Buybox(ctx context.Context, asin string) (*domain.BuyboxResult, error) {
	asin = strings.TrimSpace(asin)
	if asin == "" {
		return nil, ErrEmptyASIN
	}

	var result domain.BuyboxResult
	if err := c.get(ctx, "/catalog/buybox/"+url.PathEscape(asin), &result); err != nil {
		return nil, err
	}
	result.ASIN = asin
	return &result, nil
}
