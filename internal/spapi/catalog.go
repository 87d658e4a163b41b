package spapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	domain "github.com/donaldgifford/ssello-gateway/pkg/types"
)

// CatalogHTTPClient implements CatalogClient against the Catalog Items API.
type CatalogHTTPClient struct {
	apiClient
}

var _ CatalogClient = (*CatalogHTTPClient)(nil)

// NewCatalogClient creates a catalog client limited to 2 requests per
// second (burst 2) unless WithRateLimiter overrides it.
func NewCatalogClient(opts ...ClientOption) *CatalogHTTPClient {
	return &CatalogHTTPClient{
		apiClient: newAPIClient(OperationCatalog, NewRateLimiter(OperationCatalog, 2, 2, 0), opts),
	}
}

// MarketplaceID returns the marketplace searches are scoped to.
func (c *CatalogHTTPClient) MarketplaceID() string {
	return c.marketplaceID
}

// Limiter returns the client's rate limiter, or nil.
func (c *CatalogHTTPClient) Limiter() *RateLimiter {
	return c.limiter
}

type searchItemsResponse struct {
	Items []json.RawMessage `json:"items"`
}

// Dispatch routes req to the upstream operation for its search type and
// returns the raw items. A 404 for an ASIN lookup yields an empty list.
func (c *CatalogHTTPClient) Dispatch(
	ctx context.Context,
	token string,
	req domain.SearchRequest,
) ([]json.RawMessage, error) {
	switch req.Type {
	case domain.SearchASIN:
		return c.getItem(ctx, token, req.Query)
	case domain.SearchUPC:
		params := c.baseParams()
		params.Set("identifiers", req.Query)
		params.Set("identifiersType", "UPC")
		params.Set("pageSize", strconv.Itoa(searchPageSize))
		return c.searchItems(ctx, token, params)
	case domain.SearchKeyword, "":
		params := c.baseParams()
		params.Set("keywords", req.Query)
		params.Set("pageSize", strconv.Itoa(searchPageSize))
		return c.searchItems(ctx, token, params)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSearchType, req.Type)
	}
}

func (c *CatalogHTTPClient) baseParams() url.Values {
	return url.Values{
		"marketplaceIds": {c.marketplaceID},
		"includedData":   {strings.Join(includedData, ",")},
	}
}

func (c *CatalogHTTPClient) getItem(ctx context.Context, token, asin string) ([]json.RawMessage, error) {
	path := "/catalog/" + catalogVersion + "/items/" + url.PathEscape(asin)

	status, body, err := c.get(ctx, token, path, c.baseParams())
	if err != nil {
		return nil, err
	}

	switch {
	case status == http.StatusNotFound:
		return []json.RawMessage{}, nil
	case status < 200 || status > 299:
		return nil, &UpstreamError{Operation: "getCatalogItem", StatusCode: status, Body: string(body)}
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("parsing catalog item response: invalid JSON")
	}
	return []json.RawMessage{body}, nil
}

func (c *CatalogHTTPClient) searchItems(
	ctx context.Context,
	token string,
	params url.Values,
) ([]json.RawMessage, error) {
	status, body, err := c.get(ctx, token, "/catalog/"+catalogVersion+"/items", params)
	if err != nil {
		return nil, err
	}

	if status < 200 || status > 299 {
		return nil, &UpstreamError{Operation: "searchCatalogItems", StatusCode: status, Body: string(body)}
	}

	var resp searchItemsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing catalog search response: %w", err)
	}
	if resp.Items == nil {
		return []json.RawMessage{}, nil
	}
	return resp.Items, nil
}
