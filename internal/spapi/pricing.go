package spapi

import (
	"context"
	"net/url"

	"github.com/samber/lo"
	"github.com/tidwall/gjson"

	domain "github.com/donaldgifford/ssello-gateway/pkg/types"
)

const competitivePricePath = "/products/pricing/v0/competitivePrice"

// PricingHTTPClient implements PricingClient against the Product Pricing API.
type PricingHTTPClient struct {
	apiClient
}

var _ PricingClient = (*PricingHTTPClient)(nil)

// NewPricingClient creates a pricing client limited to one request every
// two seconds unless WithRateLimiter overrides it.
func NewPricingClient(opts ...ClientOption) *PricingHTTPClient {
	return &PricingHTTPClient{
		apiClient: newAPIClient(OperationPricing, NewRateLimiter(OperationPricing, 0.5, 1, 0), opts),
	}
}

// Limiter returns the client's rate limiter, or nil.
func (c *PricingHTTPClient) Limiter() *RateLimiter {
	return c.limiter
}

// CompetitivePricing returns the raw competitive pricing document for asin.
func (c *PricingHTTPClient) CompetitivePricing(ctx context.Context, token, asin string) ([]byte, error) {
	params := url.Values{
		"MarketplaceId": {c.marketplaceID},
		"Asins":         {asin},
		"ItemType":      {"Asin"},
	}

	status, body, err := c.get(ctx, token, competitivePricePath, params)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, &UpstreamError{Operation: "getCompetitivePricing", StatusCode: status, Body: string(body)}
	}
	return body, nil
}

// ExtractBuybox scans a competitive pricing document for the first New
// offer carrying a listing price. Lowest price and offer count are only
// filled when that buy-box price exists; otherwise the zero result is
// returned. Malformed documents yield the zero result.
func ExtractBuybox(asin string, body []byte) domain.BuyboxResult {
	result := domain.BuyboxResult{ASIN: asin}
	if !gjson.ValidBytes(body) {
		return result
	}

	var (
		found     bool
		newPrices []float64
		offers    int
		hasOffers bool
	)

	for _, entry := range entries(gjson.GetBytes(body, "payload")) {
		pricing := entry.Get("Product.CompetitivePricing")
		if ShapeOf(pricing) == ShapeMissing {
			pricing = entry.Get("CompetitivePricing")
		}

		for _, price := range entries(pricing.Get("CompetitivePrices")) {
			if price.Get("condition").String() != "New" {
				continue
			}
			amount, ok := unwrapAmount(price.Get("Price.ListingPrice.Amount"))
			if !ok {
				continue
			}
			if !found {
				result.BuyboxPrice = amount
				found = true
			}
			newPrices = append(newPrices, amount)
		}

		if hasOffers {
			continue
		}
		if listing, ok := lo.Find(entries(pricing.Get("NumberOfOfferListings")), func(l gjson.Result) bool {
			return l.Get("condition").String() == "New"
		}); ok {
			offers = int(listing.Get("Count").Int())
			hasOffers = true
		}
	}

	if !found {
		return result
	}
	result.LowestPrice = lo.Min(newPrices)
	result.OffersCount = offers
	return result
}
