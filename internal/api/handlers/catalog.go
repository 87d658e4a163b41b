package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/ssello-gateway/internal/gateway"
	"github.com/donaldgifford/ssello-gateway/internal/spapi"
	domain "github.com/donaldgifford/ssello-gateway/pkg/types"
)

// Error messages returned to dashboard clients.
const (
	msgQueryRequired   = "Query parameter is required"
	msgUnsupportedType = "Unsupported search type"
	msgConfiguration   = "Configuration error"
	msgAuthentication  = "Authentication failed"
	msgSearchFailed    = "Failed to search Amazon catalog"
	msgASINRequired    = "ASIN parameter is required"
	msgInvalidBody     = "Invalid request body"
)

const searchOperationID = "search-catalog"

// Decoding failures on the search operation are reported in the SearchBody
// shape; every other operation keeps huma's problem documents.
func init() {
	next := huma.NewErrorWithContext
	huma.NewErrorWithContext = func(ctx huma.Context, status int, msg string, errs ...error) huma.StatusError {
		if ctx != nil && ctx.Operation() != nil && ctx.Operation().OperationID == searchOperationID {
			return newSearchError(status, msg, errs...)
		}
		return next(ctx, status, msg, errs...)
	}
}

// CatalogHandler serves catalog search and buy-box lookups.
type CatalogHandler struct {
	svc gateway.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(svc gateway.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// SearchRequestBody is the search payload. Unknown properties are ignored.
type SearchRequestBody struct {
	_              struct{} `additionalProperties:"true"`
	Query          string   `json:"query" required:"false" doc:"Keywords, an ASIN or a UPC" example:"echo dot"`
	Type           string   `json:"type,omitempty" doc:"Search type: keyword, asin or upc (default keyword)" example:"keyword"`
	IdentifierType string   `json:"identifier_type,omitempty" doc:"Sent by the dashboard for ASIN and UPC searches; type selects the lookup" example:"ASIN"`
}

// SearchInput is the request for the search endpoint. A missing body is
// treated as an empty query.
type SearchInput struct {
	Body *SearchRequestBody
}

// SearchBody always carries an items array, even on failure.
type SearchBody struct {
	Items   []domain.CatalogItem `json:"items" doc:"Normalized catalog items"`
	Error   string               `json:"error,omitempty" doc:"Failure summary" example:"Configuration error"`
	Details string               `json:"details,omitempty" doc:"Failure detail" example:"HTTP 403: Access denied"`
	Missing []string             `json:"missing,omitempty" doc:"Missing credential variables"`
}

// SearchOutput is the response for the search endpoint.
type SearchOutput struct {
	Status int
	Body   SearchBody
}

// Search runs a catalog search. Failures are reported in the body with an
// empty items array rather than as a problem document.
func (h *CatalogHandler) Search(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	var req domain.SearchRequest
	if input.Body != nil {
		req.Query = input.Body.Query
		req.Type = domain.SearchType(input.Body.Type)
	}
	res, err := h.svc.Search(ctx, req)

	out := &SearchOutput{
		Status: http.StatusOK,
		Body:   SearchBody{Items: []domain.CatalogItem{}},
	}
	if err == nil {
		if res != nil && res.Items != nil {
			out.Body.Items = res.Items
		}
		return out, nil
	}

	var (
		cfgErr  *spapi.ConfigurationError
		authErr *spapi.AuthenticationError
		upErr   *spapi.UpstreamError
	)
	switch {
	case errors.Is(err, gateway.ErrEmptyQuery):
		out.Status = http.StatusBadRequest
		out.Body.Error = msgQueryRequired
	case errors.Is(err, spapi.ErrUnsupportedSearchType):
		out.Status = http.StatusBadRequest
		out.Body.Error = msgUnsupportedType
		out.Body.Details = err.Error()
	case errors.As(err, &cfgErr):
		out.Status = http.StatusInternalServerError
		out.Body.Error = msgConfiguration
		out.Body.Details = cfgErr.Error()
		out.Body.Missing = cfgErr.Missing
	case errors.As(err, &authErr):
		out.Status = http.StatusInternalServerError
		out.Body.Error = msgAuthentication
	case errors.As(err, &upErr):
		out.Status = http.StatusInternalServerError
		out.Body.Error = msgSearchFailed
		out.Body.Details = upErr.Detail()
	default:
		out.Status = http.StatusInternalServerError
		out.Body.Error = msgSearchFailed
		out.Body.Details = err.Error()
	}
	return out, nil
}

// searchError reports a request the search operation could not decode. It
// keeps the SearchBody shape so callers never see a problem document.
type searchError struct {
	status int
	body   SearchBody
}

func newSearchError(status int, msg string, errs ...error) *searchError {
	details := make([]string, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			details = append(details, err.Error())
		}
	}
	if len(details) == 0 {
		details = append(details, msg)
	}
	return &searchError{
		status: status,
		body: SearchBody{
			Items:   []domain.CatalogItem{},
			Error:   msgInvalidBody,
			Details: strings.Join(details, "; "),
		},
	}
}

func (e *searchError) Error() string { return e.body.Error + ": " + e.body.Details }

func (e *searchError) GetStatus() int { return e.status }

func (e *searchError) MarshalJSON() ([]byte, error) { return json.Marshal(e.body) }

// BuyboxInput identifies the item to price.
type BuyboxInput struct {
	Identifier string `path:"identifier" doc:"ASIN to price" example:"B08N5WRWNW"`
}

// BuyboxBody is the pricing summary, zero-valued when no data is available.
type BuyboxBody struct {
	BuyboxPrice float64  `json:"buybox_price" doc:"First New listing price" example:"49.99"`
	LowestPrice float64  `json:"lowest_price" doc:"Lowest New listing price" example:"44.5"`
	OffersCount int      `json:"offers_count" doc:"Number of New offers" example:"9"`
	Error       string   `json:"error,omitempty" doc:"Failure summary"`
	Missing     []string `json:"missing,omitempty" doc:"Missing credential variables"`
}

// BuyboxOutput is the response for the buy-box endpoint.
type BuyboxOutput struct {
	Status int
	Body   BuyboxBody
}

// Buybox returns best-effort competitive pricing for one ASIN.
func (h *CatalogHandler) Buybox(ctx context.Context, input *BuyboxInput) (*BuyboxOutput, error) {
	res, err := h.svc.Buybox(ctx, input.Identifier)

	out := &BuyboxOutput{Status: http.StatusOK}
	var cfgErr *spapi.ConfigurationError
	switch {
	case err == nil:
		out.Body.BuyboxPrice = res.BuyboxPrice
		out.Body.LowestPrice = res.LowestPrice
		out.Body.OffersCount = res.OffersCount
	case errors.Is(err, gateway.ErrEmptyIdentifier):
		out.Status = http.StatusBadRequest
		out.Body.Error = msgASINRequired
	case errors.As(err, &cfgErr):
		out.Status = http.StatusInternalServerError
		out.Body.Error = msgConfiguration
		out.Body.Missing = cfgErr.Missing
	default:
		out.Status = http.StatusInternalServerError
		out.Body.Error = err.Error()
	}
	return out, nil
}

// MissingIdentifier answers requests whose identifier segment is empty.
func (*CatalogHandler) MissingIdentifier(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, BuyboxBody{Error: msgASINRequired})
}

// RegisterCatalogRoutes registers catalog endpoints with the Huma API.
func RegisterCatalogRoutes(api huma.API, h *CatalogHandler) {
	huma.Register(api, huma.Operation{
		OperationID: searchOperationID,
		Method:      http.MethodPost,
		Path:        "/catalog/search",
		Summary:     "Search the Amazon catalog",
		Description: "Searches the Catalog Items API by keyword, ASIN or UPC and returns normalized items. " +
			"The body always contains an items array; failures add error and details fields.",
		Tags: []string{"catalog"},
	}, h.Search)

	huma.Register(api, huma.Operation{
		OperationID: "get-buybox",
		Method:      http.MethodGet,
		Path:        "/catalog/buybox/{identifier}",
		Summary:     "Get buy-box pricing",
		Description: "Returns the buy-box price, lowest New price and New offer count for an ASIN. " +
			"Upstream failures degrade to zero values.",
		Tags: []string{"catalog"},
	}, h.Buybox)
}
