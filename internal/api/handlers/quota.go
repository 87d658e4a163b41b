package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/ssello-gateway/internal/spapi"
)

// QuotaHandler provides the SP-API quota status endpoint.
type QuotaHandler struct {
	limiters []*spapi.RateLimiter
}

// NewQuotaHandler creates a new QuotaHandler. Nil limiters are ignored.
func NewQuotaHandler(limiters ...*spapi.RateLimiter) *QuotaHandler {
	h := &QuotaHandler{}
	for _, rl := range limiters {
		if rl != nil {
			h.limiters = append(h.limiters, rl)
		}
	}
	return h
}

// OperationQuota is the usage of one SP-API operation family.
type OperationQuota struct {
	Operation  string    `json:"operation"   example:"catalog"               doc:"SP-API operation family"`
	DailyLimit int64     `json:"daily_limit" example:"5000"                  doc:"Configured daily call budget, 0 when unlimited"`
	DailyUsed  int64     `json:"daily_used"  example:"142"                   doc:"Calls made in the current 24-hour window"`
	Remaining  int64     `json:"remaining"   example:"4858"                  doc:"Calls remaining in the window, -1 when unlimited"`
	ResetAt    time.Time `json:"reset_at"    example:"2026-06-16T14:30:00Z"  doc:"When the current 24-hour window expires"`
}

// QuotaOutput is the response body for the quota endpoint.
type QuotaOutput struct {
	Body struct {
		Operations []OperationQuota `json:"operations" doc:"Per-operation usage"`
	}
}

// GetQuota returns the current SP-API quota status.
func (h *QuotaHandler) GetQuota(_ context.Context, _ *struct{}) (*QuotaOutput, error) {
	resp := &QuotaOutput{}
	resp.Body.Operations = make([]OperationQuota, 0, len(h.limiters))

	for _, rl := range h.limiters {
		resp.Body.Operations = append(resp.Body.Operations, OperationQuota{
			Operation:  rl.Operation(),
			DailyLimit: rl.MaxDaily(),
			DailyUsed:  rl.DailyCount(),
			Remaining:  rl.Remaining(),
			ResetAt:    rl.ResetAt(),
		})
	}

	return resp, nil
}

// RegisterQuotaRoutes registers the quota endpoint with the Huma API.
func RegisterQuotaRoutes(api huma.API, h *QuotaHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-quota",
		Method:      http.MethodGet,
		Path:        "/api/v1/quota",
		Summary:     "Get SP-API quota status",
		Description: "Returns daily call usage, remaining budget and window reset time per SP-API operation.",
		Tags:        []string{"system"},
	}, h.GetQuota)
}
