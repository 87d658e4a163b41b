package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/ssello-gateway/internal/gateway"
	domain "github.com/donaldgifford/ssello-gateway/pkg/types"
)

// StatusHandler reports service identity and credential presence.
type StatusHandler struct {
	svc     gateway.CatalogService
	version string
	nowFunc func() time.Time
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(svc gateway.CatalogService, version string) *StatusHandler {
	return &StatusHandler{svc: svc, version: version, nowFunc: time.Now}
}

// WithClock overrides the timestamp source.
func (h *StatusHandler) WithClock(f func() time.Time) *StatusHandler {
	h.nowFunc = f
	return h
}

// StatusOutput is the response body for the status endpoint.
type StatusOutput struct {
	Body struct {
		Service     string                  `json:"service"     example:"ssello-gateway"        doc:"Service name"`
		Version     string                  `json:"version"     example:"v1.2.0"                doc:"Build version"`
		Timestamp   time.Time               `json:"timestamp"   example:"2026-06-16T14:30:00Z"  doc:"Server time"`
		Configured  bool                    `json:"configured"  example:"true"                  doc:"Whether every required credential is set"`
		Credentials domain.CredentialStatus `json:"credentials" doc:"Which credentials are set"`
	}
}

// GetStatus returns the gateway status.
func (h *StatusHandler) GetStatus(_ context.Context, _ *struct{}) (*StatusOutput, error) {
	creds := h.svc.Status()

	out := &StatusOutput{}
	out.Body.Service = "ssello-gateway"
	out.Body.Version = h.version
	out.Body.Timestamp = h.nowFunc().UTC()
	out.Body.Configured = creds.Complete()
	out.Body.Credentials = creds
	return out, nil
}

// RegisterStatusRoutes registers the status endpoint with the Huma API.
func RegisterStatusRoutes(api huma.API, h *StatusHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-status",
		Method:      http.MethodGet,
		Path:        "/api/v1/status",
		Summary:     "Get gateway status",
		Description: "Reports the gateway version and which Amazon credentials are configured, without revealing them.",
		Tags:        []string{"system"},
	}, h.GetStatus)
}
