package client

import (
	"context"
	"time"

	domain "github.com/donaldgifford/ssello-gateway/pkg/types"
)

// Status is the gateway status payload.
type Status struct {
	Service     string                  `json:"service"`
	Version     string                  `json:"version"`
	Timestamp   time.Time               `json:"timestamp"`
	Configured  bool                    `json:"configured"`
	Credentials domain.CredentialStatus `json:"credentials"`
}

// OperationQuota is the usage of one SP-API operation family.
type OperationQuota struct {
	Operation  string    `json:"operation"`
	DailyLimit int64     `json:"daily_limit"`
	DailyUsed  int64     `json:"daily_used"`
	Remaining  int64     `json:"remaining"`
	ResetAt    time.Time `json:"reset_at"`
}

// Status returns the gateway status.
func (c *Client) Status(ctx context.Context) (*Status, error) {
	var s Status
	if err := c.get(ctx, "/api/v1/status", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Quota returns per-operation SP-API usage.
func (c *Client) Quota(ctx context.Context) ([]OperationQuota, error) {
	var resp struct {
		Operations []OperationQuota `json:"operations"`
	}
	if err := c.get(ctx, "/api/v1/quota", &resp); err != nil {
		return nil, err
	}
	return resp.Operations, nil
}
