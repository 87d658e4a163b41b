package spapi

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedSearchType is returned when a request carries an unknown
// search type.
var ErrUnsupportedSearchType = errors.New("unsupported search type")

// ConfigurationError reports required credentials that are not configured.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return "missing required environment variables: " + strings.Join(e.Missing, ", ")
}

// AuthenticationError reports a failed LWA token exchange.
type AuthenticationError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *AuthenticationError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("token exchange failed: %v", e.Err)
	case e.Body == "":
		return fmt.Sprintf("token exchange failed (status %d)", e.StatusCode)
	default:
		return fmt.Sprintf("token exchange failed (status %d): %s", e.StatusCode, e.Body)
	}
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// UpstreamError captures non-2xx responses from SP-API operations.
type UpstreamError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s request failed (status %d)", e.Operation, e.StatusCode)
	}
	return fmt.Sprintf("%s request failed (status %d): %s", e.Operation, e.StatusCode, e.Body)
}

// Detail renders the status and body the way the search endpoint reports it.
func (e *UpstreamError) Detail() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}
