package spapi

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"

	"github.com/donaldgifford/ssello-gateway/internal/config"
	domain "github.com/donaldgifford/ssello-gateway/pkg/types"
)

// Credentials is the LWA credential bundle used for one request.
type Credentials struct {
	RefreshToken string
	ClientID     string
	ClientSecret string
	SellerID     string
}

// ResolveCredentials assembles a credential bundle from configuration. Every
// required field is checked before failing, so the returned
// *ConfigurationError names all missing variables.
func ResolveCredentials(cfg config.AmazonConfig) (Credentials, error) {
	required := []struct {
		env   string
		value string
	}{
		{config.EnvRefreshToken, cfg.RefreshToken},
		{config.EnvAppID, cfg.AppID},
		{config.EnvClientSecret, cfg.ClientSecret},
	}

	var missing []string
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.env)
		}
	}
	if len(missing) > 0 {
		return Credentials{}, &ConfigurationError{Missing: missing}
	}

	sellerID := cfg.SellerID
	if sellerID == "" {
		sellerID = config.DefaultSellerID
	}

	return Credentials{
		RefreshToken: cfg.RefreshToken,
		ClientID:     cfg.AppID,
		ClientSecret: cfg.ClientSecret,
		SellerID:     sellerID,
	}, nil
}

// CredentialStatus reports which credentials cfg carries.
func CredentialStatus(cfg config.AmazonConfig) domain.CredentialStatus {
	return domain.CredentialStatus{
		HasRefreshToken: cfg.RefreshToken != "",
		HasAppID:        cfg.AppID != "",
		HasClientSecret: cfg.ClientSecret != "",
		HasSellerID:     cfg.SellerID != "" && cfg.SellerID != config.DefaultSellerID,
	}
}

// Fingerprint returns a stable digest identifying this credential pair. It
// keys the token cache and never reveals the secrets.
func (c Credentials) Fingerprint() string {
	sum := sha256.Sum256([]byte(c.ClientID + "\x00" + c.RefreshToken))
	return hex.EncodeToString(sum[:])
}

// LogValue implements slog.LogValuer so secrets never reach the logs.
func (c Credentials) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("client_id", c.ClientID),
		slog.String("seller_id", c.SellerID),
		slog.String("refresh_token", "[redacted]"),
		slog.String("client_secret", "[redacted]"),
	)
}
