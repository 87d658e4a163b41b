package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/ssello-gateway/internal/config"
	"github.com/donaldgifford/ssello-gateway/internal/spapi"
)

func checkConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check-config",
		Short: "Validate the configuration and report missing credentials",
		Long: "Loads the configuration the same way serve does and prints the effective\n" +
			"settings. Secrets are reported as set or missing, never printed. Exits non-zero\n" +
			"when the file is invalid or a required credential is missing.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			return reportConfig(cmd.OutOrStdout(), cfg)
		},
	}
}

func reportConfig(w io.Writer, cfg *config.Config) error {
	status := spapi.CredentialStatus(cfg.Amazon)

	lines := []struct {
		label string
		value any
	}{
		{"listen", cfg.Server.Addr()},
		{"endpoint", cfg.Amazon.Endpoint},
		{"token_url", cfg.Amazon.TokenURL},
		{"marketplace", cfg.Amazon.MarketplaceID},
		{"token_cache", cfg.TokenCache.Backend},
		{"tracing", cfg.Telemetry.Enabled()},
		{config.EnvRefreshToken, presence(status.HasRefreshToken)},
		{config.EnvAppID, presence(status.HasAppID)},
		{config.EnvClientSecret, presence(status.HasClientSecret)},
		{config.EnvSellerID, sellerPresence(status.HasSellerID)},
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "%-26s %v\n", l.label+":", l.value); err != nil {
			return err
		}
	}

	if _, err := spapi.ResolveCredentials(cfg.Amazon); err != nil {
		return err
	}
	return nil
}

func presence(ok bool) string {
	if ok {
		return "set"
	}
	return "missing"
}

func sellerPresence(ok bool) string {
	if ok {
		return "set"
	}
	return "default (" + config.DefaultSellerID + ")"
}
