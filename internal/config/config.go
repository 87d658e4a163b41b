// Package config handles loading and validating the gateway configuration
// from an optional YAML file with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// Canonical environment variables for the Amazon credentials. They fill any
// credential the YAML file leaves empty.
const (
	EnvRefreshToken = "AMAZON_REFRESH_TOKEN"
	EnvAppID        = "AMAZON_LWA_APP_ID"
	EnvClientSecret = "AMAZON_LWA_CLIENT_SECRET"
	EnvSellerID     = "AMAZON_SELLER_ID"
)

// Defaults for the North America SP-API region.
const (
	DefaultTokenURL      = "https://api.amazon.com/auth/o2/token" //nolint:gosec // not a credential
	DefaultEndpoint      = "https://sellingpartnerapi-na.amazon.com"
	DefaultMarketplaceID = "ATVPDKIKX0DER"
	DefaultSellerID      = "A13NBKN6I076SR"
)

// Config is the top-level gateway configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Amazon     AmazonConfig     `yaml:"amazon"`
	TokenCache TokenCacheConfig `yaml:"token_cache"`
	Logging    LoggingConfig    `yaml:"logging"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	CORSOrigins     []string      `yaml:"cors_origins"`
}

// Addr returns the listen address.
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// AmazonConfig defines SP-API credentials and endpoints. Credentials are
// deliberately not validated at load time: a gateway without credentials
// still starts and reports a configuration error per request.
type AmazonConfig struct {
	RefreshToken  string           `yaml:"refresh_token"`
	AppID         string           `yaml:"lwa_app_id"`
	ClientSecret  string           `yaml:"lwa_client_secret"`
	SellerID      string           `yaml:"seller_id"`
	TokenURL      string           `yaml:"token_url"`
	Endpoint      string           `yaml:"endpoint"`
	MarketplaceID string           `yaml:"marketplace_id"`
	Timeout       time.Duration    `yaml:"timeout"`
	UserAgent     string           `yaml:"user_agent"`
	RateLimits    AmazonRateLimits `yaml:"rate_limits"`
}

// AmazonRateLimits holds one limiter configuration per SP-API operation family.
type AmazonRateLimits struct {
	Catalog RateLimitConfig `yaml:"catalog"`
	Pricing RateLimitConfig `yaml:"pricing"`
}

// RateLimitConfig defines a token bucket plus an optional daily budget.
// A DailyLimit of zero disables the daily budget.
type RateLimitConfig struct {
	PerSecond  float64 `yaml:"per_second"`
	Burst      int     `yaml:"burst"`
	DailyLimit int64   `yaml:"daily_limit"`
}

// TokenCacheConfig selects where LWA access tokens are cached.
type TokenCacheConfig struct {
	Backend   string `yaml:"backend"` // memory, redis
	RedisURL  string `yaml:"redis_url"`
	KeyPrefix string `yaml:"key_prefix"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// TelemetryConfig defines OpenTelemetry tracing export. Tracing is off
// when OTLPEndpoint is empty.
type TelemetryConfig struct {
	OTLPEndpoint string  `yaml:"otlp_endpoint"`
	Insecure     bool    `yaml:"insecure"`
	ServiceName  string  `yaml:"service_name"`
	SampleRatio  float64 `yaml:"sample_ratio"`
}

// Enabled reports whether spans should be exported.
func (t *TelemetryConfig) Enabled() bool {
	return t.OTLPEndpoint != ""
}

// Load reads and parses a YAML config file, performing environment variable
// substitution, credential fallback and validation. An empty path skips the
// file and yields a defaults-only configuration.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("parsing config YAML: %w", err)
		}
	}

	applyCredentialEnv(&cfg.Amazon)
	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyCredentialEnv(a *AmazonConfig) {
	fill := func(dst *string, env string) {
		if *dst == "" {
			*dst = os.Getenv(env)
		}
	}
	fill(&a.RefreshToken, EnvRefreshToken)
	fill(&a.AppID, EnvAppID)
	fill(&a.ClientSecret, EnvClientSecret)
	fill(&a.SellerID, EnvSellerID)
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyAmazonDefaults(&cfg.Amazon)
	applyTokenCacheDefaults(&cfg.TokenCache)
	applyLoggingDefaults(&cfg.Logging)
	applyTelemetryDefaults(&cfg.Telemetry)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 5002
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
	if s.ShutdownTimeout == 0 {
		s.ShutdownTimeout = 10 * time.Second
	}
	if len(s.CORSOrigins) == 0 {
		s.CORSOrigins = []string{"*"}
	}
}

func applyAmazonDefaults(a *AmazonConfig) {
	if a.SellerID == "" {
		a.SellerID = DefaultSellerID
	}
	if a.TokenURL == "" {
		a.TokenURL = DefaultTokenURL
	}
	if a.Endpoint == "" {
		a.Endpoint = DefaultEndpoint
	}
	if a.MarketplaceID == "" {
		a.MarketplaceID = DefaultMarketplaceID
	}
	if a.Timeout == 0 {
		a.Timeout = 30 * time.Second
	}
	if a.UserAgent == "" {
		a.UserAgent = "ssello-gateway/1.0 (Language=Go)"
	}
	applyRateLimitDefaults(&a.RateLimits.Catalog, 2, 2)
	applyRateLimitDefaults(&a.RateLimits.Pricing, 0.5, 1)
}

func applyRateLimitDefaults(r *RateLimitConfig, perSecond float64, burst int) {
	if r.PerSecond == 0 {
		r.PerSecond = perSecond
	}
	if r.Burst == 0 {
		r.Burst = burst
	}
}

func applyTokenCacheDefaults(t *TokenCacheConfig) {
	if t.Backend == "" {
		t.Backend = "memory"
	}
	if t.KeyPrefix == "" {
		t.KeyPrefix = "ssello:lwa:"
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func applyTelemetryDefaults(t *TelemetryConfig) {
	if t.ServiceName == "" {
		t.ServiceName = "ssello-gateway"
	}
	if t.SampleRatio == 0 {
		t.SampleRatio = 1.0
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535 (got %d)", cfg.Server.Port))
	}

	for _, rl := range []struct {
		name string
		cfg  RateLimitConfig
	}{
		{"catalog", cfg.Amazon.RateLimits.Catalog},
		{"pricing", cfg.Amazon.RateLimits.Pricing},
	} {
		if rl.cfg.PerSecond < 0 || rl.cfg.Burst < 0 || rl.cfg.DailyLimit < 0 {
			errs = append(errs, fmt.Errorf("amazon.rate_limits.%s values must not be negative", rl.name))
		}
	}

	switch cfg.TokenCache.Backend {
	case "memory":
	case "redis":
		if cfg.TokenCache.RedisURL == "" {
			errs = append(
				errs,
				fmt.Errorf("token_cache.redis_url is required when backend is redis"),
			)
		}
	default:
		errs = append(
			errs,
			fmt.Errorf(
				"token_cache.backend must be one of: memory, redis (got %q)",
				cfg.TokenCache.Backend,
			),
		)
	}

	if !slices.Contains([]string{"text", "json"}, cfg.Logging.Format) {
		errs = append(errs, fmt.Errorf("logging.format must be one of: text, json (got %q)", cfg.Logging.Format))
	}

	if cfg.Telemetry.SampleRatio < 0 || cfg.Telemetry.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("telemetry.sample_ratio must be between 0 and 1"))
	}

	return errors.Join(errs...)
}
