package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kevin07696/payone-gateway/internal/adapters/payone"
	"github.com/kevin07696/payone-gateway/internal/adapters/ports"
	"github.com/kevin07696/payone-gateway/internal/adapters/secrets"
	"github.com/kevin07696/payone-gateway/internal/domain"
)

// Secret backends for the portal key
const (
	SecretsBackendLocal = "local"
	SecretsBackendAWS   = "aws"
	SecretsBackendVault = "vault"
	SecretsBackendGCP   = "gcp"
)

// Config holds all application configuration
type Config struct {
	Payone  PayoneConfig
	Secrets SecretsConfig
	Logger  LoggerConfig
	Metrics MetricsConfig
}

// PayoneConfig holds Payone portal configuration
type PayoneConfig struct {
	MerchantID   string // mid
	PortalID     string // portalid
	SubAccountID string // aid, optional for Server API requests

	// Either the portal key itself or the secret path it is stored under
	PortalKey       string
	PortalKeySecret string

	HashMethod   string // md5 or sha2_384
	Mode         string // test or live
	Encoding     string // UTF-8 or ISO-8859-1
	Language     string
	ServerAPIURL string
	FrontendURL  string
	Timeout      time.Duration

	// RateLimit caps outgoing requests per second; 0 disables the limit
	RateLimit float64
	RateBurst int
}

// SecretsConfig selects where PortalKeySecret is read from
type SecretsConfig struct {
	Backend      string // local, aws, vault, gcp
	LocalPath    string
	AWSRegion    string
	VaultAddr    string
	VaultToken   string
	GCPProjectID string
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level       string // debug, info, warn, error
	Development bool
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Enabled bool
}

// LoadFromDotEnv loads the given .env files into the environment, then reads
// the configuration. Without arguments ".env" is loaded if present.
// Variables already set in the environment win over file values.
func LoadFromDotEnv(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil {
		if len(files) > 0 || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
	}
	return LoadFromEnv()
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Payone: PayoneConfig{
			MerchantID:      getEnv("PAYONE_MERCHANT_ID", ""),
			PortalID:        getEnv("PAYONE_PORTAL_ID", ""),
			SubAccountID:    getEnv("PAYONE_SUB_ACCOUNT_ID", ""),
			PortalKey:       getEnv("PAYONE_PORTAL_KEY", ""),
			PortalKeySecret: getEnv("PAYONE_PORTAL_KEY_SECRET", ""),
			HashMethod:      getEnv("PAYONE_HASH_METHOD", string(payone.HashMD5)),
			Mode:            strings.ToLower(getEnv("PAYONE_MODE", "test")),
			Encoding:        getEnv("PAYONE_ENCODING", string(payone.EncodingUTF8)),
			Language:        getEnv("PAYONE_LANGUAGE", ""),
			ServerAPIURL:    getEnv("PAYONE_SERVER_API_URL", payone.ServerAPIURL),
			FrontendURL:     getEnv("PAYONE_FRONTEND_URL", payone.FrontendURL),
			Timeout:         getEnvAsDuration("PAYONE_TIMEOUT", 30*time.Second),
			RateLimit:       getEnvAsFloat("PAYONE_RATE_LIMIT", 0),
			RateBurst:       getEnvAsInt("PAYONE_RATE_BURST", 1),
		},
		Secrets: SecretsConfig{
			Backend:      strings.ToLower(getEnv("SECRETS_BACKEND", SecretsBackendLocal)),
			LocalPath:    getEnv("SECRETS_LOCAL_PATH", "./secrets"),
			AWSRegion:    getEnv("AWS_REGION", "eu-central-1"),
			VaultAddr:    getEnv("VAULT_ADDR", ""),
			VaultToken:   getEnv("VAULT_TOKEN", ""),
			GCPProjectID: getEnv("GCP_PROJECT_ID", ""),
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Development: getEnvAsBool("LOG_DEVELOPMENT", false),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvAsBool("METRICS_ENABLED", true),
		},
	}

	// Validate required fields
	if cfg.Payone.MerchantID == "" {
		return nil, fmt.Errorf("PAYONE_MERCHANT_ID is required")
	}
	if cfg.Payone.PortalID == "" {
		return nil, fmt.Errorf("PAYONE_PORTAL_ID is required")
	}
	if cfg.Payone.PortalKey == "" && cfg.Payone.PortalKeySecret == "" {
		return nil, fmt.Errorf("PAYONE_PORTAL_KEY or PAYONE_PORTAL_KEY_SECRET is required")
	}
	if cfg.Payone.Mode != "test" && cfg.Payone.Mode != "live" {
		return nil, fmt.Errorf("PAYONE_MODE must be test or live, got %q", cfg.Payone.Mode)
	}
	if _, err := payone.ParseHashMethod(cfg.Payone.HashMethod); err != nil {
		return nil, fmt.Errorf("PAYONE_HASH_METHOD: %w", err)
	}
	if _, err := payone.ParseEncoding(cfg.Payone.Encoding); err != nil {
		return nil, fmt.Errorf("PAYONE_ENCODING: %w", err)
	}
	switch cfg.Secrets.Backend {
	case SecretsBackendLocal, SecretsBackendAWS, SecretsBackendVault:
	case SecretsBackendGCP:
		if cfg.Secrets.GCPProjectID == "" {
			return nil, fmt.Errorf("GCP_PROJECT_ID is required for the gcp secrets backend")
		}
	default:
		return nil, fmt.Errorf("SECRETS_BACKEND must be local, aws, vault or gcp, got %q", cfg.Secrets.Backend)
	}
	if cfg.Payone.RateLimit < 0 {
		return nil, fmt.Errorf("PAYONE_RATE_LIMIT must not be negative")
	}

	return cfg, nil
}

// GatewayConfig returns the gateway settings for this portal
func (c *Config) GatewayConfig() *payone.GatewayConfig {
	gc := payone.DefaultGatewayConfig(c.Payone.Mode)
	gc.ServerAPIURL = c.Payone.ServerAPIURL
	gc.FrontendURL = c.Payone.FrontendURL
	gc.Encoding = payone.Encoding(strings.ToUpper(c.Payone.Encoding))
	gc.Language = c.Payone.Language
	gc.RecordMetrics = c.Metrics.Enabled
	return gc
}

// Credentials builds validated portal credentials around portalKey
func (c *Config) Credentials(portalKey string) (*payone.Credentials, error) {
	return payone.NewCredentials(
		c.Payone.MerchantID,
		c.Payone.PortalID,
		c.Payone.SubAccountID,
		portalKey,
		payone.HashMethod(c.Payone.HashMethod),
	)
}

// NewSecretManager creates the secret manager selected by SECRETS_BACKEND
func NewSecretManager(ctx context.Context, cfg *Config, logger *zap.Logger) (ports.SecretManagerAdapter, error) {
	switch cfg.Secrets.Backend {
	case SecretsBackendAWS:
		return secrets.NewAWSSecretsManagerAdapter(ctx, secrets.DefaultAWSSecretsManagerConfig(cfg.Secrets.AWSRegion), logger)
	case SecretsBackendVault:
		vc := secrets.DefaultVaultConfig(cfg.Secrets.VaultAddr)
		vc.Token = cfg.Secrets.VaultToken
		return secrets.NewVaultAdapter(ctx, vc, logger)
	case SecretsBackendGCP:
		return secrets.NewGCPSecretManager(ctx, secrets.DefaultGCPSecretManagerConfig(cfg.Secrets.GCPProjectID), logger)
	default:
		return secrets.NewLocalSecretManager(cfg.Secrets.LocalPath, logger), nil
	}
}

// ResolvePortalKey returns PAYONE_PORTAL_KEY when set, otherwise reads
// PAYONE_PORTAL_KEY_SECRET from sm
func ResolvePortalKey(ctx context.Context, cfg *Config, sm ports.SecretManagerAdapter) (string, error) {
	if cfg.Payone.PortalKey != "" {
		return cfg.Payone.PortalKey, nil
	}
	if cfg.Payone.PortalKeySecret == "" {
		return "", domain.NewMissingCredential("key")
	}
	if sm == nil {
		return "", fmt.Errorf("no secret manager configured for %s", cfg.Payone.PortalKeySecret)
	}

	secret, err := sm.GetSecret(ctx, cfg.Payone.PortalKeySecret)
	if err != nil {
		return "", fmt.Errorf("failed to resolve portal key: %w", err)
	}
	if secret.Value == "" {
		return "", domain.NewMissingCredential("key")
	}
	return secret.Value, nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration accepts whole seconds ("30") or a duration ("1m30s")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	if seconds, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(seconds) * time.Second
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
