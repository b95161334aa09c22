// Package bootstrap wires configuration, secrets and transport into a ready
// Payone gateway.
package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kevin07696/payone-gateway/internal/adapters/payone"
	"github.com/kevin07696/payone-gateway/internal/adapters/ports"
	"github.com/kevin07696/payone-gateway/internal/config"
	pkghttp "github.com/kevin07696/payone-gateway/pkg/http"
	"github.com/kevin07696/payone-gateway/pkg/observability"
)

// NewLogger builds the logger described by cfg.Logger
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	return observability.NewLogger(cfg.Logger.Level, cfg.Logger.Development)
}

// NewGateway resolves the portal key and assembles a gateway for cfg.
// The secret manager is only created when the key is not set directly.
func NewGateway(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*payone.Gateway, error) {
	var sm ports.SecretManagerAdapter
	if cfg.Payone.PortalKey == "" {
		var err error
		sm, err = config.NewSecretManager(ctx, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create secret manager: %w", err)
		}
	}

	portalKey, err := config.ResolvePortalKey(ctx, cfg, sm)
	if err != nil {
		return nil, err
	}

	creds, err := cfg.Credentials(portalKey)
	if err != nil {
		return nil, fmt.Errorf("invalid Payone credentials: %w", err)
	}

	client := pkghttp.NewHTTPClient(pkghttp.PayoneClientConfig(), cfg.Payone.Timeout)
	transport := payone.NewHTTPTransport(client, logger,
		payone.WithRateLimit(cfg.Payone.RateLimit, cfg.Payone.RateBurst),
	)

	gateway := payone.NewGateway(cfg.GatewayConfig(), creds, transport, nil, logger)

	logger.Info("Payone gateway initialized",
		zap.String("mode", cfg.Payone.Mode),
		zap.String("portal_id", cfg.Payone.PortalID),
		zap.String("hash_method", cfg.Payone.HashMethod),
		zap.String("server_api_url", cfg.Payone.ServerAPIURL),
		zap.Float64("rate_limit", cfg.Payone.RateLimit),
	)

	return gateway, nil
}
