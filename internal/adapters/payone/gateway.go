package payone

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kevin07696/payone-gateway/internal/adapters/ports"
	"github.com/kevin07696/payone-gateway/internal/domain"
	"github.com/kevin07696/payone-gateway/pkg/observability"
)

// Payone endpoints
const (
	ServerAPIURL = "https://api.pay1.de/post-gateway/"
	FrontendURL  = "https://secure.pay1.de/frontend/"
)

// GatewayConfig contains the non-secret settings of a Payone portal
type GatewayConfig struct {
	// Server API endpoint (same URL for test and live; Mode selects the system)
	ServerAPIURL string

	// Hosted payment page endpoint
	FrontendURL string

	// TestMode sends mode=test instead of mode=live
	TestMode bool

	// Encoding declared to the gateway (UTF-8 or ISO-8859-1)
	Encoding Encoding

	// Language for gateway messages (ISO 639-1), optional
	Language string

	// DefaultItemID is sent as id[n] for items without an article number
	DefaultItemID string

	// CardTypes maps card brands to Payone card types
	CardTypes *CardTypeMapper

	// RecordMetrics exports request counts and latencies to Prometheus
	RecordMetrics bool
}

// DefaultGatewayConfig returns default configuration for the given mode ("test" or "live")
func DefaultGatewayConfig(mode string) *GatewayConfig {
	return &GatewayConfig{
		ServerAPIURL:  ServerAPIURL,
		FrontendURL:   FrontendURL,
		TestMode:      mode != "live",
		Encoding:      EncodingUTF8,
		DefaultItemID: DefaultItemID,
		CardTypes:     DefaultCardTypeMapper(),
		RecordMetrics: true,
	}
}

func (c *GatewayConfig) mode() string {
	if c.TestMode {
		return "test"
	}
	return "live"
}

// Gateway builds, sends and parses Payone Server API requests.
// It holds only configuration and is safe for concurrent use.
type Gateway struct {
	config      *GatewayConfig
	credentials *Credentials
	transport   ports.Transport
	builder     ports.ResponseBuilder
	logger      *zap.Logger
}

// NewGateway creates a gateway. A nil builder selects NewResultBuilder.
// Config and credentials are copied; later changes by the caller do not
// reach the gateway. Nil credentials are reported as MissingCredential on
// first use.
func NewGateway(config *GatewayConfig, credentials *Credentials, transport ports.Transport, builder ports.ResponseBuilder, logger *zap.Logger) *Gateway {
	cfg := *config
	if cfg.CardTypes == nil {
		cfg.CardTypes = DefaultCardTypeMapper()
	}
	if builder == nil {
		builder = NewResultBuilder()
	}
	var creds *Credentials
	if credentials != nil {
		c := *credentials
		creds = &c
	}
	return &Gateway{
		config:      &cfg,
		credentials: creds,
		transport:   transport,
		builder:     builder,
		logger:      logger,
	}
}

// Authorize reserves the amount on the card (request=preauthorization)
func (g *Gateway) Authorize(ctx context.Context, req *AuthorizeRequest) (*ports.Result, error) {
	return g.authorize(ctx, RequestPreauthorization, req)
}

// Purchase authorizes and captures in one step (request=authorization)
func (g *Gateway) Purchase(ctx context.Context, req *AuthorizeRequest) (*ports.Result, error) {
	return g.authorize(ctx, RequestAuthorization, req)
}

// Capture settles a preauthorization (request=capture)
func (g *Gateway) Capture(ctx context.Context, req *CaptureRequest) (*ports.Result, error) {
	data, err := g.BuildCaptureData(req)
	if err != nil {
		g.logger.Error("Invalid Payone capture request", zap.Error(err))
		return nil, err
	}

	g.logger.Info("Processing Payone capture",
		zap.String("txid", req.TransactionID),
		zap.String("amount", data["amount"]),
		zap.String("currency", data["currency"]),
	)

	return g.send(ctx, RequestCapture, data)
}

func (g *Gateway) authorize(ctx context.Context, requestType RequestType, req *AuthorizeRequest) (*ports.Result, error) {
	data, err := g.BuildAuthorizeData(requestType, req)
	if err != nil {
		g.logger.Error("Invalid Payone request",
			zap.String("request", string(requestType)),
			zap.Error(err),
		)
		return nil, err
	}

	g.logger.Info("Processing Payone transaction",
		zap.String("request", string(requestType)),
		zap.String("reference", data["reference"]),
		zap.String("amount", data["amount"]),
		zap.String("currency", data["currency"]),
		zap.Int("items", len(req.Items)),
	)

	return g.send(ctx, requestType, data)
}

// send performs one POST, merges the response over the request and builds
// the result
func (g *Gateway) send(ctx context.Context, requestType RequestType, data Fields) (*ports.Result, error) {
	startTime := time.Now()

	raw, err := g.transport.Post(ctx, g.config.ServerAPIURL, data.Values())
	if err != nil {
		g.record(requestType, "transport_error", startTime)
		return nil, domain.WrapError(domain.ErrorCodeGatewayError, "payone request failed", err)
	}

	merged := ParseResponse(raw, data)
	result, err := g.builder.Build(merged)
	if err != nil {
		g.record(requestType, "invalid_response", startTime)
		g.logger.Error("Failed to build Payone result", zap.Error(err))
		return nil, fmt.Errorf("failed to build result: %w", err)
	}

	g.record(requestType, result.Status, startTime)

	if result.Status == ports.StatusError {
		g.logger.Warn("Payone rejected transaction",
			zap.String("request", string(requestType)),
			zap.String("reference", result.Reference),
			zap.String("errorcode", result.ErrorCode),
			zap.String("errormessage", result.ErrorMessage),
		)
	} else {
		g.logger.Info("Payone transaction processed",
			zap.String("request", string(requestType)),
			zap.String("status", result.Status),
			zap.String("txid", result.TransactionID),
			zap.Duration("elapsed", time.Since(startTime)),
		)
	}

	return result, nil
}

func (g *Gateway) record(requestType RequestType, status string, startTime time.Time) {
	if g.config.RecordMetrics {
		observability.RecordGatewayRequest(string(requestType), status, time.Since(startTime).Seconds())
	}
}
