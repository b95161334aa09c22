package payone

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kevin07696/payone-gateway/internal/adapters/ports"
)

// maxResponseBytes bounds the body read from the gateway
const maxResponseBytes = 1 << 20

// httpTransport implements ports.Transport over HTTPS POST
type httpTransport struct {
	client  ports.HTTPClient
	logger  *zap.Logger
	limiter *rate.Limiter
}

// TransportOption configures an httpTransport
type TransportOption func(*httpTransport)

// WithRateLimit caps outgoing requests at requestsPerSecond with the given
// burst. Post waits for a token or for ctx to end. A non-positive rate
// leaves requests unthrottled.
func WithRateLimit(requestsPerSecond float64, burst int) TransportOption {
	return func(t *httpTransport) {
		if requestsPerSecond <= 0 {
			return
		}
		if burst < 1 {
			burst = 1
		}
		t.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}
}

// NewHTTPTransport creates a transport on top of client.
// The client is responsible for TLS settings; use pkg/http.PayoneClientConfig
// for a TLS 1.2+ client.
func NewHTTPTransport(client ports.HTTPClient, logger *zap.Logger, opts ...TransportOption) ports.Transport {
	t := &httpTransport{
		client: client,
		logger: logger,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Post sends body form-encoded and returns the raw response text
func (t *httpTransport) Post(ctx context.Context, endpoint string, body url.Values) (string, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limit wait: %w", err)
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(body.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	startTime := time.Now()
	httpResp, err := t.client.Do(httpReq)
	if err != nil {
		t.logger.Error("Failed to send Payone request",
			zap.Error(err),
			zap.Duration("elapsed", time.Since(startTime)),
		)
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
	if err != nil {
		t.logger.Error("Failed to read response body", zap.Error(err))
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	t.logger.Debug("Received Payone response",
		zap.Int("status_code", httpResp.StatusCode),
		zap.Duration("elapsed", time.Since(startTime)),
		zap.Int("body_length", len(raw)),
	)

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected HTTP status %d from %s", httpResp.StatusCode, endpoint)
	}

	return string(raw), nil
}
