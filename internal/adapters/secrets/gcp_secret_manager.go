package secrets

import (
	"context"
	"errors"
	"fmt"
	"time"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/kevin07696/payone-gateway/internal/adapters/ports"
)

// GCPSecretManagerConfig contains configuration for GCP Secret Manager
type GCPSecretManagerConfig struct {
	ProjectID   string // GCP Project ID (e.g., "my-project-123")
	CacheTTL    time.Duration
	EnableCache bool
}

// DefaultGCPSecretManagerConfig returns default configuration
func DefaultGCPSecretManagerConfig(projectID string) *GCPSecretManagerConfig {
	return &GCPSecretManagerConfig{
		ProjectID:   projectID,
		CacheTTL:    DefaultCacheTTL,
		EnableCache: true,
	}
}

// secretVersionAccessor is the subset of the Secret Manager client used here
type secretVersionAccessor interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error)
}

// gcpSecretManager implements ports.SecretManagerAdapter for Google Cloud Secret Manager
type gcpSecretManager struct {
	client    secretVersionAccessor
	projectID string
	logger    *zap.Logger
	cache     *secretCache
}

// NewGCPSecretManager creates a GCP Secret Manager adapter.
// Credentials come from GOOGLE_APPLICATION_CREDENTIALS, workload identity or
// the default application credentials.
func NewGCPSecretManager(ctx context.Context, cfg *GCPSecretManagerConfig, logger *zap.Logger) (ports.SecretManagerAdapter, error) {
	if cfg.ProjectID == "" {
		return nil, errors.New("GCP project ID is required")
	}

	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCP Secret Manager client: %w", err)
	}

	logger.Info("GCP Secret Manager initialized",
		zap.String("project_id", cfg.ProjectID),
		zap.Duration("cache_ttl", cfg.CacheTTL),
	)

	return newGCPSecretManager(client, cfg, logger), nil
}

func newGCPSecretManager(client secretVersionAccessor, cfg *GCPSecretManagerConfig, logger *zap.Logger) *gcpSecretManager {
	return &gcpSecretManager{
		client:    client,
		projectID: cfg.ProjectID,
		logger:    logger,
		cache:     newSecretCache(cfg.EnableCache, cfg.CacheTTL),
	}
}

// GetSecret retrieves the latest version of a secret
// Path format: "payone-portal-key"; GCP resolves
// projects/{project_id}/secrets/{path}/versions/latest
func (sm *gcpSecretManager) GetSecret(ctx context.Context, path string) (*ports.Secret, error) {
	if cached := sm.cache.get(path); cached != nil {
		sm.logger.Debug("Secret cache hit", zap.String("path", path))
		return cached, nil
	}

	secret, err := sm.access(ctx, path, "latest")
	if err != nil {
		return nil, err
	}

	sm.cache.set(path, secret)
	return secret, nil
}

// GetSecretVersion retrieves a specific version of a secret
func (sm *gcpSecretManager) GetSecretVersion(ctx context.Context, path string, version string) (*ports.Secret, error) {
	return sm.access(ctx, path, version)
}

func (sm *gcpSecretManager) access(ctx context.Context, path, version string) (*ports.Secret, error) {
	name := fmt.Sprintf("projects/%s/secrets/%s/versions/%s", sm.projectID, path, version)

	result, err := sm.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		sm.logger.Error("Failed to access GCP secret",
			zap.String("path", path),
			zap.String("version", version),
			zap.Error(err),
		)
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("%w: %s", ErrSecretNotFound, name)
		}
		return nil, fmt.Errorf("failed to access GCP secret %s: %w", name, err)
	}

	sm.logger.Info("Secret fetched from GCP",
		zap.String("path", path),
		zap.String("version", versionFromName(result.GetName())),
	)

	return &ports.Secret{
		Value:   string(result.GetPayload().GetData()),
		Version: versionFromName(result.GetName()),
		Metadata: map[string]string{
			"gcp_project_id": sm.projectID,
			"gcp_secret":     path,
		},
	}, nil
}

// versionFromName extracts the version from
// projects/{project}/secrets/{secret}/versions/{version}
func versionFromName(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '/' {
			return name[i+1:]
		}
	}
	return "unknown"
}
