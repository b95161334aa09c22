package secrets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/kevin07696/payone-gateway/internal/adapters/ports"
)

// ErrSecretNotFound is returned when a secret path does not exist
var ErrSecretNotFound = errors.New("secret not found")

// localSecretManager implements SecretManagerAdapter using local filesystem
// WARNING: This is for development only. Use AWS Secrets Manager or Vault in production.
type localSecretManager struct {
	basePath string
	logger   *zap.Logger
	cache    *secretCache
}

// NewLocalSecretManager creates a new local filesystem secret manager
func NewLocalSecretManager(basePath string, logger *zap.Logger) ports.SecretManagerAdapter {
	return &localSecretManager{
		basePath: basePath,
		logger:   logger,
		cache:    newSecretCache(true, DefaultCacheTTL),
	}
}

// GetSecret reads a secret file below the base path.
// The file holds either the plain value or {"value": ..., "tags": ..., "created_at": ...}.
func (m *localSecretManager) GetSecret(ctx context.Context, secretPath string) (*ports.Secret, error) {
	if cached := m.cache.get(secretPath); cached != nil {
		return cached, nil
	}

	filePath, err := m.resolve(secretPath)
	if err != nil {
		return nil, err
	}

	m.logger.Debug("Reading secret from filesystem",
		zap.String("path", secretPath),
	)

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSecretNotFound, secretPath)
		}
		return nil, fmt.Errorf("failed to read secret: %w", err)
	}

	secret := parseLocalSecret(data)
	if secret.Value == "" {
		return nil, fmt.Errorf("secret %s is empty", secretPath)
	}

	m.cache.set(secretPath, secret)
	return secret, nil
}

// GetSecretVersion only knows the latest version on the local filesystem
func (m *localSecretManager) GetSecretVersion(ctx context.Context, path string, version string) (*ports.Secret, error) {
	return m.GetSecret(ctx, path)
}

// resolve keeps secret paths inside the base directory
func (m *localSecretManager) resolve(secretPath string) (string, error) {
	filePath := filepath.Join(m.basePath, secretPath)
	rel, err := filepath.Rel(m.basePath, filePath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("secret path %q escapes base directory", secretPath)
	}
	return filePath, nil
}

func parseLocalSecret(data []byte) *ports.Secret {
	var secretData struct {
		Value     string            `json:"value"`
		Tags      map[string]string `json:"tags"`
		CreatedAt string            `json:"created_at"`
	}
	if err := json.Unmarshal(data, &secretData); err == nil && secretData.Value != "" {
		return &ports.Secret{
			Value:     secretData.Value,
			Version:   "v1",
			Metadata:  secretData.Tags,
			CreatedAt: secretData.CreatedAt,
		}
	}

	// Plain text; a trailing newline from editors is not part of the key
	return &ports.Secret{
		Value:   strings.TrimRight(string(data), "\r\n"),
		Version: "v1",
	}
}
