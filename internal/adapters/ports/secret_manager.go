package ports

import (
	"context"
)

// Secret represents a retrieved secret with metadata
type Secret struct {
	Value     string            // The secret value (e.g., Payone portal key)
	Version   string            // Secret version identifier
	Metadata  map[string]string // Additional secret metadata
	CreatedAt string            // When this version was created
}

// SecretManagerAdapter defines the port for retrieving the portal key from a
// secret management service (local files, AWS Secrets Manager, HashiCorp Vault,
// GCP Secret Manager)
type SecretManagerAdapter interface {
	// GetSecret retrieves a secret by its path/name
	// Path format depends on implementation:
	//   - Local: file path relative to the base directory
	//   - AWS: "payone/portals/{portal_id}/key" or full ARN
	//   - Vault: "payone/portals/{portal_id}" (KV mount prefix is added)
	//   - GCP: secret ID within the configured project
	// Returns error if the secret does not exist or the backend is unreachable
	GetSecret(ctx context.Context, path string) (*Secret, error)

	// GetSecretVersion retrieves a specific version of a secret
	GetSecretVersion(ctx context.Context, path string, version string) (*Secret, error)
}
