package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kevin07696/payone-gateway/internal/adapters/ports"
)

// MockSecretManager is a mock implementation of ports.SecretManagerAdapter
type MockSecretManager struct {
	mock.Mock
}

var _ ports.SecretManagerAdapter = (*MockSecretManager)(nil)

func (m *MockSecretManager) GetSecret(ctx context.Context, path string) (*ports.Secret, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.Secret), args.Error(1)
}

func (m *MockSecretManager) GetSecretVersion(ctx context.Context, path, version string) (*ports.Secret, error) {
	args := m.Called(ctx, path, version)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.Secret), args.Error(1)
}
