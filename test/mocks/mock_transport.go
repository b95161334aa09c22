package mocks

import (
	"context"
	"net/url"

	"github.com/stretchr/testify/mock"

	"github.com/kevin07696/payone-gateway/internal/adapters/ports"
)

// MockTransport is a mock implementation of ports.Transport
type MockTransport struct {
	mock.Mock
}

var _ ports.Transport = (*MockTransport)(nil)

func (m *MockTransport) Post(ctx context.Context, endpoint string, body url.Values) (string, error) {
	args := m.Called(ctx, endpoint, body)
	return args.String(0), args.Error(1)
}

// PostedBody returns the form body of the i-th recorded Post call
func (m *MockTransport) PostedBody(i int) url.Values {
	return m.Calls[i].Arguments.Get(2).(url.Values)
}
