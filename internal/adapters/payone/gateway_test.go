package payone

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kevin07696/payone-gateway/internal/adapters/ports"
	"github.com/kevin07696/payone-gateway/internal/domain"
	"github.com/kevin07696/payone-gateway/test/mocks"
)

// newMockTransport answers every Post with response and err
func newMockTransport(response string, err error) *mocks.MockTransport {
	transport := new(mocks.MockTransport)
	transport.On("Post", mock.Anything, mock.Anything, mock.Anything).Return(response, err)
	return transport
}

// Test helper to create credentials for portal 2012345
func newTestCredentials(t *testing.T) *Credentials {
	t.Helper()
	creds, err := NewCredentials("10001", "2012345", "30001", "portal-secret", HashMD5)
	require.NoError(t, err)
	return creds
}

// Test helper to create a test gateway
func newTestGateway(t *testing.T, transport ports.Transport) *Gateway {
	t.Helper()
	config := DefaultGatewayConfig("test")
	config.RecordMetrics = false
	return NewGateway(config, newTestCredentials(t), transport, nil, zap.NewNop())
}

func newTestAuthorizeRequest() *AuthorizeRequest {
	return &AuthorizeRequest{
		Card:          fullCard(),
		TransactionID: "ORDER-1",
		Amount:        decimal.RequireFromString("10.50"),
		Currency:      "EUR",
		ClientIP:      "192.168.1.1",
		ECommerceMode: ECommerceModeInternet,
		Items: []domain.LineItem{
			domain.Item{ItemName: "Ticket", ItemQuantity: 1, ItemPrice: 1050},
		},
	}
}

func TestDefaultGatewayConfig(t *testing.T) {
	tests := []struct {
		mode     string
		wantMode string
	}{
		{mode: "test", wantMode: "test"},
		{mode: "live", wantMode: "live"},
		{mode: "", wantMode: "test"},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			config := DefaultGatewayConfig(tt.mode)

			assert.Equal(t, ServerAPIURL, config.ServerAPIURL)
			assert.Equal(t, FrontendURL, config.FrontendURL)
			assert.Equal(t, EncodingUTF8, config.Encoding)
			assert.Equal(t, tt.wantMode, config.mode())
			assert.NotNil(t, config.CardTypes)
		})
	}
}

func TestNewGateway_CopiesConfig(t *testing.T) {
	config := DefaultGatewayConfig("test")
	config.CardTypes = nil

	gateway := NewGateway(config, newTestCredentials(t), new(mocks.MockTransport), nil, zap.NewNop())

	assert.Nil(t, config.CardTypes)
	assert.NotNil(t, gateway.config.CardTypes)
	assert.NotNil(t, gateway.builder)
}

func TestGateway_Authorize(t *testing.T) {
	transport := new(mocks.MockTransport)
	transport.On("Post", mock.Anything, ServerAPIURL, mock.Anything).
		Return("status=APPROVED\ntxid=100000001\nuserid=200000001\n", nil).Once()
	gateway := newTestGateway(t, transport)

	result, err := gateway.Authorize(context.Background(), newTestAuthorizeRequest())
	require.NoError(t, err)
	transport.AssertExpectations(t)

	body := transport.PostedBody(0)
	assert.Equal(t, "preauthorization", body.Get("request"))
	assert.Equal(t, "1050", body.Get("amount"))
	assert.Equal(t, "4111111111111111", body.Get("cardpan"))

	assert.Equal(t, ports.StatusApproved, result.Status)
	assert.True(t, result.IsSuccessful())
	assert.Equal(t, "100000001", result.TransactionID)
	assert.Equal(t, "200000001", result.UserID)
	// Request context survives next to the response
	assert.Equal(t, "ORDER-1", result.Reference)
	assert.Equal(t, "EUR", result.Data["currency"])
}

func TestGateway_Purchase(t *testing.T) {
	transport := newMockTransport("status=APPROVED\ntxid=100000002", nil)
	gateway := newTestGateway(t, transport)

	_, err := gateway.Purchase(context.Background(), newTestAuthorizeRequest())
	require.NoError(t, err)

	transport.AssertNumberOfCalls(t, "Post", 1)
	assert.Equal(t, "authorization", transport.PostedBody(0).Get("request"))
}

func TestGateway_Capture(t *testing.T) {
	transport := newMockTransport("status=APPROVED\ntxid=100000001\nsettleaccount=yes", nil)
	gateway := newTestGateway(t, transport)
	seq := 1

	result, err := gateway.Capture(context.Background(), &CaptureRequest{
		TransactionID:  "100000001",
		SequenceNumber: &seq,
		Amount:         decimal.RequireFromString("10.50"),
		Currency:       "EUR",
		SettleAccount:  SettleAccountAuto,
	})
	require.NoError(t, err)

	body := transport.PostedBody(0)
	assert.Equal(t, "capture", body.Get("request"))
	assert.Equal(t, "100000001", body.Get("txid"))
	assert.Equal(t, "1", body.Get("sequencenumber"))
	assert.Equal(t, "1050", body.Get("amount"))
	assert.Equal(t, "auto", body.Get("settleaccount"))
	assert.Equal(t, "yes", result.Data["settleaccount"], "response overrides request")
}

func TestGateway_ResponseStatuses(t *testing.T) {
	tests := []struct {
		name     string
		response string
		validate func(t *testing.T, result *ports.Result)
	}{
		{
			name:     "declined is a result, not an error",
			response: "status=ERROR\nerrorcode=2003\nerrormessage=Card expired\ncustomermessage=Please use another card",
			validate: func(t *testing.T, result *ports.Result) {
				assert.False(t, result.IsSuccessful())
				assert.Equal(t, "2003", result.ErrorCode)
				assert.Equal(t, "Card expired", result.ErrorMessage)
				assert.Equal(t, "Please use another card", result.CustomerMessage)
			},
		},
		{
			name:     "3-D Secure redirect",
			response: "status=REDIRECT\r\ntxid=100000003\r\nredirecturl=https://secure.pay1.de/3ds?id=a=b\r\n",
			validate: func(t *testing.T, result *ports.Result) {
				assert.True(t, result.IsRedirect())
				assert.False(t, result.IsSuccessful())
				assert.Equal(t, "https://secure.pay1.de/3ds?id=a=b", result.RedirectURL)
			},
		},
		{
			name:     "pending counts as successful",
			response: "status=PENDING\ntxid=100000004",
			validate: func(t *testing.T, result *ports.Result) {
				assert.True(t, result.IsSuccessful())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := newTestGateway(t, newMockTransport(tt.response, nil))

			result, err := gateway.Authorize(context.Background(), newTestAuthorizeRequest())
			require.NoError(t, err)
			tt.validate(t, result)
		})
	}
}

func TestGateway_TransportError(t *testing.T) {
	boom := errors.New("connection reset")
	gateway := newTestGateway(t, newMockTransport("", boom))

	_, err := gateway.Authorize(context.Background(), newTestAuthorizeRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.True(t, domain.IsGatewayError(err))
}

func TestGateway_ResponseWithoutStatus(t *testing.T) {
	gateway := newTestGateway(t, newMockTransport("<html>maintenance</html>", nil))

	_, err := gateway.Authorize(context.Background(), newTestAuthorizeRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidGatewayResponse)
	assert.True(t, domain.IsGatewayError(err))
}

func TestGateway_ValidationErrorSkipsTransport(t *testing.T) {
	transport := new(mocks.MockTransport)
	gateway := newTestGateway(t, transport)
	req := newTestAuthorizeRequest()
	req.Card.BillingCountry = "Deutschland"

	_, err := gateway.Authorize(context.Background(), req)

	assert.True(t, domain.IsValidationError(err))
	transport.AssertNotCalled(t, "Post", mock.Anything, mock.Anything, mock.Anything)
}

type recordingBuilder struct {
	data map[string]string
}

func (b *recordingBuilder) Build(data map[string]string) (*ports.Result, error) {
	b.data = data
	return &ports.Result{Status: ports.StatusApproved}, nil
}

func TestGateway_CustomBuilder(t *testing.T) {
	builder := &recordingBuilder{}
	config := DefaultGatewayConfig("test")
	config.RecordMetrics = false
	gateway := NewGateway(config, newTestCredentials(t), newMockTransport("a=9\nc=3", nil), builder, zap.NewNop())

	_, err := gateway.Authorize(context.Background(), newTestAuthorizeRequest())
	require.NoError(t, err)

	assert.Equal(t, "9", builder.data["a"])
	assert.Equal(t, "ORDER-1", builder.data["reference"])
}
