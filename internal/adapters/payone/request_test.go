package payone

import (
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kevin07696/payone-gateway/internal/domain"
	"github.com/kevin07696/payone-gateway/test/mocks"
)

func TestBuildAuthorizeData(t *testing.T) {
	gateway := newTestGateway(t, new(mocks.MockTransport))
	req := newTestAuthorizeRequest()
	req.Card.BillingCountry = "DE"
	req.Card.ShippingCity = "Hamburg"
	req.SuccessURL = "https://shop.example/ok"

	data, err := gateway.BuildAuthorizeData(RequestPreauthorization, req)
	require.NoError(t, err)

	assert.Equal(t, Fields{
		"request":        "preauthorization",
		"mid":            "10001",
		"portalid":       "2012345",
		"key":            "1308d9563c142e7e694c2b731e2a957b",
		"api_version":    "3.10",
		"mode":           "test",
		"encoding":       "UTF-8",
		"aid":            "30001",
		"firstname":      "Erika",
		"lastname":       "Mustermann",
		"country":        "DE",
		"ip":             "192.168.1.1",
		"shipping_city":  "Hamburg",
		"ecommercemode":  "internet",
		"cardpan":        "4111111111111111",
		"cardtype":       "V",
		"cardexpiredate": "3003",
		"cardholder":     "Erika Mustermann",
		"cardcvc2":       "123",
		"successurl":     "https://shop.example/ok",
		"reference":      "ORDER-1",
		"amount":         "1050",
		"currency":       "EUR",
		"clearingtype":   "cc",
		"id[1]":          "000000",
		"pr[1]":          "1050",
		"no[1]":          "1",
		"de[1]":          "Ticket",
		"va[1]":          "0",
	}, data)
}

func TestBuildAuthorizeData_MissingCredentials(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Credentials)
		wantField string
	}{
		{name: "merchant id", mutate: func(c *Credentials) { _ = c.SetMerchantID("") }, wantField: "mid"},
		{name: "portal id", mutate: func(c *Credentials) { _ = c.SetPortalID("") }, wantField: "portalid"},
		{name: "portal key", mutate: func(c *Credentials) { c.SetPortalKey("") }, wantField: "key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := newTestGateway(t, new(mocks.MockTransport))
			tt.mutate(gateway.credentials)

			_, err := gateway.BuildAuthorizeData(RequestPreauthorization, newTestAuthorizeRequest())
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrMissingCredential)

			var de *domain.DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.wantField, de.Field())
		})
	}
}

func TestBuildAuthorizeData_NilCredentials(t *testing.T) {
	gateway := NewGateway(DefaultGatewayConfig("test"), nil, new(mocks.MockTransport), nil, zap.NewNop())

	_, err := gateway.BuildAuthorizeData(RequestPreauthorization, newTestAuthorizeRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingCredential)
	assert.Equal(t, "mid", domain.GetField(err))

	_, err = gateway.BuildCaptureData(&CaptureRequest{TransactionID: "1", Amount: decimal.NewFromInt(1), Currency: "EUR"})
	assert.ErrorIs(t, err, domain.ErrMissingCredential)
}

func TestBuildData_NilRequest(t *testing.T) {
	gateway := newTestGateway(t, new(mocks.MockTransport))

	_, err := gateway.BuildAuthorizeData(RequestAuthorization, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidField)
	assert.Equal(t, "request", domain.GetField(err))

	_, err = gateway.BuildCaptureData(nil)
	require.Error(t, err)
	assert.Equal(t, "request", domain.GetField(err))
}

func TestNewGateway_CopiesCredentials(t *testing.T) {
	creds := newTestCredentials(t)
	gateway := NewGateway(DefaultGatewayConfig("test"), creds, new(mocks.MockTransport), nil, zap.NewNop())

	creds.SetPortalKey("")
	require.NoError(t, creds.SetMerchantID("99999"))

	data, err := gateway.BuildAuthorizeData(RequestPreauthorization, newTestAuthorizeRequest())
	require.NoError(t, err)
	assert.Equal(t, "10001", data["mid"])
	assert.Equal(t, "1308d9563c142e7e694c2b731e2a957b", data["key"])
}

func TestBuildAuthorizeData_KeyAlwaysMD5(t *testing.T) {
	config := DefaultGatewayConfig("live")
	creds, err := NewCredentials("10001", "2012345", "", "portal-secret", HashSHA2384)
	require.NoError(t, err)
	gateway := NewGateway(config, creds, new(mocks.MockTransport), nil, zap.NewNop())

	data, err := gateway.BuildAuthorizeData(RequestAuthorization, newTestAuthorizeRequest())
	require.NoError(t, err)

	assert.Equal(t, "1308d9563c142e7e694c2b731e2a957b", data["key"])
	assert.Equal(t, "live", data["mode"])
	assert.NotContains(t, data, "aid")
}

func TestBuildAuthorizeData_OptionalFields(t *testing.T) {
	config := DefaultGatewayConfig("test")
	config.Language = "de"
	config.Encoding = EncodingISO8859
	gateway := NewGateway(config, newTestCredentials(t), new(mocks.MockTransport), nil, zap.NewNop())

	req := newTestAuthorizeRequest()
	req.TransactionID = ""
	req.ECommerceMode = ""
	req.Items = nil

	data, err := gateway.BuildAuthorizeData(RequestPreauthorization, req)
	require.NoError(t, err)

	assert.Equal(t, "de", data["language"])
	assert.Equal(t, "ISO-8859-1", data["encoding"])
	assert.NotContains(t, data, "ecommercemode")
	assert.NotContains(t, data, "id[1]")
	assert.Regexp(t, regexp.MustCompile(`^[0-9]{1,20}$`), data["reference"])
}

func TestBuildAuthorizeData_InvalidInput(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(g *Gateway, r *AuthorizeRequest)
		wantField string
	}{
		{name: "reference too long", mutate: func(g *Gateway, r *AuthorizeRequest) { r.TransactionID = "ORDER-0123456789-ABCDEF" }, wantField: "reference"},
		{name: "reference characters", mutate: func(g *Gateway, r *AuthorizeRequest) { r.TransactionID = "ORDER 1" }, wantField: "reference"},
		{name: "currency", mutate: func(g *Gateway, r *AuthorizeRequest) { r.Currency = "EURO" }, wantField: "currency"},
		{name: "amount precision", mutate: func(g *Gateway, r *AuthorizeRequest) { r.Amount = decimal.RequireFromString("1.005") }, wantField: "amount"},
		{name: "ecommerce mode", mutate: func(g *Gateway, r *AuthorizeRequest) { r.ECommerceMode = "pos" }, wantField: "ecommercemode"},
		{name: "card type override", mutate: func(g *Gateway, r *AuthorizeRequest) { r.CardType = "visa" }, wantField: "cardtype"},
		{name: "encoding", mutate: func(g *Gateway, r *AuthorizeRequest) { g.config.Encoding = "UTF-16" }, wantField: "encoding"},
		{name: "shipping state", mutate: func(g *Gateway, r *AuthorizeRequest) {
			r.Card.ShippingCountry = "US"
			r.Card.ShippingState = "California"
		}, wantField: "shipping_state"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := newTestGateway(t, new(mocks.MockTransport))
			req := newTestAuthorizeRequest()
			tt.mutate(gateway, req)

			_, err := gateway.BuildAuthorizeData(RequestPreauthorization, req)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidField)

			var de *domain.DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.wantField, de.Field())
		})
	}
}

func TestBuildAuthorizeData_TokenCard(t *testing.T) {
	gateway := newTestGateway(t, new(mocks.MockTransport))
	req := newTestAuthorizeRequest()
	req.Card = &domain.CreditCard{Number: "4100000000000123", FirstName: "Erika"}

	data, err := gateway.BuildAuthorizeData(RequestPreauthorization, req)
	require.NoError(t, err)

	assert.Equal(t, "4100000000000123", data["pseudocardpan"])
	assert.NotContains(t, data, "cardpan")
	assert.NotContains(t, data, "cardholder")
	assert.NotContains(t, data, "ecommercemode")
	assert.Equal(t, "Erika", data["firstname"])
}

func TestBuildCaptureData(t *testing.T) {
	gateway := newTestGateway(t, new(mocks.MockTransport))

	data, err := gateway.BuildCaptureData(&CaptureRequest{
		TransactionID: "100000001",
		Amount:        decimal.RequireFromString("5"),
		Currency:      "EUR",
	})
	require.NoError(t, err)

	assert.Equal(t, "capture", data["request"])
	assert.Equal(t, "100000001", data["txid"])
	assert.Equal(t, "500", data["amount"])
	assert.NotContains(t, data, "sequencenumber")
	assert.NotContains(t, data, "settleaccount")
	assert.NotContains(t, data, "clearingtype")
}

func TestBuildCaptureData_Invalid(t *testing.T) {
	gateway := newTestGateway(t, new(mocks.MockTransport))

	tests := []struct {
		name      string
		req       *CaptureRequest
		wantField string
	}{
		{name: "missing txid", req: &CaptureRequest{Amount: decimal.NewFromInt(1), Currency: "EUR"}, wantField: "txid"},
		{name: "bad settle account", req: &CaptureRequest{TransactionID: "1", Amount: decimal.NewFromInt(1), Currency: "EUR", SettleAccount: "maybe"}, wantField: "settleaccount"},
		{name: "bad currency", req: &CaptureRequest{TransactionID: "1", Amount: decimal.NewFromInt(1), Currency: "€"}, wantField: "currency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gateway.BuildCaptureData(tt.req)
			require.Error(t, err)

			var de *domain.DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.wantField, de.Field())
		})
	}
}

func TestMergeFields(t *testing.T) {
	merged := mergeFields(Fields{"a": "1"}, Fields{}, Fields{"b": "2"})
	assert.Equal(t, Fields{"a": "1", "b": "2"}, merged)

	assert.Panics(t, func() {
		mergeFields(Fields{"a": "1"}, Fields{"a": "2"})
	})
}
