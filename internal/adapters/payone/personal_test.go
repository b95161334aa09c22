package payone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevin07696/payone-gateway/internal/domain"
)

func TestPersonalData(t *testing.T) {
	tests := []struct {
		name     string
		card     *domain.CreditCard
		clientIP string
		validate func(t *testing.T, data Fields)
	}{
		{
			name: "full billing identity",
			card: &domain.CreditCard{
				CustomerID:      "C-1001",
				BillingTitle:    "Dr.",
				FirstName:       "Erika",
				LastName:        "Mustermann",
				BillingCompany:  "Beispiel GmbH",
				BillingAddress1: "Hauptstr. 1",
				BillingAddress2: "2. OG",
				BillingPostcode: "24118",
				BillingCity:     "Kiel",
				BillingCountry:  "DE",
				BillingPhone:    "+49 431 000000",
				Email:           "erika@example.com",
				Birthday:        time.Date(1980, 2, 29, 0, 0, 0, 0, time.UTC),
				Gender:          "f",
			},
			clientIP: "192.168.1.1",
			validate: func(t *testing.T, data Fields) {
				assert.Equal(t, "C-1001", data["customerid"])
				assert.Equal(t, "Dr.", data["title"])
				assert.Equal(t, "Erika", data["firstname"])
				assert.Equal(t, "Mustermann", data["lastname"])
				assert.Equal(t, "Beispiel GmbH", data["company"])
				assert.Equal(t, "Hauptstr. 1", data["street"])
				assert.Equal(t, "2. OG", data["addressaddition"])
				assert.Equal(t, "24118", data["zip"])
				assert.Equal(t, "Kiel", data["city"])
				assert.Equal(t, "DE", data["country"])
				assert.Equal(t, "+49 431 000000", data["telephonenumber"])
				assert.Equal(t, "erika@example.com", data["email"])
				assert.Equal(t, "19800229", data["birthday"])
				assert.Equal(t, "f", data["gender"])
				assert.Equal(t, "192.168.1.1", data["ip"])
			},
		},
		{
			name: "blank values are left out",
			card: &domain.CreditCard{FirstName: "Erika"},
			validate: func(t *testing.T, data Fields) {
				assert.Equal(t, Fields{"firstname": "Erika"}, data)
			},
		},
		{
			name:     "ipv6 client address is dropped",
			card:     &domain.CreditCard{},
			clientIP: "2001:db8::1",
			validate: func(t *testing.T, data Fields) {
				assert.NotContains(t, data, "ip")
			},
		},
		{
			name:     "octet range is not checked",
			clientIP: "999.1.1.1",
			validate: func(t *testing.T, data Fields) {
				assert.Equal(t, "999.1.1.1", data["ip"])
			},
		},
		{
			name:     "malformed address is dropped",
			clientIP: "192.168.1",
			validate: func(t *testing.T, data Fields) {
				assert.Empty(t, data)
			},
		},
		{
			name: "state kept for allow-listed country",
			card: &domain.CreditCard{BillingCountry: "US", BillingState: "CA"},
			validate: func(t *testing.T, data Fields) {
				assert.Equal(t, "US", data["country"])
				assert.Equal(t, "CA", data["state"])
			},
		},
		{
			name: "numeric state",
			card: &domain.CreditCard{BillingCountry: "MX", BillingState: "09"},
			validate: func(t *testing.T, data Fields) {
				assert.Equal(t, "09", data["state"])
			},
		},
		{
			name: "state dropped and not checked for other countries",
			card: &domain.CreditCard{BillingCountry: "DE", BillingState: "Schleswig-Holstein"},
			validate: func(t *testing.T, data Fields) {
				assert.Equal(t, "DE", data["country"])
				assert.NotContains(t, data, "state")
			},
		},
		{
			name: "state without country is dropped",
			card: &domain.CreditCard{BillingState: "NY"},
			validate: func(t *testing.T, data Fields) {
				assert.Empty(t, data)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := personalData(tt.card, tt.clientIP)
			require.NoError(t, err)
			tt.validate(t, data)
		})
	}
}

func TestPersonalData_InvalidRegion(t *testing.T) {
	tests := []struct {
		name      string
		card      *domain.CreditCard
		wantField string
	}{
		{name: "lowercase country", card: &domain.CreditCard{BillingCountry: "de"}, wantField: "country"},
		{name: "alpha-3 country", card: &domain.CreditCard{BillingCountry: "DEU"}, wantField: "country"},
		{name: "lowercase state", card: &domain.CreditCard{BillingCountry: "US", BillingState: "ca"}, wantField: "state"},
		{name: "long state", card: &domain.CreditCard{BillingCountry: "CA", BillingState: "ONTA"}, wantField: "state"},
		{name: "three digit state", card: &domain.CreditCard{BillingCountry: "BR", BillingState: "123"}, wantField: "state"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := personalData(tt.card, "")
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidField)

			var de *domain.DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.wantField, de.Field())
		})
	}
}

func TestShippingData(t *testing.T) {
	card := &domain.CreditCard{
		BillingCountry:    "DE",
		ShippingFirstName: "Max",
		ShippingLastName:  "Mustermann",
		ShippingCompany:   "Lager AG",
		ShippingAddress1:  "Am Hafen 5",
		ShippingAddress2:  "Tor 3",
		ShippingPostcode:  "20457",
		ShippingCity:      "Hamburg",
		ShippingCountry:   "CA",
		ShippingState:     "QC",
	}

	data, err := shippingData(card)
	require.NoError(t, err)

	assert.Equal(t, Fields{
		"shipping_firstname":       "Max",
		"shipping_lastname":        "Mustermann",
		"shipping_company":         "Lager AG",
		"shipping_street":          "Am Hafen 5",
		"shipping_addressaddition": "Tor 3",
		"shipping_zip":             "20457",
		"shipping_city":            "Hamburg",
		"shipping_country":         "CA",
		"shipping_state":           "QC",
	}, data)
}

func TestShippingData_ValidatedIndependently(t *testing.T) {
	card := &domain.CreditCard{BillingCountry: "DE", ShippingCountry: "Germany"}

	_, err := shippingData(card)
	require.Error(t, err)

	var de *domain.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "shipping_country", de.Field())

	_, err = personalData(card, "")
	assert.NoError(t, err)
}

func TestShippingData_NilCard(t *testing.T) {
	data, err := shippingData(nil)
	require.NoError(t, err)
	assert.Empty(t, data)
}
