package payone

import (
	"regexp"

	"github.com/kevin07696/payone-gateway/internal/domain"
	"github.com/kevin07696/payone-gateway/pkg/timeutil"
)

var (
	countryPattern = regexp.MustCompile(`^[A-Z]{2}$`)
	statePattern   = regexp.MustCompile(`^([A-Z]{1,3}|[0-9]{2})$`)
	ipv4Pattern    = regexp.MustCompile(`^[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}$`)
)

// stateCountries are the countries for which Payone accepts a state code
var stateCountries = map[string]bool{
	"US": true, "CA": true, "CN": true, "JP": true, "MX": true,
	"BR": true, "AR": true, "ID": true, "TH": true, "IN": true,
}

// personalData collects the billing identity of the customer
func personalData(card *domain.CreditCard, clientIP string) (Fields, error) {
	data := Fields{}

	if card != nil {
		data.setIfNotEmpty("customerid", card.CustomerID)
		data.setIfNotEmpty("title", card.BillingTitle)
		data.setIfNotEmpty("firstname", card.FirstName)
		data.setIfNotEmpty("lastname", card.LastName)
		data.setIfNotEmpty("company", card.BillingCompany)
		data.setIfNotEmpty("street", card.BillingAddress1)
		data.setIfNotEmpty("addressaddition", card.BillingAddress2)
		data.setIfNotEmpty("zip", card.BillingPostcode)
		data.setIfNotEmpty("city", card.BillingCity)

		if err := addressRegion(data, "country", "state", card.BillingCountry, card.BillingState); err != nil {
			return nil, err
		}

		data.setIfNotEmpty("email", card.Email)
		data.setIfNotEmpty("telephonenumber", card.BillingPhone)
		data.setIfNotEmpty("birthday", timeutil.FormatCompactDate(card.Birthday))
		data.setIfNotEmpty("gender", card.Gender)
	}

	// IPv6 and malformed addresses are dropped, not rejected
	if ipv4Pattern.MatchString(clientIP) {
		data["ip"] = clientIP
	}

	return data, nil
}

// shippingData collects the delivery address
func shippingData(card *domain.CreditCard) (Fields, error) {
	data := Fields{}
	if card == nil {
		return data, nil
	}

	data.setIfNotEmpty("shipping_firstname", card.ShippingFirstName)
	data.setIfNotEmpty("shipping_lastname", card.ShippingLastName)
	data.setIfNotEmpty("shipping_company", card.ShippingCompany)
	data.setIfNotEmpty("shipping_street", card.ShippingAddress1)
	data.setIfNotEmpty("shipping_addressaddition", card.ShippingAddress2)
	data.setIfNotEmpty("shipping_zip", card.ShippingPostcode)
	data.setIfNotEmpty("shipping_city", card.ShippingCity)

	if err := addressRegion(data, "shipping_country", "shipping_state", card.ShippingCountry, card.ShippingState); err != nil {
		return nil, err
	}

	return data, nil
}

// addressRegion validates and stores a country and, for countries that use
// one, its state
func addressRegion(data Fields, countryField, stateField, country, state string) error {
	if country == "" {
		return nil
	}
	if !countryPattern.MatchString(country) {
		return domain.NewInvalidField(countryField, country, "must be two uppercase letters (ISO 3166-1 alpha-2)")
	}
	data[countryField] = country

	if state == "" || !stateCountries[country] {
		return nil
	}
	if !statePattern.MatchString(state) {
		return domain.NewInvalidField(stateField, state, "must be 1-3 uppercase letters or two digits")
	}
	data[stateField] = state
	return nil
}
