package payone

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kevin07696/payone-gateway/internal/domain"
)

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// currencyExponents lists ISO 4217 currencies whose minor unit is not 1/100
var currencyExponents = map[string]int32{
	"BHD": 3, "IQD": 3, "JOD": 3, "KWD": 3, "LYD": 3, "OMR": 3, "TND": 3,
	"BIF": 0, "CLP": 0, "DJF": 0, "GNF": 0, "ISK": 0, "JPY": 0, "KMF": 0,
	"KRW": 0, "PYG": 0, "RWF": 0, "UGX": 0, "VND": 0, "VUV": 0, "XAF": 0,
	"XOF": 0, "XPF": 0,
}

// ParseCurrency validates an ISO 4217 alpha code
func ParseCurrency(s string) (string, error) {
	c := strings.ToUpper(strings.TrimSpace(s))
	if !currencyPattern.MatchString(c) {
		return "", domain.NewInvalidField("currency", s, "must be an ISO 4217 code")
	}
	return c, nil
}

// CurrencyExponent returns the number of minor-unit digits for currency
func CurrencyExponent(currency string) int32 {
	if exp, ok := currencyExponents[currency]; ok {
		return exp
	}
	return 2
}

// AmountToMinorUnits renders a major-unit amount ("10.50") as the integer
// minor-unit string Payone expects ("1050"). The value is rescaled, never
// converted between currencies. Amounts with more precision than the currency
// allows are rejected rather than rounded.
func AmountToMinorUnits(amount decimal.Decimal, currency string) (string, error) {
	if amount.IsNegative() {
		return "", domain.NewInvalidField("amount", amount.String(), "must not be negative")
	}
	exp := CurrencyExponent(currency)
	minor := amount.Shift(exp)
	if !minor.Equal(minor.Truncate(0)) {
		return "", domain.NewInvalidField("amount", amount.String(),
			"has more decimal places than "+currency+" allows")
	}
	return minor.StringFixed(0), nil
}
