package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Card brand identifiers recognised by the built-in detection rules
const (
	BrandVisa               = "visa"
	BrandMastercard         = "mastercard"
	BrandDiscover           = "discover"
	BrandAmex               = "amex"
	BrandDinersClub         = "diners_club"
	BrandJCB                = "jcb"
	BrandSwitch             = "switch"
	BrandSolo               = "solo"
	BrandDankort            = "dankort"
	BrandMaestro            = "maestro"
	BrandForbrugsforeningen = "forbrugsforeningen"
	BrandLaser              = "laser"
)

// BrandRule recognises a card brand from the card number
type BrandRule struct {
	Brand   string
	Pattern *regexp.Regexp
}

// NewBrandRule compiles a brand detection rule
func NewBrandRule(brand, expr string) (BrandRule, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return BrandRule{}, fmt.Errorf("compile brand rule %s: %w", brand, err)
	}
	return BrandRule{Brand: brand, Pattern: re}, nil
}

// MustBrandRule is like NewBrandRule but panics on a bad expression
func MustBrandRule(brand, expr string) BrandRule {
	rule, err := NewBrandRule(brand, expr)
	if err != nil {
		panic(err)
	}
	return rule
}

// Matches reports whether the rule recognises the digits-only card number
func (r BrandRule) Matches(number string) bool {
	return r.Pattern != nil && r.Pattern.MatchString(number)
}

// builtinBrandRules are evaluated in order; first match wins.
// Laser drops the 677189 exclusion because mastercard is checked first.
var builtinBrandRules = []BrandRule{
	MustBrandRule(BrandVisa, `^4\d{12}(\d{3})?$`),
	MustBrandRule(BrandMastercard, `^(5[1-5]\d{4}|677189)\d{10}$|^2(2(2[1-9]|[3-9]\d)|[3-6]\d\d|7([01]\d|20))\d{12}$`),
	MustBrandRule(BrandDiscover, `^(6011|65\d{2}|64[4-9]\d)\d{12}|(62\d{14})$`),
	MustBrandRule(BrandAmex, `^3[47]\d{13}$`),
	MustBrandRule(BrandDinersClub, `^3(0[0-5]|[68]\d)\d{11}$`),
	MustBrandRule(BrandJCB, `^35(28|29|[3-8]\d)\d{12}$`),
	MustBrandRule(BrandSwitch, `^6759\d{12}(\d{2,3})?$`),
	MustBrandRule(BrandSolo, `^6767\d{12}(\d{2,3})?$`),
	MustBrandRule(BrandDankort, `^5019\d{12}$`),
	MustBrandRule(BrandMaestro, `^(5[06-8]|6\d)\d{10,17}$`),
	MustBrandRule(BrandForbrugsforeningen, `^600722\d{10}$`),
	MustBrandRule(BrandLaser, `^(6304|6706|6709|6771)\d{8}(\d{4}|\d{6,7})?$`),
}

// CreditCard is the normalized payment profile: the card instrument plus the
// billing and shipping identity of the customer.
// Empty strings and zero values mean "not provided". CVV and IssueNumber are
// pointers because an explicitly empty CVV and an unset CVV behave differently,
// as do issue number "00" and no issue number.
type CreditCard struct {
	// Card instrument. In token mode Number carries the pseudo card PAN.
	Number      string
	ExpiryMonth int
	ExpiryYear  int
	CVV         *string
	IssueNumber *string

	// Billing identity
	CustomerID      string
	BillingTitle    string
	FirstName       string
	LastName        string
	BillingCompany  string
	BillingAddress1 string
	BillingAddress2 string
	BillingPostcode string
	BillingCity     string
	BillingCountry  string
	BillingState    string
	BillingPhone    string
	Email           string
	Birthday        time.Time
	Gender          string

	// Shipping identity
	ShippingFirstName string
	ShippingLastName  string
	ShippingCompany   string
	ShippingAddress1  string
	ShippingAddress2  string
	ShippingPostcode  string
	ShippingCity      string
	ShippingCountry   string
	ShippingState     string
}

// NumberDigits returns the card number with every non-digit removed
func (c *CreditCard) NumberDigits() string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, c.Number)
}

// BillingName joins first and last name
func (c *CreditCard) BillingName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// ExpiryYYMM formats the expiry as two-digit year followed by two-digit month
func (c *CreditCard) ExpiryYYMM() string {
	return fmt.Sprintf("%02d%02d", c.ExpiryYear%100, c.ExpiryMonth)
}

// DetectBrand identifies the card brand against the current card number.
// Extra rules are consulted first, in order, so a caller can split out a brand
// that the built-in rules would otherwise file under a broader one.
// Returns "" when no rule matches.
func (c *CreditCard) DetectBrand(extra ...BrandRule) string {
	number := c.NumberDigits()
	if number == "" {
		return ""
	}
	for _, rule := range extra {
		if rule.Matches(number) {
			return rule.Brand
		}
	}
	for _, rule := range builtinBrandRules {
		if rule.Matches(number) {
			return rule.Brand
		}
	}
	return ""
}
