package payone

import (
	"regexp"
	"strings"

	"github.com/kevin07696/payone-gateway/internal/domain"
)

// Encoding is the character set declared to the gateway
type Encoding string

const (
	EncodingUTF8    Encoding = "UTF-8"
	EncodingISO8859 Encoding = "ISO-8859-1"
)

// ParseEncoding validates an encoding name
func ParseEncoding(s string) (Encoding, error) {
	switch e := Encoding(strings.ToUpper(strings.TrimSpace(s))); e {
	case EncodingUTF8, EncodingISO8859:
		return e, nil
	default:
		return "", domain.NewInvalidField("encoding", s, "must be UTF-8 or ISO-8859-1")
	}
}

var numericIDPattern = regexp.MustCompile(`^[0-9]+$`)

// Credentials authenticates every request against a Payone portal.
// IDs are validated when they are set; collection only checks presence.
type Credentials struct {
	merchantID   string
	portalID     string
	subAccountID string
	portalKey    string
	hashMethod   HashMethod
}

// NewCredentials creates validated credentials
func NewCredentials(merchantID, portalID, subAccountID, portalKey string, method HashMethod) (*Credentials, error) {
	c := &Credentials{}
	if err := c.SetMerchantID(merchantID); err != nil {
		return nil, err
	}
	if err := c.SetPortalID(portalID); err != nil {
		return nil, err
	}
	if err := c.SetSubAccountID(subAccountID); err != nil {
		return nil, err
	}
	c.SetPortalKey(portalKey)
	if err := c.SetHashMethod(method); err != nil {
		return nil, err
	}
	return c, nil
}

// SetMerchantID sets mid; it must be numeric
func (c *Credentials) SetMerchantID(id string) error {
	if err := validateNumericID("mid", id); err != nil {
		return err
	}
	c.merchantID = id
	return nil
}

// SetPortalID sets portalid; it must be numeric
func (c *Credentials) SetPortalID(id string) error {
	if err := validateNumericID("portalid", id); err != nil {
		return err
	}
	c.portalID = id
	return nil
}

// SetSubAccountID sets aid; it must be numeric
func (c *Credentials) SetSubAccountID(id string) error {
	if err := validateNumericID("aid", id); err != nil {
		return err
	}
	c.subAccountID = id
	return nil
}

// SetPortalKey sets the shared portal secret
func (c *Credentials) SetPortalKey(key string) {
	c.portalKey = key
}

// SetHashMethod sets the method used for signed parameter sets
func (c *Credentials) SetHashMethod(method HashMethod) error {
	m, err := ParseHashMethod(string(method))
	if err != nil {
		return err
	}
	c.hashMethod = m
	return nil
}

func (c *Credentials) MerchantID() string     { return c.merchantID }
func (c *Credentials) PortalID() string       { return c.portalID }
func (c *Credentials) SubAccountID() string   { return c.subAccountID }
func (c *Credentials) PortalKey() string      { return c.portalKey }
func (c *Credentials) HashMethod() HashMethod { return c.hashMethod }

// validateNumericID accepts an empty value so that a missing ID is reported
// as MissingCredential when the request is collected
func validateNumericID(field, id string) error {
	if id == "" || numericIDPattern.MatchString(id) {
		return nil
	}
	return domain.NewInvalidField(field, id, "must be numeric")
}
