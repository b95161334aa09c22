package payone

import (
	"regexp"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kevin07696/payone-gateway/internal/domain"
	"github.com/kevin07696/payone-gateway/internal/util"
)

// APIVersion is the Server API version this client speaks
const APIVersion = "3.10"

// ClearingTypeCreditCard is the only clearing type built by this package
const ClearingTypeCreditCard = "cc"

// RequestType is the value of the "request" field
type RequestType string

const (
	RequestPreauthorization RequestType = "preauthorization" // authorize only
	RequestAuthorization    RequestType = "authorization"    // authorize and capture
	RequestCapture          RequestType = "capture"
)

// SettleAccount controls balancing of a capture with the merchant account
type SettleAccount string

const (
	SettleAccountYes  SettleAccount = "yes"
	SettleAccountNo   SettleAccount = "no"
	SettleAccountAuto SettleAccount = "auto"
)

// AuthorizeRequest carries one card payment for preauthorization or authorization
type AuthorizeRequest struct {
	Card  *domain.CreditCard
	Items []domain.LineItem

	// TransactionID is sent as "reference"; generated when empty
	TransactionID string
	Amount        decimal.Decimal // major units, e.g. 10.50
	Currency      string

	ClientIP      string
	ECommerceMode ECommerceMode
	CardType      string // explicit cardtype letter; overrides brand detection

	SuccessURL string
	ErrorURL   string
	BackURL    string
}

// CaptureRequest settles a previous preauthorization
type CaptureRequest struct {
	TransactionID  string // txid returned by the preauthorization
	SequenceNumber *int
	Amount         decimal.Decimal
	Currency       string
	SettleAccount  SettleAccount
}

var referencePattern = regexp.MustCompile(`^[A-Za-z0-9._/-]{1,20}$`)

// BuildAuthorizeData assembles the flat field mapping for a preauthorization
// or authorization
func (g *Gateway) BuildAuthorizeData(requestType RequestType, req *AuthorizeRequest) (Fields, error) {
	if req == nil {
		return nil, domain.NewInvalidField("request", "", "is required")
	}
	base, err := g.baseData(requestType)
	if err != nil {
		return nil, err
	}

	personal, err := personalData(req.Card, req.ClientIP)
	if err != nil {
		return nil, err
	}

	shipping, err := shippingData(req.Card)
	if err != nil {
		return nil, err
	}

	mode := req.ECommerceMode
	if mode != "" {
		if mode, err = ParseECommerceMode(string(mode)); err != nil {
			return nil, err
		}
	}
	cardType := req.CardType
	if cardType != "" {
		if cardType, err = g.config.CardTypes.ParseCardType(cardType); err != nil {
			return nil, err
		}
	}
	card, err := cardData(req.Card, mode, cardType, g.config.CardTypes)
	if err != nil {
		return nil, err
	}

	transaction, err := g.transactionData(req.TransactionID, req.Amount, req.Currency)
	if err != nil {
		return nil, err
	}

	return mergeFields(
		base,
		g.accountData(),
		personal,
		shipping,
		card,
		urlData(req.SuccessURL, req.ErrorURL, req.BackURL),
		transaction,
		itemData(req.Items, g.config.DefaultItemID),
	), nil
}

// BuildCaptureData assembles the flat field mapping for a capture
func (g *Gateway) BuildCaptureData(req *CaptureRequest) (Fields, error) {
	if req == nil {
		return nil, domain.NewInvalidField("request", "", "is required")
	}
	base, err := g.baseData(RequestCapture)
	if err != nil {
		return nil, err
	}

	if req.TransactionID == "" {
		return nil, domain.NewInvalidField("txid", "", "is required for capture")
	}
	currency, err := ParseCurrency(req.Currency)
	if err != nil {
		return nil, err
	}
	amount, err := AmountToMinorUnits(req.Amount, currency)
	if err != nil {
		return nil, err
	}

	capture := Fields{
		"txid":     req.TransactionID,
		"amount":   amount,
		"currency": currency,
	}
	if req.SequenceNumber != nil {
		capture["sequencenumber"] = strconv.Itoa(*req.SequenceNumber)
	}
	switch req.SettleAccount {
	case "":
	case SettleAccountYes, SettleAccountNo, SettleAccountAuto:
		capture["settleaccount"] = string(req.SettleAccount)
	default:
		return nil, domain.NewInvalidField("settleaccount", string(req.SettleAccount), "must be yes, no or auto")
	}

	return mergeFields(base, capture), nil
}

// baseData collects the request type and the authentication fields.
// The portal key is always sent as its plain MD5 digest, whatever hash method
// is configured for signed parameter sets.
func (g *Gateway) baseData(requestType RequestType) (Fields, error) {
	creds := g.credentials
	if creds == nil || creds.MerchantID() == "" {
		return nil, domain.NewMissingCredential("mid")
	}
	if creds.PortalID() == "" {
		return nil, domain.NewMissingCredential("portalid")
	}
	if creds.PortalKey() == "" {
		return nil, domain.NewMissingCredential("key")
	}

	key, err := HashString(creds.PortalKey(), "", HashMD5)
	if err != nil {
		return nil, err
	}

	encoding, err := ParseEncoding(string(g.config.Encoding))
	if err != nil {
		return nil, err
	}

	data := Fields{
		"request":     string(requestType),
		"mid":         creds.MerchantID(),
		"portalid":    creds.PortalID(),
		"key":         key,
		"api_version": APIVersion,
		"mode":        g.config.mode(),
		"encoding":    string(encoding),
	}
	data.setIfNotEmpty("language", g.config.Language)

	return data, nil
}

// accountData collects the sub-account the payment is booked on
func (g *Gateway) accountData() Fields {
	data := Fields{}
	data.setIfNotEmpty("aid", g.credentials.SubAccountID())
	return data
}

// urlData collects the per-request redirect overrides
func urlData(successURL, errorURL, backURL string) Fields {
	data := Fields{}
	data.setIfNotEmpty("successurl", successURL)
	data.setIfNotEmpty("errorurl", errorURL)
	data.setIfNotEmpty("backurl", backURL)
	return data
}

// transactionData collects reference, amount, currency and clearing type
func (g *Gateway) transactionData(reference string, amount decimal.Decimal, currency string) (Fields, error) {
	if reference == "" {
		reference = util.ReferenceFromUUID(uuid.New())
	}
	if !referencePattern.MatchString(reference) {
		return nil, domain.NewInvalidField("reference", reference, "must be 1-20 characters of [A-Za-z0-9._/-]")
	}

	currency, err := ParseCurrency(currency)
	if err != nil {
		return nil, err
	}
	minor, err := AmountToMinorUnits(amount, currency)
	if err != nil {
		return nil, err
	}

	return Fields{
		"reference":    reference,
		"amount":       minor,
		"currency":     currency,
		"clearingtype": ClearingTypeCreditCard,
	}, nil
}
