package payone

import (
	"net/url"

	"github.com/kevin07696/payone-gateway/internal/domain"
)

// frontendUnsignedFields are sent to the hosted payment page but left out of the hash
var frontendUnsignedFields = map[string]bool{
	"language": true,
	"hash":     true,
}

// FrontendData builds the signed parameter set for the hosted payment page.
// Card data is entered by the customer on the page, so no card or personal
// fields are included. The hash uses the configured hash method with the
// portal key as secret.
func (g *Gateway) FrontendData(requestType RequestType, req *AuthorizeRequest) (Fields, error) {
	if req == nil {
		return nil, domain.NewInvalidField("request", "", "is required")
	}
	creds := g.credentials
	if creds == nil || creds.PortalID() == "" {
		return nil, domain.NewMissingCredential("portalid")
	}
	if creds.SubAccountID() == "" {
		return nil, domain.NewMissingCredential("aid")
	}
	if creds.PortalKey() == "" {
		return nil, domain.NewMissingCredential("key")
	}

	encoding, err := ParseEncoding(string(g.config.Encoding))
	if err != nil {
		return nil, err
	}

	transaction, err := g.transactionData(req.TransactionID, req.Amount, req.Currency)
	if err != nil {
		return nil, err
	}

	base := Fields{
		"request":  string(requestType),
		"portalid": creds.PortalID(),
		"aid":      creds.SubAccountID(),
		"mode":     g.config.mode(),
		"encoding": string(encoding),
	}
	base.setIfNotEmpty("language", g.config.Language)

	data := mergeFields(
		base,
		urlData(req.SuccessURL, req.ErrorURL, req.BackURL),
		transaction,
		itemData(req.Items, g.config.DefaultItemID),
	)

	signed := Fields{}
	for k, v := range data {
		if !frontendUnsignedFields[k] {
			signed[k] = v
		}
	}
	hash, err := Hash(signed, creds.PortalKey(), creds.HashMethod())
	if err != nil {
		return nil, err
	}
	data["hash"] = hash

	return data, nil
}

// FrontendURL renders the hosted payment page URL for a redirect
func (g *Gateway) FrontendURL(requestType RequestType, req *AuthorizeRequest) (string, error) {
	data, err := g.FrontendData(requestType, req)
	if err != nil {
		return "", err
	}

	u, err := url.Parse(g.config.FrontendURL)
	if err != nil {
		return "", domain.NewInvalidField("frontend_url", g.config.FrontendURL, "is not a valid URL")
	}
	u.RawQuery = data.Values().Encode()
	return u.String(), nil
}
