package payone

import (
	"fmt"
	"strings"

	"github.com/kevin07696/payone-gateway/internal/domain"
)

// ECommerceMode classifies the channel of a card transaction
type ECommerceMode string

const (
	ECommerceModeInternet ECommerceMode = "internet"
	ECommerceMode3DSecure ECommerceMode = "3dsecure"
	ECommerceModeMOTO     ECommerceMode = "moto"
)

// ParseECommerceMode validates an e-commerce mode name
func ParseECommerceMode(s string) (ECommerceMode, error) {
	switch m := ECommerceMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ECommerceModeInternet, ECommerceMode3DSecure, ECommerceModeMOTO:
		return m, nil
	default:
		return "", domain.NewInvalidField("ecommercemode", s, "must be internet, 3dsecure or moto")
	}
}

// isTokenMode reports whether the card carries a pseudo card PAN instead of
// full card data. CVV must be absent; an empty CVV still means full card mode.
func isTokenMode(card *domain.CreditCard) bool {
	return card.ExpiryYear == 0 && card.ExpiryMonth == 0 && card.CVV == nil
}

// cardData collects the card instrument.
// cardTypeOverride, when set, has already been validated by ParseCardType.
func cardData(card *domain.CreditCard, mode ECommerceMode, cardTypeOverride string, mapper *CardTypeMapper) (Fields, error) {
	data := Fields{}
	if card == nil {
		return data, nil
	}

	if isTokenMode(card) {
		data.setIfNotEmpty("pseudocardpan", strings.TrimSpace(card.Number))
		return data, nil
	}

	data.setIfNotEmpty("ecommercemode", string(mode))
	data.setIfNotEmpty("cardpan", card.NumberDigits())

	cardType := cardTypeOverride
	if cardType == "" {
		resolved := mapper.Resolve(card)
		switch resolved.Kind {
		case CardTypeSupported:
			cardType = resolved.Code
		case CardTypeUnsupported:
			brand := card.DetectBrand(mapper.rules...)
			return nil, domain.NewInvalidField("cardtype", brand, "card brand is not accepted by Payone")
		case CardTypeUnrecognized:
			// left out; the gateway rejects the request unless an override is given
		}
	}
	data.setIfNotEmpty("cardtype", cardType)

	if card.ExpiryYear != 0 || card.ExpiryMonth != 0 {
		if card.ExpiryMonth < 1 || card.ExpiryMonth > 12 || card.ExpiryYear < 0 {
			return nil, domain.NewInvalidField("cardexpiredate",
				fmt.Sprintf("%d/%d", card.ExpiryMonth, card.ExpiryYear), "must have a month of 1-12 and a non-negative year")
		}
		data["cardexpiredate"] = card.ExpiryYYMM()
	}
	data.setIfNotEmpty("cardholder", card.BillingName())

	if card.CVV != nil {
		data.setIfNotEmpty("cardcvc2", *card.CVV)
	}
	// "00" is a valid issue number
	if card.IssueNumber != nil {
		data.setIfNotEmpty("cardissuenumber", *card.IssueNumber)
	}

	return data, nil
}
