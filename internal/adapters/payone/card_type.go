package payone

import (
	"regexp"

	"github.com/kevin07696/payone-gateway/internal/domain"
)

// CardTypeKind tells the three lookup outcomes apart
type CardTypeKind int

const (
	// CardTypeUnrecognized: the brand is not in the table; cardtype is omitted
	CardTypeUnrecognized CardTypeKind = iota
	// CardTypeUnsupported: the brand is known but Payone does not accept it
	CardTypeUnsupported
	// CardTypeSupported: the brand maps to a Payone cardtype letter
	CardTypeSupported
)

// String returns a readable name for the kind
func (k CardTypeKind) String() string {
	switch k {
	case CardTypeUnsupported:
		return "unsupported"
	case CardTypeSupported:
		return "supported"
	default:
		return "unrecognized"
	}
}

// CardType is the result of mapping a card brand to a Payone cardtype
type CardType struct {
	Kind CardTypeKind
	Code string // single uppercase letter, set only when Kind is CardTypeSupported
}

// Code returns a supported card type with the given letter
func Code(letter string) CardType {
	return CardType{Kind: CardTypeSupported, Code: letter}
}

// Unsupported marks a brand that is recognised but rejected by Payone
func Unsupported() CardType {
	return CardType{Kind: CardTypeUnsupported}
}

// Unrecognized is the lookup result for brands missing from the table
func Unrecognized() CardType {
	return CardType{Kind: CardTypeUnrecognized}
}

// Payone cardtype letters
const (
	CardTypeVisa        = "V"
	CardTypeMastercard  = "M"
	CardTypeAmex        = "A"
	CardTypeDiners      = "D"
	CardTypeJCB         = "J"
	CardTypeMaestroIntl = "O"
	CardTypeMaestroUK   = "U"
	CardTypeDiscover    = "C"
	CardTypeCarteBleue  = "B"
)

// Brands that only exist through extra detection rules
const (
	BrandMaestroUK  = "maestro_uk"
	BrandCarteBleue = "carte_bleue"
)

// CardTypeTable maps brand identifiers to Payone card types
type CardTypeTable map[string]CardType

// DefaultCardTypeTable returns the brand table Payone accepts for credit cards
func DefaultCardTypeTable() CardTypeTable {
	return CardTypeTable{
		domain.BrandVisa:               Code(CardTypeVisa),
		domain.BrandMastercard:         Code(CardTypeMastercard),
		domain.BrandDiscover:           Code(CardTypeDiscover),
		domain.BrandAmex:               Code(CardTypeAmex),
		domain.BrandDinersClub:         Code(CardTypeDiners),
		domain.BrandJCB:                Code(CardTypeJCB),
		domain.BrandMaestro:            Code(CardTypeMaestroIntl),
		BrandMaestroUK:                 Code(CardTypeMaestroUK),
		BrandCarteBleue:                Code(CardTypeCarteBleue),
		domain.BrandSwitch:             Code(CardTypeMaestroUK),
		domain.BrandSolo:               Unsupported(),
		domain.BrandDankort:            Unsupported(),
		domain.BrandForbrugsforeningen: Unsupported(),
		domain.BrandLaser:              Unsupported(),
	}
}

// DefaultBrandRules returns the extra detection rules used with the default table.
// Switch (6759) already maps to Maestro UK; the rule claims the 676770 and
// 676774 ranges that the built-in solo and maestro patterns would take.
func DefaultBrandRules() []domain.BrandRule {
	return []domain.BrandRule{
		domain.MustBrandRule(BrandMaestroUK, `^(676770|676774)\d{6,13}$`),
	}
}

// CardTypeMapper resolves Payone card types from brands or card numbers.
// It is immutable after construction and safe for concurrent use.
type CardTypeMapper struct {
	table CardTypeTable
	rules []domain.BrandRule
}

// NewCardTypeMapper creates a mapper over table with extra detection rules
func NewCardTypeMapper(table CardTypeTable, rules ...domain.BrandRule) *CardTypeMapper {
	t := make(CardTypeTable, len(table))
	for brand, ct := range table {
		t[brand] = ct
	}
	r := make([]domain.BrandRule, len(rules))
	copy(r, rules)
	return &CardTypeMapper{table: t, rules: r}
}

// DefaultCardTypeMapper returns a mapper over the default table and rules
func DefaultCardTypeMapper() *CardTypeMapper {
	return NewCardTypeMapper(DefaultCardTypeTable(), DefaultBrandRules()...)
}

// Lookup maps a brand identifier to a card type
func (m *CardTypeMapper) Lookup(brand string) CardType {
	if ct, ok := m.table[brand]; ok {
		return ct
	}
	return Unrecognized()
}

// Resolve detects the brand from the card's current number and maps it
func (m *CardTypeMapper) Resolve(card *domain.CreditCard) CardType {
	if card == nil {
		return Unrecognized()
	}
	return m.Lookup(card.DetectBrand(m.rules...))
}

var cardTypeLetterPattern = regexp.MustCompile(`^[A-Z]$`)

// ParseCardType validates an explicit cardtype override against the table's
// supported letters
func (m *CardTypeMapper) ParseCardType(s string) (string, error) {
	if !cardTypeLetterPattern.MatchString(s) {
		return "", domain.NewInvalidField("cardtype", s, "must be a single uppercase letter")
	}
	for _, ct := range m.table {
		if ct.Kind == CardTypeSupported && ct.Code == s {
			return s, nil
		}
	}
	return "", domain.NewInvalidField("cardtype", s, "is not a supported card type")
}
