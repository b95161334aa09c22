package domain

// LineItem is one cart position. Price is in minor units of the transaction
// currency; it is passed to the gateway unchanged.
type LineItem interface {
	Name() string
	Description() string
	Quantity() int
	Price() int64
}

// ExtendedLineItem is a LineItem that carries its own article identifier
// and VAT rate.
type ExtendedLineItem interface {
	LineItem
	ID() string
	VAT() int
}

// Item is the basic cart position
type Item struct {
	ItemName        string
	ItemDescription string
	ItemQuantity    int
	ItemPrice       int64
}

func (i Item) Name() string        { return i.ItemName }
func (i Item) Description() string { return i.ItemDescription }
func (i Item) Quantity() int       { return i.ItemQuantity }
func (i Item) Price() int64        { return i.ItemPrice }

// ExtendedItem adds an article number and a VAT rate (percent or basis
// points, as agreed with the provider) to Item.
type ExtendedItem struct {
	Item
	ItemID  string
	VATRate int
}

func (i ExtendedItem) ID() string { return i.ItemID }
func (i ExtendedItem) VAT() int   { return i.VATRate }

var (
	_ LineItem         = Item{}
	_ ExtendedLineItem = ExtendedItem{}
)
