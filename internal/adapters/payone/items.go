package payone

import (
	"fmt"
	"strconv"

	"github.com/kevin07696/payone-gateway/internal/domain"
)

// DefaultItemID is the article number sent for items that carry none
const DefaultItemID = "000000"

// itemData numbers cart positions 1..N in slice order. The index never
// depends on the item's own identifier.
func itemData(items []domain.LineItem, fallbackID string) Fields {
	data := Fields{}
	if fallbackID == "" {
		fallbackID = DefaultItemID
	}

	for i, item := range items {
		n := i + 1
		id, vat := fallbackID, 0
		if ext, ok := item.(domain.ExtendedLineItem); ok {
			if ext.ID() != "" {
				id = ext.ID()
			}
			vat = ext.VAT()
		}

		description := item.Description()
		if description == "" {
			description = item.Name()
		}

		data[indexed("id", n)] = id
		data[indexed("pr", n)] = strconv.FormatInt(item.Price(), 10)
		data[indexed("no", n)] = strconv.Itoa(item.Quantity())
		data[indexed("de", n)] = description
		data[indexed("va", n)] = strconv.Itoa(vat)
	}

	return data
}

func indexed(name string, n int) string {
	return fmt.Sprintf("%s[%d]", name, n)
}
