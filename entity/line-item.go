package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

const DefaultUnitName = "stk"

var (
	DefaultQuantity = decimal.NewFromInt(1)
	DefaultVatRate  = decimal.NewFromInt(25)
)

// LineInput is a line as entered in the quote/invoice forms or read from the store.
type LineInput struct {
	Description string `json:"description" bson:"description"`
	Quantity    Number `json:"quantity" bson:"quantity"`
	UnitName    string `json:"unit_name" bson:"unit_name"`
	CostPrice   Number `json:"cost_price" bson:"cost_price"`
	UnitPrice   Number `json:"unit_price" bson:"unit_price"`
	VatRate     Number `json:"vat_rate" bson:"vat_rate"`
}

// LineItem is one billable row with every default resolved.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitName    string          `json:"unit_name"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	VatRate     decimal.Decimal `json:"vat_rate"`
}

// Item resolves defaults. An invalid defaultVat falls back to DefaultVatRate.
func (in LineInput) Item(defaultVat Number) LineItem {
	unit := strings.TrimSpace(in.UnitName)
	if unit == "" {
		unit = DefaultUnitName
	}
	return LineItem{
		Description: in.Description,
		Quantity:    in.Quantity.Or(DefaultQuantity),
		UnitName:    unit,
		CostPrice:   in.CostPrice.Or(decimal.Zero),
		UnitPrice:   in.UnitPrice.Or(decimal.Zero),
		VatRate:     in.VatRate.Or(defaultVat.Or(DefaultVatRate)),
	}
}

func LineItems(inputs []LineInput, defaultVat Number) []LineItem {
	items := make([]LineItem, 0, len(inputs))
	for _, in := range inputs {
		items = append(items, in.Item(defaultVat))
	}
	return items
}

// Included reports whether the line takes part in totals and in the printed table.
func (l LineItem) Included() bool {
	return strings.TrimSpace(l.Description) != ""
}
