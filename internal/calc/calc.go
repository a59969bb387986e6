// Package calc turns line items into the money figures shown on screen and printed on documents.
//
// Figures are kept at full decimal precision; rounding happens only in Rounded and in formatting.
package calc

import (
	"easywork/entity"

	"github.com/shopspring/decimal"
)

// Places is the minor-unit precision of displayed and persisted amounts.
const Places = 2

var hundred = decimal.NewFromInt(100)

// Figures holds the money values of a single line or of a whole document.
type Figures struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	VatAmount decimal.Decimal `json:"vat_amount"`
	Total     decimal.Decimal `json:"total"`
	Cost      decimal.Decimal `json:"cost"`
	Profit    decimal.Decimal `json:"profit"`
	Margin    decimal.Decimal `json:"margin"`
}

// Line is an included line item with its derived figures. Index is the position in the
// caller's input, before empty lines were dropped.
type Line struct {
	Index int             `json:"index"`
	Item  entity.LineItem `json:"item"`
	Figures
}

type Result struct {
	Lines  []Line  `json:"lines"`
	Totals Figures `json:"totals"`
}

// LineFigures computes the derived values of one line.
func LineFigures(item entity.LineItem) Figures {
	subtotal := item.Quantity.Mul(item.UnitPrice)
	vat := subtotal.Mul(item.VatRate).Shift(-2)
	cost := item.Quantity.Mul(item.CostPrice)
	profit := subtotal.Sub(cost)
	return Figures{
		Subtotal:  subtotal,
		VatAmount: vat,
		Total:     subtotal.Add(vat),
		Cost:      cost,
		Profit:    profit,
		Margin:    margin(profit, subtotal),
	}
}

// Aggregate filters out lines without a description and sums the rest, keeping input order.
func Aggregate(items []entity.LineItem) *Result {
	res := &Result{
		Lines: make([]Line, 0, len(items)),
		Totals: Figures{
			Subtotal:  decimal.Zero,
			VatAmount: decimal.Zero,
			Cost:      decimal.Zero,
		},
	}
	for i, item := range items {
		if !item.Included() {
			continue
		}
		f := LineFigures(item)
		res.Lines = append(res.Lines, Line{Index: i, Item: item, Figures: f})
		res.Totals.Subtotal = res.Totals.Subtotal.Add(f.Subtotal)
		res.Totals.VatAmount = res.Totals.VatAmount.Add(f.VatAmount)
		res.Totals.Cost = res.Totals.Cost.Add(f.Cost)
	}
	res.Totals.Total = res.Totals.Subtotal.Add(res.Totals.VatAmount)
	res.Totals.Profit = res.Totals.Subtotal.Sub(res.Totals.Cost)
	res.Totals.Margin = margin(res.Totals.Profit, res.Totals.Subtotal)
	return res
}

// Rounded returns the figures at minor-unit precision, half away from zero.
// Total and Profit are derived from the rounded parts so the identities survive rounding.
func (f Figures) Rounded() Figures {
	subtotal := f.Subtotal.Round(Places)
	vat := f.VatAmount.Round(Places)
	cost := f.Cost.Round(Places)
	profit := subtotal.Sub(cost)
	return Figures{
		Subtotal:  subtotal,
		VatAmount: vat,
		Total:     subtotal.Add(vat),
		Cost:      cost,
		Profit:    profit,
		Margin:    margin(profit, subtotal).Round(Places),
	}
}

// Stored converts rounded figures for persistence.
func (f Figures) Stored() entity.StoredTotals {
	r := f.Rounded()
	return entity.StoredTotals{
		Subtotal:  r.Subtotal.InexactFloat64(),
		VatAmount: r.VatAmount.InexactFloat64(),
		Total:     r.Total.InexactFloat64(),
		Cost:      r.Cost.InexactFloat64(),
		Profit:    r.Profit.InexactFloat64(),
		Margin:    r.Margin.InexactFloat64(),
	}
}

func margin(profit, subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.IsZero() {
		return decimal.Zero
	}
	return profit.Div(subtotal).Mul(hundred)
}
