package calc

import (
	"testing"

	"easywork/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func item(desc, qty, price, cost, vat string) entity.LineItem {
	return entity.LineItem{
		Description: desc,
		Quantity:    d(qty),
		UnitName:    entity.DefaultUnitName,
		UnitPrice:   d(price),
		CostPrice:   d(cost),
		VatRate:     d(vat),
	}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, d(want).Equal(got), "want %s, got %s", want, got.String())
}

func TestAggregateMixedVat(t *testing.T) {
	res := Aggregate([]entity.LineItem{
		item("Maling", "2", "100", "0", "25"),
		item("Bok", "1", "200", "0", "15"),
	})

	require.Len(t, res.Lines, 2)
	assertDecimal(t, "400", res.Totals.Subtotal)
	assertDecimal(t, "80", res.Totals.VatAmount)
	assertDecimal(t, "480", res.Totals.Total)
	assertDecimal(t, "50", res.Lines[0].VatAmount)
	assertDecimal(t, "30", res.Lines[1].VatAmount)
}

func TestAggregateIdentities(t *testing.T) {
	cases := map[string][]entity.LineItem{
		"empty": nil,
		"zero":  {item("Gratis", "0", "0", "0", "25")},
		"credit": {
			item("Arbeid", "3", "650.50", "400", "25"),
			item("Kreditering", "-1", "650.50", "400", "25"),
		},
		"fractions": {
			item("Timer", "1.333", "799.99", "123.456", "25"),
			item("Frakt", "1", "0.01", "0", "12"),
			item("Bok", "7", "33.33", "20", "0"),
		},
	}
	for name, items := range cases {
		t.Run(name, func(t *testing.T) {
			res := Aggregate(items)
			tot := res.Totals
			assert.True(t, tot.Total.Equal(tot.Subtotal.Add(tot.VatAmount)))
			assert.True(t, tot.Profit.Equal(tot.Subtotal.Sub(tot.Cost)))

			r := tot.Rounded()
			assert.True(t, r.Total.Equal(r.Subtotal.Add(r.VatAmount)))
			assert.True(t, r.Profit.Equal(r.Subtotal.Sub(r.Cost)))
		})
	}
}

func TestMarginZeroGuard(t *testing.T) {
	res := Aggregate([]entity.LineItem{item("Gratis", "5", "0", "10", "25")})

	assert.True(t, res.Totals.Margin.IsZero())
	assert.True(t, res.Lines[0].Margin.IsZero())
	assertDecimal(t, "-50", res.Totals.Profit)
}

func TestMargin(t *testing.T) {
	f := LineFigures(item("Arbeid", "2", "100", "75", "25"))

	assertDecimal(t, "150", f.Cost)
	assertDecimal(t, "50", f.Profit)
	assertDecimal(t, "25", f.Margin)
}

func TestAggregateExcludesEmptyDescriptions(t *testing.T) {
	res := Aggregate([]entity.LineItem{
		item("Første", "1", "10", "0", "25"),
		item("", "1", "1000", "0", "25"),
		item("  \t ", "1", "1000", "0", "25"),
		item("Siste", "1", "20", "0", "25"),
	})

	require.Len(t, res.Lines, 2)
	assert.Equal(t, "Første", res.Lines[0].Item.Description)
	assert.Equal(t, 0, res.Lines[0].Index)
	assert.Equal(t, "Siste", res.Lines[1].Item.Description)
	assert.Equal(t, 3, res.Lines[1].Index)
	assertDecimal(t, "30", res.Totals.Subtotal)
}

func TestNoIntermediateRounding(t *testing.T) {
	// each line VAT is 0.0025; rounding per line would give 0
	items := make([]entity.LineItem, 0, 4)
	for i := 0; i < 4; i++ {
		items = append(items, item("Skrue", "1", "0.01", "0", "25"))
	}
	res := Aggregate(items)

	assertDecimal(t, "0.01", res.Totals.VatAmount)
	assertDecimal(t, "0.01", res.Totals.Rounded().VatAmount)
}

func TestRoundedHalfAwayFromZero(t *testing.T) {
	f := Figures{
		Subtotal:  d("10.005"),
		VatAmount: d("2.50125"),
		Cost:      d("-0.005"),
	}
	r := f.Rounded()

	assertDecimal(t, "10.01", r.Subtotal)
	assertDecimal(t, "2.5", r.VatAmount)
	assertDecimal(t, "12.51", r.Total)
	assertDecimal(t, "-0.01", r.Cost)
	assertDecimal(t, "10.02", r.Profit)
}

func TestStored(t *testing.T) {
	res := Aggregate([]entity.LineItem{item("Arbeid", "3", "333.333", "100", "25")})
	s := res.Totals.Stored()

	assert.Equal(t, 1000.0, s.Subtotal)
	assert.Equal(t, 250.0, s.VatAmount)
	assert.Equal(t, 1250.0, s.Total)
	assert.Equal(t, 300.0, s.Cost)
	assert.Equal(t, 700.0, s.Profit)
	assert.Equal(t, 70.0, s.Margin)
}
