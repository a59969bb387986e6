package format

import (
	"strings"
	"testing"
	"time"

	"easywork/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// plain replaces the no-break spaces used for digit grouping
func plain(s string) string {
	return strings.ReplaceAll(s, "\u00a0", " ")
}

func TestNewRejectsInvalidInput(t *testing.T) {
	_, err := New("nb-NO", "XYZ1", "")
	assert.Error(t, err)

	_, err = New("!!", "NOK", "")
	assert.Error(t, err)
}

func TestDefaults(t *testing.T) {
	f, err := New("", "", "")
	require.NoError(t, err)

	assert.Equal(t, "NOK", f.Currency())
	assert.Equal(t, "TILBUD", f.Labels().Kind(entity.KindQuote).Title)
	assert.Equal(t, "FAKTURA", f.Labels().Kind(entity.KindInvoice).Title)
}

func TestMoneyEnglish(t *testing.T) {
	f := MustNew("en", "NOK", "kr")

	assert.Equal(t, "1,234.50 kr", f.Money(d("1234.5")))
	assert.Equal(t, "0.01 kr", f.Money(d("0.005")))
	assert.Equal(t, "0.00 kr", f.Money(d("-0.004")))
	assert.Equal(t, "-20.00 kr", f.Money(d("-19.999")))
}

func TestMoneyCurrencyCodeFallback(t *testing.T) {
	f := MustNew("en", "EUR", "")

	assert.Equal(t, "10.00 EUR", f.Money(d("10")))
}

func TestMoneyNorwegian(t *testing.T) {
	f := MustNew("nb-NO", "NOK", "kr")

	assert.Equal(t, "1 234,50 kr", plain(f.Money(d("1234.5"))))
	assert.Equal(t, "-1 234,50 kr", plain(f.Money(d("-1234.5"))))
	assert.NotContains(t, f.Money(d("-1234.5")), "\u2212")
}

func TestQuantityAndPercent(t *testing.T) {
	en := MustNew("en", "NOK", "kr")
	nb := MustNew("nb-NO", "NOK", "kr")

	assert.Equal(t, "2", en.Quantity(d("2")))
	assert.Equal(t, "1.5", en.Quantity(d("1.50")))
	assert.Equal(t, "1,5", nb.Quantity(d("1.5")))
	assert.Equal(t, "25%", nb.Percent(d("25")))
	assert.Equal(t, "12.5%", en.Percent(d("12.5")))
}

func TestDate(t *testing.T) {
	day := time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "16. okt. 2026", MustNew("nb-NO", "NOK", "kr").Date(day))
	assert.Equal(t, "16 Oct 2026", MustNew("en-GB", "GBP", "£").Date(day))
	assert.Equal(t, "-", MustNew("nb-NO", "NOK", "kr").Date(time.Time{}))
}

func TestText(t *testing.T) {
	f := MustNew("nb-NO", "NOK", "kr")

	assert.Equal(t, "-", f.Text("   "))
	assert.Equal(t, "Ola", f.Text("Ola"))
}
