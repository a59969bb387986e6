// Package format renders amounts, quantities and dates for a target locale.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	DefaultLocale   = "nb-NO"
	DefaultCurrency = "NOK"
	missing         = "-"
)

// some CLDR locales use characters outside the PDF font encoding
var normalizer = strings.NewReplacer(
	"\u2212", "-",
	"\u202f", "\u00a0",
	"\u2009", "\u00a0",
)

// Formatter is safe for concurrent use: it holds no mutable state.
type Formatter struct {
	tag      language.Tag
	lang     string
	currency currency.Unit
	symbol   string
	labels   *Labels
}

// New builds a formatter for a BCP 47 locale and an ISO 4217 currency code.
// An empty symbol prints the currency code after the amount.
func New(locale, currencyCode, symbol string) (*Formatter, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	if currencyCode == "" {
		currencyCode = DefaultCurrency
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return nil, fmt.Errorf("currency %q: %w", currencyCode, err)
	}
	if symbol == "" {
		symbol = unit.String()
	}
	base, _ := tag.Base()
	lang := base.String()
	return &Formatter{
		tag:      tag,
		lang:     lang,
		currency: unit,
		symbol:   symbol,
		labels:   labelsFor(lang),
	}, nil
}

// MustNew is New for static configuration; it panics on an invalid locale or currency.
func MustNew(locale, currencyCode, symbol string) *Formatter {
	f, err := New(locale, currencyCode, symbol)
	if err != nil {
		panic(err)
	}
	return f
}

func (f *Formatter) Locale() string {
	return f.tag.String()
}

func (f *Formatter) Currency() string {
	return f.currency.String()
}

func (f *Formatter) Labels() *Labels {
	return f.labels
}

func (f *Formatter) printer() *message.Printer {
	return message.NewPrinter(f.tag)
}

// Amount formats a value with locale grouping and exactly two decimals, rounded half away from zero.
func (f *Formatter) Amount(v decimal.Decimal) string {
	rounded := v.Round(2)
	if rounded.IsZero() {
		rounded = decimal.Zero
	}
	s := f.printer().Sprint(number.Decimal(rounded.InexactFloat64(), number.Scale(2)))
	return normalizer.Replace(s)
}

// Money is Amount followed by the currency symbol.
func (f *Formatter) Money(v decimal.Decimal) string {
	return f.Amount(v) + " " + f.symbol
}

// Quantity prints up to three decimals without trailing zeros.
func (f *Formatter) Quantity(v decimal.Decimal) string {
	s := f.printer().Sprint(number.Decimal(v.Round(3).InexactFloat64(), number.MaxFractionDigits(3)))
	return normalizer.Replace(s)
}

// Percent prints a rate such as 25 or 12.5 followed by a percent sign.
func (f *Formatter) Percent(v decimal.Decimal) string {
	return f.Quantity(v) + "%"
}

// Margin prints a margin percentage with one decimal.
func (f *Formatter) Margin(v decimal.Decimal) string {
	s := f.printer().Sprint(number.Decimal(v.Round(1).InexactFloat64(), number.Scale(1)))
	return normalizer.Replace(s) + " %"
}

// Date renders day, abbreviated month and year, or "-" for the zero time.
func (f *Formatter) Date(t time.Time) string {
	if t.IsZero() {
		return missing
	}
	months := f.labels.Months
	switch f.lang {
	case "nb", "nn", "no":
		return fmt.Sprintf("%d. %s %d", t.Day(), months[t.Month()-1], t.Year())
	}
	return fmt.Sprintf("%d %s %d", t.Day(), months[t.Month()-1], t.Year())
}

// Text returns s, or "-" when it is blank.
func (f *Formatter) Text(s string) string {
	if strings.TrimSpace(s) == "" {
		return missing
	}
	return s
}
