package kpi

import (
	"fmt"
	"math"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultCurrency is the fixed display currency.
const DefaultCurrency = "USD"

var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"IDR": "Rp",
}

// Formatter renders localized numbers and currency amounts.
type Formatter struct {
	printer *message.Printer
	unit    currency.Unit
}

// NewFormatter builds a formatter for the ISO 4217 code using en-US grouping.
func NewFormatter(code string) (Formatter, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return Formatter{}, fmt.Errorf("kpi: currency %q: %w", code, err)
	}
	return Formatter{printer: message.NewPrinter(language.AmericanEnglish), unit: unit}, nil
}

var defaultFormatter = func() Formatter {
	f, err := NewFormatter(DefaultCurrency)
	if err != nil {
		panic(err)
	}
	return f
}()

// DefaultFormatter returns the USD en-US formatter.
func DefaultFormatter() Formatter {
	return defaultFormatter
}

// Currency formats v with the given number of fraction digits, e.g. "$120,000".
func (f Formatter) Currency(v float64, decimals int) string {
	sign := ""
	if v < 0 {
		sign = "-"
	}
	return sign + f.symbol() + f.decimal(math.Abs(v), decimals)
}

// Number formats v with locale grouping and no fraction digits unless present.
func (f Formatter) Number(v float64) string {
	if v == math.Trunc(v) {
		return f.decimal(v, 0)
	}
	return f.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}

func (f Formatter) decimal(v float64, decimals int) string {
	return f.printer.Sprint(number.Decimal(v, number.MinFractionDigits(decimals), number.MaxFractionDigits(decimals)))
}

func (f Formatter) symbol() string {
	code := f.unit.String()
	if s, ok := symbols[code]; ok {
		return s
	}
	return code + " "
}
