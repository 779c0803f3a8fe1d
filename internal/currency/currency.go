// Package currency holds the static display-currency table and the
// formatter that converts base-currency amounts for display.
//
// Storage and aggregation always happen in the base currency (USD cents);
// the static rate is applied exactly once, at format time. Selecting another
// currency therefore changes both the symbol and the magnitude shown.
package currency

import (
	"fmt"
	"math"
	"strings"

	"extraque/internal/core"
)

// Currency is a static configuration value, not a persisted entity.
type Currency struct {
	Code   string
	Symbol string
	Rate   float64 // multiplier relative to the base currency
	Label  string
}

// Currencies is the fixed table of selectable display currencies. The first
// entry is the base currency.
var Currencies = []Currency{
	{Code: "USD", Symbol: "$", Rate: 1, Label: "US Dollar"},
	{Code: "EUR", Symbol: "€", Rate: 0.94, Label: "Euro"},
	{Code: "GBP", Symbol: "£", Rate: 0.79, Label: "British Pound"},
	{Code: "JPY", Symbol: "¥", Rate: 151.5, Label: "Japanese Yen"},
	{Code: "PHP", Symbol: "₱", Rate: 58.5, Label: "Philippine Peso"},
	{Code: "CAD", Symbol: "CA$", Rate: 1.37, Label: "Canadian Dollar"},
	{Code: "AUD", Symbol: "A$", Rate: 1.52, Label: "Australian Dollar"},
}

// Base returns the base currency.
func Base() Currency {
	return Currencies[0]
}

// ByCode looks up a currency by its code. Unknown codes fall back to the
// base currency so the formatter stays total.
func ByCode(code string) (Currency, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range Currencies {
		if c.Code == code {
			return c, true
		}
	}
	return Base(), false
}

// Format renders a base-currency amount in the given display currency:
// symbol, rate applied, two fraction digits, comma grouping.
func Format(m core.Money, cur Currency) string {
	value := m.Units() * cur.Rate
	neg := value < 0 || (value == 0 && math.Signbit(value))
	if neg {
		value = -value
	}
	s := groupThousands(fmt.Sprintf("%.2f", value))
	if neg {
		return "-" + cur.Symbol + s
	}
	return cur.Symbol + s
}

// groupThousands inserts comma separators into the integer part of a
// "%.2f"-formatted number.
func groupThousands(s string) string {
	dot := strings.IndexByte(s, '.')
	intPart, frac := s[:dot], s[dot:]
	if len(intPart) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	b.WriteString(frac)
	return b.String()
}
