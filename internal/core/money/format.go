package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Formatter renders decimal amounts for display using a currency's symbol
// and fraction digits. Formatting is presentation only — stored values stay
// full-precision decimals.
type Formatter struct {
	symbol string
	places int32
}

// Known display symbols for currencies the business actually bills in.
// Anything else falls back to the ISO code as a prefix.
var symbols = map[string]string{
	"KES": "KSh ",
	"TZS": "TSh ",
	"UGX": "USh ",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

// NewFormatter builds a formatter for the given ISO 4217 code.
// Unknown codes render as "<CODE> <amount>" with two fraction digits.
func NewFormatter(currencyCode string) Formatter {
	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	if code == "" {
		code = "KES"
	}
	sym, ok := symbols[code]
	if !ok {
		sym = code + " "
	}
	return Formatter{symbol: sym, places: 2}
}

// NewFormatterWith builds a formatter from catalog data (symbol and fraction
// digits resolved from the currencies table).
func NewFormatterWith(symbol string, places int32) Formatter {
	if symbol == "" {
		symbol = "KES "
	}
	if places < 0 {
		places = 2
	}
	return Formatter{symbol: symbol, places: places}
}

// Format renders d as e.g. "KSh 1,234,567.89" or "$1,200.00".
func (f Formatter) Format(d decimal.Decimal) string {
	neg := d.IsNegative()
	fixed := d.Abs().StringFixed(f.places)

	intPart := fixed
	fracPart := ""
	if i := strings.IndexByte(fixed, '.'); i >= 0 {
		intPart, fracPart = fixed[:i], fixed[i:]
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(f.symbol)
	b.WriteString(group(intPart))
	b.WriteString(fracPart)
	return b.String()
}

// group inserts thousands separators into a bare digit string.
func group(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
