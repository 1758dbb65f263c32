package listing

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// PriceUnavailable is shown when the upstream record has no usable price
	PriceUnavailable = "가격 문의"
	// CurrencySuffix is appended to every formatted price
	CurrencySuffix = "원"
)

var pricePrinter = message.NewPrinter(language.Korean)

// ParsePrice parses an upstream price such as "12900", "12900.50" or "12,900".
// The second return value is false when the input is empty or not a number.
func ParsePrice(raw string) (decimal.Decimal, bool) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if cleaned == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// FormatPrice renders the integer part of amount with thousands separators and the won suffix.
func FormatPrice(amount decimal.Decimal) string {
	return pricePrinter.Sprintf("%d", amount.IntPart()) + CurrencySuffix
}

// PriceText parses and formats raw in one step, returning PriceUnavailable on bad input.
func PriceText(raw string) string {
	amount, ok := ParsePrice(raw)
	if !ok {
		return PriceUnavailable
	}
	return FormatPrice(amount)
}
