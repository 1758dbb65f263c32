package listing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		amount decimal.Decimal
		want   string
	}{
		{decimal.NewFromInt(12900), "12,900원"},
		{decimal.NewFromInt(45000), "45,000원"},
		{decimal.NewFromInt(990), "990원"},
		{decimal.NewFromInt(1234567), "1,234,567원"},
		{decimal.RequireFromString("12900.99"), "12,900원"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPrice(tt.amount))
		})
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		raw    string
		want   int64
		wantOK bool
	}{
		{"12900", 12900, true},
		{"12,900", 12900, true},
		{" 7000 ", 7000, true},
		{"12900.50", 12900, true},
		{"", 0, false},
		{"free", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParsePrice(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got.IntPart())
		})
	}
}

func TestPriceText(t *testing.T) {
	assert.Equal(t, "12,900원", PriceText("12900"))
	assert.Equal(t, PriceUnavailable, PriceText(""))
	assert.Equal(t, PriceUnavailable, PriceText("n/a"))
}
