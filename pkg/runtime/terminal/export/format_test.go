package export

import (
	"testing"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"999", "999.00"},
		{"1000", "1,000.00"},
		{"1234567.891", "1,234,567.89"},
		{"-1234.5", "-1,234.50"},
		{"123456", "123,456.00"},
		{"999.999", "1,000.00"},
		{"-0.001", "0.00"},
		{"123456789012345678901234.5", "123,456,789,012,345,678,901,234.50"},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, formatAmount(decimal.RequireFromString(tc.in)))
		})
	}
}

func TestTrendArrow(t *testing.T) {
	assert.Equal(t, "n/a", trendArrow(domain.UndefinedPercent()))
	assert.Equal(t, "↑ 12.50%", trendArrow(domain.Percent{Value: 12.5, Valid: true}))
	assert.Equal(t, "↓ -42.86%", trendArrow(domain.Percent{Value: -42.857, Valid: true}))
	assert.Equal(t, "→ 0.00%", trendArrow(domain.Percent{Value: 0, Valid: true}))
}

func TestMonthName(t *testing.T) {
	assert.Equal(t, "Jan", monthName(1))
	assert.Equal(t, "Dec", monthName(12))
	assert.Equal(t, "?", monthName(13))
}
