package export

import (
	"strings"
	"time"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// formatAmount renders d with two decimals and thousands separators.
// The integer part is grouped exactly, without a float conversion.
func formatAmount(d decimal.Decimal) string {
	r := d.Round(2)
	sign := ""
	if r.IsNegative() {
		sign, r = "-", r.Neg()
	}
	_, frac, _ := strings.Cut(r.StringFixed(2), ".")
	return sign + humanize.BigComma(r.BigInt()) + "." + frac
}

func formatPercent(p domain.Percent) string {
	return p.String()
}

// trendArrow marks the direction of a growth value; undefined growth has no direction.
func trendArrow(p domain.Percent) string {
	switch {
	case !p.Valid:
		return "n/a"
	case p.Value > 0:
		return "↑ " + p.String()
	case p.Value < 0:
		return "↓ " + p.String()
	default:
		return "→ " + p.String()
	}
}

func monthName(month int) string {
	if month < 1 || month > 12 {
		return "?"
	}
	return time.Month(month).String()[:3]
}
