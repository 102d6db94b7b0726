package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Percent is a percentage that may be undefined, e.g. a share of a zero total
// or growth from a zero baseline. An undefined Percent is never 0.
type Percent struct {
	Value float64
	Valid bool
}

func UndefinedPercent() Percent {
	return Percent{}
}

// PercentOf returns part/total*100, undefined when total is zero.
func PercentOf(part, total decimal.Decimal) Percent {
	if total.IsZero() {
		return UndefinedPercent()
	}
	return Percent{Value: part.Div(total).Mul(hundred).InexactFloat64(), Valid: true}
}

// PercentChange returns (current-previous)/previous*100, undefined when previous is zero.
func PercentChange(previous, current decimal.Decimal) Percent {
	if previous.IsZero() {
		return UndefinedPercent()
	}
	return Percent{Value: current.Sub(previous).Div(previous).Mul(hundred).InexactFloat64(), Valid: true}
}

func (p Percent) String() string {
	if !p.Valid {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", p.Value)
}

// Ptr is the JSON-friendly form: nil when undefined.
func (p Percent) Ptr() *float64 {
	if !p.Valid {
		return nil
	}
	v := p.Value
	return &v
}
