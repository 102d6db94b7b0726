package analytics

import (
	"fmt"
	"math"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
)

// Value is a measure reading for one record. A value that is not Present
// adds nothing to sums and is not counted.
type Value struct {
	Amount  decimal.Decimal
	Present bool
}

func present(d decimal.Decimal) Value {
	return Value{Amount: d, Present: true}
}

func fromNull(n decimal.NullDecimal) Value {
	if !n.Valid {
		return Value{}
	}
	return present(n.Decimal)
}

// Measure extracts a numeric quantity from a record.
type Measure struct {
	Name    string
	Extract func(domain.TransactionRecord) (Value, error)
}

var (
	MeasureRetailSales = Measure{Name: domain.FieldRetailSales, Extract: func(r domain.TransactionRecord) (Value, error) {
		return fromNull(r.RetailSales), nil
	}}
	MeasureWarehouseSales = Measure{Name: domain.FieldWarehouseSales, Extract: func(r domain.TransactionRecord) (Value, error) {
		return fromNull(r.WarehouseSales), nil
	}}
	MeasureRetailTransfers = Measure{Name: domain.FieldRetailTransfers, Extract: func(r domain.TransactionRecord) (Value, error) {
		return fromNull(r.RetailTransfers), nil
	}}
	// MeasureTotalSales skips records that have no sales value in either channel.
	MeasureTotalSales = Measure{Name: "total_sales", Extract: func(r domain.TransactionRecord) (Value, error) {
		if !r.HasSales() {
			return Value{}, nil
		}
		return present(r.TotalSales()), nil
	}}
	MeasureRecordCount = Measure{Name: "record_count", Extract: func(domain.TransactionRecord) (Value, error) {
		return present(decimal.NewFromInt(1)), nil
	}}
)

// FloatMeasure adapts a float extractor. NaN and infinite readings are rejected
// during aggregation rather than coerced.
func FloatMeasure(name string, fn func(domain.TransactionRecord) (float64, bool)) Measure {
	return Measure{
		Name: name,
		Extract: func(r domain.TransactionRecord) (Value, error) {
			v, ok := fn(r)
			if !ok {
				return Value{}, nil
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return Value{}, fmt.Errorf("non-numeric reading %v", v)
			}
			return present(decimal.NewFromFloat(v)), nil
		},
	}
}
