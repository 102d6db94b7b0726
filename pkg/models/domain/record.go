package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// PeriodKey identifies a time bucket. A zero Month means the whole year,
// a zero Year means a calendar month across all years.
type PeriodKey struct {
	Year  int
	Month int
}

func (p PeriodKey) Less(other PeriodKey) bool {
	if p.Year != other.Year {
		return p.Year < other.Year
	}
	return p.Month < other.Month
}

func (p PeriodKey) IsZero() bool {
	return p.Year == 0 && p.Month == 0
}

// Next returns the period immediately following p on the same granularity.
func (p PeriodKey) Next() PeriodKey {
	switch {
	case p.Month == 0:
		return PeriodKey{Year: p.Year + 1}
	case p.Month == 12:
		return PeriodKey{Year: p.Year + 1, Month: 1}
	default:
		return PeriodKey{Year: p.Year, Month: p.Month + 1}
	}
}

func (p PeriodKey) String() string {
	switch {
	case p.Year != 0 && p.Month != 0:
		return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
	case p.Year != 0:
		return fmt.Sprintf("%04d", p.Year)
	case p.Month != 0:
		return fmt.Sprintf("%02d", p.Month)
	default:
		return ""
	}
}

// TransactionRecord is one row of the distribution dataset.
// Invalid NullDecimal measures are missing values.
type TransactionRecord struct {
	Year            int
	Month           int
	Supplier        string
	ItemDescription string
	ItemType        string
	RetailSales     decimal.NullDecimal
	WarehouseSales  decimal.NullDecimal
	RetailTransfers decimal.NullDecimal
}

func (r TransactionRecord) Period() PeriodKey {
	return PeriodKey{Year: r.Year, Month: r.Month}
}

// HasSales reports whether at least one sales channel carries a value.
func (r TransactionRecord) HasSales() bool {
	return r.RetailSales.Valid || r.WarehouseSales.Valid
}

// TotalSales is retail plus warehouse sales with missing values counted as zero.
func (r TransactionRecord) TotalSales() decimal.Decimal {
	total := decimal.Zero
	if r.RetailSales.Valid {
		total = total.Add(r.RetailSales.Decimal)
	}
	if r.WarehouseSales.Valid {
		total = total.Add(r.WarehouseSales.Decimal)
	}
	return total
}

// Validate checks the required fields and measure ranges of a record.
// row is only used to annotate the returned error.
func (r TransactionRecord) Validate(row int) error {
	switch {
	case r.Year <= 0:
		return &FieldError{Row: row, Field: FieldYear}
	case r.Month == 0:
		return &FieldError{Row: row, Field: FieldMonth}
	case r.Month < 1 || r.Month > 12:
		return &MeasureError{Measure: FieldMonth, Row: row, Value: fmt.Sprint(r.Month), Reason: "month must be within 1..12"}
	case strings.TrimSpace(r.Supplier) == "":
		return &FieldError{Row: row, Field: FieldSupplier}
	case strings.TrimSpace(r.ItemDescription) == "":
		return &FieldError{Row: row, Field: FieldItemDescription}
	case strings.TrimSpace(r.ItemType) == "":
		return &FieldError{Row: row, Field: FieldItemType}
	}

	measures := []struct {
		name  string
		value decimal.NullDecimal
	}{
		{FieldRetailSales, r.RetailSales},
		{FieldWarehouseSales, r.WarehouseSales},
		{FieldRetailTransfers, r.RetailTransfers},
	}
	for _, m := range measures {
		if m.value.Valid && m.value.Decimal.IsNegative() {
			return &MeasureError{Measure: m.name, Row: row, Value: m.value.Decimal.String(), Reason: "value must not be negative"}
		}
	}
	return nil
}

// RecordSet is the validated, immutable input of an analysis run.
type RecordSet struct {
	records []TransactionRecord
}

// NewRecordSet validates every record and takes a private copy of the slice.
func NewRecordSet(records []TransactionRecord) (*RecordSet, error) {
	for i, r := range records {
		if err := r.Validate(i + 1); err != nil {
			return nil, err
		}
	}

	owned := make([]TransactionRecord, len(records))
	copy(owned, records)
	return &RecordSet{records: owned}, nil
}

// Records returns a copy of the underlying records.
func (s *RecordSet) Records() []TransactionRecord {
	out := make([]TransactionRecord, len(s.records))
	copy(out, s.records)
	return out
}

func (s *RecordSet) Len() int {
	return len(s.records)
}

// Range returns the first and last period present in the set.
func (s *RecordSet) Range() (first, last PeriodKey, ok bool) {
	if len(s.records) == 0 {
		return PeriodKey{}, PeriodKey{}, false
	}
	first, last = s.records[0].Period(), s.records[0].Period()
	for _, r := range s.records[1:] {
		p := r.Period()
		if p.Less(first) {
			first = p
		}
		if last.Less(p) {
			last = p
		}
	}
	return first, last, true
}
