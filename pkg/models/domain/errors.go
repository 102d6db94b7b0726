package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidMeasure       = errors.New("invalid measure")
	ErrDivisionUndefined    = errors.New("division undefined")
	ErrUnsortedSeries       = errors.New("unsorted series")
	ErrMissingRequiredField = errors.New("missing required field")
)

// Record field names, shared by sources and error messages.
const (
	FieldYear            = "year"
	FieldMonth           = "month"
	FieldSupplier        = "supplier"
	FieldItemCode        = "item_code"
	FieldItemDescription = "item_description"
	FieldItemType        = "item_type"
	FieldRetailSales     = "retail_sales"
	FieldRetailTransfers = "retail_transfers"
	FieldWarehouseSales  = "warehouse_sales"
)

// FieldError reports a required field absent from an input row.
type FieldError struct {
	Row   int
	Field string
}

func (e *FieldError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("row %d: %s: %s", e.Row, ErrMissingRequiredField, e.Field)
	}
	return fmt.Sprintf("%s: %s", ErrMissingRequiredField, e.Field)
}

func (e *FieldError) Unwrap() error {
	return ErrMissingRequiredField
}

// MeasureError reports a value that cannot be used as a numeric measure.
type MeasureError struct {
	Measure string
	Row     int
	Key     string
	Value   string
	Reason  string
}

func (e *MeasureError) Error() string {
	msg := fmt.Sprintf("%s %q", ErrInvalidMeasure, e.Measure)
	if e.Row > 0 {
		msg = fmt.Sprintf("row %d: %s", e.Row, msg)
	}
	if e.Key != "" {
		msg += fmt.Sprintf(" for key %q", e.Key)
	}
	if e.Value != "" {
		msg += fmt.Sprintf(" (value %q)", e.Value)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *MeasureError) Unwrap() error {
	return ErrInvalidMeasure
}

// SeriesError points at the first out-of-order entry of a time series.
type SeriesError struct {
	Index    int
	Previous PeriodKey
	Current  PeriodKey
}

func (e *SeriesError) Error() string {
	return fmt.Sprintf("%s: entry %d (%s) does not follow %s", ErrUnsortedSeries, e.Index, e.Current, e.Previous)
}

func (e *SeriesError) Unwrap() error {
	return ErrUnsortedSeries
}
