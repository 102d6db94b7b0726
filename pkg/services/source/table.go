package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var (
	requiredColumns = []string{
		domain.FieldYear,
		domain.FieldMonth,
		domain.FieldSupplier,
		domain.FieldItemDescription,
		domain.FieldItemType,
		domain.FieldRetailSales,
		domain.FieldWarehouseSales,
	}
	// item code is carried by the dataset but not used by any rollup
	optionalColumns = []string{
		domain.FieldItemCode,
		domain.FieldRetailTransfers,
	}
)

// nextRow returns the cells of the next row, or io.EOF after the last one.
type nextRow func() ([]string, error)

type columns map[string]int

// normalizeHeader maps "RETAIL SALES", "Retail-Sales" and "retail_sales" to the same field name.
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimPrefix(h, "\ufeff"))
	parts := strings.FieldsFunc(h, func(r rune) bool {
		return r == ' ' || r == '_' || r == '-' || r == '\t'
	})
	return strings.Join(parts, "_")
}

func indexColumns(header []string) (columns, error) {
	cols := make(columns, len(header))
	for i, h := range header {
		name := normalizeHeader(h)
		if _, dup := cols[name]; !dup && name != "" {
			cols[name] = i
		}
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, &domain.FieldError{Field: name}
		}
	}
	return cols, nil
}

func (c columns) cell(cells []string, field string) string {
	i, ok := c[field]
	if !ok || i >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[i])
}

func (c columns) record(cells []string, row int) (domain.TransactionRecord, error) {
	var (
		rec domain.TransactionRecord
		err error
	)
	if rec.Year, err = c.integer(cells, domain.FieldYear, row); err != nil {
		return rec, err
	}
	if rec.Month, err = c.integer(cells, domain.FieldMonth, row); err != nil {
		return rec, err
	}
	if rec.Supplier, err = c.text(cells, domain.FieldSupplier, row); err != nil {
		return rec, err
	}
	if rec.ItemDescription, err = c.text(cells, domain.FieldItemDescription, row); err != nil {
		return rec, err
	}
	if rec.ItemType, err = c.text(cells, domain.FieldItemType, row); err != nil {
		return rec, err
	}
	if rec.RetailSales, err = c.measure(cells, domain.FieldRetailSales, row); err != nil {
		return rec, err
	}
	if rec.RetailTransfers, err = c.measure(cells, domain.FieldRetailTransfers, row); err != nil {
		return rec, err
	}
	if rec.WarehouseSales, err = c.measure(cells, domain.FieldWarehouseSales, row); err != nil {
		return rec, err
	}
	return rec, nil
}

func (c columns) text(cells []string, field string, row int) (string, error) {
	v := c.cell(cells, field)
	if v == "" {
		return "", &domain.FieldError{Row: row, Field: field}
	}
	return v, nil
}

var (
	minInt = decimal.NewFromInt(math.MinInt32)
	maxInt = decimal.NewFromInt(math.MaxInt32)
)

// integer accepts "2020" as well as spreadsheet renderings such as "2020.0".
func (c columns) integer(cells []string, field string, row int) (int, error) {
	v := c.cell(cells, field)
	if v == "" {
		return 0, &domain.FieldError{Row: row, Field: field}
	}
	d, err := decimal.NewFromString(v)
	if err != nil || !d.IsInteger() {
		return 0, &domain.MeasureError{Measure: field, Row: row, Value: v, Reason: "not an integer"}
	}
	if d.LessThan(minInt) || d.GreaterThan(maxInt) {
		return 0, &domain.MeasureError{Measure: field, Row: row, Value: v, Reason: "out of range"}
	}
	return int(d.IntPart()), nil
}

// measure treats blank cells as missing values.
func (c columns) measure(cells []string, field string, row int) (decimal.NullDecimal, error) {
	v := c.cell(cells, field)
	if v == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.NullDecimal{}, &domain.MeasureError{Measure: field, Row: row, Value: v, Reason: "not a number"}
	}
	return decimal.NewNullDecimal(d), nil
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseTable reads a header row followed by data rows. Data rows are
// numbered from 1; blank rows are skipped but keep their number.
func parseTable(ctx context.Context, name string, next nextRow) ([]domain.TransactionRecord, error) {
	logger := zerolog.Ctx(ctx)

	header, err := next()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: no header row", name)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: read header: %w", name, err)
	}
	cols, err := indexColumns(header)
	if err != nil {
		return nil, fmt.Errorf("%s: header: %w", name, err)
	}

	var (
		records []domain.TransactionRecord
		row     int
		skipped int
	)
	for {
		cells, err := next()
		if errors.Is(err, io.EOF) {
			break
		}
		row++
		if err != nil {
			return nil, fmt.Errorf("%s: read row %d: %w", name, row, err)
		}
		if row%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if blank(cells) {
			skipped++
			continue
		}

		rec, err := cols.record(cells, row)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		records = append(records, rec)
	}

	if skipped > 0 {
		logger.Warn().Str("source", name).Int("rows", skipped).Msg("skipped blank rows")
	}
	logger.Debug().Str("source", name).Int("records", len(records)).Msg("parsed sales table")

	return records, nil
}
