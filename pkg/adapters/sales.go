package adapters

import (
	"database/sql"
	"strings"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/models/store"
)

// MapStoreSalesRowToDomain converts a scanned row. row is the 1-based row
// number reported in errors for absent required fields.
func MapStoreSalesRowToDomain(s store.SalesRow, row int) (domain.TransactionRecord, error) {
	required := []struct {
		field string
		ok    bool
	}{
		{domain.FieldYear, s.Year.Valid},
		{domain.FieldMonth, s.Month.Valid},
		{domain.FieldSupplier, validString(s.Supplier)},
		{domain.FieldItemDescription, validString(s.ItemDescription)},
		{domain.FieldItemType, validString(s.ItemType)},
	}
	for _, r := range required {
		if !r.ok {
			return domain.TransactionRecord{}, &domain.FieldError{Row: row, Field: r.field}
		}
	}

	return domain.TransactionRecord{
		Year:            int(s.Year.Int64),
		Month:           int(s.Month.Int64),
		Supplier:        strings.TrimSpace(s.Supplier.String),
		ItemDescription: strings.TrimSpace(s.ItemDescription.String),
		ItemType:        strings.TrimSpace(s.ItemType.String),
		RetailSales:     s.RetailSales,
		RetailTransfers: s.RetailTransfers,
		WarehouseSales:  s.WarehouseSales,
	}, nil
}

func MapStoreSalesRowsToDomain(rows []store.SalesRow) ([]domain.TransactionRecord, error) {
	records := make([]domain.TransactionRecord, 0, len(rows))
	for i, row := range rows {
		rec, err := MapStoreSalesRowToDomain(row, i+1)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func MapStoreSalesStatsToDomain(s store.SalesStats) domain.DatasetStats {
	stats := domain.DatasetStats{Records: s.RecordsCount}
	if s.FirstYear.Valid && s.LastYear.Valid {
		stats.FirstYear = int(s.FirstYear.Int64)
		stats.LastYear = int(s.LastYear.Int64)
		stats.HasYears = true
	}
	return stats
}

func validString(s sql.NullString) bool {
	return s.Valid && strings.TrimSpace(s.String) != ""
}
