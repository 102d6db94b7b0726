package adapters

import (
	"database/sql"
	"testing"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/models/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func salesRow() store.SalesRow {
	return store.SalesRow{
		Year:            sql.NullInt64{Int64: 2020, Valid: true},
		Month:           sql.NullInt64{Int64: 7, Valid: true},
		Supplier:        sql.NullString{String: " E & J GALLO WINERY ", Valid: true},
		ItemCode:        sql.NullString{String: "100145", Valid: true},
		ItemDescription: sql.NullString{String: "BAREFOOT PINOT GRIGIO - 750ML", Valid: true},
		ItemType:        sql.NullString{String: "WINE", Valid: true},
		RetailSales:     decimal.NewNullDecimal(decimal.RequireFromString("41.2")),
		WarehouseSales:  decimal.NewNullDecimal(decimal.RequireFromString("96")),
	}
}

func TestMapStoreSalesRowToDomain(t *testing.T) {
	rec, err := MapStoreSalesRowToDomain(salesRow(), 1)
	require.NoError(t, err)

	assert.Equal(t, 2020, rec.Year)
	assert.Equal(t, 7, rec.Month)
	assert.Equal(t, "E & J GALLO WINERY", rec.Supplier)
	assert.Equal(t, "WINE", rec.ItemType)
	assert.True(t, rec.RetailSales.Valid)
	assert.False(t, rec.RetailTransfers.Valid)
	assert.Equal(t, "137.2", rec.TotalSales().String())
}

func TestMapStoreSalesRowToDomain_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *store.SalesRow)
		field  string
	}{
		{"null year", func(r *store.SalesRow) { r.Year = sql.NullInt64{} }, domain.FieldYear},
		{"null month", func(r *store.SalesRow) { r.Month = sql.NullInt64{} }, domain.FieldMonth},
		{"blank supplier", func(r *store.SalesRow) { r.Supplier.String = "   " }, domain.FieldSupplier},
		{"null item", func(r *store.SalesRow) { r.ItemDescription = sql.NullString{} }, domain.FieldItemDescription},
		{"null type", func(r *store.SalesRow) { r.ItemType = sql.NullString{} }, domain.FieldItemType},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			row := salesRow()
			tc.mutate(&row)

			rows := []store.SalesRow{salesRow(), row}
			_, err := MapStoreSalesRowsToDomain(rows)
			require.ErrorIs(t, err, domain.ErrMissingRequiredField)

			var fieldErr *domain.FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tc.field, fieldErr.Field)
			assert.Equal(t, 2, fieldErr.Row)
		})
	}
}

func TestMapStoreSalesStatsToDomain(t *testing.T) {
	stats := MapStoreSalesStatsToDomain(store.SalesStats{
		RecordsCount: 307645,
		FirstYear:    sql.NullInt64{Int64: 2017, Valid: true},
		LastYear:     sql.NullInt64{Int64: 2020, Valid: true},
	})
	assert.Equal(t, domain.DatasetStats{Records: 307645, FirstYear: 2017, LastYear: 2020, HasYears: true}, stats)
	assert.Equal(t, "307645 records, 2017-2020", stats.String())

	empty := MapStoreSalesStatsToDomain(store.SalesStats{})
	assert.False(t, empty.HasYears)
	assert.Equal(t, "0 records", empty.String())
}
