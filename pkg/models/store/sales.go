package store

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// SalesRow is one row of a sales table as scanned from a SQL warehouse.
// Every column is nullable; required fields are checked when mapping to the domain.
type SalesRow struct {
	Year            sql.NullInt64
	Month           sql.NullInt64
	Supplier        sql.NullString
	ItemCode        sql.NullString
	ItemDescription sql.NullString
	ItemType        sql.NullString
	RetailSales     decimal.NullDecimal
	RetailTransfers decimal.NullDecimal
	WarehouseSales  decimal.NullDecimal
}

type SalesStats struct {
	RecordsCount int64
	FirstYear    sql.NullInt64
	LastYear     sql.NullInt64
}
