package sql

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/de-tools/sales-atlas/pkg/models/store"
	"github.com/rs/zerolog"
)

var tableIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$]*(\.[A-Za-z_][A-Za-z0-9_$]*){0,2}$`)

type SalesReader interface {
	GetTable() string
	ReadSales(ctx context.Context) ([]store.SalesRow, error)
	GetSalesStats(ctx context.Context) (*store.SalesStats, error)
}

type salesReader struct {
	db    *sql.DB
	table string // e.g. "sales", "analytics.retail.sales"
}

// NewSalesReader reads the sales table. table may be qualified with a
// database and schema; it is interpolated into queries and must be a plain identifier.
func NewSalesReader(db *sql.DB, table string) (SalesReader, error) {
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	if !tableIdentifier.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &salesReader{db: db, table: table}, nil
}

func (r *salesReader) GetTable() string {
	return r.table
}

func (r *salesReader) ReadSales(ctx context.Context) ([]store.SalesRow, error) {
	logger := zerolog.Ctx(ctx)
	query := fmt.Sprintf(`
		SELECT
			year,
			month,
			supplier,
			item_code,
			item_description,
			item_type,
			retail_sales,
			retail_transfers,
			warehouse_sales
		FROM %s
		ORDER BY year, month`, r.table)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sales query on %s failed: %w", r.table, err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close sales query rows")
		}
	}(rows)

	var records []store.SalesRow
	for rows.Next() {
		var row store.SalesRow
		if err := rows.Scan(
			&row.Year,
			&row.Month,
			&row.Supplier,
			&row.ItemCode,
			&row.ItemDescription,
			&row.ItemType,
			&row.RetailSales,
			&row.RetailTransfers,
			&row.WarehouseSales,
		); err != nil {
			return nil, fmt.Errorf("scan sales row %d: %w", len(records)+1, err)
		}
		records = append(records, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sales rows: %w", err)
	}

	logger.Debug().
		Str("table", r.table).
		Int("rows", len(records)).
		Msg("read sales rows")

	return records, nil
}

func (r *salesReader) GetSalesStats(ctx context.Context) (*store.SalesStats, error) {
	query := fmt.Sprintf(`
		SELECT
			COUNT(*) AS total_records,
			MIN(year) AS first_year,
			MAX(year) AS last_year
		FROM %s`, r.table)

	var stats store.SalesStats
	err := r.db.QueryRowContext(ctx, query).Scan(&stats.RecordsCount, &stats.FirstYear, &stats.LastYear)
	if err != nil {
		return nil, fmt.Errorf("get sales stats failed: %w", err)
	}
	return &stats, nil
}
