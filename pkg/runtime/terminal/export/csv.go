package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
)

var monthlyHeader = []string{"YEAR", "MONTH", "RETAIL SALES", "WAREHOUSE SALES", "TOTAL SALES", "RETAIL TRANSFERS"}

// WriteMonthlyCSV writes the per-month rollup of report, one row per month with data.
func WriteMonthlyCSV(w io.Writer, report *domain.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(monthlyHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, row := range report.Monthly {
		record := []string{
			strconv.Itoa(row.Period.Year),
			strconv.Itoa(row.Period.Month),
			row.RetailSales.StringFixed(2),
			row.WarehouseSales.StringFixed(2),
			row.TotalSales.StringFixed(2),
			row.RetailTransfers.StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row %s: %w", row.Period, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
