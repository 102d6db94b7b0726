package export

import (
	"testing"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/analytics"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func sale(year, month int, supplier, item, itemType string, retail, warehouse float64) domain.TransactionRecord {
	return domain.TransactionRecord{
		Year:            year,
		Month:           month,
		Supplier:        supplier,
		ItemDescription: item,
		ItemType:        itemType,
		RetailSales:     decimal.NewNullDecimal(decimal.NewFromFloat(retail)),
		WarehouseSales:  decimal.NewNullDecimal(decimal.NewFromFloat(warehouse)),
	}
}

func testReport(t *testing.T) *domain.Report {
	t.Helper()

	set, err := domain.NewRecordSet([]domain.TransactionRecord{
		sale(2020, 1, "E & J GALLO WINERY", "CORONA EXTRA 12OZ", "Beer", 1000, 3000),
		sale(2020, 6, "DIAGEO NORTH AMERICA INC", "TITO'S 1.75L", "Liquor", 2500, 500),
		sale(2020, 12, "CONSTELLATION BRANDS", "BAREFOOT MERLOT", "Wine", 400, 100),
		sale(2021, 1, "E & J GALLO WINERY", "CORONA EXTRA 12OZ", "Beer", 700, 2800),
		sale(2021, 6, "DIAGEO NORTH AMERICA INC", "TITO'S 1.75L", "Liquor", 2000, 400),
	})
	require.NoError(t, err)

	report, err := analytics.Assemble(set, analytics.DefaultSettings())
	require.NoError(t, err)
	return report
}

func emptyReport(t *testing.T) *domain.Report {
	t.Helper()

	set, err := domain.NewRecordSet(nil)
	require.NoError(t, err)

	report, err := analytics.Assemble(set, analytics.DefaultSettings())
	require.NoError(t, err)
	return report
}
