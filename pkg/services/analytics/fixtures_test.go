package analytics

import (
	"testing"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var missing = decimal.NullDecimal{}

func amount(v float64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromFloat(v))
}

func record(year, month int, supplier, item, itemType string, retail, warehouse decimal.NullDecimal) domain.TransactionRecord {
	return domain.TransactionRecord{
		Year:            year,
		Month:           month,
		Supplier:        supplier,
		ItemDescription: item,
		ItemType:        itemType,
		RetailSales:     retail,
		WarehouseSales:  warehouse,
		RetailTransfers: missing,
	}
}

// scenarioRecords is the three-record dataset used across the engine tests.
func scenarioRecords() []domain.TransactionRecord {
	return []domain.TransactionRecord{
		record(2020, 1, "S1", "A", "Liquor", amount(10), amount(5)),
		record(2020, 2, "S1", "A", "Liquor", amount(20), amount(0)),
		record(2021, 1, "S1", "A", "Liquor", amount(15), amount(5)),
	}
}

// mixedRecords spans several suppliers, items and types, with gaps in the measures.
func mixedRecords() []domain.TransactionRecord {
	recs := []domain.TransactionRecord{
		record(2019, 3, "ALPHA", "VODKA 750", "Liquor", amount(12.5), amount(40)),
		record(2019, 3, "BETA", "MERLOT", "Wine", amount(3.25), missing),
		record(2019, 7, "ALPHA", "GIN 1L", "Liquor", missing, amount(8)),
		record(2019, 12, "GAMMA", "IPA 6PK", "Beer", amount(30), amount(120)),
		record(2020, 1, "BETA", "MERLOT", "Wine", amount(4.75), amount(2)),
		record(2020, 1, "DELTA", "KEGS", "Kegs", missing, missing),
		record(2020, 7, "GAMMA", "IPA 6PK", "Beer", amount(0), amount(60)),
		record(2020, 12, "ALPHA", "VODKA 750", "Liquor", amount(18), amount(10)),
	}
	recs[1].RetailTransfers = amount(1.5)
	recs[3].RetailTransfers = amount(22)
	recs[6].RetailTransfers = amount(3)
	return recs
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got.String())
}
