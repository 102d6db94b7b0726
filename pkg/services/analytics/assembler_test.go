package analytics

import (
	"testing"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble_Scenario(t *testing.T) {
	// Given the three-record reference dataset
	set, err := domain.NewRecordSet(scenarioRecords())
	require.NoError(t, err)

	// When assembling a report with default settings
	report, err := Assemble(set, DefaultSettings())
	require.NoError(t, err)

	// Then every rollup reflects the dataset
	assert.Equal(t, "Liquor Sales Analysis", report.Title)
	assert.Equal(t, 3, report.RecordCount)
	assert.Equal(t, domain.PeriodKey{Year: 2020, Month: 1}, report.Period.First)
	assert.Equal(t, domain.PeriodKey{Year: 2021, Month: 1}, report.Period.Last)
	assert.Equal(t, 3, report.Period.Periods)

	t.Run("totals and channels", func(t *testing.T) {
		assertDecimal(t, "45", report.Totals.RetailSales)
		assertDecimal(t, "10", report.Totals.WarehouseSales)
		assertDecimal(t, "55", report.Totals.TotalSales)
		assertDecimal(t, "0", report.Totals.RetailTransfers)

		assert.InDelta(t, 81.818, report.Channels.Retail.Value, 0.001)
		assert.InDelta(t, 18.182, report.Channels.Warehouse.Value, 0.001)
		assert.Equal(t, domain.Cardinality{Items: 1, Suppliers: 1, ItemTypes: 1}, report.Cardinality)
	})

	t.Run("data quality", func(t *testing.T) {
		require.Len(t, report.DataQuality, 3)
		for _, mv := range report.DataQuality {
			switch mv.Field {
			case domain.FieldRetailTransfers:
				assert.Equal(t, 3, mv.Count)
				assert.InDelta(t, 100, mv.Percent.Value, 1e-9)
			default:
				assert.Equal(t, 0, mv.Count, mv.Field)
			}
		}
	})

	t.Run("yearly rollup and growth", func(t *testing.T) {
		require.Len(t, report.Yearly, 2)
		assert.Equal(t, domain.PeriodKey{Year: 2020}, report.Yearly[0].Period)
		assertDecimal(t, "35", report.Yearly[0].TotalSales)
		assertDecimal(t, "30", report.Yearly[0].RetailSales)
		assert.Equal(t, domain.PeriodKey{Year: 2021}, report.Yearly[1].Period)
		assertDecimal(t, "20", report.Yearly[1].TotalSales)

		require.Len(t, report.YearOverYear, 2)
		assert.False(t, report.YearOverYear[0].PercentChange.Valid)
		assert.InDelta(t, -42.857, report.YearOverYear[1].PercentChange.Value, 0.001)
	})

	t.Run("monthly rollup and growth", func(t *testing.T) {
		require.Len(t, report.Monthly, 3)
		require.Len(t, report.MonthOverMonth, 3)
		assert.InDelta(t, 33.333, report.MonthOverMonth[1].PercentChange.Value, 0.001)
		assert.InDelta(t, 0, report.MonthOverMonth[2].PercentChange.Value, 1e-9)
		assert.Len(t, report.MonthOverMonth.Gaps(), 1)
	})

	t.Run("rankings", func(t *testing.T) {
		items, ok := report.Ranking(DimItem.Name)
		require.True(t, ok)
		assert.Equal(t, 15, items.N)
		require.Len(t, items.Entries, 1)
		assert.Equal(t, "A", items.Entries[0].Key.Label)
		assertDecimal(t, "55", items.Entries[0].Value)
		assert.InDelta(t, 100, items.Entries[0].PercentOfTotal.Value, 1e-9)

		suppliers, ok := report.Ranking(DimSupplier.Name)
		require.True(t, ok)
		assert.Equal(t, 10, suppliers.N)

		_, ok = report.Ranking(DimItemType.Name)
		assert.False(t, ok)

		require.Len(t, report.ItemTypes, 1)
		assert.Equal(t, "Liquor", report.ItemTypes[0].Key.Label)
	})

	t.Run("seasonality and concentration", func(t *testing.T) {
		assert.Equal(t, 1, report.Seasonality.Peak.Month)
		assert.Equal(t, 2, report.Seasonality.Trough.Month)

		assert.Equal(t, domain.ConcentrationHigh, report.Concentration.Level)
		assert.InDelta(t, 100, report.Concentration.TopKShare.Value, 1e-9)
		assert.InDelta(t, 10000, report.Concentration.HHI, 1e-6)
	})
}

func TestAssemble_ItemTypeSharesCloseTo100(t *testing.T) {
	set, err := domain.NewRecordSet(mixedRecords())
	require.NoError(t, err)

	report, err := Assemble(set, DefaultSettings())
	require.NoError(t, err)

	var sum float64
	for _, e := range report.ItemTypes {
		sum += e.PercentOfTotal.Value
	}
	assert.InDelta(t, 100, sum, 1e-9)
	assert.Equal(t, "Beer", report.ItemTypes[0].Key.Label)

	assert.Equal(t, domain.Cardinality{Items: 5, Suppliers: 4, ItemTypes: 4}, report.Cardinality)
	assertDecimal(t, "26.5", report.Totals.RetailTransfers)
}

func TestAssemble_ZeroTotals(t *testing.T) {
	records := []domain.TransactionRecord{
		record(2020, 1, "S1", "A", "Wine", amount(0), amount(0)),
		record(2020, 2, "S2", "B", "Beer", missing, missing),
	}
	set, err := domain.NewRecordSet(records)
	require.NoError(t, err)

	report, err := Assemble(set, DefaultSettings())
	require.NoError(t, err)

	assert.False(t, report.Channels.Retail.Valid)
	assert.False(t, report.Channels.Warehouse.Valid)
	assert.Equal(t, domain.ConcentrationUndetermined, report.Concentration.Level)
	assert.False(t, report.Concentration.TopKShare.Valid)

	items, ok := report.Ranking(DimItem.Name)
	require.True(t, ok)
	for _, e := range items.Entries {
		assert.False(t, e.PercentOfTotal.Valid)
	}
	assert.False(t, report.MonthOverMonth[1].PercentChange.Valid)
}

func TestAssemble_EmptySet(t *testing.T) {
	set, err := domain.NewRecordSet(nil)
	require.NoError(t, err)

	report, err := Assemble(set, DefaultSettings())
	require.NoError(t, err)

	assert.Zero(t, report.RecordCount)
	assert.Empty(t, report.Yearly)
	assert.False(t, report.Seasonality.HasExtrema)
	assert.Equal(t, domain.ConcentrationUndetermined, report.Concentration.Level)
}

func TestAssemble_InvalidInput(t *testing.T) {
	_, err := Assemble(nil, DefaultSettings())
	assert.Error(t, err)

	set, err := domain.NewRecordSet(scenarioRecords())
	require.NoError(t, err)

	settings := DefaultSettings()
	settings.TopN = 0
	_, err = Assemble(set, settings)
	assert.Error(t, err)
}
