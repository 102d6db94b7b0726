package analytics

import (
	"errors"
	"math"
	"testing"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_ConservesTotals(t *testing.T) {
	records := mixedRecords()
	measures := []Measure{MeasureRetailSales, MeasureWarehouseSales, MeasureTotalSales, MeasureRetailTransfers, MeasureRecordCount}

	for _, name := range DimensionNames() {
		dim, err := LookupDimension(name)
		require.NoError(t, err)

		for _, m := range measures {
			t.Run(name+"/"+m.Name, func(t *testing.T) {
				result, err := Aggregate(records, dim, m)
				require.NoError(t, err)

				want := decimal.Zero
				for _, r := range records {
					v, err := m.Extract(r)
					require.NoError(t, err)
					if v.Present {
						want = want.Add(v.Amount)
					}
				}

				got := decimal.Zero
				for _, k := range result.Keys() {
					v, ok := result.Value(k, m.Name)
					require.True(t, ok)
					got = got.Add(v)
				}
				assert.True(t, want.Equal(got), "want %s, got %s", want, got)
				assert.True(t, want.Equal(result.Total(m.Name)))
			})
		}
	}
}

func TestAggregate_MissingValues(t *testing.T) {
	records := mixedRecords()

	result, err := Aggregate(records, DimSupplier, MeasureRetailSales, MeasureTotalSales, MeasureRecordCount)
	require.NoError(t, err)

	t.Run("missing values add nothing and are not counted", func(t *testing.T) {
		c, ok := result.Cell(domain.LabelKey("ALPHA"), MeasureRetailSales.Name)
		require.True(t, ok)
		assertDecimal(t, "30.5", c.Sum)
		assert.Equal(t, 2, c.Count)
		assert.Equal(t, 3, result.Records(domain.LabelKey("ALPHA")))
	})

	t.Run("record without sales is kept for counts only", func(t *testing.T) {
		key := domain.LabelKey("DELTA")
		total, ok := result.Cell(key, MeasureTotalSales.Name)
		require.True(t, ok)
		assert.True(t, total.Sum.IsZero())
		assert.Equal(t, 0, total.Count)

		count, _ := result.Value(key, MeasureRecordCount.Name)
		assertDecimal(t, "1", count)
	})

	t.Run("zero is a value, not a gap", func(t *testing.T) {
		c, _ := result.Cell(domain.LabelKey("GAMMA"), MeasureRetailSales.Name)
		assertDecimal(t, "30", c.Sum)
		assert.Equal(t, 2, c.Count)
	})
}

func TestAggregate_KeysArePresentOnly(t *testing.T) {
	result, err := Aggregate(scenarioRecords(), DimPeriod, MeasureTotalSales)
	require.NoError(t, err)

	assert.Equal(t, []domain.GroupKey{
		domain.PeriodGroupKey(domain.PeriodKey{Year: 2020, Month: 1}),
		domain.PeriodGroupKey(domain.PeriodKey{Year: 2020, Month: 2}),
		domain.PeriodGroupKey(domain.PeriodKey{Year: 2021, Month: 1}),
	}, result.Keys())

	_, ok := result.Value(domain.PeriodGroupKey(domain.PeriodKey{Year: 2020, Month: 3}), MeasureTotalSales.Name)
	assert.False(t, ok)
}

func TestAggregate_CompositeKeysGroupByValue(t *testing.T) {
	records := []domain.TransactionRecord{
		record(2020, 1, "S1", "A", "Wine", amount(1), missing),
		record(2020, 1, "S1", "B", "Wine", amount(2), missing),
		record(2020, 1, "S2", "A", "Wine", amount(4), missing),
		record(2021, 1, "S1", "A", "Wine", amount(8), missing),
	}

	result, err := Aggregate(records, Compose(DimYear, DimSupplier), MeasureRetailSales)
	require.NoError(t, err)

	assert.Equal(t, "year+supplier", result.Dimension())
	assert.Equal(t, 3, result.Len())

	v, ok := result.Value(domain.GroupKey{Period: domain.PeriodKey{Year: 2020}, Label: "S1"}, MeasureRetailSales.Name)
	require.True(t, ok)
	assertDecimal(t, "3", v)
}

func TestAggregate_CompositeKeysKeepSeparatorLabelsApart(t *testing.T) {
	// Given: label values that would read the same once joined for display
	records := []domain.TransactionRecord{
		record(2020, 1, "A / B", "C", "Wine", amount(1), missing),
		record(2020, 1, "A", "B / C", "Wine", amount(2), missing),
	}

	// When
	result, err := Aggregate(records, Compose(DimSupplier, DimItem), MeasureRetailSales)

	// Then: each part is compared on its own
	require.NoError(t, err)
	assert.Equal(t, 2, result.Len())

	keys := result.Keys()
	require.Len(t, keys, 2)
	assert.Equal(t, []string{"A", "B / C"}, keys[0].Labels())
	assert.Equal(t, []string{"A / B", "C"}, keys[1].Labels())
	assert.Equal(t, "A / B / C", keys[0].String())

	v, ok := result.Value(domain.CompositeKey(domain.PeriodKey{}, "A / B", "C"), MeasureRetailSales.Name)
	require.True(t, ok)
	assertDecimal(t, "1", v)
	v, ok = result.Value(domain.CompositeKey(domain.PeriodKey{}, "A", "B / C"), MeasureRetailSales.Name)
	require.True(t, ok)
	assertDecimal(t, "2", v)
}

func TestCompose_TooManyDimensions(t *testing.T) {
	assert.Panics(t, func() {
		Compose(DimYear, DimMonth, DimSupplier, DimItem, DimItemType)
	})
}

func TestAggregate_InvalidMeasure(t *testing.T) {
	records := scenarioRecords()

	tests := []struct {
		name    string
		measure Measure
	}{
		{
			name: "NaN reading",
			measure: FloatMeasure("ratio", func(r domain.TransactionRecord) (float64, bool) {
				return math.NaN(), true
			}),
		},
		{
			name: "infinite reading",
			measure: FloatMeasure("ratio", func(r domain.TransactionRecord) (float64, bool) {
				return math.Inf(1), true
			}),
		},
		{
			name: "extractor error",
			measure: Measure{Name: "broken", Extract: func(domain.TransactionRecord) (Value, error) {
				return Value{}, errors.New("boom")
			}},
		},
		{
			name:    "no extractor",
			measure: Measure{Name: "empty"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Aggregate(records, DimItem, tc.measure)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidMeasure)

			var measureErr *domain.MeasureError
			require.ErrorAs(t, err, &measureErr)
			assert.Equal(t, tc.measure.Name, measureErr.Measure)
		})
	}
}

func TestAggregate_RejectsDuplicateMeasures(t *testing.T) {
	_, err := Aggregate(scenarioRecords(), DimItem, MeasureTotalSales, MeasureTotalSales)
	assert.ErrorIs(t, err, domain.ErrInvalidMeasure)
}

func TestFloatMeasure_SkipsAbsentReadings(t *testing.T) {
	m := FloatMeasure("retail_float", func(r domain.TransactionRecord) (float64, bool) {
		if !r.RetailSales.Valid {
			return 0, false
		}
		return r.RetailSales.Decimal.InexactFloat64(), true
	})

	result, err := Aggregate(mixedRecords(), DimItemType, m)
	require.NoError(t, err)

	c, _ := result.Cell(domain.LabelKey("Kegs"), m.Name)
	assert.Equal(t, 0, c.Count)
}

func TestDistinct(t *testing.T) {
	records := mixedRecords()
	assert.Equal(t, 4, Distinct(records, DimSupplier))
	assert.Equal(t, 5, Distinct(records, DimItem))
	assert.Equal(t, 4, Distinct(records, DimItemType))
	assert.Equal(t, 0, Distinct(nil, DimItem))
}

func TestLookupDimension(t *testing.T) {
	d, err := LookupDimension(" Product ")
	require.NoError(t, err)
	assert.Equal(t, DimItem.Name, d.Name)

	_, err = LookupDimension("warehouse")
	assert.Error(t, err)
}
