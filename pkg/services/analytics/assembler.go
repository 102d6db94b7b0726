package analytics

import (
	"errors"
	"fmt"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
)

var salesMeasures = []Measure{
	MeasureRetailSales,
	MeasureWarehouseSales,
	MeasureTotalSales,
	MeasureRetailTransfers,
}

// Assemble computes every rollup of the report from set. It performs no I/O
// and leaves set untouched. Percentages against a zero total are reported as
// undefined rather than failing the report.
func Assemble(set *domain.RecordSet, settings Settings) (*domain.Report, error) {
	if set == nil {
		return nil, fmt.Errorf("record set is nil")
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	records := set.Records()
	report := &domain.Report{
		Title:       settings.Title,
		RecordCount: set.Len(),
	}
	if first, last, ok := set.Range(); ok {
		report.Period.First, report.Period.Last = first, last
	}

	yearly, err := Aggregate(records, DimYear, salesMeasures...)
	if err != nil {
		return nil, fmt.Errorf("yearly rollup: %w", err)
	}
	report.Totals = domain.Totals{
		RetailSales:     yearly.Total(MeasureRetailSales.Name),
		WarehouseSales:  yearly.Total(MeasureWarehouseSales.Name),
		TotalSales:      yearly.Total(MeasureTotalSales.Name),
		RetailTransfers: yearly.Total(MeasureRetailTransfers.Name),
	}
	total := report.Totals.TotalSales

	report.Channels = domain.ChannelShare{
		Retail:    domain.PercentOf(report.Totals.RetailSales, total),
		Warehouse: domain.PercentOf(report.Totals.WarehouseSales, total),
	}
	report.Cardinality = domain.Cardinality{
		Items:     Distinct(records, DimItem),
		Suppliers: Distinct(records, DimSupplier),
		ItemTypes: Distinct(records, DimItemType),
	}
	report.DataQuality = missingValues(yearly, set.Len())

	report.Yearly = summarize(yearly)
	if report.YearOverYear, err = growthOf(yearly); err != nil {
		return nil, fmt.Errorf("year-over-year growth: %w", err)
	}

	monthly, err := Aggregate(records, DimPeriod, salesMeasures...)
	if err != nil {
		return nil, fmt.Errorf("monthly rollup: %w", err)
	}
	report.Period.Periods = monthly.Len()
	report.Monthly = summarize(monthly)
	if report.MonthOverMonth, err = growthOf(monthly); err != nil {
		return nil, fmt.Errorf("month-over-month growth: %w", err)
	}

	specs, err := settings.Rankings()
	if err != nil {
		return nil, err
	}
	for _, spec := range specs {
		ranking, err := RankBy(records, spec.Dimension, spec.N, total)
		if err != nil {
			return nil, err
		}
		report.Rankings = append(report.Rankings, ranking)
	}

	types, err := RankBy(records, DimItemType, 0, total)
	if err != nil {
		return nil, err
	}
	report.ItemTypes = types.Entries

	if report.Seasonality, err = MonthlyPattern(records, MeasureTotalSales); err != nil {
		return nil, fmt.Errorf("seasonality: %w", err)
	}

	dim, err := LookupDimension(settings.ConcentrationDimension)
	if err != nil {
		return nil, err
	}
	if report.Concentration, err = ConcentrationBy(records, dim, settings.Concentration(), total); err != nil {
		return nil, err
	}

	return report, nil
}

// TotalSales sums total sales over records; records without sales add nothing.
func TotalSales(records []domain.TransactionRecord) (decimal.Decimal, error) {
	result, err := Aggregate(records, DimYear, MeasureTotalSales)
	if err != nil {
		return decimal.Zero, err
	}
	return result.Total(MeasureTotalSales.Name), nil
}

// RankBy ranks the groups of dim by total sales. A zero total leaves the
// percentages undefined instead of failing.
func RankBy(records []domain.TransactionRecord, dim Dimension, n int, total decimal.Decimal) (domain.Ranking, error) {
	result, err := Aggregate(records, dim, MeasureTotalSales)
	if err != nil {
		return domain.Ranking{}, fmt.Errorf("%s ranking: %w", dim.Name, err)
	}

	entries, err := TopN(result, MeasureTotalSales.Name, n, total)
	if err != nil && !errors.Is(err, domain.ErrDivisionUndefined) {
		return domain.Ranking{}, fmt.Errorf("%s ranking: %w", dim.Name, err)
	}

	return domain.Ranking{
		Dimension: dim.Name,
		Measure:   MeasureTotalSales.Name,
		N:         n,
		Entries:   entries,
	}, nil
}

// ConcentrationBy measures the top-K share of total sales across dim. A zero
// total yields an UNDETERMINED result rather than an error.
func ConcentrationBy(
	records []domain.TransactionRecord,
	dim Dimension,
	settings ConcentrationSettings,
	total decimal.Decimal,
) (domain.Concentration, error) {
	result, err := Aggregate(records, dim, MeasureTotalSales)
	if err != nil {
		return domain.Concentration{}, fmt.Errorf("%s concentration: %w", dim.Name, err)
	}

	c, err := Concentration(result, MeasureTotalSales.Name, settings, total)
	if errors.Is(err, domain.ErrDivisionUndefined) {
		return domain.Concentration{
			Dimension:  dim.Name,
			Measure:    MeasureTotalSales.Name,
			TopK:       settings.TopK,
			Threshold:  settings.Threshold,
			TopKValue:  decimal.Zero,
			TopKShare:  domain.UndefinedPercent(),
			OtherShare: domain.UndefinedPercent(),
			Level:      domain.ConcentrationUndetermined,
		}, nil
	}
	if err != nil {
		return domain.Concentration{}, err
	}
	return c, nil
}

func summarize(result AggregationResult) []domain.PeriodSummary {
	keys := result.Keys()
	rows := make([]domain.PeriodSummary, 0, len(keys))
	for _, k := range keys {
		row := domain.PeriodSummary{Period: k.Period}
		row.RetailSales, _ = result.Value(k, MeasureRetailSales.Name)
		row.WarehouseSales, _ = result.Value(k, MeasureWarehouseSales.Name)
		row.TotalSales, _ = result.Value(k, MeasureTotalSales.Name)
		row.RetailTransfers, _ = result.Value(k, MeasureRetailTransfers.Name)
		rows = append(rows, row)
	}
	return rows
}

func growthOf(result AggregationResult) (domain.GrowthSeries, error) {
	series, err := SeriesFromResult(result, MeasureTotalSales.Name)
	if err != nil {
		return nil, err
	}
	return PeriodOverPeriod(series)
}

func missingValues(result AggregationResult, records int) []domain.MissingValues {
	fields := []string{
		MeasureRetailSales.Name,
		MeasureRetailTransfers.Name,
		MeasureWarehouseSales.Name,
	}

	out := make([]domain.MissingValues, 0, len(fields))
	for _, field := range fields {
		present := 0
		for _, k := range result.Keys() {
			c, _ := result.Cell(k, field)
			present += c.Count
		}
		missing := records - present
		out = append(out, domain.MissingValues{
			Field:   field,
			Count:   missing,
			Percent: domain.PercentOf(decimal.NewFromInt(int64(missing)), decimal.NewFromInt(int64(records))),
		})
	}
	return out
}
