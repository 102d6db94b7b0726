package analytics

import (
	"github.com/de-tools/sales-atlas/pkg/models/domain"
)

// MonthlyPattern sums measure per calendar month across all years. Months
// without records are omitted. Peak and trough take the smallest month on ties.
func MonthlyPattern(records []domain.TransactionRecord, measure Measure) (domain.Seasonality, error) {
	result, err := Aggregate(records, DimMonth, measure)
	if err != nil {
		return domain.Seasonality{}, err
	}

	season := domain.Seasonality{Measure: measure.Name}
	total := result.Total(measure.Name)

	// Keys are ascending by month, so strict comparisons keep the first occurrence.
	for _, k := range result.Keys() {
		v, _ := result.Value(k, measure.Name)
		entry := domain.MonthlyEntry{
			Month:          k.Period.Month,
			Value:          v,
			PercentOfTotal: domain.PercentOf(v, total),
		}
		season.Months = append(season.Months, entry)

		if !season.HasExtrema {
			season.Peak, season.Trough, season.HasExtrema = entry, entry, true
			continue
		}
		if entry.Value.GreaterThan(season.Peak.Value) {
			season.Peak = entry
		}
		if entry.Value.LessThan(season.Trough.Value) {
			season.Trough = entry
		}
	}

	return season, nil
}
