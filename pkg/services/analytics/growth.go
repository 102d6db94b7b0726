package analytics

import (
	"errors"
	"fmt"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
)

var ErrNotTemporal = errors.New("dimension is not temporal")

// SeriesPoint is an input sample for growth analysis.
type SeriesPoint struct {
	Period domain.PeriodKey
	Value  decimal.Decimal
}

// PeriodOverPeriod computes the percentage change between consecutive points.
// The input must be in strictly increasing period order. Missing periods are
// not synthesized; use GrowthSeries.Gaps to detect them.
func PeriodOverPeriod(series []SeriesPoint) (domain.GrowthSeries, error) {
	for i := 1; i < len(series); i++ {
		if !series[i-1].Period.Less(series[i].Period) {
			return nil, &domain.SeriesError{Index: i, Previous: series[i-1].Period, Current: series[i].Period}
		}
	}

	out := make(domain.GrowthSeries, len(series))
	for i, p := range series {
		out[i] = domain.GrowthPoint{Period: p.Period, Value: p.Value}
		if i == 0 {
			out[i].PercentChange = domain.UndefinedPercent()
			continue
		}
		out[i].PercentChange = domain.PercentChange(series[i-1].Value, p.Value)
	}
	return out, nil
}

// SeriesFromResult orders a temporal aggregation into a series for measure.
func SeriesFromResult(result AggregationResult, measure string) ([]SeriesPoint, error) {
	if !result.HasMeasure(measure) {
		return nil, &domain.MeasureError{Measure: measure, Reason: fmt.Sprintf("not aggregated by %q", result.Dimension())}
	}

	keys := result.Keys()
	series := make([]SeriesPoint, 0, len(keys))
	for _, k := range keys {
		if !k.IsTemporal() {
			return nil, fmt.Errorf("%w: %q has key %q", ErrNotTemporal, result.Dimension(), k)
		}
		v, _ := result.Value(k, measure)
		series = append(series, SeriesPoint{Period: k.Period, Value: v})
	}
	return series, nil
}
