package analytics

import (
	"fmt"
	"sort"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
)

// TopN ranks the groups of result by measure, descending, ties broken by
// ascending key. n <= 0 or n larger than the key count returns every group.
//
// Percentages are computed against total. When total is zero the entries are
// still returned, each with an undefined percentage, together with an error
// wrapping domain.ErrDivisionUndefined.
func TopN(result AggregationResult, measure string, n int, total decimal.Decimal) ([]domain.RankedEntry, error) {
	if !result.HasMeasure(measure) {
		return nil, &domain.MeasureError{Measure: measure, Reason: fmt.Sprintf("not aggregated by %q", result.Dimension())}
	}

	entries := make([]domain.RankedEntry, 0, result.Len())
	for key, g := range result.groups {
		entries = append(entries, domain.RankedEntry{Key: key, Value: g.cells[measure].Sum})
	}

	sort.Slice(entries, func(i, j int) bool {
		if c := entries[i].Value.Cmp(entries[j].Value); c != 0 {
			return c > 0
		}
		return entries[i].Key.Less(entries[j].Key)
	})

	if n > 0 && n < len(entries) {
		entries = entries[:n]
	}

	for i := range entries {
		entries[i].Rank = i + 1
		entries[i].PercentOfTotal = domain.PercentOf(entries[i].Value, total)
	}

	if total.IsZero() {
		return entries, fmt.Errorf("rank %s by %s: %w: total is zero", result.Dimension(), measure, domain.ErrDivisionUndefined)
	}
	return entries, nil
}

// SumEntries adds up the values of ranked entries.
func SumEntries(entries []domain.RankedEntry) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.Value)
	}
	return sum
}
