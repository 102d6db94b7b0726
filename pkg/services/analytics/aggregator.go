package analytics

import (
	"fmt"
	"sort"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
)

// Cell is the summed value of one measure within one group.
// Count only includes records where the measure was present.
type Cell struct {
	Sum   decimal.Decimal
	Count int
}

type group struct {
	records int
	cells   map[string]Cell
}

// AggregationResult maps dimension keys to summed measures. It is read-only
// once returned by Aggregate.
type AggregationResult struct {
	dimension string
	measures  []string
	groups    map[domain.GroupKey]*group
}

func (r AggregationResult) Dimension() string {
	return r.dimension
}

func (r AggregationResult) Measures() []string {
	return append([]string(nil), r.measures...)
}

func (r AggregationResult) HasMeasure(name string) bool {
	for _, m := range r.measures {
		if m == name {
			return true
		}
	}
	return false
}

func (r AggregationResult) Len() int {
	return len(r.groups)
}

// Keys returns the group keys in ascending key order.
func (r AggregationResult) Keys() []domain.GroupKey {
	keys := make([]domain.GroupKey, 0, len(r.groups))
	for k := range r.groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}

func (r AggregationResult) Cell(key domain.GroupKey, measure string) (Cell, bool) {
	g, ok := r.groups[key]
	if !ok || !r.HasMeasure(measure) {
		return Cell{}, false
	}
	return g.cells[measure], true
}

// Value returns the summed measure for key; absent keys report false.
func (r AggregationResult) Value(key domain.GroupKey, measure string) (decimal.Decimal, bool) {
	c, ok := r.Cell(key, measure)
	return c.Sum, ok
}

// Records returns how many input records fell into key.
func (r AggregationResult) Records(key domain.GroupKey) int {
	if g, ok := r.groups[key]; ok {
		return g.records
	}
	return 0
}

// Total sums a measure across all groups.
func (r AggregationResult) Total(measure string) decimal.Decimal {
	total := decimal.Zero
	for _, g := range r.groups {
		total = total.Add(g.cells[measure].Sum)
	}
	return total
}

// Aggregate groups records by dim and sums every measure per group. Only keys
// present in records appear in the result.
func Aggregate(records []domain.TransactionRecord, dim Dimension, measures ...Measure) (AggregationResult, error) {
	if dim.Key == nil {
		return AggregationResult{}, fmt.Errorf("dimension %q has no key function", dim.Name)
	}

	names := make([]string, 0, len(measures))
	seen := make(map[string]bool, len(measures))
	for _, m := range measures {
		if m.Extract == nil || m.Name == "" {
			return AggregationResult{}, &domain.MeasureError{Measure: m.Name, Reason: "measure has no extractor"}
		}
		if seen[m.Name] {
			return AggregationResult{}, &domain.MeasureError{Measure: m.Name, Reason: "measure requested twice"}
		}
		seen[m.Name] = true
		names = append(names, m.Name)
	}

	result := AggregationResult{
		dimension: dim.Name,
		measures:  names,
		groups:    make(map[domain.GroupKey]*group),
	}

	for i, rec := range records {
		key := dim.Key(rec)
		g, exists := result.groups[key]
		if !exists {
			g = &group{cells: make(map[string]Cell, len(measures))}
			for _, name := range names {
				g.cells[name] = Cell{Sum: decimal.Zero}
			}
			result.groups[key] = g
		}
		g.records++

		for _, m := range measures {
			v, err := m.Extract(rec)
			if err != nil {
				return AggregationResult{}, &domain.MeasureError{
					Measure: m.Name,
					Row:     i + 1,
					Key:     key.String(),
					Reason:  err.Error(),
				}
			}
			if !v.Present {
				continue
			}
			c := g.cells[m.Name]
			c.Sum = c.Sum.Add(v.Amount)
			c.Count++
			g.cells[m.Name] = c
		}
	}

	return result, nil
}

// Distinct counts the distinct keys of a dimension.
func Distinct(records []domain.TransactionRecord, dim Dimension) int {
	seen := make(map[domain.GroupKey]struct{})
	for _, r := range records {
		seen[dim.Key(r)] = struct{}{}
	}
	return len(seen)
}
