package analytics

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
)

var ErrUnknownDimension = errors.New("unknown dimension")

// Dimension maps a record to the key it is grouped under.
type Dimension struct {
	Name string
	Key  func(domain.TransactionRecord) domain.GroupKey
}

var (
	DimYear = Dimension{Name: "year", Key: func(r domain.TransactionRecord) domain.GroupKey {
		return domain.PeriodGroupKey(domain.PeriodKey{Year: r.Year})
	}}
	DimMonth = Dimension{Name: "month", Key: func(r domain.TransactionRecord) domain.GroupKey {
		return domain.PeriodGroupKey(domain.PeriodKey{Month: r.Month})
	}}
	DimPeriod = Dimension{Name: "period", Key: func(r domain.TransactionRecord) domain.GroupKey {
		return domain.PeriodGroupKey(r.Period())
	}}
	DimSupplier = Dimension{Name: "supplier", Key: func(r domain.TransactionRecord) domain.GroupKey {
		return domain.LabelKey(r.Supplier)
	}}
	DimItem = Dimension{Name: "item", Key: func(r domain.TransactionRecord) domain.GroupKey {
		return domain.LabelKey(r.ItemDescription)
	}}
	DimItemType = Dimension{Name: "item_type", Key: func(r domain.TransactionRecord) domain.GroupKey {
		return domain.LabelKey(r.ItemType)
	}}
)

var dimensions = map[string]Dimension{
	DimYear.Name:     DimYear,
	DimMonth.Name:    DimMonth,
	DimPeriod.Name:   DimPeriod,
	DimSupplier.Name: DimSupplier,
	DimItem.Name:     DimItem,
	DimItemType.Name: DimItemType,
}

// dimensionAliases accepts the column names of the source dataset.
var dimensionAliases = map[string]string{
	"product":          DimItem.Name,
	"item_description": DimItem.Name,
	"type":             DimItemType.Name,
	"category":         DimItemType.Name,
}

// LookupDimension resolves a dimension by name or alias.
func LookupDimension(name string) (Dimension, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := dimensionAliases[key]; ok {
		key = alias
	}
	d, ok := dimensions[key]
	if !ok {
		return Dimension{}, fmt.Errorf("%w %q (supported: %s)", ErrUnknownDimension, name, strings.Join(DimensionNames(), ", "))
	}
	return d, nil
}

func DimensionNames() []string {
	names := make([]string, 0, len(dimensions))
	for name := range dimensions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Compose builds a composite dimension. Period fields are taken from the
// last dimension that sets them; categorical parts are kept in order, one per
// categorical dimension. It panics when given more than domain.MaxLabelParts
// dimensions.
func Compose(dims ...Dimension) Dimension {
	if len(dims) > domain.MaxLabelParts {
		panic(fmt.Sprintf("analytics: cannot compose %d dimensions, at most %d supported", len(dims), domain.MaxLabelParts))
	}
	names := make([]string, len(dims))
	for i, d := range dims {
		names[i] = d.Name
	}

	return Dimension{
		Name: strings.Join(names, "+"),
		Key: func(r domain.TransactionRecord) domain.GroupKey {
			var period domain.PeriodKey
			labels := make([]string, 0, len(dims))
			for _, d := range dims {
				k := d.Key(r)
				if k.Period.Year != 0 {
					period.Year = k.Period.Year
				}
				if k.Period.Month != 0 {
					period.Month = k.Period.Month
				}
				if !k.Period.IsZero() {
					labels = append(labels, k.Labels()...)
					continue
				}
				// categorical: a blank value still holds its position
				parts := k.Labels()
				if len(parts) == 0 {
					parts = []string{""}
				}
				labels = append(labels, parts...)
			}
			return domain.CompositeKey(period, labels...)
		},
	}
}
