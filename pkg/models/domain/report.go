package domain

import "github.com/shopspring/decimal"

// Report represents a complete analysis of a record set
type Report struct {
	Title       string
	Period      TimePeriod
	RecordCount int
	Totals      Totals
	Cardinality Cardinality
	Channels    ChannelShare
	DataQuality []MissingValues

	Yearly         []PeriodSummary
	YearOverYear   GrowthSeries
	Monthly        []PeriodSummary
	MonthOverMonth GrowthSeries

	Rankings      []Ranking
	ItemTypes     []RankedEntry
	Seasonality   Seasonality
	Concentration Concentration
}

// TimePeriod represents the range of periods covered by the report
type TimePeriod struct {
	First PeriodKey
	Last  PeriodKey
	// Periods is the number of distinct (year, month) buckets with data.
	Periods int
}

type Totals struct {
	RetailSales     decimal.Decimal
	WarehouseSales  decimal.Decimal
	TotalSales      decimal.Decimal
	RetailTransfers decimal.Decimal
}

// Cardinality holds distinct counts over the whole record set.
type Cardinality struct {
	Items     int
	Suppliers int
	ItemTypes int
}

type ChannelShare struct {
	Retail    Percent
	Warehouse Percent
}

// MissingValues counts records lacking a measure.
type MissingValues struct {
	Field   string
	Count   int
	Percent Percent
}

// PeriodSummary is one row of the per-period rollup.
type PeriodSummary struct {
	Period          PeriodKey
	RetailSales     decimal.Decimal
	WarehouseSales  decimal.Decimal
	TotalSales      decimal.Decimal
	RetailTransfers decimal.Decimal
}

// Ranking is the top-N list of one dimension.
type Ranking struct {
	Dimension string
	Measure   string
	N         int
	Entries   []RankedEntry
}

// Ranking returns the ranking computed for dimension, if any.
func (r *Report) Ranking(dimension string) (Ranking, bool) {
	for _, rk := range r.Rankings {
		if rk.Dimension == dimension {
			return rk, true
		}
	}
	return Ranking{}, false
}
