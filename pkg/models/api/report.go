package api

import "github.com/shopspring/decimal"

// Percentages are nil when undefined, e.g. a share of a zero total.

type TimePeriod struct {
	First   string `json:"first"`
	Last    string `json:"last"`
	Periods int    `json:"periods"`
}

type Totals struct {
	RetailSales     decimal.Decimal `json:"retail_sales"`
	WarehouseSales  decimal.Decimal `json:"warehouse_sales"`
	TotalSales      decimal.Decimal `json:"total_sales"`
	RetailTransfers decimal.Decimal `json:"retail_transfers"`
}

type Cardinality struct {
	Items     int `json:"items"`
	Suppliers int `json:"suppliers"`
	ItemTypes int `json:"item_types"`
}

type ChannelShare struct {
	Retail    *float64 `json:"retail_pct"`
	Warehouse *float64 `json:"warehouse_pct"`
}

type MissingValues struct {
	Field   string   `json:"field"`
	Count   int      `json:"count"`
	Percent *float64 `json:"pct"`
}

type PeriodSummary struct {
	Period          string          `json:"period"`
	RetailSales     decimal.Decimal `json:"retail_sales"`
	WarehouseSales  decimal.Decimal `json:"warehouse_sales"`
	TotalSales      decimal.Decimal `json:"total_sales"`
	RetailTransfers decimal.Decimal `json:"retail_transfers"`
}

type RankedEntry struct {
	Rank           int             `json:"rank"`
	Key            string          `json:"key"`
	Period         string          `json:"period,omitempty"`
	Labels         []string        `json:"labels,omitempty"`
	Value          decimal.Decimal `json:"value"`
	PercentOfTotal *float64        `json:"pct_of_total"`
}

type Ranking struct {
	Dimension string        `json:"dimension"`
	Measure   string        `json:"measure"`
	N         int           `json:"n"`
	Entries   []RankedEntry `json:"entries"`
}

type GrowthPoint struct {
	Period        string          `json:"period"`
	Value         decimal.Decimal `json:"value"`
	PercentChange *float64        `json:"pct_change"`
}

type PeriodGap struct {
	After  string `json:"after"`
	Before string `json:"before"`
}

type GrowthSeries struct {
	Granularity string        `json:"granularity"`
	Points      []GrowthPoint `json:"points"`
	Gaps        []PeriodGap   `json:"gaps"`
}

type MonthlyEntry struct {
	Month          int             `json:"month"`
	Value          decimal.Decimal `json:"value"`
	PercentOfTotal *float64        `json:"pct_of_total"`
}

type Seasonality struct {
	Measure string         `json:"measure"`
	Months  []MonthlyEntry `json:"months"`
	Peak    *MonthlyEntry  `json:"peak"`
	Trough  *MonthlyEntry  `json:"trough"`
}

type Concentration struct {
	Dimension    string          `json:"dimension"`
	Measure      string          `json:"measure"`
	TopK         int             `json:"top_k"`
	Threshold    float64         `json:"threshold"`
	Contributors []RankedEntry   `json:"contributors"`
	TopKValue    decimal.Decimal `json:"top_k_value"`
	TopKShare    *float64        `json:"top_k_pct"`
	OtherShare   *float64        `json:"other_pct"`
	HHI          float64         `json:"hhi"`
	Level        string          `json:"level"`
}

type Report struct {
	Title          string          `json:"title"`
	Period         TimePeriod      `json:"period"`
	RecordCount    int             `json:"record_count"`
	Totals         Totals          `json:"totals"`
	Cardinality    Cardinality     `json:"cardinality"`
	Channels       ChannelShare    `json:"channels"`
	DataQuality    []MissingValues `json:"data_quality"`
	Yearly         []PeriodSummary `json:"yearly"`
	YearOverYear   GrowthSeries    `json:"year_over_year"`
	Monthly        []PeriodSummary `json:"monthly"`
	MonthOverMonth GrowthSeries    `json:"month_over_month"`
	Rankings       []Ranking       `json:"rankings"`
	ItemTypes      []RankedEntry   `json:"item_types"`
	Seasonality    Seasonality     `json:"seasonality"`
	Concentration  Concentration   `json:"concentration"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
