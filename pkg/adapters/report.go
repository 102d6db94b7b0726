package adapters

import (
	"github.com/de-tools/sales-atlas/pkg/models/api"
	"github.com/de-tools/sales-atlas/pkg/models/domain"
)

const (
	GranularityYear  = "year"
	GranularityMonth = "month"
)

func MapTimePeriodDomainToApi(p domain.TimePeriod) api.TimePeriod {
	return api.TimePeriod{
		First:   p.First.String(),
		Last:    p.Last.String(),
		Periods: p.Periods,
	}
}

func MapRankedEntryDomainToApi(e domain.RankedEntry) api.RankedEntry {
	return api.RankedEntry{
		Rank:           e.Rank,
		Key:            e.Key.String(),
		Period:         e.Key.Period.String(),
		Labels:         e.Key.Labels(),
		Value:          e.Value,
		PercentOfTotal: e.PercentOfTotal.Ptr(),
	}
}

func MapRankedEntriesDomainToApi(entries []domain.RankedEntry) []api.RankedEntry {
	out := make([]api.RankedEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, MapRankedEntryDomainToApi(e))
	}
	return out
}

func MapRankingDomainToApi(r domain.Ranking) api.Ranking {
	return api.Ranking{
		Dimension: r.Dimension,
		Measure:   r.Measure,
		N:         r.N,
		Entries:   MapRankedEntriesDomainToApi(r.Entries),
	}
}

func MapGrowthSeriesDomainToApi(granularity string, s domain.GrowthSeries) api.GrowthSeries {
	out := api.GrowthSeries{
		Granularity: granularity,
		Points:      make([]api.GrowthPoint, 0, len(s)),
		Gaps:        []api.PeriodGap{},
	}
	for _, p := range s {
		out.Points = append(out.Points, api.GrowthPoint{
			Period:        p.Period.String(),
			Value:         p.Value,
			PercentChange: p.PercentChange.Ptr(),
		})
	}
	for _, g := range s.Gaps() {
		out.Gaps = append(out.Gaps, api.PeriodGap{After: g.After.String(), Before: g.Before.String()})
	}
	return out
}

func mapMonthlyEntry(e domain.MonthlyEntry) api.MonthlyEntry {
	return api.MonthlyEntry{
		Month:          e.Month,
		Value:          e.Value,
		PercentOfTotal: e.PercentOfTotal.Ptr(),
	}
}

func MapSeasonalityDomainToApi(s domain.Seasonality) api.Seasonality {
	out := api.Seasonality{
		Measure: s.Measure,
		Months:  make([]api.MonthlyEntry, 0, len(s.Months)),
	}
	for _, m := range s.Months {
		out.Months = append(out.Months, mapMonthlyEntry(m))
	}
	if s.HasExtrema {
		peak, trough := mapMonthlyEntry(s.Peak), mapMonthlyEntry(s.Trough)
		out.Peak, out.Trough = &peak, &trough
	}
	return out
}

func MapConcentrationDomainToApi(c domain.Concentration) api.Concentration {
	return api.Concentration{
		Dimension:    c.Dimension,
		Measure:      c.Measure,
		TopK:         c.TopK,
		Threshold:    c.Threshold,
		Contributors: MapRankedEntriesDomainToApi(c.Contributors),
		TopKValue:    c.TopKValue,
		TopKShare:    c.TopKShare.Ptr(),
		OtherShare:   c.OtherShare.Ptr(),
		HHI:          c.HHI,
		Level:        string(c.Level),
	}
}

func mapPeriodSummaries(rows []domain.PeriodSummary) []api.PeriodSummary {
	out := make([]api.PeriodSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, api.PeriodSummary{
			Period:          r.Period.String(),
			RetailSales:     r.RetailSales,
			WarehouseSales:  r.WarehouseSales,
			TotalSales:      r.TotalSales,
			RetailTransfers: r.RetailTransfers,
		})
	}
	return out
}

func MapReportDomainToApi(r domain.Report) api.Report {
	report := api.Report{
		Title:       r.Title,
		Period:      MapTimePeriodDomainToApi(r.Period),
		RecordCount: r.RecordCount,
		Totals: api.Totals{
			RetailSales:     r.Totals.RetailSales,
			WarehouseSales:  r.Totals.WarehouseSales,
			TotalSales:      r.Totals.TotalSales,
			RetailTransfers: r.Totals.RetailTransfers,
		},
		Cardinality: api.Cardinality{
			Items:     r.Cardinality.Items,
			Suppliers: r.Cardinality.Suppliers,
			ItemTypes: r.Cardinality.ItemTypes,
		},
		Channels: api.ChannelShare{
			Retail:    r.Channels.Retail.Ptr(),
			Warehouse: r.Channels.Warehouse.Ptr(),
		},
		DataQuality:    make([]api.MissingValues, 0, len(r.DataQuality)),
		Yearly:         mapPeriodSummaries(r.Yearly),
		YearOverYear:   MapGrowthSeriesDomainToApi(GranularityYear, r.YearOverYear),
		Monthly:        mapPeriodSummaries(r.Monthly),
		MonthOverMonth: MapGrowthSeriesDomainToApi(GranularityMonth, r.MonthOverMonth),
		Rankings:       make([]api.Ranking, 0, len(r.Rankings)),
		ItemTypes:      MapRankedEntriesDomainToApi(r.ItemTypes),
		Seasonality:    MapSeasonalityDomainToApi(r.Seasonality),
		Concentration:  MapConcentrationDomainToApi(r.Concentration),
	}

	for _, mv := range r.DataQuality {
		report.DataQuality = append(report.DataQuality, api.MissingValues{
			Field:   mv.Field,
			Count:   mv.Count,
			Percent: mv.Percent.Ptr(),
		})
	}
	for _, rk := range r.Rankings {
		report.Rankings = append(report.Rankings, MapRankingDomainToApi(rk))
	}
	return report
}
