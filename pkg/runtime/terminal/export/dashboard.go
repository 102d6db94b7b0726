package export

import (
	"fmt"
	"io"
	"sort"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	chartWidth     = "900px"
	chartHeight    = "420px"
	pieSlices      = 5
	dashboardTitle = "Sales dashboard"
)

// WriteDashboard renders the report as a single HTML page of charts.
// Charts whose data is absent from the report are left out.
func WriteDashboard(w io.Writer, report *domain.Report) error {
	page := components.NewPage()
	page.PageTitle = dashboardTitle
	if report.Title != "" {
		page.PageTitle = report.Title
	}

	page.AddCharts(
		annualTrendChart(report),
		channelPieChart(report),
		channelTrendChart(report),
		monthlyPatternChart(report),
		monthlyTrendChart(report),
		itemTypePieChart(report),
	)
	if items, ok := report.Ranking(itemDimension); ok {
		page.AddCharts(leadersChart("Top 10 products", items))
	}
	if suppliers, ok := report.Ranking(supplierDimension); ok {
		page.AddCharts(leadersChart("Top 10 suppliers", suppliers))
	}

	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render dashboard: %w", err)
	}
	return nil
}

func initOpts() charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight})
}

func annualTrendChart(report *domain.Report) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		initOpts(),
		charts.WithTitleOpts(opts.Title{Title: "Annual sales trend", Subtitle: "Total sales by year"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)

	labels := make([]string, 0, len(report.Yearly))
	data := make([]opts.LineData, 0, len(report.Yearly))
	for _, row := range report.Yearly {
		labels = append(labels, row.Period.String())
		data = append(data, opts.LineData{Value: row.TotalSales.InexactFloat64()})
	}
	line.SetXAxis(labels).
		AddSeries("Total sales", data).
		SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return line
}

func leadersChart(title string, ranking domain.Ranking) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		initOpts(),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{AxisLabel: &opts.AxisLabel{Rotate: 30, Interval: "0"}}),
	)

	top := leaders(ranking.Entries, leadersShown)
	labels := make([]string, 0, len(top))
	data := make([]opts.BarData, 0, len(top))
	for _, e := range top {
		labels = append(labels, e.Key.String())
		data = append(data, opts.BarData{Value: e.Value.InexactFloat64()})
	}
	bar.SetXAxis(labels).AddSeries("Total sales", data)
	return bar
}

// itemTypePieChart shows the largest positive item types; pies cannot draw negative slices.
func itemTypePieChart(report *domain.Report) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		initOpts(),
		charts.WithTitleOpts(opts.Title{Title: "Sales by item type", Subtitle: fmt.Sprintf("Top %d", pieSlices)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
	)

	data := make([]opts.PieData, 0, pieSlices)
	for _, e := range report.ItemTypes {
		if len(data) == pieSlices {
			break
		}
		if !e.Value.IsPositive() {
			continue
		}
		data = append(data, opts.PieData{Name: e.Key.String(), Value: e.Value.InexactFloat64()})
	}
	pie.AddSeries("Item type", data).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {d}%"}))
	return pie
}

func monthlyPatternChart(report *domain.Report) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		initOpts(),
		charts.WithTitleOpts(opts.Title{Title: "Monthly sales pattern", Subtitle: "All years combined"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	months := report.Seasonality.Months
	labels := make([]string, 0, len(months))
	data := make([]opts.BarData, 0, len(months))
	for _, m := range months {
		labels = append(labels, monthName(m.Month))
		data = append(data, opts.BarData{Value: m.Value.InexactFloat64()})
	}
	bar.SetXAxis(labels).AddSeries("Total sales", data)
	return bar
}

func channelPieChart(report *domain.Report) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		initOpts(),
		charts.WithTitleOpts(opts.Title{Title: "Sales channel distribution"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
	)

	pie.AddSeries("Channel", []opts.PieData{
		{Name: "Retail", Value: report.Totals.RetailSales.InexactFloat64()},
		{Name: "Warehouse", Value: report.Totals.WarehouseSales.InexactFloat64()},
	}).SetSeriesOptions(charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {d}%"}))
	return pie
}

func channelTrendChart(report *domain.Report) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		initOpts(),
		charts.WithTitleOpts(opts.Title{Title: "Channel performance over time"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	labels := make([]string, 0, len(report.Yearly))
	retail := make([]opts.LineData, 0, len(report.Yearly))
	warehouse := make([]opts.LineData, 0, len(report.Yearly))
	for _, row := range report.Yearly {
		labels = append(labels, row.Period.String())
		retail = append(retail, opts.LineData{Value: row.RetailSales.InexactFloat64()})
		warehouse = append(warehouse, opts.LineData{Value: row.WarehouseSales.InexactFloat64()})
	}
	line.SetXAxis(labels).
		AddSeries("Retail", retail).
		AddSeries("Warehouse", warehouse)
	return line
}

func monthlyTrendChart(report *domain.Report) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		initOpts(),
		charts.WithTitleOpts(opts.Title{Title: "Monthly sales trend"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
	)

	rows := append([]domain.PeriodSummary(nil), report.Monthly...)
	sort.Slice(rows, func(i, j int) bool { return rows[i].Period.Less(rows[j].Period) })

	labels := make([]string, 0, len(rows))
	data := make([]opts.LineData, 0, len(rows))
	for _, row := range rows {
		labels = append(labels, row.Period.String())
		data = append(data, opts.LineData{Value: row.TotalSales.InexactFloat64()})
	}
	line.SetXAxis(labels).AddSeries("Total sales", data)
	return line
}
