package export

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type TableConfig struct {
	// MaxLabelWidth truncates long item and supplier names (default: 48)
	MaxLabelWidth int
	// Style is the go-pretty table style (default: StyleLight)
	Style table.Style
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		MaxLabelWidth: 48,
		Style:         table.StyleLight,
	}
}

// Reporter outputs reports to the console in a formatted text form
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

const headerTemplate = `
{{.Title}}
{{rule}}
Period:          {{.Period.First}} to {{.Period.Last}} ({{.Period.Periods}} months with data)
Records:         {{.RecordCount}}
Total sales:     ${{amount .Totals.TotalSales}}
  Retail:        ${{amount .Totals.RetailSales}} ({{pct .Channels.Retail}})
  Warehouse:     ${{amount .Totals.WarehouseSales}} ({{pct .Channels.Warehouse}})
Transfers:       ${{amount .Totals.RetailTransfers}}
Distinct:        {{.Cardinality.Items}} items, {{.Cardinality.Suppliers}} suppliers, {{.Cardinality.ItemTypes}} item types
`

func (c *Reporter) Handle(report *domain.Report) error {
	funcMap := template.FuncMap{
		"amount": formatAmount,
		"pct":    formatPercent,
		"rule": func() string {
			return "=================================================="
		},
	}

	t, err := template.New("report").Funcs(funcMap).Parse(headerTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	if err := t.Execute(c.writer, report); err != nil {
		return err
	}

	sections := []string{
		c.dataQualityTable(report),
		c.yearlyTable(report),
	}
	for _, r := range report.Rankings {
		sections = append(sections, c.rankingTable(r))
	}
	sections = append(sections,
		c.itemTypeTable(report),
		c.seasonalityTable(report),
		c.concentrationTable(report),
	)

	for _, s := range sections {
		if _, err := fmt.Fprintf(c.writer, "\n%s\n", s); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(c.writer, "\nRecommendations:"); err != nil {
		return err
	}
	for i, rec := range Recommendations(report) {
		if _, err := fmt.Fprintf(c.writer, "%d. %s\n", i+1, rec.Topic); err != nil {
			return err
		}
		for _, action := range rec.Actions {
			if _, err := fmt.Fprintf(c.writer, "   - %s\n", action); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Reporter) newTable(title string) table.Writer {
	t := table.NewWriter()
	t.SetStyle(c.config.Style)
	t.SetTitle(title)
	return t
}

func (c *Reporter) label(s string) string {
	return text.Trim(s, c.config.MaxLabelWidth)
}

func (c *Reporter) dataQualityTable(report *domain.Report) string {
	t := c.newTable("Missing values")
	t.AppendHeader(table.Row{"Field", "Missing", "Share"})
	for _, mv := range report.DataQuality {
		t.AppendRow(table.Row{mv.Field, mv.Count, formatPercent(mv.Percent)})
	}
	return t.Render()
}

func (c *Reporter) yearlyTable(report *domain.Report) string {
	t := c.newTable("Sales by year")
	t.AppendHeader(table.Row{"Year", "Retail", "Warehouse", "Total", "YoY"})
	t.SetColumnConfigs(rightAligned(2, 3, 4, 5))

	for i, row := range report.Yearly {
		growth := domain.UndefinedPercent()
		if i < len(report.YearOverYear) {
			growth = report.YearOverYear[i].PercentChange
		}
		t.AppendRow(table.Row{
			row.Period.String(),
			formatAmount(row.RetailSales),
			formatAmount(row.WarehouseSales),
			formatAmount(row.TotalSales),
			trendArrow(growth),
		})
	}
	return t.Render()
}

func (c *Reporter) rankingTable(r domain.Ranking) string {
	t := c.newTable(fmt.Sprintf("Top %d by %s", r.N, r.Dimension))
	t.AppendHeader(table.Row{"#", r.Dimension, "Total sales", "Share"})
	t.SetColumnConfigs(rightAligned(3, 4))
	for _, e := range r.Entries {
		t.AppendRow(table.Row{e.Rank, c.label(e.Key.String()), formatAmount(e.Value), formatPercent(e.PercentOfTotal)})
	}
	return t.Render()
}

func (c *Reporter) itemTypeTable(report *domain.Report) string {
	t := c.newTable("Sales by item type")
	t.AppendHeader(table.Row{"Item type", "Total sales", "Share"})
	t.SetColumnConfigs(rightAligned(2, 3))
	for _, e := range report.ItemTypes {
		t.AppendRow(table.Row{e.Key.String(), formatAmount(e.Value), formatPercent(e.PercentOfTotal)})
	}
	return t.Render()
}

func (c *Reporter) seasonalityTable(report *domain.Report) string {
	s := report.Seasonality
	t := c.newTable("Monthly pattern")
	t.AppendHeader(table.Row{"Month", "Total sales", "Share"})
	t.SetColumnConfigs(rightAligned(2, 3))
	for _, m := range s.Months {
		t.AppendRow(table.Row{monthName(m.Month), formatAmount(m.Value), formatPercent(m.PercentOfTotal)})
	}
	if s.HasExtrema {
		t.AppendFooter(table.Row{"Peak / trough", monthName(s.Peak.Month), monthName(s.Trough.Month)})
	}
	return t.Render()
}

func (c *Reporter) concentrationTable(report *domain.Report) string {
	con := report.Concentration
	t := c.newTable(fmt.Sprintf("Top %d %s concentration", con.TopK, con.Dimension))
	t.AppendHeader(table.Row{"#", con.Dimension, "Total sales", "Share"})
	t.SetColumnConfigs(rightAligned(3, 4))
	for _, e := range con.Contributors {
		t.AppendRow(table.Row{e.Rank, c.label(e.Key.String()), formatAmount(e.Value), formatPercent(e.PercentOfTotal)})
	}
	t.AppendFooter(table.Row{
		"",
		fmt.Sprintf("%s (threshold %.0f%%, HHI %.0f)", con.Level, con.Threshold, con.HHI),
		formatAmount(con.TopKValue),
		formatPercent(con.TopKShare),
	})
	return t.Render()
}

func rightAligned(columns ...int) []table.ColumnConfig {
	configs := make([]table.ColumnConfig, 0, len(columns))
	for _, n := range columns {
		configs = append(configs, table.ColumnConfig{Number: n, Align: text.AlignRight, AlignFooter: text.AlignRight})
	}
	return configs
}
