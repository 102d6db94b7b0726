package export

import (
	"fmt"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
)

// Recommendation is one business action area with its suggested actions.
type Recommendation struct {
	Topic   string
	Actions []string
}

const (
	itemDimension     = "item"
	supplierDimension = "supplier"
	leadersShown      = 10
)

// Recommendations derives the closing advice of a report from its computed
// values. Areas lacking data are omitted.
func Recommendations(report *domain.Report) []Recommendation {
	var recs []Recommendation

	if items, ok := report.Ranking(itemDimension); ok && len(items.Entries) > 0 {
		top := leaders(items.Entries, leadersShown)
		recs = append(recs, Recommendation{
			Topic: "Inventory optimization",
			Actions: []string{
				fmt.Sprintf("Focus procurement on the top %d products (they drive %s of sales)", len(top), sharePercent(top)),
				"Maintain higher stock levels for best-selling items",
				"Consider discontinuing low-performing SKUs",
			},
		})
	}

	if con := report.Concentration; len(con.Contributors) > 0 {
		actions := []string{
			fmt.Sprintf("Top %d %ss account for %s of sales", len(con.Contributors), con.Dimension, con.TopKShare),
			"Negotiate better terms with key suppliers",
		}
		if con.Level == domain.ConcentrationHigh {
			actions = append(actions, "Develop contingency plans to reduce concentration risk")
		}
		recs = append(recs, Recommendation{Topic: "Supplier relationship management", Actions: actions})
	}

	if s := report.Seasonality; s.HasExtrema {
		recs = append(recs, Recommendation{
			Topic: "Seasonal planning",
			Actions: []string{
				fmt.Sprintf("%s is the peak month: ensure adequate staffing and inventory", monthName(s.Peak.Month)),
				fmt.Sprintf("%s is the slowest month: consider promotional campaigns", monthName(s.Trough.Month)),
				"Adjust inventory levels based on monthly patterns",
			},
		})
	}

	if report.Channels.Retail.Valid {
		recs = append(recs, Recommendation{
			Topic: "Channel strategy",
			Actions: []string{
				fmt.Sprintf("Retail accounts for %s of sales", report.Channels.Retail),
				fmt.Sprintf("Optimize warehouse operations for the %s warehouse share", report.Channels.Warehouse),
				"Analyze profitability differences between channels",
			},
		})
	}

	if len(report.ItemTypes) > 0 {
		recs = append(recs, Recommendation{
			Topic: "Product mix optimization",
			Actions: []string{
				fmt.Sprintf("Top product type: %s", report.ItemTypes[0].Key),
				"Expand offerings in high-performing categories",
				"Review underperforming product types for removal",
			},
		})
	}

	if latest, ok := report.YearOverYear.Latest(); ok && latest.PercentChange.Valid {
		recs = append(recs, Recommendation{
			Topic: "Growth opportunities",
			Actions: []string{
				fmt.Sprintf("Most recent year-over-year growth (%s): %s", latest.Period, trendArrow(latest.PercentChange)),
				"Identify emerging product trends",
				"Explore new supplier partnerships",
			},
		})
	}

	return recs
}

func leaders(entries []domain.RankedEntry, n int) []domain.RankedEntry {
	if len(entries) > n {
		return entries[:n]
	}
	return entries
}

// sharePercent sums the shares of entries; undefined if any share is.
func sharePercent(entries []domain.RankedEntry) domain.Percent {
	sum := domain.Percent{Valid: true}
	for _, e := range entries {
		if !e.PercentOfTotal.Valid {
			return domain.UndefinedPercent()
		}
		sum.Value += e.PercentOfTotal.Value
	}
	return sum
}
