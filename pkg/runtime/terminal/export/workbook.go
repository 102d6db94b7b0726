package export

import (
	"fmt"
	"io"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/xuri/excelize/v2"
)

const (
	monthlySheet = "Monthly"
	yearlySheet  = "Yearly"
	rankingSheet = "Rankings"
)

// WriteWorkbook writes the monthly and yearly rollups and all rankings as an xlsx workbook.
func WriteWorkbook(w io.Writer, report *domain.Report) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close workbook: %w", cerr)
		}
	}()

	if err := f.SetSheetName("Sheet1", monthlySheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := writeSummarySheet(f, monthlySheet, report.Monthly); err != nil {
		return err
	}

	if _, err := f.NewSheet(yearlySheet); err != nil {
		return fmt.Errorf("failed to add sheet %s: %w", yearlySheet, err)
	}
	if err := writeSummarySheet(f, yearlySheet, report.Yearly); err != nil {
		return err
	}

	if _, err := f.NewSheet(rankingSheet); err != nil {
		return fmt.Errorf("failed to add sheet %s: %w", rankingSheet, err)
	}
	if err := writeRankingSheet(f, report.Rankings); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, sheet string, rows []domain.PeriodSummary) error {
	if err := setRow(f, sheet, 1, toCells(monthlyHeader)); err != nil {
		return err
	}
	for i, row := range rows {
		month := any(row.Period.Month)
		if row.Period.Month == 0 {
			month = ""
		}
		cells := []any{
			row.Period.Year,
			month,
			row.RetailSales.InexactFloat64(),
			row.WarehouseSales.InexactFloat64(),
			row.TotalSales.InexactFloat64(),
			row.RetailTransfers.InexactFloat64(),
		}
		if err := setRow(f, sheet, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

func writeRankingSheet(f *excelize.File, rankings []domain.Ranking) error {
	if err := setRow(f, rankingSheet, 1, []any{"DIMENSION", "RANK", "KEY", "TOTAL SALES", "SHARE %"}); err != nil {
		return err
	}
	n := 2
	for _, r := range rankings {
		for _, e := range r.Entries {
			share := any("")
			if e.PercentOfTotal.Valid {
				share = e.PercentOfTotal.Value
			}
			if err := setRow(f, rankingSheet, n, []any{r.Dimension, e.Rank, e.Key.String(), e.Value.InexactFloat64(), share}); err != nil {
				return err
			}
			n++
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func toCells(values []string) []any {
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
