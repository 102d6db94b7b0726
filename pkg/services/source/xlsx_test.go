package source

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newWorkbook(t *testing.T, sheet string) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}

	rows := [][]interface{}{
		{"YEAR", "MONTH", "SUPPLIER", "ITEM CODE", "ITEM DESCRIPTION", "ITEM TYPE", "RETAIL SALES", "RETAIL TRANSFERS", "WAREHOUSE SALES"},
		{2017, 6, "JIM BEAM BRANDS CO", "10103", "KNOB CREEK BOURBON 9YR - 100P - 375ML", "LIQUOR", 6.56, 7, 0},
		{2017, 6, "HEAVEN HILL DISTILLERIES INC", "10117", "J W DANT BOURBON 100P - 1.75L", "LIQUOR", 28.19, nil, 0},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	return f
}

func TestXLSXSource_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.xlsx")
	f := newWorkbook(t, "Sheet1")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	src, err := XLSXFactory(context.Background(), domain.SourceProfile{
		Name:    "workbook",
		Type:    domain.SourceTypeXLSX,
		Options: map[string]string{"path": path},
	})
	require.NoError(t, err)

	records, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, 2017, records[0].Year)
	assert.Equal(t, 6, records[0].Month)
	assert.Equal(t, "JIM BEAM BRANDS CO", records[0].Supplier)
	assert.Equal(t, "6.56", records[0].RetailSales.Decimal.String())
	assert.Equal(t, "7", records[0].RetailTransfers.Decimal.String())
	assert.False(t, records[1].RetailTransfers.Valid)
}

func TestXLSXSource_NamedSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.xlsx")
	f := newWorkbook(t, "June")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	records, err := NewXLSXSource(path, "June").Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 2)

	_, err = NewXLSXSource(path, "July").Load(context.Background())
	assert.Error(t, err)
}
