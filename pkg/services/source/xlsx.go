package source

import (
	"context"
	"fmt"
	"io"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

type xlsxSource struct {
	path  string
	sheet string
}

// NewXLSXSource reads sheet from the workbook at path; an empty sheet means the first one.
func NewXLSXSource(path, sheet string) Source {
	return &xlsxSource{path: path, sheet: sheet}
}

// XLSXFactory reads the "path" and optional "sheet" options.
func XLSXFactory(_ context.Context, profile domain.SourceProfile) (Source, error) {
	path, err := profile.RequireOption("path")
	if err != nil {
		return nil, err
	}
	return NewXLSXSource(path, profile.Option("sheet")), nil
}

func (s *xlsxSource) Name() string {
	if s.sheet != "" {
		return fmt.Sprintf("%s[%s]", s.path, s.sheet)
	}
	return s.path
}

func (s *xlsxSource) Load(ctx context.Context) ([]domain.TransactionRecord, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer closeWorkbook(ctx, f)

	return readWorkbook(ctx, s.Name(), f, s.sheet)
}

func readWorkbook(ctx context.Context, name string, f *excelize.File, sheet string) ([]domain.TransactionRecord, error) {
	logger := zerolog.Ctx(ctx)

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%s: workbook has no sheets", name)
		}
		sheet = sheets[0]
	}

	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%s: open sheet %q: %w", name, sheet, err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Warn().Err(err).Str("sheet", sheet).Msg("failed to close sheet rows")
		}
	}()

	next := func() ([]string, error) {
		if !rows.Next() {
			if err := rows.Error(); err != nil {
				return nil, err
			}
			return nil, io.EOF
		}
		return rows.Columns()
	}
	return parseTable(ctx, name, next)
}

func closeWorkbook(ctx context.Context, f *excelize.File) {
	if err := f.Close(); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to close workbook")
	}
}
