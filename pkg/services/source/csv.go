package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

type csvSource struct {
	path string
}

func NewCSVSource(path string) Source {
	return &csvSource{path: path}
}

// CSVFactory reads the "path" option.
func CSVFactory(_ context.Context, profile domain.SourceProfile) (Source, error) {
	path, err := profile.RequireOption("path")
	if err != nil {
		return nil, err
	}
	return NewCSVSource(path), nil
}

func (s *csvSource) Name() string {
	return s.path
}

func (s *csvSource) Load(ctx context.Context) ([]domain.TransactionRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("path", s.path).Msg("failed to close csv file")
		}
	}()

	return readCSV(ctx, s.path, f)
}

func readCSV(ctx context.Context, name string, r io.Reader) ([]domain.TransactionRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	return parseTable(ctx, name, reader.Read)
}
