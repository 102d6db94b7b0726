package report

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/analytics"
	"github.com/de-tools/sales-atlas/pkg/services/source"
	"github.com/rs/zerolog"
)

var ErrUnknownGranularity = errors.New("unknown granularity")

const (
	GranularityYear  = "year"
	GranularityMonth = "month"
)

// Service answers report queries over a record set loaded once.
type Service interface {
	Report(ctx context.Context, settings analytics.Settings) (*domain.Report, error)
	Ranking(ctx context.Context, dimension string, n int) (domain.Ranking, error)
	Growth(ctx context.Context, granularity string) (domain.GrowthSeries, error)
	Seasonality(ctx context.Context) (domain.Seasonality, error)
	Concentration(ctx context.Context, dimension string, settings analytics.ConcentrationSettings) (domain.Concentration, error)
	Settings() analytics.Settings
}

type service struct {
	set      *domain.RecordSet
	settings analytics.Settings
}

// NewService loads and validates every record of src.
func NewService(ctx context.Context, src source.Source, settings analytics.Settings) (Service, error) {
	logger := zerolog.Ctx(ctx)

	records, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", src.Name(), err)
	}

	set, err := domain.NewRecordSet(records)
	if err != nil {
		return nil, fmt.Errorf("invalid records in %s: %w", src.Name(), err)
	}

	logger.Info().
		Str("source", src.Name()).
		Int("records", set.Len()).
		Msg("loaded sales records")

	return NewServiceFromSet(set, settings), nil
}

func NewServiceFromSet(set *domain.RecordSet, settings analytics.Settings) Service {
	return &service{set: set, settings: settings}
}

func (s *service) Settings() analytics.Settings {
	return s.settings
}

func (s *service) Report(ctx context.Context, settings analytics.Settings) (*domain.Report, error) {
	logger := zerolog.Ctx(ctx)

	report, err := analytics.Assemble(s.set, settings)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Int("records", report.RecordCount).
		Int("periods", report.Period.Periods).
		Str("total_sales", report.Totals.TotalSales.String()).
		Msg("assembled report")
	return report, nil
}

// Ranking ranks dimension by total sales; n <= 0 uses the configured top_n.
func (s *service) Ranking(_ context.Context, dimension string, n int) (domain.Ranking, error) {
	dim, err := analytics.LookupDimension(dimension)
	if err != nil {
		return domain.Ranking{}, err
	}
	if n <= 0 {
		n = s.settings.TopN
	}

	records := s.set.Records()
	total, err := analytics.TotalSales(records)
	if err != nil {
		return domain.Ranking{}, err
	}
	return analytics.RankBy(records, dim, n, total)
}

func (s *service) Growth(_ context.Context, granularity string) (domain.GrowthSeries, error) {
	var dim analytics.Dimension
	switch strings.ToLower(strings.TrimSpace(granularity)) {
	case GranularityYear, "":
		dim = analytics.DimYear
	case GranularityMonth:
		dim = analytics.DimPeriod
	default:
		return nil, fmt.Errorf("%w %q (supported: %s, %s)", ErrUnknownGranularity, granularity, GranularityYear, GranularityMonth)
	}

	result, err := analytics.Aggregate(s.set.Records(), dim, analytics.MeasureTotalSales)
	if err != nil {
		return nil, err
	}
	series, err := analytics.SeriesFromResult(result, analytics.MeasureTotalSales.Name)
	if err != nil {
		return nil, err
	}
	return analytics.PeriodOverPeriod(series)
}

func (s *service) Seasonality(_ context.Context) (domain.Seasonality, error) {
	return analytics.MonthlyPattern(s.set.Records(), analytics.MeasureTotalSales)
}

func (s *service) Concentration(
	_ context.Context,
	dimension string,
	settings analytics.ConcentrationSettings,
) (domain.Concentration, error) {
	if dimension == "" {
		dimension = s.settings.ConcentrationDimension
	}
	dim, err := analytics.LookupDimension(dimension)
	if err != nil {
		return domain.Concentration{}, err
	}

	records := s.set.Records()
	total, err := analytics.TotalSales(records)
	if err != nil {
		return domain.Concentration{}, err
	}
	return analytics.ConcentrationBy(records, dim, settings, total)
}
