package analytics

import (
	"fmt"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
)

// ConcentrationSettings drive the concentration classification
type ConcentrationSettings struct {
	// TopK is the number of leading contributors summed into the share (default: 5)
	TopK int `mapstructure:"top_k"`
	// Threshold is the share percentage above which concentration is HIGH (default: 50)
	Threshold float64 `mapstructure:"threshold"`
}

func DefaultConcentrationSettings() ConcentrationSettings {
	return ConcentrationSettings{
		TopK:      5,
		Threshold: 50,
	}
}

func (s ConcentrationSettings) Validate() error {
	if s.TopK < 1 {
		return fmt.Errorf("%w: concentration top_k must be at least 1, got %d", ErrInvalidSettings, s.TopK)
	}
	if s.Threshold < 0 || s.Threshold > 100 {
		return fmt.Errorf("%w: concentration threshold must be within 0..100, got %v", ErrInvalidSettings, s.Threshold)
	}
	return nil
}

// Concentration computes the share of total held by the top-K groups of
// result and classifies it against the threshold.
func Concentration(
	result AggregationResult,
	measure string,
	settings ConcentrationSettings,
	total decimal.Decimal,
) (domain.Concentration, error) {
	if err := settings.Validate(); err != nil {
		return domain.Concentration{}, err
	}

	all, err := TopN(result, measure, 0, total)
	if err != nil {
		return domain.Concentration{}, fmt.Errorf("concentration of %s: %w", result.Dimension(), err)
	}

	top := all
	if len(top) > settings.TopK {
		top = top[:settings.TopK]
	}

	topValue := SumEntries(top)
	share := domain.PercentOf(topValue, total)

	level := domain.ConcentrationModerate
	if share.Value > settings.Threshold {
		level = domain.ConcentrationHigh
	}

	return domain.Concentration{
		Dimension:    result.Dimension(),
		Measure:      measure,
		TopK:         settings.TopK,
		Threshold:    settings.Threshold,
		Contributors: top,
		TopKValue:    topValue,
		TopKShare:    share,
		OtherShare:   domain.PercentOf(total.Sub(topValue), total),
		HHI:          herfindahl(all),
		Level:        level,
	}, nil
}

func herfindahl(entries []domain.RankedEntry) float64 {
	var hhi float64
	for _, e := range entries {
		if e.PercentOfTotal.Valid {
			hhi += e.PercentOfTotal.Value * e.PercentOfTotal.Value
		}
	}
	return hhi
}
