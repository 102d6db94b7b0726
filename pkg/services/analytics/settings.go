package analytics

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

var ErrInvalidSettings = errors.New("invalid settings")

// Settings configures which rollups a report contains
type Settings struct {
	Title string `mapstructure:"title"`
	// TopN is the default ranking length (default: 15)
	TopN int `mapstructure:"top_n"`
	// ConcentrationTopK is the number of leading contributors in the concentration share (default: 5)
	ConcentrationTopK int `mapstructure:"concentration_top_k"`
	// ConcentrationThreshold is the share percentage classified as HIGH concentration (default: 50)
	ConcentrationThreshold float64 `mapstructure:"concentration_threshold"`
	// ConcentrationDimension is the dimension whose contributors are measured (default: supplier)
	ConcentrationDimension string `mapstructure:"concentration_dimension"`
	// RankingDimensions lists "dimension" or "dimension:n" entries (default: item, supplier:10)
	RankingDimensions []string `mapstructure:"ranking_dimensions"`
}

// RankingSpec is a parsed RankingDimensions entry
type RankingSpec struct {
	Dimension Dimension
	N         int
}

func DefaultSettings() Settings {
	return Settings{
		Title:                  "Liquor Sales Analysis",
		TopN:                   15,
		ConcentrationTopK:      5,
		ConcentrationThreshold: 50,
		ConcentrationDimension: DimSupplier.Name,
		RankingDimensions:      []string{DimItem.Name, DimSupplier.Name + ":10"},
	}
}

func (s Settings) Concentration() ConcentrationSettings {
	return ConcentrationSettings{TopK: s.ConcentrationTopK, Threshold: s.ConcentrationThreshold}
}

func (s Settings) Validate() error {
	if s.TopN < 1 {
		return fmt.Errorf("%w: top_n must be at least 1, got %d", ErrInvalidSettings, s.TopN)
	}
	if err := s.Concentration().Validate(); err != nil {
		return err
	}
	if _, err := LookupDimension(s.ConcentrationDimension); err != nil {
		return fmt.Errorf("concentration_dimension: %w", err)
	}
	_, err := s.Rankings()
	return err
}

// Rankings parses RankingDimensions, applying TopN where no length is given.
func (s Settings) Rankings() ([]RankingSpec, error) {
	specs := make([]RankingSpec, 0, len(s.RankingDimensions))
	seen := make(map[string]bool)
	for _, raw := range s.RankingDimensions {
		name, nStr, hasN := strings.Cut(raw, ":")
		dim, err := LookupDimension(name)
		if err != nil {
			return nil, fmt.Errorf("ranking_dimensions: %w", err)
		}
		if seen[dim.Name] {
			return nil, fmt.Errorf("%w: ranking_dimensions: %q listed twice", ErrInvalidSettings, dim.Name)
		}
		seen[dim.Name] = true

		n := s.TopN
		if hasN {
			n, err = strconv.Atoi(strings.TrimSpace(nStr))
			if err != nil || n < 1 {
				return nil, fmt.Errorf("%w: ranking_dimensions: invalid length in %q", ErrInvalidSettings, raw)
			}
		}
		specs = append(specs, RankingSpec{Dimension: dim, N: n})
	}
	return specs, nil
}

// LoadSettings reads report settings from a YAML, JSON or TOML file.
// Keys absent from the file keep their default values.
func LoadSettings(path string) (*Settings, error) {
	defaults := DefaultSettings()

	v := viper.New()
	v.SetDefault("title", defaults.Title)
	v.SetDefault("top_n", defaults.TopN)
	v.SetDefault("concentration_top_k", defaults.ConcentrationTopK)
	v.SetDefault("concentration_threshold", defaults.ConcentrationThreshold)
	v.SetDefault("concentration_dimension", defaults.ConcentrationDimension)
	v.SetDefault("ranking_dimensions", defaults.RankingDimensions)
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &settings, nil
}
