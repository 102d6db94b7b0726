package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxLabelParts is the number of categorical parts a key can carry.
const MaxLabelParts = 4

// GroupKey is the grouping key produced by a dimension. Temporal dimensions
// fill Period, categorical ones fill Label; composite keys may fill both and
// keep every categorical part separately, so labels containing the display
// separator never merge. Keys compare by value and order by period first,
// then part by part.
type GroupKey struct {
	Period PeriodKey
	Label  string
	// More holds the categorical parts after Label, in dimension order.
	More [MaxLabelParts - 1]string
}

func LabelKey(label string) GroupKey {
	return GroupKey{Label: label}
}

func PeriodGroupKey(p PeriodKey) GroupKey {
	return GroupKey{Period: p}
}

// CompositeKey builds a key from a period and ordered label parts.
// It panics when given more than MaxLabelParts labels.
func CompositeKey(period PeriodKey, labels ...string) GroupKey {
	if len(labels) > MaxLabelParts {
		panic(fmt.Sprintf("domain: composite key has %d label parts, at most %d supported", len(labels), MaxLabelParts))
	}
	key := GroupKey{Period: period}
	for i, label := range labels {
		if i == 0 {
			key.Label = label
			continue
		}
		key.More[i-1] = label
	}
	return key
}

// Labels returns the categorical parts in order, trailing empty parts dropped.
func (k GroupKey) Labels() []string {
	all := make([]string, 0, MaxLabelParts)
	all = append(all, k.Label)
	all = append(all, k.More[:]...)
	n := len(all)
	for n > 0 && all[n-1] == "" {
		n--
	}
	return all[:n]
}

func (k GroupKey) Less(other GroupKey) bool {
	if k.Period != other.Period {
		return k.Period.Less(other.Period)
	}
	if k.Label != other.Label {
		return k.Label < other.Label
	}
	for i := range k.More {
		if k.More[i] != other.More[i] {
			return k.More[i] < other.More[i]
		}
	}
	return false
}

// IsTemporal reports whether the key is a pure time bucket.
func (k GroupKey) IsTemporal() bool {
	return !k.Period.IsZero() && len(k.Labels()) == 0
}

func (k GroupKey) String() string {
	parts := make([]string, 0, MaxLabelParts+1)
	if !k.Period.IsZero() {
		parts = append(parts, k.Period.String())
	}
	parts = append(parts, k.Labels()...)
	return strings.Join(parts, " / ")
}

// RankedEntry is one position of a top-N ranking.
type RankedEntry struct {
	Rank           int
	Key            GroupKey
	Value          decimal.Decimal
	PercentOfTotal Percent
}

// GrowthPoint is one period of a growth series. PercentChange is undefined
// for the first period and after a zero-valued period.
type GrowthPoint struct {
	Period        PeriodKey
	Value         decimal.Decimal
	PercentChange Percent
}

type GrowthSeries []GrowthPoint

// PeriodGap marks two consecutive series entries that are not adjacent periods.
type PeriodGap struct {
	After  PeriodKey
	Before PeriodKey
}

// Gaps lists non-contiguous steps in the series.
func (s GrowthSeries) Gaps() []PeriodGap {
	var gaps []PeriodGap
	for i := 1; i < len(s); i++ {
		if s[i-1].Period.Next() != s[i].Period {
			gaps = append(gaps, PeriodGap{After: s[i-1].Period, Before: s[i].Period})
		}
	}
	return gaps
}

// Latest returns the last point of the series.
func (s GrowthSeries) Latest() (GrowthPoint, bool) {
	if len(s) == 0 {
		return GrowthPoint{}, false
	}
	return s[len(s)-1], true
}

type MonthlyEntry struct {
	Month          int
	Value          decimal.Decimal
	PercentOfTotal Percent
}

// Seasonality is the calendar-month profile of a measure across all years.
// Months without records are absent from Months.
type Seasonality struct {
	Measure string
	Months  []MonthlyEntry
	Peak    MonthlyEntry
	Trough  MonthlyEntry
	// HasExtrema is false when no month carries data.
	HasExtrema bool
}

// ConcentrationLevel classifies a top-K share against a threshold: HIGH when
// the share is strictly above it, MODERATE otherwise, and UNDETERMINED when
// the measure totals zero so no share can be computed.
type ConcentrationLevel string

const (
	ConcentrationHigh         ConcentrationLevel = "HIGH"
	ConcentrationModerate     ConcentrationLevel = "MODERATE"
	ConcentrationUndetermined ConcentrationLevel = "UNDETERMINED"
)

// Concentration is the share of a measure captured by the top-K contributors.
type Concentration struct {
	Dimension    string
	Measure      string
	TopK         int
	Threshold    float64
	Contributors []RankedEntry
	TopKValue    decimal.Decimal
	TopKShare    Percent
	OtherShare   Percent
	// HHI is the Herfindahl-Hirschman index over all contributors, on a 0..10000 scale.
	HHI   float64
	Level ConcentrationLevel
}
