// Package greenops translates carbon figures into impact equivalents.
//
// It converts kg CO2 values into relatable comparisons such as the number of
// trees needed to absorb them or the distance an average car would drive, and
// compares a daily average against the regional reference figure.
package greenops

import (
	"fmt"
	"strings"
)

// Period is the time span a carbon figure covers.
type Period string

const (
	// PeriodDay marks a figure covering one day.
	PeriodDay Period = "day"
	// PeriodMonth marks a figure covering one month.
	PeriodMonth Period = "month"
	// PeriodYear marks a figure covering one year.
	PeriodYear Period = "year"
)

// ParsePeriod converts a case-insensitive period name into a Period.
func ParsePeriod(s string) (Period, error) {
	p := Period(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := p.annualMultiplier(); !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	return p, nil
}

// annualMultiplier returns how many of p fit into a year.
func (p Period) annualMultiplier() (float64, bool) {
	switch p {
	case PeriodDay:
		return daysPerYear, true
	case PeriodMonth:
		return monthsPerYear, true
	case PeriodYear:
		return 1, true
	default:
		return 0, false
	}
}

// RegionStatus classifies a footprint relative to the regional average.
type RegionStatus string

const (
	// StatusExcellent is more than 10% below the regional average.
	StatusExcellent RegionStatus = "excellent"
	// StatusGood is below the regional average.
	StatusGood RegionStatus = "good"
	// StatusAverage is less than 10% above the regional average.
	StatusAverage RegionStatus = "average"
	// StatusHigh is 10% or more above the regional average.
	StatusHigh RegionStatus = "high"
	// StatusNoData is returned when no meaningful comparison is possible.
	StatusNoData RegionStatus = "no_data"
)

// RegionComparison is the result of comparing a daily average to the regional figure.
type RegionComparison struct {
	UserDailyKg float64      `json:"user_daily_kg"`
	RegionalKg  float64      `json:"regional_kg"`
	Difference  float64      `json:"difference"`
	Percentage  float64      `json:"percentage"`
	Status      RegionStatus `json:"status"`
}

// EquivalencyType represents a category of carbon equivalency.
type EquivalencyType int

const (
	// EquivalencyCarKm converts CO2 to km driven in an average passenger car.
	EquivalencyCarKm EquivalencyType = iota

	// EquivalencyTreeYears converts CO2 to trees absorbing it over one year.
	EquivalencyTreeYears
)

// String returns a human-readable representation of the EquivalencyType.
func (e EquivalencyType) String() string {
	switch e {
	case EquivalencyCarKm:
		return "CarKm"
	case EquivalencyTreeYears:
		return "TreeYears"
	default:
		return fmt.Sprintf("EquivalencyType(%d)", e)
	}
}

// CarbonInput represents carbon emission data for equivalency calculation.
type CarbonInput struct {
	// Value is the numeric carbon amount.
	Value float64 `json:"value"`

	// Unit is the measurement unit (g, kg, t, lb and their CO2e variants).
	Unit string `json:"unit"`
}

// EquivalencyResult represents a single calculated equivalency.
type EquivalencyResult struct {
	Type           EquivalencyType `json:"type"`
	Value          float64         `json:"value"`
	FormattedValue string          `json:"formatted_value"`
	Label          string          `json:"label"`
}

// EquivalencyOutput contains all equivalency results for display.
type EquivalencyOutput struct {
	// InputKg is the normalized input value in kilograms CO2.
	InputKg float64 `json:"input_kg"`

	// Results contains calculated equivalencies in priority order.
	Results []EquivalencyResult `json:"results"`

	// DisplayText is the full prose format for CLI/TUI output.
	// Example: "Equivalent to driving ~48 km, or what 1 tree absorbs in a year"
	DisplayText string `json:"display_text"`

	// CompactText is the abbreviated format for constrained outputs.
	// Example: "(≈ 48 km, 1 tree)"
	CompactText string `json:"compact_text"`

	// IsEmpty is true if no equivalencies were calculated.
	IsEmpty bool `json:"is_empty"`
}
