package greenops

import (
	"fmt"
	"math"
)

// TreesToOffset returns how many trees are needed to absorb carbonKg, where
// carbonKg covers the given period.
//
// The figure is annualized (day x365, month x12, year x1) and divided by the
// yearly absorption of one tree, rounding up. Zero or net-negative input needs
// no trees and returns 0.
//
// Returns ErrInvalidPeriod for an unknown period and ErrCalculationOverflow for
// NaN or infinite input.
func TreesToOffset(carbonKg float64, period Period) (int, error) {
	multiplier, ok := period.annualMultiplier()
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPeriod, period)
	}
	if math.IsNaN(carbonKg) || math.IsInf(carbonKg, 0) {
		return 0, ErrCalculationOverflow
	}
	if carbonKg <= 0 {
		return 0, nil
	}

	trees := math.Ceil(carbonKg * multiplier / TreeAbsorptionKgPerYear)
	if trees > math.MaxInt32 {
		return 0, ErrCalculationOverflow
	}
	return int(trees), nil
}

// ToCarKmEquivalent returns the km an average car drives to emit carbonKg,
// rounded to the nearest km with halves away from zero. Offsetting (negative)
// input yields negative km.
// Non-finite input yields 0.
func ToCarKmEquivalent(carbonKg float64) int64 {
	if math.IsNaN(carbonKg) || math.IsInf(carbonKg, 0) {
		return 0
	}
	return int64(math.Round(carbonKg / CarEmissionKgPerKm))
}

// CompareToRegion compares a daily average against the regional reference.
//
// Percentage is (user - regional) / regional * 100. Status brackets use strict
// less-than, so exactly -10% is "good" and exactly 0% is "average".
// A non-positive or non-finite regional figure, or a non-finite user figure,
// returns StatusNoData instead of dividing.
func CompareToRegion(userDailyAvg, regionalAvg float64) RegionComparison {
	out := RegionComparison{
		UserDailyKg: userDailyAvg,
		RegionalKg:  regionalAvg,
		Status:      StatusNoData,
	}
	if regionalAvg <= 0 || math.IsNaN(regionalAvg) || math.IsInf(regionalAvg, 0) ||
		math.IsNaN(userDailyAvg) || math.IsInf(userDailyAvg, 0) {
		return out
	}

	out.Difference = userDailyAvg - regionalAvg
	out.Percentage = out.Difference / regionalAvg * percentMultiplier
	out.Status = classifyPercentage(out.Percentage)
	return out
}

func classifyPercentage(pct float64) RegionStatus {
	switch {
	case pct < ExcellentBelowPercent:
		return StatusExcellent
	case pct < GoodBelowPercent:
		return StatusGood
	case pct < AverageBelowPercent:
		return StatusAverage
	default:
		return StatusHigh
	}
}

// Calculate normalizes input to kilograms and computes the car-km and
// tree-year equivalencies for it.
//
// If normalization fails, Calculate returns an empty output and the error.
// Negative amounts return ErrNegativeValue since an offset has no driving
// equivalent. Amounts below MinEquivalencyThresholdKg return an empty output
// with InputKg set and no error.
//
// Example:
//
//	out, err := Calculate(CarbonInput{Value: 10, Unit: "kg"})
//	// out.DisplayText == "Equivalent to driving ~48 km, or what 1 tree absorbs in a year"
func Calculate(input CarbonInput) (EquivalencyOutput, error) {
	kg, err := NormalizeToKg(input.Value, input.Unit)
	if err != nil {
		return EquivalencyOutput{IsEmpty: true}, err
	}
	if kg < 0 {
		return EquivalencyOutput{IsEmpty: true}, ErrNegativeValue
	}
	if kg < MinEquivalencyThresholdKg {
		return EquivalencyOutput{InputKg: kg, IsEmpty: true}, nil
	}

	km := ToCarKmEquivalent(kg)
	trees, err := TreesToOffset(kg, PeriodYear)
	if err != nil {
		return EquivalencyOutput{IsEmpty: true}, err
	}

	kmFormatted := formatEquivalencyValue(float64(km))
	treesFormatted := formatEquivalencyValue(float64(trees))
	treeWord := "trees absorb"
	if trees == 1 {
		treeWord = "tree absorbs"
	}

	results := []EquivalencyResult{
		{
			Type:           EquivalencyCarKm,
			Value:          float64(km),
			FormattedValue: kmFormatted,
			Label:          "km driven",
		},
		{
			Type:           EquivalencyTreeYears,
			Value:          float64(trees),
			FormattedValue: treesFormatted,
			Label:          "trees for a year",
		},
	}

	return EquivalencyOutput{
		InputKg: kg,
		Results: results,
		DisplayText: fmt.Sprintf("Equivalent to driving ~%s km, or what %s %s in a year",
			kmFormatted, treesFormatted, treeWord),
		CompactText: fmt.Sprintf("(≈ %s km, %s %s)", kmFormatted, treesFormatted, pluralize(trees, "tree")),
		IsEmpty:     false,
	}, nil
}

func pluralize(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// formatEquivalencyValue uses large number scaling for million/billion values,
// otherwise a rounded comma-separated integer.
func formatEquivalencyValue(v float64) string {
	if v >= LargeNumberThreshold {
		return FormatLarge(v)
	}
	return FormatNumber(int64(math.Round(v)))
}
