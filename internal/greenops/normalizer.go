package greenops

import (
	"math"
	"strings"
)

// unitFactor returns the conversion factor to kilograms for unit, matched
// case-insensitively, and whether the unit is recognized.
func unitFactor(unit string) (float64, bool) {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "g", "gco2", "gco2e":
		return GramsToKg, true
	case "", "kg", "kgco2", "kgco2e":
		return KgToKg, true
	case "t", "tco2", "tco2e":
		return TonsToKg, true
	case "lb", "lbco2", "lbco2e":
		return PoundsToKg, true
	default:
		return 0, false
	}
}

// NormalizeToKg converts a carbon value in any recognized unit to kilograms.
//
// Recognized units are g, kg, t and lb, alone or suffixed with CO2 or CO2e.
// An empty unit means kg. The sign is preserved so offsets stay negative.
//
// Returns ErrInvalidUnit for an unrecognized unit and ErrCalculationOverflow for
// NaN or infinite input, or if the conversion overflows.
func NormalizeToKg(value float64, unit string) (float64, error) {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, ErrCalculationOverflow
	}

	factor, ok := unitFactor(unit)
	if !ok {
		return 0, ErrInvalidUnit
	}

	result := value * factor
	if math.IsInf(result, 0) {
		return 0, ErrCalculationOverflow
	}
	return result, nil
}

// IsRecognizedUnit reports whether unit is a supported carbon unit.
func IsRecognizedUnit(unit string) bool {
	_, ok := unitFactor(unit)
	return ok
}
