package greenops

// Impact reference constants. These are fixed configuration values, not
// figures derived from user data.
const (
	// TreeAbsorptionKgPerYear is the kg CO2 a mature tree absorbs in one year.
	TreeAbsorptionKgPerYear = 21.0

	// CarEmissionKgPerKm is the kg CO2 emitted per km by an average passenger car.
	CarEmissionKgPerKm = 0.21

	// RegionalDailyAverageKg is the reference per-person daily footprint used for comparison.
	RegionalDailyAverageKg = 14.2
)

// Annualization multipliers for TreesToOffset.
const (
	daysPerYear   = 365
	monthsPerYear = 12
)

// Region comparison brackets, in percent relative to the regional average.
// A value equal to a bracket boundary falls into the next bracket up.
const (
	ExcellentBelowPercent = -10.0
	GoodBelowPercent      = 0.0
	AverageBelowPercent   = 10.0

	percentMultiplier = 100.0
)

// Unit conversion constants for normalizing carbon values to kilograms.
const (
	// GramsToKg converts grams to kilograms.
	GramsToKg = 0.001

	// KgToKg is the identity conversion for kilograms.
	KgToKg = 1.0

	// TonsToKg converts metric tons to kilograms.
	TonsToKg = 1000.0

	// PoundsToKg converts pounds to kilograms.
	PoundsToKg = 0.453592
)

// Display threshold constants.
const (
	// MinEquivalencyThresholdKg is the smallest amount for which equivalencies are shown.
	// Below it a single km or tree is already an overstatement.
	MinEquivalencyThresholdKg = 0.1

	// LargeNumberThreshold is the threshold for using abbreviated display.
	// Values at or above this threshold use "~X.X million" format.
	LargeNumberThreshold = 1_000_000

	// BillionThreshold is the threshold for billion-scale display.
	BillionThreshold = 1_000_000_000
)
