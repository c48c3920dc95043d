package greenops

// constError is an immutable error type for sentinel errors.
// It implements the error interface and provides compile-time safety.
type constError string

func (e constError) Error() string { return string(e) }

// Error types for impact calculations.
// These are sentinel errors that can be compared with errors.Is().
var (
	// ErrInvalidUnit indicates an unrecognized carbon unit.
	ErrInvalidUnit = constError("invalid carbon unit")

	// ErrNegativeValue indicates a negative carbon value where only emissions make sense.
	ErrNegativeValue = constError("negative carbon value")

	// ErrInvalidPeriod indicates a period other than day, month or year.
	ErrInvalidPeriod = constError("invalid period")

	// ErrCalculationOverflow indicates a NaN, infinite, or overflowing value.
	ErrCalculationOverflow = constError("calculation overflow")
)
