package footprint

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// categoryError wraps ErrInvalidActivity so callers can match either sentinel.
type categoryError struct{ constError }

func (categoryError) Unwrap() error { return ErrInvalidActivity }

var (
	// ErrInvalidActivity indicates a record request with missing or non-finite fields.
	ErrInvalidActivity = constError("invalid activity")

	// ErrInvalidCategory indicates a category outside transport, food and energy.
	// It also matches ErrInvalidActivity with errors.Is.
	ErrInvalidCategory error = categoryError{constError("invalid category")}
)
