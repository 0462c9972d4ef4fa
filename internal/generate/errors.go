package generate

import "errors"

var (
	// ErrPrecursorMissing is returned when a dependent generator runs before any customers exist.
	ErrPrecursorMissing = errors.New("no customers to reference")

	// ErrUniquenessViolation is returned when a unique phone number cannot be found within the retry budget.
	ErrUniquenessViolation = errors.New("phone number retry budget exhausted")

	// ErrNegativeCount is returned when a generator is asked for fewer than zero records.
	ErrNegativeCount = errors.New("record count must not be negative")
)
