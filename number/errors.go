package number

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when a precondition on the inputs of an
	// operation is violated.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrRingMismatch is returned when two operands belong to different rings or contexts.
	ErrRingMismatch = fmt.Errorf("ring mismatch: %w", ErrInvalidArgument)
	// ErrComputationInvalid is returned when a debug check finds an intermediate
	// value outside of its tolerance. The whole computation must be discarded.
	ErrComputationInvalid = errors.New("computation invalid")
	// ErrInvariantViolation signals an internal inconsistency, such as a stale cache entry.
	ErrInvariantViolation = errors.New("invariant violation")
	// ErrUnsupported is returned when a strategy or backend does not provide an operation.
	ErrUnsupported = errors.New("unsupported operation")
	// ErrDepthExhausted is returned when an operation would exceed the depth budget.
	ErrDepthExhausted = errors.New("depth budget exhausted")
)

// CheckRing returns an error wrapping [ErrRingMismatch] if a and b differ.
func CheckRing(a, b uint64) error {
	if a != b {
		return fmt.Errorf("%w: %d != %d", ErrRingMismatch, a, b)
	}
	return nil
}
