// Package compare implements interchangeable strategies turning a value into 0/1
// indicators of its relation to an integer constant or to another value:
//
//   - [Native] decodes, compares on the host and re-encodes (plaintext values only);
//   - [Euler] tests equality with Euler's criterion x^phi(p);
//   - [Polynomial] evaluates cached indicator polynomials over Z_p (ordering and equality);
//   - [Sign] approximates the step function on real-valued backends.
//
// Whatever the strategy, x == threshold is false for the strict relations.
package compare

import (
	"fmt"

	"github.com/tuneinsight/liphe/number"
)

// Comparator returns encrypted (or plaintext) indicators, 1 if the relation holds and 0 otherwise.
type Comparator[T number.Number[T]] interface {
	// Equal returns x == c.
	Equal(x T, c int64) (T, error)
	// NotEqual returns x != c.
	NotEqual(x T, c int64) (T, error)
	// LessThan returns x < c.
	LessThan(x T, c int64) (T, error)
	// LessEqual returns x <= c.
	LessEqual(x T, c int64) (T, error)
	// GreaterThan returns x > c.
	GreaterThan(x T, c int64) (T, error)
	// GreaterEqual returns x >= c.
	GreaterEqual(x T, c int64) (T, error)
	// IsNonZero returns x != 0.
	IsNonZero(x T) (T, error)
	// IsZero returns x == 0.
	IsZero(x T) (T, error)
	// EqualValues returns a == b.
	EqualValues(a, b T) (T, error)
	// LessValues returns a < b.
	LessValues(a, b T) (T, error)
}

// GreaterValues returns a > b.
func GreaterValues[T number.Number[T]](cmp Comparator[T], a, b T) (T, error) {
	return cmp.LessValues(b, a)
}

// LessEqualValues returns a <= b.
func LessEqualValues[T number.Number[T]](cmp Comparator[T], a, b T) (y T, err error) {
	if y, err = cmp.LessValues(b, a); err != nil {
		return
	}
	return number.OneMinus(y)
}

// GreaterEqualValues returns a >= b.
func GreaterEqualValues[T number.Number[T]](cmp Comparator[T], a, b T) (y T, err error) {
	if y, err = cmp.LessValues(a, b); err != nil {
		return
	}
	return number.OneMinus(y)
}

// NotEqualValues returns a != b.
func NotEqualValues[T number.Number[T]](cmp Comparator[T], a, b T) (y T, err error) {
	if y, err = cmp.EqualValues(a, b); err != nil {
		return
	}
	return number.OneMinus(y)
}

func indicator[T any](ctx number.Context[T], b bool) (T, error) {
	if b {
		return ctx.FromScalar(1)
	}
	return ctx.FromScalar(0)
}

func unsupported[T any](strategy, op string) (y T, err error) {
	return y, fmt.Errorf("cannot %s: %s strategy: %w", op, strategy, number.ErrUnsupported)
}
