package compare

import (
	"fmt"
	"math"

	"github.com/tuneinsight/liphe/number"
	"github.com/tuneinsight/liphe/utils/factorization"
)

// Euler tests equality with Euler's criterion: for r coprime to the ring size p,
// r^phi(p) = 1, and 0^phi(p) = 0. The exponentiation costs ceil(log2(phi(p)))
// multiplicative depth.
//
// Residues that are non-zero but share a factor with p do not map to 1. Such
// inputs are rejected when the value is inspectable (see [number.Inspector]); for
// encrypted values the precondition cannot be checked and the indicator is
// undefined.
//
// Euler does not support ordering.
type Euler[T number.Number[T]] struct {
	ctx      number.Context[T]
	ringSize uint64
	phi      uint64
}

// NewEuler returns a new [Euler] comparator for the ring of ctx.
// It returns an error wrapping [number.ErrInvalidArgument] if the ring size is smaller than 2.
func NewEuler[T number.Number[T]](ctx number.Context[T]) (*Euler[T], error) {

	p := ctx.RingSize()
	if p < 2 {
		return nil, fmt.Errorf("cannot NewEuler: ring size %d < 2: %w", p, number.ErrInvalidArgument)
	}

	return &Euler[T]{ctx: ctx, ringSize: p, phi: factorization.Totient(p)}, nil
}

// Phi returns Euler's totient of the ring size.
func (cmp Euler[T]) Phi() uint64 {
	return cmp.phi
}

func (cmp Euler[T]) checkCoprime(op string, r T) (err error) {

	if !number.IsPlaintext(r) {
		return nil
	}

	var v float64
	if v, err = r.ToScalar(); err != nil {
		return fmt.Errorf("cannot %s: %w", op, err)
	}

	if v < 0 || v >= float64(cmp.ringSize) || v != math.Trunc(v) {
		return fmt.Errorf("cannot %s: %v is not a residue mod %d: %w", op, v, cmp.ringSize, number.ErrInvalidArgument)
	}

	if u := uint64(v); u != 0 && !factorization.Coprime(u, cmp.ringSize) {
		return fmt.Errorf("cannot %s: %d is not coprime to %d: %w", op, u, cmp.ringSize, number.ErrInvalidArgument)
	}

	return nil
}

// IsNonZero returns r^phi(p).
func (cmp Euler[T]) IsNonZero(r T) (y T, err error) {

	if err = number.CheckRing(r.RingSize(), cmp.ringSize); err != nil {
		return y, fmt.Errorf("cannot IsNonZero: %w", err)
	}

	if err = cmp.checkCoprime("IsNonZero", r); err != nil {
		return
	}

	if y, err = number.Power(r, cmp.phi); err != nil {
		return y, fmt.Errorf("cannot IsNonZero: %w", err)
	}

	return
}

// IsZero returns 1 - r^phi(p).
func (cmp Euler[T]) IsZero(r T) (y T, err error) {
	if y, err = cmp.IsNonZero(r); err != nil {
		return
	}
	return number.OneMinus(y)
}

func (cmp Euler[T]) Equal(x T, c int64) (y T, err error) {
	var d T
	if d, err = x.AddScalar(-c); err != nil {
		return y, fmt.Errorf("cannot Equal: %w", err)
	}
	return cmp.IsZero(d)
}

func (cmp Euler[T]) NotEqual(x T, c int64) (y T, err error) {
	var d T
	if d, err = x.AddScalar(-c); err != nil {
		return y, fmt.Errorf("cannot NotEqual: %w", err)
	}
	return cmp.IsNonZero(d)
}

func (cmp Euler[T]) EqualValues(a, b T) (y T, err error) {
	var d T
	if d, err = a.Sub(b); err != nil {
		return y, fmt.Errorf("cannot EqualValues: %w", err)
	}
	return cmp.IsZero(d)
}

func (cmp Euler[T]) LessThan(x T, c int64) (T, error) {
	return unsupported[T]("euler", "LessThan")
}

func (cmp Euler[T]) LessEqual(x T, c int64) (T, error) {
	return unsupported[T]("euler", "LessEqual")
}

func (cmp Euler[T]) GreaterThan(x T, c int64) (T, error) {
	return unsupported[T]("euler", "GreaterThan")
}

func (cmp Euler[T]) GreaterEqual(x T, c int64) (T, error) {
	return unsupported[T]("euler", "GreaterEqual")
}

func (cmp Euler[T]) LessValues(a, b T) (T, error) {
	return unsupported[T]("euler", "LessValues")
}
