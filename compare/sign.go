package compare

import (
	"fmt"
	"math"

	"github.com/tuneinsight/liphe/number"
)

// Sign compares integer-valued inputs of a real-valued backend by approximating
// the step function: y is scaled by 1/Bound and the map t -> (3t - t^3)/2 is
// iterated, which drives t towards sign(y), before mapping s to (s+1)/2.
// Inputs are offset by 0.5 so that, for an integer-valued x, x < c is evaluated
// as step(c - 0.5 - x).
//
// Each iteration costs two multiplicative levels.
type Sign[T number.Real[T]] struct {
	ctx        number.Context[T]
	Bound      float64
	Iterations int
}

// SignIterations returns the number of iterations needed for the sign
// approximation of any y with 0.5 <= |y| <= bound to be within 2^{-logPrec} of ±1.
func SignIterations(bound float64, logPrec int) (n int) {
	t := 0.5 / bound
	target := 1 - math.Exp2(-float64(logPrec))
	for ; t < target && n < 1024; n++ {
		t = t * (3 - t*t) / 2
	}
	return
}

// NewSign returns a new [Sign] comparator for differences up to bound in absolute
// value (bound >= 0.5 + max |x - c|). If iterations is 0, it is set to
// SignIterations(bound, 20).
func NewSign[T number.Real[T]](ctx number.Context[T], bound float64, iterations int) (*Sign[T], error) {

	if bound < 1 || math.IsInf(bound, 0) || math.IsNaN(bound) {
		return nil, fmt.Errorf("cannot NewSign: invalid bound %v: %w", bound, number.ErrInvalidArgument)
	}

	if iterations < 0 {
		return nil, fmt.Errorf("cannot NewSign: negative iterations: %w", number.ErrInvalidArgument)
	}

	if iterations == 0 {
		iterations = SignIterations(bound, 20)
	}

	return &Sign[T]{ctx: ctx, Bound: bound, Iterations: iterations}, nil
}

// Step returns an approximation of 1 if y > 0 and 0 if y < 0.
func (cmp Sign[T]) Step(y T) (s T, err error) {

	if s, err = y.MulFloat(1 / cmp.Bound); err != nil {
		return s, fmt.Errorf("cannot Step: %w", err)
	}

	for i := 0; i < cmp.Iterations; i++ {

		var s2, h, cube, lin T

		if s2, err = s.Mul(s); err != nil {
			return s, fmt.Errorf("cannot Step: iteration %d: %w", i, err)
		}

		if h, err = s.MulFloat(-0.5); err != nil {
			return s, fmt.Errorf("cannot Step: iteration %d: %w", i, err)
		}

		// -s^3/2
		if cube, err = s2.Mul(h); err != nil {
			return s, fmt.Errorf("cannot Step: iteration %d: %w", i, err)
		}

		if lin, err = s.MulFloat(1.5); err != nil {
			return s, fmt.Errorf("cannot Step: iteration %d: %w", i, err)
		}

		if s, err = lin.Add(cube); err != nil {
			return s, fmt.Errorf("cannot Step: iteration %d: %w", i, err)
		}
	}

	if s, err = s.MulFloat(0.5); err != nil {
		return s, fmt.Errorf("cannot Step: %w", err)
	}

	if s, err = s.AddFloat(0.5); err != nil {
		return s, fmt.Errorf("cannot Step: %w", err)
	}

	return
}

// stepAt returns step(sign*x + offset).
func (cmp Sign[T]) stepAt(op string, x T, sign int64, offset float64) (y T, err error) {

	if sign < 0 {
		if x, err = x.Neg(); err != nil {
			return y, fmt.Errorf("cannot %s: %w", op, err)
		}
	}

	if x, err = x.AddFloat(offset); err != nil {
		return y, fmt.Errorf("cannot %s: %w", op, err)
	}

	if y, err = cmp.Step(x); err != nil {
		return y, fmt.Errorf("cannot %s: %w", op, err)
	}

	return
}

// LessThan returns step(c - 0.5 - x).
func (cmp Sign[T]) LessThan(x T, c int64) (T, error) {
	return cmp.stepAt("LessThan", x, -1, float64(c)-0.5)
}

// LessEqual returns step(c + 0.5 - x).
func (cmp Sign[T]) LessEqual(x T, c int64) (T, error) {
	return cmp.stepAt("LessEqual", x, -1, float64(c)+0.5)
}

// GreaterThan returns step(x - c - 0.5).
func (cmp Sign[T]) GreaterThan(x T, c int64) (T, error) {
	return cmp.stepAt("GreaterThan", x, 1, -float64(c)-0.5)
}

// GreaterEqual returns step(x - c + 0.5).
func (cmp Sign[T]) GreaterEqual(x T, c int64) (T, error) {
	return cmp.stepAt("GreaterEqual", x, 1, -float64(c)+0.5)
}

// Equal returns GreaterEqual(x, c) * LessEqual(x, c).
func (cmp Sign[T]) Equal(x T, c int64) (y T, err error) {

	var ge, le T
	if ge, err = cmp.GreaterEqual(x, c); err != nil {
		return
	}

	if le, err = cmp.LessEqual(x, c); err != nil {
		return
	}

	if y, err = ge.Mul(le); err != nil {
		return y, fmt.Errorf("cannot Equal: %w", err)
	}

	return
}

func (cmp Sign[T]) NotEqual(x T, c int64) (y T, err error) {
	if y, err = cmp.Equal(x, c); err != nil {
		return
	}
	return number.OneMinus(y)
}

func (cmp Sign[T]) IsZero(x T) (T, error) {
	return cmp.Equal(x, 0)
}

func (cmp Sign[T]) IsNonZero(x T) (T, error) {
	return cmp.NotEqual(x, 0)
}

func (cmp Sign[T]) EqualValues(a, b T) (y T, err error) {
	var d T
	if d, err = a.Sub(b); err != nil {
		return y, fmt.Errorf("cannot EqualValues: %w", err)
	}
	return cmp.Equal(d, 0)
}

func (cmp Sign[T]) LessValues(a, b T) (y T, err error) {
	var d T
	if d, err = a.Sub(b); err != nil {
		return y, fmt.Errorf("cannot LessValues: %w", err)
	}
	return cmp.LessThan(d, 0)
}
