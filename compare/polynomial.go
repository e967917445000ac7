package compare

import (
	"fmt"

	"github.com/tuneinsight/liphe/number"
	"github.com/tuneinsight/liphe/polynomial"
	"github.com/tuneinsight/liphe/utils/factorization"
)

// Polynomial compares residues of Z_p, p prime, by evaluating indicator
// polynomials of degree at most p-1 fetched from a [polynomial.Cache].
//
// Thresholds for which the relation is constant on [0, p) never build a polynomial.
// Value/value ordering evaluates x > (p-1)/2 on a - b, which is exact as long as
// |a - b| <= (p-1)/2.
type Polynomial[T number.Number[T]] struct {
	ctx   number.Context[T]
	cache *polynomial.Cache
	p     uint64
}

// NewPolynomial returns a new [Polynomial] comparator drawing its polynomials from cache.
// It returns an error wrapping [number.ErrInvalidArgument] if the ring size of ctx is
// not a prime supported by [polynomial.Interpolate] or if cache is nil.
func NewPolynomial[T number.Number[T]](ctx number.Context[T], cache *polynomial.Cache) (*Polynomial[T], error) {

	if cache == nil {
		return nil, fmt.Errorf("cannot NewPolynomial: cache is nil: %w", number.ErrInvalidArgument)
	}

	p := ctx.RingSize()

	if !factorization.IsPrime(p) {
		return nil, fmt.Errorf("cannot NewPolynomial: ring size %d is not prime: %w", p, number.ErrInvalidArgument)
	}

	if p > polynomial.MaxModulus {
		return nil, fmt.Errorf("cannot NewPolynomial: ring size %d > %d: %w", p, uint64(polynomial.MaxModulus), number.ErrInvalidArgument)
	}

	return &Polynomial[T]{ctx: ctx, cache: cache, p: p}, nil
}

func (cmp Polynomial[T]) evaluate(op string, x T, rel polynomial.Relation, c int64) (y T, err error) {

	var poly *polynomial.Polynomial
	if poly, err = cmp.cache.Get(polynomial.Key{RingSize: cmp.p, Relation: rel, Threshold: c}); err != nil {
		return y, fmt.Errorf("cannot %s: %w", op, err)
	}

	if y, err = polynomial.Evaluate(cmp.ctx, poly, x); err != nil {
		return y, fmt.Errorf("cannot %s: %w", op, err)
	}

	return
}

func (cmp Polynomial[T]) LessThan(x T, c int64) (T, error) {
	switch {
	case c <= 0:
		return cmp.ctx.FromScalar(0)
	case c >= int64(cmp.p):
		return cmp.ctx.FromScalar(1)
	default:
		return cmp.evaluate("LessThan", x, polynomial.LessThan, c)
	}
}

func (cmp Polynomial[T]) GreaterThan(x T, c int64) (T, error) {
	switch {
	case c >= int64(cmp.p)-1:
		return cmp.ctx.FromScalar(0)
	case c < 0:
		return cmp.ctx.FromScalar(1)
	default:
		return cmp.evaluate("GreaterThan", x, polynomial.GreaterThan, c)
	}
}

// LessEqual returns LessThan(x, c+1).
func (cmp Polynomial[T]) LessEqual(x T, c int64) (T, error) {
	if c >= int64(cmp.p)-1 {
		return cmp.ctx.FromScalar(1)
	}
	return cmp.LessThan(x, c+1)
}

// GreaterEqual returns GreaterThan(x, c-1).
func (cmp Polynomial[T]) GreaterEqual(x T, c int64) (T, error) {
	if c <= 0 {
		return cmp.ctx.FromScalar(1)
	}
	return cmp.GreaterThan(x, c-1)
}

func (cmp Polynomial[T]) Equal(x T, c int64) (T, error) {
	if c < 0 || c >= int64(cmp.p) {
		return cmp.ctx.FromScalar(0)
	}
	return cmp.evaluate("Equal", x, polynomial.EqualTo, c)
}

func (cmp Polynomial[T]) NotEqual(x T, c int64) (y T, err error) {
	if y, err = cmp.Equal(x, c); err != nil {
		return
	}
	return number.OneMinus(y)
}

func (cmp Polynomial[T]) IsZero(x T) (T, error) {
	return cmp.Equal(x, 0)
}

func (cmp Polynomial[T]) IsNonZero(x T) (T, error) {
	return cmp.GreaterThan(x, 0)
}

func (cmp Polynomial[T]) EqualValues(a, b T) (y T, err error) {
	var d T
	if d, err = a.Sub(b); err != nil {
		return y, fmt.Errorf("cannot EqualValues: %w", err)
	}
	return cmp.Equal(d, 0)
}

// LessValues returns a < b, assuming |a - b| <= (p-1)/2.
func (cmp Polynomial[T]) LessValues(a, b T) (y T, err error) {
	var d T
	if d, err = a.Sub(b); err != nil {
		return y, fmt.Errorf("cannot LessValues: %w", err)
	}
	return cmp.GreaterThan(d, int64(cmp.p-1)/2)
}
