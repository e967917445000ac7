package compare

import (
	"fmt"

	"github.com/tuneinsight/liphe/number"
)

// Native compares values on the host: it decodes them with ToScalar, compares
// the scalars and encodes the result with the context. Residues are compared as
// integers in [0, p). It is meant for plaintext and debug values.
type Native[T number.Number[T]] struct {
	ctx number.Context[T]
}

// NewNative returns a new [Native] comparator.
func NewNative[T number.Number[T]](ctx number.Context[T]) *Native[T] {
	return &Native[T]{ctx: ctx}
}

func (cmp Native[T]) compare(op string, x T, c int64, f func(v, c float64) bool) (y T, err error) {
	var v float64
	if v, err = x.ToScalar(); err != nil {
		return y, fmt.Errorf("cannot %s: %w", op, err)
	}
	return indicator(cmp.ctx, f(v, float64(c)))
}

func (cmp Native[T]) Equal(x T, c int64) (T, error) {
	return cmp.compare("Equal", x, c, func(v, c float64) bool { return v == c })
}

func (cmp Native[T]) NotEqual(x T, c int64) (T, error) {
	return cmp.compare("NotEqual", x, c, func(v, c float64) bool { return v != c })
}

func (cmp Native[T]) LessThan(x T, c int64) (T, error) {
	return cmp.compare("LessThan", x, c, func(v, c float64) bool { return v < c })
}

func (cmp Native[T]) LessEqual(x T, c int64) (T, error) {
	return cmp.compare("LessEqual", x, c, func(v, c float64) bool { return v <= c })
}

func (cmp Native[T]) GreaterThan(x T, c int64) (T, error) {
	return cmp.compare("GreaterThan", x, c, func(v, c float64) bool { return v > c })
}

func (cmp Native[T]) GreaterEqual(x T, c int64) (T, error) {
	return cmp.compare("GreaterEqual", x, c, func(v, c float64) bool { return v >= c })
}

func (cmp Native[T]) IsNonZero(x T) (T, error) {
	return cmp.NotEqual(x, 0)
}

func (cmp Native[T]) IsZero(x T) (T, error) {
	return cmp.Equal(x, 0)
}

func (cmp Native[T]) EqualValues(a, b T) (y T, err error) {
	return cmp.compareValues("EqualValues", a, b, func(a, b float64) bool { return a == b })
}

func (cmp Native[T]) LessValues(a, b T) (y T, err error) {
	return cmp.compareValues("LessValues", a, b, func(a, b float64) bool { return a < b })
}

func (cmp Native[T]) compareValues(op string, a, b T, f func(a, b float64) bool) (y T, err error) {

	if err = number.CheckRing(a.RingSize(), b.RingSize()); err != nil {
		return y, fmt.Errorf("cannot %s: %w", op, err)
	}

	var va, vb float64
	if va, err = a.ToScalar(); err != nil {
		return y, fmt.Errorf("cannot %s: %w", op, err)
	}
	if vb, err = b.ToScalar(); err != nil {
		return y, fmt.Errorf("cannot %s: %w", op, err)
	}

	return indicator(cmp.ctx, f(va, vb))
}
