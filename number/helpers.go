package number

import (
	"fmt"
)

// Zero returns the encoding of 0 in ctx.
func Zero[T any](ctx Context[T]) (T, error) {
	return ctx.FromScalar(0)
}

// One returns the encoding of 1 in ctx.
func One[T any](ctx Context[T]) (T, error) {
	return ctx.FromScalar(1)
}

// OneMinus returns 1 - x, the complement of an indicator value.
func OneMinus[T Number[T]](x T) (y T, err error) {
	if y, err = x.Neg(); err != nil {
		return y, fmt.Errorf("cannot OneMinus: %w", err)
	}
	if y, err = y.AddScalar(1); err != nil {
		return y, fmt.Errorf("cannot OneMinus: %w", err)
	}
	return
}

// Sum returns the sum of xs.
// It returns an error wrapping [ErrInvalidArgument] if xs is empty.
func Sum[T Number[T]](xs []T) (acc T, err error) {
	return fold(xs, "Sum", func(a, b T) (T, error) { return a.Add(b) })
}

// Product returns the product of xs, computed as a balanced tree so that the
// multiplicative depth is ceil(log2(len(xs))).
// It returns an error wrapping [ErrInvalidArgument] if xs is empty.
func Product[T Number[T]](xs []T) (acc T, err error) {

	if len(xs) == 0 {
		return acc, fmt.Errorf("cannot Product: empty input: %w", ErrInvalidArgument)
	}

	level := make([]T, len(xs))
	copy(level, xs)

	for len(level) > 1 {
		next := level[:0:0]
		for i := 0; i+1 < len(level); i += 2 {
			var p T
			if p, err = level[i].Mul(level[i+1]); err != nil {
				return acc, fmt.Errorf("cannot Product: %w", err)
			}
			next = append(next, p)
		}
		if len(level)&1 == 1 {
			next = append(next, level[len(level)-1])
		}
		level = next
	}

	return level[0], nil
}

func fold[T any](xs []T, name string, op func(a, b T) (T, error)) (acc T, err error) {

	if len(xs) == 0 {
		return acc, fmt.Errorf("cannot %s: empty input: %w", name, ErrInvalidArgument)
	}

	acc = xs[0]
	for _, x := range xs[1:] {
		if acc, err = op(acc, x); err != nil {
			return acc, fmt.Errorf("cannot %s: %w", name, err)
		}
	}

	return
}
