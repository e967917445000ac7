package polynomial

import (
	"fmt"
	"math/bits"

	"github.com/tuneinsight/liphe/number"
)

// PowerBasis is a struct storing powers of a value.
type PowerBasis[T number.Number[T]] struct {
	Value map[int]T
}

// NewPowerBasis creates a new [PowerBasis]. The struct treats the input value as
// a monomial X and can be used to generate the powers X^{n}.
func NewPowerBasis[T number.Number[T]](x T) *PowerBasis[T] {
	return &PowerBasis[T]{Value: map[int]T{1: x}}
}

// SplitDegree returns a * b = n such that |a-b| is minimized
// with a and/or b odd if possible.
func SplitDegree(n int) (a, b int) {

	if n&(n-1) == 0 {
		a, b = n/2, n/2 // Necessary for optimal depth
	} else {
		k := bits.Len64(uint64(n-1)) - 1
		a = (1 << k) - 1
		b = n + 1 - (1 << k)
	}

	return
}

// GenPower recursively computes X^{n} as X^{a} * X^{b} with a, b given by
// [SplitDegree], so that X^{n} has multiplicative depth ceil(log2(n)).
func (p *PowerBasis[T]) GenPower(n int) (err error) {

	if n < 1 {
		return fmt.Errorf("cannot GenPower: n=%d < 1: %w", n, number.ErrInvalidArgument)
	}

	if _, ok := p.Value[n]; ok {
		return nil
	}

	a, b := SplitDegree(n)

	if err = p.GenPower(a); err != nil {
		return fmt.Errorf("genpower: p.Value[%d]: %w", a, err)
	}

	if err = p.GenPower(b); err != nil {
		return fmt.Errorf("genpower: p.Value[%d]: %w", b, err)
	}

	var xn T
	if xn, err = p.Value[a].Mul(p.Value[b]); err != nil {
		return fmt.Errorf("genpower: Mul(p.Value[%d], p.Value[%d]): %w", a, b, err)
	}

	p.Value[n] = xn

	return nil
}

// Get returns X^{n}, generating it if needed.
func (p *PowerBasis[T]) Get(n int) (xn T, err error) {
	if err = p.GenPower(n); err != nil {
		return
	}
	return p.Value[n], nil
}
