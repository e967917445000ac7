package polynomial

import (
	"fmt"
	"math/bits"

	"github.com/tuneinsight/liphe/number"
)

// Evaluate evaluates poly at x with a baby-step giant-step strategy.
// The coefficients are applied as centered integer scalars and the result has
// multiplicative depth about ceil(log2(deg+1)) + 1 above the depth of x.
// A constant polynomial is returned as a fresh value of ctx.
func Evaluate[T number.Number[T]](ctx number.Context[T], poly *Polynomial, x T) (y T, err error) {

	if poly == nil {
		return y, fmt.Errorf("cannot Evaluate: polynomial is nil: %w", number.ErrInvalidArgument)
	}

	if rs := x.RingSize(); rs != 0 && rs != poly.Modulus {
		return y, fmt.Errorf("cannot Evaluate: %w", number.CheckRing(rs, poly.Modulus))
	}

	return EvaluateFromPowerBasis(ctx, poly.Centered(), NewPowerBasis(x))
}

// EvaluateFromPowerBasis evaluates sum_i coeffs[i] * X^{i} on a power basis of X.
// Powers already present in pb are reused and the newly generated ones are kept in pb.
func EvaluateFromPowerBasis[T number.Number[T]](ctx number.Context[T], coeffs []int64, pb *PowerBasis[T]) (y T, err error) {

	if len(coeffs) == 0 {
		return ctx.FromScalar(0)
	}

	if _, ok := pb.Value[1]; !ok {
		return y, fmt.Errorf("cannot EvaluateFromPowerBasis: PowerBasis.Value[1] is empty: %w", number.ErrInvalidArgument)
	}

	// Trims the leading zero coefficients
	deg := len(coeffs) - 1
	for deg > 0 && coeffs[deg] == 0 {
		deg--
	}
	coeffs = coeffs[:deg+1]

	if deg == 0 {
		return ctx.FromScalar(coeffs[0])
	}

	logDegree := bits.Len64(uint64(deg))
	giant := 1 << ((logDegree + 1) >> 1)

	var isZero bool
	if y, isZero, err = evaluateRecurse(ctx, coeffs, giant, pb); err != nil {
		return y, fmt.Errorf("cannot EvaluateFromPowerBasis: %w", err)
	}

	if isZero {
		return ctx.FromScalar(0)
	}

	return
}

// evaluateRecurse splits p(X) = q(X) * X^{G} + r(X), with G the largest power of
// two smaller than len(coeffs), until the pieces fit in a baby step.
func evaluateRecurse[T number.Number[T]](ctx number.Context[T], coeffs []int64, babySize int, pb *PowerBasis[T]) (y T, isZero bool, err error) {

	if len(coeffs) <= babySize {
		return evaluateBabyStep(ctx, coeffs, pb)
	}

	split := 1 << (bits.Len64(uint64(len(coeffs)-1)) - 1)

	var low, high T
	var lowZero, highZero bool

	if low, lowZero, err = evaluateRecurse(ctx, coeffs[:split], babySize, pb); err != nil {
		return
	}

	if highZero = allZero(coeffs[split:]); highZero {
		return low, lowZero, nil
	}

	var xpow T
	if xpow, err = pb.Get(split); err != nil {
		return
	}

	var prod T
	if c, ok := constant(coeffs[split:]); ok {
		if prod, err = xpow.MulScalar(c); err != nil {
			return y, false, fmt.Errorf("giant step X^%d: %w", split, err)
		}
	} else {
		if high, highZero, err = evaluateRecurse(ctx, coeffs[split:], babySize, pb); err != nil {
			return
		}
		if highZero {
			return low, lowZero, nil
		}
		if prod, err = high.Mul(xpow); err != nil {
			return y, false, fmt.Errorf("giant step X^%d: %w", split, err)
		}
	}

	if lowZero {
		return prod, false, nil
	}

	if y, err = prod.Add(low); err != nil {
		return y, false, fmt.Errorf("giant step X^%d: %w", split, err)
	}

	return y, false, nil
}

// evaluateBabyStep computes the inner product between [1, X, ..., X^{n-1}] and coeffs.
func evaluateBabyStep[T number.Number[T]](ctx number.Context[T], coeffs []int64, pb *PowerBasis[T]) (y T, isZero bool, err error) {

	isZero = true

	for i := 1; i < len(coeffs); i++ {

		if coeffs[i] == 0 {
			continue
		}

		var xi, term T
		if xi, err = pb.Get(i); err != nil {
			return
		}

		if term, err = xi.MulScalar(coeffs[i]); err != nil {
			return y, false, fmt.Errorf("baby step X^%d: %w", i, err)
		}

		if isZero {
			y, isZero = term, false
		} else if y, err = y.Add(term); err != nil {
			return y, false, fmt.Errorf("baby step X^%d: %w", i, err)
		}
	}

	if coeffs[0] != 0 {
		if isZero {
			y, err = ctx.FromScalar(coeffs[0])
			return y, false, err
		}
		if y, err = y.AddScalar(coeffs[0]); err != nil {
			return y, false, fmt.Errorf("baby step X^0: %w", err)
		}
	}

	return
}

func allZero(coeffs []int64) bool {
	for _, c := range coeffs {
		if c != 0 {
			return false
		}
	}
	return true
}

// constant returns coeffs[0] and true if all other coefficients are zero.
func constant(coeffs []int64) (c int64, ok bool) {
	if allZero(coeffs[1:]) {
		return coeffs[0], true
	}
	return 0, false
}
