package number

import (
	"fmt"
)

// Power returns x^e using square-and-multiply recursion:
// x^1 = x, x^e = (x*x)^(e/2) for even e and x^e = x * x^(e-1) for odd e.
// It performs O(log e) multiplications. For e a power of two, the multiplicative
// depth is log2(e) on top of the depth of x.
// Power returns an error wrapping [ErrInvalidArgument] if e = 0.
func Power[T Number[T]](x T, e uint64) (y T, err error) {

	switch {
	case e == 0:
		return y, fmt.Errorf("cannot Power: exponent is zero: %w", ErrInvalidArgument)
	case e == 1:
		return x, nil
	case e&1 == 0:
		var sq T
		if sq, err = x.Mul(x); err != nil {
			return y, fmt.Errorf("cannot Power: %w", err)
		}
		return Power(sq, e>>1)
	default:
		if y, err = Power(x, e-1); err != nil {
			return
		}
		if y, err = x.Mul(y); err != nil {
			return y, fmt.Errorf("cannot Power: %w", err)
		}
		return y, nil
	}
}

// PowerMod returns x^(e mod m) where m is the order of the multiplicative group
// the non-zero values of x belong to (typically phi of the ring size).
// A reduced exponent of zero is replaced by m, so that zero is mapped to zero
// and non-zero values keep the same image as x^e.
func PowerMod[T Number[T]](x T, e, m uint64) (y T, err error) {

	if m == 0 {
		return y, fmt.Errorf("cannot PowerMod: group order is zero: %w", ErrInvalidArgument)
	}

	if e == 0 {
		return y, fmt.Errorf("cannot PowerMod: exponent is zero: %w", ErrInvalidArgument)
	}

	if e %= m; e == 0 {
		e = m
	}

	return Power(x, e)
}
