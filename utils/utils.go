// Package utils implements various helper functions.
package utils

import (
	"math/bits"

	"golang.org/x/exp/constraints"
)

// Max returns the maximum value of the two inputs.
func Max[V constraints.Ordered](a, b V) (r V) {
	if a >= b {
		return a
	}
	return b
}

// Min returns the minimum value of the two inputs.
func Min[V constraints.Ordered](a, b V) (r V) {
	if a <= b {
		return a
	}
	return b
}

// BitLen returns the number of bits required to represent x.
// BitLen(0) = 0.
func BitLen[V constraints.Unsigned](x V) int {
	return bits.Len64(uint64(x))
}

// CeilLog2 returns the smallest k such that 2^k >= x.
// CeilLog2(0) = CeilLog2(1) = 0.
func CeilLog2[V constraints.Integer](x V) int {
	if x <= 1 {
		return 0
	}
	return bits.Len64(uint64(x - 1))
}

// IsPow2 returns true if x is a power of two.
func IsPow2[V constraints.Integer](x V) bool {
	return x > 0 && x&(x-1) == 0
}

// BitSet returns true if the i-th bit of x is set.
func BitSet[V constraints.Integer](x V, i int) bool {
	return (uint64(x)>>uint(i))&1 == 1
}

// HammingWeight64 returns the hammingweight if the input value.
func HammingWeight64(x uint64) uint64 {
	return uint64(bits.OnesCount64(x))
}

// GCD computes the greatest common divisor of a and b.
func GCD[V constraints.Integer](a, b V) V {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// ModInt reduces c modulo q and returns a value in [0, q).
func ModInt(c int64, q uint64) uint64 {
	if q == 0 {
		return uint64(c)
	}
	if c >= 0 {
		return uint64(c) % q
	}
	r := uint64(-(c+1)) % q
	return q - 1 - r
}

// CenterMod maps x in [0, q) to its representative in (-q/2, q/2].
func CenterMod(x, q uint64) int64 {
	if x > q>>1 {
		return -int64(q - x)
	}
	return int64(x)
}

// MulMod returns a*b mod q without overflow.
func MulMod(a, b, q uint64) uint64 {
	hi, lo := bits.Mul64(a%q, b%q)
	return bits.Rem64(hi, lo, q)
}

// AddMod returns a+b mod q for a, b in [0, q).
func AddMod(a, b, q uint64) uint64 {
	s, carry := bits.Add64(a, b, 0)
	if carry != 0 || s >= q {
		s -= q
	}
	return s
}

// SubMod returns a-b mod q for a, b in [0, q).
func SubMod(a, b, q uint64) uint64 {
	if a >= b {
		return a - b
	}
	return q - (b - a)
}

// ModExp performs the modular exponentiation x^e mod q.
func ModExp(x, e, q uint64) (result uint64) {
	result = 1 % q
	x %= q
	for i := e; i > 0; i >>= 1 {
		if i&1 == 1 {
			result = MulMod(result, x, q)
		}
		x = MulMod(x, x, q)
	}
	return result
}
